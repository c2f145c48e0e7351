// Package xlsxtest assembles small .xlsx packages in memory for tests.
//
// Every workbook shares one stylesheet and theme:
//
//	style 0  default: Calibri 11, theme colour 1, no fill, no border
//	style 1  font Calibri 14 bold italic underline strike, colour FF0000
//	style 2  fill theme 4 (accent1 4472C4), alignment center/center
//	style 3  fill FF00FF00, border left thin + bottom double, alignment left/top
package xlsxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
)

// Style indexes of the shared stylesheet.
const (
	StyleDefault = 0
	StyleFont    = 1
	StyleTheme   = 2
	StyleBorder  = 3
)

// Cell is one stored cell. Exactly one of Text, Number or Error is used;
// a cell with none of them is stored without a value.
type Cell struct {
	Ref     string
	Text    string
	Number  string
	Error   string // e.g. "#DIV/0!"
	Style   int
	OmitRef bool // write <c> without r; Ref still picks the row
}

// Col is a <col> record.
type Col struct {
	Min, Max int
	Width    float64
}

// Sheet describes one worksheet.
type Sheet struct {
	Name             string
	Cells            []Cell
	Cols             []Col
	RowHeights       map[int]float64
	Merges           []string
	DefaultColWidth  float64 // omitted when 0
	DefaultRowHeight float64 // omitted when 0
	OmitRowRefs      bool    // write <row> without r
}

// Build returns the bytes of an .xlsx holding sheets in order.
func Build(sheets ...Sheet) []byte {
	var strs []string
	strIdx := make(map[string]int)
	intern := func(s string) int {
		if i, ok := strIdx[s]; ok {
			return i
		}
		strIdx[s] = len(strs)
		strs = append(strs, s)
		return len(strs) - 1
	}

	parts := map[string]string{}
	var sheetEntries, sheetRels, sheetTypes strings.Builder
	for i, sh := range sheets {
		n := i + 1
		name := sh.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", n)
		}
		fmt.Fprintf(&sheetEntries, `<sheet name="%s" sheetId="%d" r:id="rId%d"/>`, escape(name), n, n)
		fmt.Fprintf(&sheetRels, `<Relationship Id="rId%d" Type="%s/worksheet" Target="worksheets/sheet%d.xml"/>`, n, relNS, n)
		fmt.Fprintf(&sheetTypes, `<Override PartName="/xl/worksheets/sheet%d.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>`, n)
		parts[fmt.Sprintf("xl/worksheets/sheet%d.xml", n)] = sheetXML(sh, intern)
	}
	n := len(sheets)

	parts["[Content_Types].xml"] = xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>` +
		sheetTypes.String() +
		`<Override PartName="/xl/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>` +
		`<Override PartName="/xl/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"/>` +
		`<Override PartName="/xl/sharedStrings.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"/>` +
		`</Types>`
	parts["_rels/.rels"] = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="` + relNS + `/officeDocument" Target="xl/workbook.xml"/>` +
		`</Relationships>`
	parts["xl/workbook.xml"] = xmlHeader + `<workbook xmlns="` + mainNS + `" xmlns:r="` + relNS + `">` +
		`<sheets>` + sheetEntries.String() + `</sheets></workbook>`
	parts["xl/_rels/workbook.xml.rels"] = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		sheetRels.String() +
		fmt.Sprintf(`<Relationship Id="rId%d" Type="%s/theme" Target="theme/theme1.xml"/>`, n+1, relNS) +
		fmt.Sprintf(`<Relationship Id="rId%d" Type="%s/styles" Target="styles.xml"/>`, n+2, relNS) +
		fmt.Sprintf(`<Relationship Id="rId%d" Type="%s/sharedStrings" Target="sharedStrings.xml"/>`, n+3, relNS) +
		`</Relationships>`
	parts["xl/styles.xml"] = xmlHeader + stylesXML
	parts["xl/theme/theme1.xml"] = xmlHeader + themeXML

	var sst strings.Builder
	fmt.Fprintf(&sst, `<sst xmlns="%s" count="%d" uniqueCount="%d">`, mainNS, len(strs), len(strs))
	for _, s := range strs {
		fmt.Fprintf(&sst, `<si><t xml:space="preserve">%s</t></si>`, escape(s))
	}
	sst.WriteString(`</sst>`)
	parts["xl/sharedStrings.xml"] = xmlHeader + sst.String()

	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(parts[name])); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func sheetXML(sh Sheet, intern func(string) int) string {
	var b strings.Builder
	b.WriteString(xmlHeader + `<worksheet xmlns="` + mainNS + `" xmlns:r="` + relNS + `">`)

	if sh.DefaultColWidth > 0 || sh.DefaultRowHeight > 0 {
		b.WriteString(`<sheetFormatPr`)
		if sh.DefaultColWidth > 0 {
			fmt.Fprintf(&b, ` defaultColWidth="%g"`, sh.DefaultColWidth)
		}
		rh := sh.DefaultRowHeight
		if rh == 0 {
			rh = 15
		}
		fmt.Fprintf(&b, ` defaultRowHeight="%g"/>`, rh)
	}
	if len(sh.Cols) > 0 {
		b.WriteString(`<cols>`)
		for _, c := range sh.Cols {
			fmt.Fprintf(&b, `<col min="%d" max="%d" width="%g" customWidth="1"/>`, c.Min, c.Max, c.Width)
		}
		b.WriteString(`</cols>`)
	}

	// group cells by row, keeping rows with only a height
	rows := map[int][]Cell{}
	for _, c := range sh.Cells {
		r := rowOf(c.Ref)
		rows[r] = append(rows[r], c)
	}
	for r := range sh.RowHeights {
		if _, ok := rows[r]; !ok {
			rows[r] = nil
		}
	}
	rowNums := make([]int, 0, len(rows))
	for r := range rows {
		rowNums = append(rowNums, r)
	}
	sort.Ints(rowNums)

	b.WriteString(`<sheetData>`)
	for _, r := range rowNums {
		b.WriteString(`<row`)
		if !sh.OmitRowRefs {
			fmt.Fprintf(&b, ` r="%d"`, r)
		}
		if ht, ok := sh.RowHeights[r]; ok {
			fmt.Fprintf(&b, ` ht="%g" customHeight="1"`, ht)
		}
		b.WriteString(`>`)
		for _, c := range rows[r] {
			attrs := ""
			if !c.OmitRef {
				attrs = fmt.Sprintf(` r="%s"`, c.Ref)
			}
			if c.Style != 0 {
				attrs += fmt.Sprintf(` s="%d"`, c.Style)
			}
			switch {
			case c.Error != "":
				fmt.Fprintf(&b, `<c%s t="e"><v>%s</v></c>`, attrs, escape(c.Error))
			case c.Number != "":
				fmt.Fprintf(&b, `<c%s><v>%s</v></c>`, attrs, c.Number)
			case c.Text != "":
				fmt.Fprintf(&b, `<c%s t="s"><v>%d</v></c>`, attrs, intern(c.Text))
			default:
				fmt.Fprintf(&b, `<c%s/>`, attrs)
			}
		}
		b.WriteString(`</row>`)
	}
	b.WriteString(`</sheetData>`)

	if len(sh.Merges) > 0 {
		fmt.Fprintf(&b, `<mergeCells count="%d">`, len(sh.Merges))
		for _, m := range sh.Merges {
			fmt.Fprintf(&b, `<mergeCell ref="%s"/>`, m)
		}
		b.WriteString(`</mergeCells>`)
	}
	b.WriteString(`</worksheet>`)
	return b.String()
}

func rowOf(ref string) int {
	n := 0
	for _, c := range ref {
		if c >= '0' && c <= '9' {
			n = n*10 + int(c-'0')
		}
	}
	return n
}

func escape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		panic(err)
	}
	return b.String()
}

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	mainNS    = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	relNS     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

const stylesXML = `<styleSheet xmlns="` + mainNS + `">` +
	`<fonts count="2">` +
	`<font><sz val="11"/><color theme="1"/><name val="Calibri"/></font>` +
	`<font><b/><i/><strike/><u/><sz val="14"/><color rgb="FFFF0000"/><name val="Calibri"/></font>` +
	`</fonts>` +
	`<fills count="4">` +
	`<fill><patternFill patternType="none"/></fill>` +
	`<fill><patternFill patternType="gray125"/></fill>` +
	`<fill><patternFill patternType="solid"><fgColor theme="4"/><bgColor indexed="64"/></patternFill></fill>` +
	`<fill><patternFill patternType="solid"><fgColor rgb="FF00FF00"/><bgColor indexed="64"/></patternFill></fill>` +
	`</fills>` +
	`<borders count="2">` +
	`<border><left/><right/><top/><bottom/><diagonal/></border>` +
	`<border><left style="thin"><color indexed="64"/></left><right/><top/><bottom style="double"><color indexed="64"/></bottom><diagonal/></border>` +
	`</borders>` +
	`<cellStyleXfs count="1"><xf numFmtId="0" fontId="0" fillId="0" borderId="0"/></cellStyleXfs>` +
	`<cellXfs count="4">` +
	`<xf numFmtId="0" fontId="0" fillId="0" borderId="0" xfId="0"/>` +
	`<xf numFmtId="0" fontId="1" fillId="0" borderId="0" xfId="0" applyFont="1"/>` +
	`<xf numFmtId="0" fontId="0" fillId="2" borderId="0" xfId="0" applyFill="1" applyAlignment="1"><alignment horizontal="center" vertical="center"/></xf>` +
	`<xf numFmtId="0" fontId="0" fillId="3" borderId="1" xfId="0" applyFill="1" applyBorder="1" applyAlignment="1"><alignment horizontal="left" vertical="top"/></xf>` +
	`</cellXfs>` +
	`<cellStyles count="1"><cellStyle name="Normal" xfId="0" builtinId="0"/></cellStyles>` +
	`</styleSheet>`

const themeXML = `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office Theme">` +
	`<a:themeElements>` +
	`<a:clrScheme name="Office">` +
	`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>` +
	`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="44546A"/></a:dk2>` +
	`<a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="4472C4"/></a:accent1>` +
	`<a:accent2><a:srgbClr val="ED7D31"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>` +
	`<a:accent4><a:srgbClr val="FFC000"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5>` +
	`<a:accent6><a:srgbClr val="70AD47"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="0563C1"/></a:hlink>` +
	`<a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="Office">` +
	`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
	`</a:fontScheme>` +
	`<a:fmtScheme name="Office"><a:fillStyleLst/><a:lnStyleLst/><a:effectStyleLst/><a:bgFillStyleLst/></a:fmtScheme>` +
	`</a:themeElements>` +
	`</a:theme>`
