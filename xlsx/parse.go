package xlsx

import (
	"fmt"
	"io"

	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// Sheet defaults used when the sheet format properties leave them out.
const (
	defaultColumnWidth = 8.43 // characters
	defaultRowHeight   = 15.0 // points
)

// ReadWorksheet reads an XLSX from r/size and returns the worksheet at
// index (0-based) with everything the converters need.
func ReadWorksheet(r io.ReaderAt, size int64, index int) (*Worksheet, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookParse, err)
	}
	defer wb.Close()
	sheets := wb.Sheets()
	if index < 0 || index >= len(sheets) {
		return nil, fmt.Errorf("%w: index %d, workbook has %d sheet(s)", ErrSheetNotFound, index, len(sheets))
	}
	return parseSheet(wb, sheets[index]), nil
}

func parseSheet(wb *spreadsheet.Workbook, sheet spreadsheet.Sheet) *Worksheet {
	formats := &formatCache{ss: wb.StyleSheet, seen: make(map[uint32]*Format)}
	ws := &Worksheet{
		Name:               sheet.Name(),
		DefaultColumnWidth: defaultColumnWidth,
		DefaultRowHeight:   defaultRowHeight,
		DefaultFormat:      formats.get(0),
		Palette:            themePalette(wb),
	}

	x := sheet.X()
	if pr := x.SheetFormatPr; pr != nil {
		if pr.DefaultColWidthAttr != nil {
			ws.DefaultColumnWidth = *pr.DefaultColWidthAttr
		}
		if pr.DefaultRowHeightAttr > 0 {
			ws.DefaultRowHeight = pr.DefaultRowHeightAttr
		}
	}

	// ---- column widths ----
	for _, cols := range x.Cols {
		for _, col := range cols.Col {
			if col.WidthAttr == nil {
				continue
			}
			ws.Columns = append(ws.Columns, ColumnWidth{
				Min:   int(col.MinAttr),
				Max:   int(col.MaxAttr),
				Width: *col.WidthAttr,
			})
		}
	}

	// ---- merges ----
	if x.MergeCells != nil {
		for _, mc := range x.MergeCells.MergeCell {
			ws.MergeRanges = append(ws.MergeRanges, mc.RefAttr)
		}
	}

	// ---- rows and cells ----
	// r attributes are optional in the file format; missing ones continue
	// from the previous row / cell.
	prevRow := 0
	for _, row := range sheet.Rows() {
		rowNum := int(row.RowNumber())
		if rowNum == 0 {
			rowNum = prevRow + 1
			n := uint32(rowNum)
			row.X().RAttr = &n
		}
		prevRow = rowNum
		if ht := row.X().HtAttr; ht != nil {
			ws.Rows = append(ws.Rows, RowHeight{Row: rowNum, Height: *ht})
		}
		ws.Cells = append(ws.Cells, readCells(row, rowNum, formats)...)
	}
	return ws
}

// readCells converts only the <c> elements stored in row. Row.Cells() would
// add an empty cell for every column gap and skip cells without an r
// attribute.
func readCells(row spreadsheet.Row, rowNum int, formats *formatCache) []Cell {
	var cells []Cell
	prevCol := 0
	for _, cx := range row.X().C {
		col := prevCol + 1
		if cx.RAttr != nil {
			if ref, err := reference.ParseCellReference(*cx.RAttr); err == nil {
				col = int(ref.ColumnIdx) + 1
			}
		}
		prevCol = col

		c := Cell{
			Ref:    CellName(col, rowNum),
			Column: col,
			Row:    rowNum,
		}
		if cx.TAttr == sml.ST_CellTypeE {
			c.IsError = true
			if cx.V != nil {
				c.Value = *cx.V
			}
		} else {
			// row.Cell looks cells up by ref; normalise it so the stored
			// element is found instead of a new one being added
			if cx.RAttr == nil || *cx.RAttr != c.Ref {
				ref := c.Ref
				cx.RAttr = &ref
			}
			c.Value = row.Cell(ColumnName(col)).GetFormattedValue()
		}
		styleID := uint32(0)
		if cx.SAttr != nil {
			styleID = *cx.SAttr
		}
		c.Format = formats.get(styleID)
		cells = append(cells, c)
	}
	return cells
}

// formatCache converts each referenced cellXfs entry once per read.
type formatCache struct {
	ss   spreadsheet.StyleSheet
	seen map[uint32]*Format
}

func (fc *formatCache) get(styleID uint32) *Format {
	if f, ok := fc.seen[styleID]; ok {
		return f
	}
	var f *Format
	if xf := getXf(fc.ss, styleID); xf != nil {
		f = &Format{}
		if xf.Alignment != nil {
			f.Alignment = &CellAlignment{
				Horizontal: xf.Alignment.HorizontalAttr.String(),
				Vertical:   xf.Alignment.VerticalAttr.String(),
			}
		}
		if font := getFontProps(fc.ss, xf); font != nil {
			f.Font = convertFont(font)
		}
		if fill := getFillProps(fc.ss, xf); fill != nil {
			f.Fill = convertFill(fill)
		}
		if border := getBorderProps(fc.ss, xf); border != nil {
			f.Border = convertBorder(border)
		}
	}
	fc.seen[styleID] = f
	return f
}
