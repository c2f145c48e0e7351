package xlsx

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MarkupOptions selects what the generated Typst table carries.
type MarkupOptions struct {
	TableStyle bool // explicit column widths and row heights
	Alignment  bool
	FontStyle  bool
}

// BuildMarkup renders ws as a Typst table(...) expression. Suppressed merge
// cells are skipped, unoccupied cells become [] so every row keeps its width.
func BuildMarkup(ws *Worksheet, opts MarkupOptions) (string, error) {
	l, err := newLayout(ws)
	if err != nil {
		return "", err
	}
	styles := StyleResolver{Alignment: opts.Alignment, Font: opts.FontStyle, Palette: ws.Palette}

	var builder strings.Builder
	builder.WriteString("table(\n")
	if opts.TableStyle {
		widths := ColumnWidths(ws, l.maxCol)
		for i, w := range widths {
			widths[i] = CharWidthToPoints(w)
		}
		builder.WriteString(fmt.Sprintf("  columns: %s,\n", trackList(widths)))
		builder.WriteString(fmt.Sprintf("  rows: %s,\n", trackList(RowHeights(ws, l.maxRow))))
	} else {
		builder.WriteString(fmt.Sprintf("  columns: %d,\n", l.maxCol))
		builder.WriteString(fmt.Sprintf("  rows: %d,\n", l.maxRow))
	}

	var defH, defV string
	if opts.Alignment {
		defH, defV = markupAlignment(ws.DefaultFormat)
		if a := alignExpr(defH, defV); a != "" {
			builder.WriteString(fmt.Sprintf("  align: %s,\n", a))
		}
	}
	var baseFont *CellFont
	if ws.DefaultFormat != nil {
		baseFont = ws.DefaultFormat.Font
	}

	for rowNum := 1; rowNum <= l.maxRow; rowNum++ {
		cells := l.row(rowNum)
		var entries []string
		for colNum := 1; colNum <= l.maxCol; colNum++ {
			pos := Coordinate{Column: colNum, Row: rowNum}
			if l.merges.Suppressed(pos) {
				continue
			}

			var params []string
			if mr, ok := l.merges.Anchor(pos); ok {
				if mr.ColSpan() > 1 {
					params = append(params, fmt.Sprintf("colspan: %d", mr.ColSpan()))
				}
				if mr.RowSpan() > 1 {
					params = append(params, fmt.Sprintf("rowspan: %d", mr.RowSpan()))
				}
			}

			cell := cells[colNum-1]
			content := ""
			if cell != nil {
				value, err := CellValue(*cell)
				if err != nil {
					return "", err
				}
				content = escapeMarkup(value)
				if opts.Alignment {
					h, v := markupAlignment(cell.Format)
					if h == defH {
						h = ""
					}
					if v == defV {
						v = ""
					}
					if a := alignExpr(h, v); a != "" {
						params = append(params, "align: "+a)
					}
				}
				if opts.FontStyle && content != "" {
					content = styles.wrapFont(content, cell.Format, baseFont)
				}
			}

			if len(params) > 0 {
				entries = append(entries, fmt.Sprintf("table.cell(%s)[%s]", strings.Join(params, ", "), content))
			} else {
				entries = append(entries, "["+content+"]")
			}
		}
		if len(entries) > 0 {
			builder.WriteString("  " + strings.Join(entries, ", ") + ",\n")
		}
	}
	builder.WriteString(")")
	return builder.String(), nil
}

// markupAlignment maps stored alignment to Typst alignment names; unset or
// general axes are empty.
func markupAlignment(f *Format) (h, v string) {
	if f == nil || f.Alignment == nil {
		return "", ""
	}
	switch f.Alignment.Horizontal {
	case "left":
		h = "left"
	case "center", "centerContinuous":
		h = "center"
	case "right":
		h = "right"
	}
	switch f.Alignment.Vertical {
	case "top":
		v = "top"
	case "center":
		v = "horizon"
	case "bottom":
		v = "bottom"
	}
	return h, v
}

func alignExpr(h, v string) string {
	switch {
	case h != "" && v != "":
		return h + " + " + v
	case h != "":
		return h
	}
	return v
}

// wrapFont wraps content in text/underline/strike calls. Size and colour are
// only set when they differ from the workbook base font.
func (r StyleResolver) wrapFont(content string, f *Format, base *CellFont) string {
	if f == nil || f.Font == nil {
		return content
	}
	font := f.Font

	var attrs []string
	if font.Size > 0 && (base == nil || font.Size != base.Size) {
		attrs = append(attrs, "size: "+formatPt(font.Size))
	}
	if font.Bold {
		attrs = append(attrs, `weight: "bold"`)
	}
	if font.Italic {
		attrs = append(attrs, `style: "italic"`)
	}
	if hex, ok := r.Palette.Resolve(font.Color); ok {
		baseHex := ""
		if base != nil {
			baseHex, _ = r.Palette.Resolve(base.Color)
		}
		if hex != baseHex {
			attrs = append(attrs, fmt.Sprintf(`fill: rgb("#%s")`, hex))
		}
	}

	if len(attrs) > 0 {
		content = fmt.Sprintf("#text(%s)[%s]", strings.Join(attrs, ", "), content)
	}
	if font.Underline != "" && font.Underline != "none" {
		content = "#underline[" + content + "]"
	}
	if font.Strike {
		content = "#strike[" + content + "]"
	}
	return content
}

func trackList(sizes []float64) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = formatPt(s)
	}
	if len(parts) == 1 {
		// a one-element Typst array needs the trailing comma
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// formatPt renders a length in points rounded to two decimals.
func formatPt(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + "pt"
}

// markupEscaper escapes characters with a meaning in Typst markup. Line
// breaks become Typst forced line breaks.
var markupEscaper = strings.NewReplacer(
	`\`, `\\`,
	`#`, `\#`,
	`[`, `\[`,
	`]`, `\]`,
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`@`, `\@`,
	`~`, `\~`,
	`/`, `\/`,
	`-`, `\-`,
	`=`, `\=`,
	`+`, `\+`,
	`"`, `\"`,
	`'`, `\'`,
	"\r\n", `\ `,
	"\n", `\ `,
)

func escapeMarkup(s string) string {
	at := enumMarker(s)
	s = markupEscaper.Replace(s)
	if at >= 0 {
		// digits, spaces and tabs are left alone by the replacer
		s = s[:at] + `\` + s[at:]
	}
	return s
}

// enumMarker returns the index of the dot in a leading "12. " numbered list
// marker, or -1.
func enumMarker(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start || i >= len(s) || s[i] != '.' {
		return -1
	}
	if i+1 < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[i+1:]); !unicode.IsSpace(r) {
			return -1
		}
	}
	return i
}
