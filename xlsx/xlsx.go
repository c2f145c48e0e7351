package xlsx

import (
	"github.com/unidoc/unioffice/schema/soo/dml"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
)

// Stylesheet lookups. A style ID indexes cellXfs; each xf points into the
// font, fill and border tables. Out of range IDs yield nil.

func getXf(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Xf {
	x := ss.X()
	if x == nil || x.CellXfs == nil || int(styleID) >= len(x.CellXfs.Xf) {
		return nil
	}
	return x.CellXfs.Xf[styleID]
}

func getFontProps(ss spreadsheet.StyleSheet, xf *sml.CT_Xf) *sml.CT_Font {
	if xf.FontIdAttr == nil || ss.X().Fonts == nil {
		return nil
	}
	fontIdx := int(*xf.FontIdAttr)
	if fontIdx >= len(ss.X().Fonts.Font) {
		return nil
	}
	return ss.X().Fonts.Font[fontIdx]
}

func getFillProps(ss spreadsheet.StyleSheet, xf *sml.CT_Xf) *sml.CT_Fill {
	if xf.FillIdAttr == nil || ss.X().Fills == nil {
		return nil
	}
	fillIdx := int(*xf.FillIdAttr)
	if fillIdx >= len(ss.X().Fills.Fill) {
		return nil
	}
	return ss.X().Fills.Fill[fillIdx]
}

func getBorderProps(ss spreadsheet.StyleSheet, xf *sml.CT_Xf) *sml.CT_Border {
	if xf.BorderIdAttr == nil || ss.X().Borders == nil {
		return nil
	}
	borderIdx := int(*xf.BorderIdAttr)
	if borderIdx >= len(ss.X().Borders.Border) {
		return nil
	}
	return ss.X().Borders.Border[borderIdx]
}

// themePalette reads the colour scheme of the first workbook theme. Slots
// are stored in the order cell styles index them, which swaps the dark/light
// pairs of the scheme: 0 lt1, 1 dk1, 2 lt2, 3 dk2.
func themePalette(wb *spreadsheet.Workbook) Palette {
	themes := wb.Themes()
	if len(themes) == 0 || themes[0] == nil || themes[0].ThemeElements == nil {
		return Palette{}
	}
	cs := themes[0].ThemeElements.ClrScheme
	if cs == nil {
		return Palette{}
	}
	slots := []*dml.CT_Color{
		cs.Lt1, cs.Dk1, cs.Lt2, cs.Dk2,
		cs.Accent1, cs.Accent2, cs.Accent3, cs.Accent4, cs.Accent5, cs.Accent6,
		cs.Hlink, cs.FolHlink,
	}
	p := Palette{Theme: make([]string, len(slots))}
	for i, clr := range slots {
		p.Theme[i] = schemeColorToRGB(clr)
	}
	return p
}

// schemeColorToRGB returns the RGB hex of a scheme colour, or "" when it is
// neither an sRGB nor a system colour with a cached value.
func schemeColorToRGB(clr *dml.CT_Color) string {
	if clr == nil {
		return ""
	}
	if clr.SrgbClr != nil && clr.SrgbClr.ValAttr != "" {
		return clr.SrgbClr.ValAttr
	} else if clr.SysClr != nil && clr.SysClr.LastClrAttr != nil {
		return *clr.SysClr.LastClrAttr
	}
	return ""
}

// convertColor keeps a stylesheet colour as an unresolved reference.
// Automatic colours have no value of their own and map to nil.
func convertColor(c *sml.CT_Color) *Color {
	if c == nil {
		return nil
	}
	var tint float64
	if c.TintAttr != nil {
		tint = *c.TintAttr
	}
	switch {
	case c.RgbAttr != nil && *c.RgbAttr != "":
		return RGBColor(*c.RgbAttr)
	case c.ThemeAttr != nil:
		return ThemeColor(int(*c.ThemeAttr), tint)
	case c.IndexedAttr != nil:
		ic := IndexedColor(int(*c.IndexedAttr))
		ic.Tint = tint
		return ic
	}
	return nil
}

func convertFont(font *sml.CT_Font) *CellFont {
	f := &CellFont{
		Bold:   boolProp(font.B),
		Italic: boolProp(font.I),
		Strike: boolProp(font.Strike),
	}
	if len(font.Name) > 0 {
		f.Name = font.Name[0].ValAttr
	}
	if len(font.Sz) > 0 {
		f.Size = font.Sz[0].ValAttr
	}
	if len(font.U) > 0 {
		// <u/> without a value means a single underline
		f.Underline = font.U[0].ValAttr.String()
		if f.Underline == "" {
			f.Underline = "single"
		}
	}
	if len(font.Color) > 0 {
		f.Color = convertColor(font.Color[0])
	}
	return f
}

func convertFill(fill *sml.CT_Fill) *Color {
	pf := fill.PatternFill
	if pf == nil || pf.PatternTypeAttr.String() == "none" {
		return nil
	}
	return convertColor(pf.FgColor)
}

func convertBorder(border *sml.CT_Border) *CellBorder {
	side := func(pr *sml.CT_BorderPr) string {
		if pr == nil {
			return ""
		}
		return pr.StyleAttr.String()
	}
	return &CellBorder{
		Left:   side(border.Left),
		Right:  side(border.Right),
		Top:    side(border.Top),
		Bottom: side(border.Bottom),
	}
}

// boolProp reads <b/>, <i/>, <strike/>: present without a value means true.
func boolProp(props []*sml.CT_BooleanProperty) bool {
	if len(props) == 0 {
		return false
	}
	return props[0].ValAttr == nil || *props[0].ValAttr
}
