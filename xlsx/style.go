package xlsx

// CellStyle is the resolved style of a record-mode cell. Parts whose parsing
// is disabled, or that the cell does not define, are nil.
type CellStyle struct {
	Alignment *Alignment `toml:"alignment,omitempty"`
	Border    *Border    `toml:"border,omitempty"`
	Color     string     `toml:"color,omitempty"` // background, "rrggbb"
	Font      *FontStyle `toml:"font,omitempty"`
}

// Alignment values: horizontal left|center|right|default, vertical
// bottom|center|top|default.
type Alignment struct {
	Horizontal string `toml:"horizontal"`
	Vertical   string `toml:"vertical"`
}

// Border reports which sides of a cell have a visible border.
type Border struct {
	Left   bool `toml:"left"`
	Right  bool `toml:"right"`
	Top    bool `toml:"top"`
	Bottom bool `toml:"bottom"`
}

// FontStyle is the resolved font of a cell.
type FontStyle struct {
	Bold      bool    `toml:"bold"`
	Italic    bool    `toml:"italic"`
	Size      float64 `toml:"size"`
	Color     string  `toml:"color,omitempty"` // "rrggbb"
	Underline bool    `toml:"underline"`
	Strike    bool    `toml:"strike"`
}

// StyleResolver turns stored formats into CellStyles. Each toggle gates one
// part; a disabled part is never computed and never touches the palette.
type StyleResolver struct {
	Alignment bool
	Border    bool
	Fill      bool
	Font      bool
	Palette   Palette
}

// Enabled reports whether any part is switched on.
func (r StyleResolver) Enabled() bool {
	return r.Alignment || r.Border || r.Fill || r.Font
}

// Resolve returns nil when f is nil, every toggle is off, or no enabled part
// is defined by f.
func (r StyleResolver) Resolve(f *Format) *CellStyle {
	if f == nil || !r.Enabled() {
		return nil
	}
	var st CellStyle
	if r.Alignment {
		st.Alignment = r.ResolveAlignment(f)
	}
	if r.Border {
		st.Border = r.ResolveBorder(f)
	}
	if r.Fill {
		st.Color, _ = r.ResolveFill(f)
	}
	if r.Font {
		st.Font = r.ResolveFont(f)
	}
	if st == (CellStyle{}) {
		return nil
	}
	return &st
}

// ResolveAlignment maps stored alignment tokens to record values.
func (r StyleResolver) ResolveAlignment(f *Format) *Alignment {
	if f == nil || f.Alignment == nil {
		return nil
	}
	a := &Alignment{Horizontal: "default", Vertical: "default"}
	switch f.Alignment.Horizontal {
	case "left":
		a.Horizontal = "left"
	case "center", "centerContinuous":
		a.Horizontal = "center"
	case "right":
		a.Horizontal = "right"
	}
	switch f.Alignment.Vertical {
	case "bottom":
		a.Vertical = "bottom"
	case "center":
		a.Vertical = "center"
	case "top":
		a.Vertical = "top"
	}
	return a
}

// ResolveBorder reports a side as present when its style is set and is not
// "none".
func (r StyleResolver) ResolveBorder(f *Format) *Border {
	if f == nil || f.Border == nil {
		return nil
	}
	return &Border{
		Left:   hasBorder(f.Border.Left),
		Right:  hasBorder(f.Border.Right),
		Top:    hasBorder(f.Border.Top),
		Bottom: hasBorder(f.Border.Bottom),
	}
}

// ResolveFill returns the background colour.
func (r StyleResolver) ResolveFill(f *Format) (string, bool) {
	if f == nil {
		return "", false
	}
	return r.Palette.Resolve(f.Fill)
}

// ResolveFont returns the resolved font, with its colour through the palette.
func (r StyleResolver) ResolveFont(f *Format) *FontStyle {
	if f == nil || f.Font == nil {
		return nil
	}
	fs := &FontStyle{
		Bold:      f.Font.Bold,
		Italic:    f.Font.Italic,
		Size:      f.Font.Size,
		Underline: f.Font.Underline != "" && f.Font.Underline != "none",
		Strike:    f.Font.Strike,
	}
	fs.Color, _ = r.Palette.Resolve(f.Font.Color)
	return fs
}

func hasBorder(style string) bool {
	return style != "" && style != "none"
}
