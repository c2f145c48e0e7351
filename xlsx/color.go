package xlsx

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ColorKind tags how a Color refers to its value.
type ColorKind int

const (
	ColorRGB     ColorKind = iota // literal ARGB or RGB hex
	ColorTheme                    // index into the theme palette
	ColorIndexed                  // index into the legacy 64-colour palette
)

// Color is a colour reference as stored in a style. It is resolved to a
// final hex string through a Palette.
type Color struct {
	Kind  ColorKind
	RGB   string  // ColorRGB only, "FFRRGGBB" or "RRGGBB"
	Index int     // ColorTheme / ColorIndexed
	Tint  float64 // -1..1, applied to theme and indexed colours
}

func (c Color) String() string {
	switch c.Kind {
	case ColorTheme:
		return fmt.Sprintf("theme(%d, tint %g)", c.Index, c.Tint)
	case ColorIndexed:
		return fmt.Sprintf("indexed(%d)", c.Index)
	}
	return c.RGB
}

// RGBColor returns a literal colour.
func RGBColor(hex string) *Color { return &Color{Kind: ColorRGB, RGB: hex} }

// ThemeColor returns a reference to a theme palette slot.
func ThemeColor(index int, tint float64) *Color {
	return &Color{Kind: ColorTheme, Index: index, Tint: tint}
}

// IndexedColor returns a reference to the legacy indexed palette.
func IndexedColor(index int) *Color { return &Color{Kind: ColorIndexed, Index: index} }

// Palette holds the workbook theme colours as "RRGGBB", ordered by the
// theme index used in cell styles: lt1, dk1, lt2, dk2, accent1-6, hlink,
// folHlink.
type Palette struct {
	Theme []string
}

// Resolve returns the colour as 6 lowercase hex digits. ok is false when c
// is nil or cannot be resolved.
func (p Palette) Resolve(c *Color) (hex string, ok bool) {
	if c == nil {
		return "", false
	}
	switch c.Kind {
	case ColorRGB:
		hex = normalizeColor(c.RGB)
	case ColorTheme:
		if c.Index < 0 || c.Index >= len(p.Theme) {
			return "", false
		}
		hex = normalizeColor(p.Theme[c.Index])
	case ColorIndexed:
		if c.Index < 0 || c.Index >= len(excelize.IndexedColorMapping) {
			return "", false
		}
		hex = excelize.IndexedColorMapping[c.Index]
	default:
		return "", false
	}
	if !isHex6(hex) {
		return "", false
	}
	if c.Kind != ColorRGB && c.Tint != 0 {
		hex = applyTint(hex, c.Tint)
	}
	return strings.ToLower(hex), true
}

// normalizeColor converts an 8-digit ARGB hex (as used in XLSX) to a 6-digit RGB string.
// If the string is already 6 digits (or any other length), it is returned unchanged.
func normalizeColor(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 8 {
		return hex[2:]
	}
	return hex
}

func isHex6(s string) bool {
	if len(s) != 6 {
		return false
	}
	_, err := strconv.ParseUint(s, 16, 32)
	return err == nil
}

// applyTint lightens (tint > 0) or darkens (tint < 0) the luminance of an
// RGB colour in HLS space, as described for CT_Color@tint in ECMA-376.
func applyTint(hex string, tint float64) string {
	tint = math.Max(-1, math.Min(1, tint))
	return normalizeColor(excelize.ThemeColor(hex, tint))
}
