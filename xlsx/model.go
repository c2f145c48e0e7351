package xlsx

import (
	"fmt"
)

// Worksheet model read from a workbook. It keeps the sparse storage of the
// sheet as-is; conversion works from it without holding a dense grid.

// Worksheet is one tab of a workbook together with the workbook-level data
// (theme palette, base cell format) its cells refer to.
type Worksheet struct {
	Name               string
	Cells              []Cell        // sparse, in sheet order
	Columns            []ColumnWidth // explicit <col> records
	Rows               []RowHeight   // explicit row heights
	MergeRanges        []string      // e.g. "A1:C2"
	DefaultColumnWidth float64       // character units
	DefaultRowHeight   float64       // points
	DefaultFormat      *Format       // workbook base cell format, may be nil
	Palette            Palette
}

func (w Worksheet) String() string {
	return fmt.Sprintf("Name: %s, Cells: %d, Columns: %d, Rows: %d, MergeRanges: %v, DefaultColumnWidth: %f, DefaultRowHeight: %f",
		w.Name, len(w.Cells), len(w.Columns), len(w.Rows), w.MergeRanges, w.DefaultColumnWidth, w.DefaultRowHeight)
}

// ColumnWidth is an explicit width for the 1-based columns Min..Max.
type ColumnWidth struct {
	Min   int
	Max   int
	Width float64 // character units
}

// RowHeight is an explicit height for one 1-based row.
type RowHeight struct {
	Row    int
	Height float64 // points
}

// Cell is a single stored cell.
type Cell struct {
	Ref     string  // e.g. "A1"
	Column  int     // 1-based
	Row     int     // 1-based
	Value   string  // display text
	IsError bool    // raw value is a formula error
	Format  *Format // nil when the cell carries no style
}

func (c Cell) String() string {
	return fmt.Sprintf("Ref: %s, Column: %d, Row: %d, Value: %q, IsError: %t, Styled: %t", c.Ref, c.Column, c.Row, c.Value, c.IsError, c.Format != nil)
}

// Format is the raw style attached to a cell, as stored in the stylesheet.
// Colours stay unresolved until a StyleResolver asks for them.
type Format struct {
	Alignment *CellAlignment
	Border    *CellBorder
	Fill      *Color // pattern fill foreground
	Font      *CellFont
}

// CellAlignment holds the stored alignment tokens ("general", "left",
// "center", "centerContinuous", "top", ...). Empty means unset.
type CellAlignment struct {
	Horizontal string
	Vertical   string
}

// CellBorder holds the stored border style token of each side. Empty or
// "none" means the side has no border.
type CellBorder struct {
	Left   string
	Right  string
	Top    string
	Bottom string
}

// CellFont is the stored font of a cell format.
type CellFont struct {
	Name      string
	Size      float64 // points
	Bold      bool
	Italic    bool
	Strike    bool
	Underline string // "single", "double", ...; empty or "none" means no underline
	Color     *Color
}
