package xlsx

import (
	"fmt"
)

// TableRecord is the structured description of a worksheet table.
type TableRecord struct {
	Dimensions  TableDimensions `toml:"dimensions"`
	Rows        []RowRecord     `toml:"rows"`
	MergedCells []MergeRecord   `toml:"merged_cells"`
}

// TableDimensions holds raw widths (character units) and heights (points).
type TableDimensions struct {
	Columns    []float64 `toml:"columns"`
	Rows       []float64 `toml:"rows"`
	MaxColumns int       `toml:"max_columns"`
	MaxRows    int       `toml:"max_rows"`
}

// RowRecord is a row with at least one emitted cell.
type RowRecord struct {
	RowNumber int          `toml:"row_number"`
	Cells     []CellRecord `toml:"cells"`
}

func (r RowRecord) String() string {
	return fmt.Sprintf("RowNumber: %d, Cells: %d", r.RowNumber, len(r.Cells))
}

// CellRecord is one stored, non-suppressed cell.
type CellRecord struct {
	Value  string     `toml:"value"`
	Column int        `toml:"column"`
	Style  *CellStyle `toml:"style,omitempty"`
}

// Position is a 1-based cell position.
type Position struct {
	Row    int `toml:"row"`
	Column int `toml:"column"`
}

// MergeRecord describes one merge range.
type MergeRecord struct {
	Range string   `toml:"range"`
	Start Position `toml:"start"`
	End   Position `toml:"end"`
}

// RecordOptions selects which style parts are resolved.
type RecordOptions struct {
	Alignment       bool
	Border          bool
	BackgroundColor bool
	FontStyle       bool
}

// BuildRecord assembles the TableRecord of ws.
func BuildRecord(ws *Worksheet, opts RecordOptions) (*TableRecord, error) {
	l, err := newLayout(ws)
	if err != nil {
		return nil, err
	}
	styles := StyleResolver{
		Alignment: opts.Alignment,
		Border:    opts.Border,
		Fill:      opts.BackgroundColor,
		Font:      opts.FontStyle,
		Palette:   ws.Palette,
	}

	rec := &TableRecord{
		Dimensions: TableDimensions{
			Columns:    ColumnWidths(ws, l.maxCol),
			Rows:       RowHeights(ws, l.maxRow),
			MaxColumns: l.maxCol,
			MaxRows:    l.maxRow,
		},
		Rows:        []RowRecord{},
		MergedCells: make([]MergeRecord, 0, len(l.merges.Ranges)),
	}
	for _, mr := range l.merges.Ranges {
		rec.MergedCells = append(rec.MergedCells, MergeRecord{
			Range: mr.Range,
			Start: Position{Row: mr.Start.Row, Column: mr.Start.Column},
			End:   Position{Row: mr.End.Row, Column: mr.End.Column},
		})
	}

	for rowNum := 1; rowNum <= l.maxRow; rowNum++ {
		if len(l.byRow[rowNum]) == 0 {
			continue
		}
		cells := l.row(rowNum)
		rr := RowRecord{RowNumber: rowNum}
		for colNum := 1; colNum <= l.maxCol; colNum++ {
			cell := cells[colNum-1]
			if cell == nil || l.merges.Suppressed(Coordinate{Column: colNum, Row: rowNum}) {
				continue
			}
			value, err := CellValue(*cell)
			if err != nil {
				return nil, err
			}
			rr.Cells = append(rr.Cells, CellRecord{
				Value:  value,
				Column: colNum,
				Style:  styles.Resolve(cell.Format),
			})
		}
		if len(rr.Cells) > 0 {
			rec.Rows = append(rec.Rows, rr)
		}
	}
	return rec, nil
}
