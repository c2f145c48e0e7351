package xlsx

// layout is the per-call view of a worksheet shared by both assemblers:
// bounding box, merges and a row index into the sparse cell list.
type layout struct {
	ws     *Worksheet
	maxCol int
	maxRow int
	merges *Merges
	byRow  map[int][]int // row -> indexes into ws.Cells
}

func newLayout(ws *Worksheet) (*layout, error) {
	maxCol, maxRow, err := ScanDimensions(ws)
	if err != nil {
		return nil, err
	}
	merges, err := ResolveMerges(ws.MergeRanges, Coordinate{Column: maxCol, Row: maxRow})
	if err != nil {
		return nil, err
	}
	l := &layout{
		ws:     ws,
		maxCol: maxCol,
		maxRow: maxRow,
		merges: merges,
		byRow:  make(map[int][]int),
	}
	for i, c := range ws.Cells {
		l.byRow[c.Row] = append(l.byRow[c.Row], i)
	}
	return l, nil
}

// row returns the cells of one row indexed by column-1. Only one row is
// materialised at a time.
func (l *layout) row(n int) []*Cell {
	cells := make([]*Cell, l.maxCol)
	for _, i := range l.byRow[n] {
		c := &l.ws.Cells[i]
		if c.Column >= 1 && c.Column <= l.maxCol {
			cells[c.Column-1] = c
		}
	}
	return cells
}
