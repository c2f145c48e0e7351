package xlsx

// pointsPerChar converts a column width in character units to points: a
// default 8.43 character column is 64pt wide.
const pointsPerChar = 64 / 8.43

// ScanDimensions returns the largest column and row holding a stored cell.
func ScanDimensions(ws *Worksheet) (maxCol, maxRow int, err error) {
	for _, c := range ws.Cells {
		maxCol = max(maxCol, c.Column)
		maxRow = max(maxRow, c.Row)
	}
	if maxCol == 0 || maxRow == 0 {
		return 0, 0, ErrEmptyWorksheet
	}
	return maxCol, maxRow, nil
}

// ColumnWidths returns maxCol widths in character units. Columns without an
// explicit record keep the sheet default; records past maxCol are dropped.
func ColumnWidths(ws *Worksheet, maxCol int) []float64 {
	widths := make([]float64, maxCol)
	for i := range widths {
		widths[i] = ws.DefaultColumnWidth
	}
	for _, col := range ws.Columns {
		for c := max(col.Min, 1); c <= col.Max && c <= maxCol; c++ {
			widths[c-1] = col.Width
		}
	}
	return widths
}

// RowHeights returns maxRow heights in points, defaulted like ColumnWidths.
func RowHeights(ws *Worksheet, maxRow int) []float64 {
	heights := make([]float64, maxRow)
	for i := range heights {
		heights[i] = ws.DefaultRowHeight
	}
	for _, row := range ws.Rows {
		if row.Row >= 1 && row.Row <= maxRow {
			heights[row.Row-1] = row.Height
		}
	}
	return heights
}

// CharWidthToPoints converts a column width in character units to points.
func CharWidthToPoints(w float64) float64 {
	return w * pointsPerChar
}
