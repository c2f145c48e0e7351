package xlsx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRecordPlainGrid(t *testing.T) {
	ws := sheet("A1=Name", "B1=Age", "A2=Ann", "B2=30")
	ws.DefaultColumnWidth = 10

	rec, err := BuildRecord(ws, RecordOptions{})
	require.NoError(t, err)

	assert.Equal(t, TableDimensions{
		Columns:    []float64{10, 10},
		Rows:       []float64{15, 15},
		MaxColumns: 2,
		MaxRows:    2,
	}, rec.Dimensions)
	assert.Empty(t, rec.MergedCells)
	assert.Equal(t, []RowRecord{
		{RowNumber: 1, Cells: []CellRecord{{Value: "Name", Column: 1}, {Value: "Age", Column: 2}}},
		{RowNumber: 2, Cells: []CellRecord{{Value: "Ann", Column: 1}, {Value: "30", Column: 2}}},
	}, rec.Rows)
}

func TestBuildRecordMergedHeader(t *testing.T) {
	ws := sheet("A1=Title", "B1=hidden", "A2=a", "B2=b")
	ws.MergeRanges = []string{"A1:B1"}

	rec, err := BuildRecord(ws, RecordOptions{})
	require.NoError(t, err)

	assert.Equal(t, []MergeRecord{{
		Range: "A1:B1",
		Start: Position{Row: 1, Column: 1},
		End:   Position{Row: 1, Column: 2},
	}}, rec.MergedCells)
	require.Len(t, rec.Rows, 2)
	assert.Equal(t, []CellRecord{{Value: "Title", Column: 1}}, rec.Rows[0].Cells)
	assert.Len(t, rec.Rows[1].Cells, 2)
}

func TestBuildRecordSparseRows(t *testing.T) {
	ws := sheet("B2=x", "D4=y")
	ws.Rows = []RowHeight{{Row: 3, Height: 40}}
	ws.Columns = []ColumnWidth{{Min: 4, Max: 4, Width: 25}}

	rec, err := BuildRecord(ws, RecordOptions{})
	require.NoError(t, err)

	assert.Equal(t, []float64{8.43, 8.43, 8.43, 25}, rec.Dimensions.Columns)
	assert.Equal(t, []float64{15, 15, 40, 15}, rec.Dimensions.Rows)
	// rows without stored cells are left out
	require.Len(t, rec.Rows, 2)
	assert.Equal(t, 2, rec.Rows[0].RowNumber)
	assert.Equal(t, 2, rec.Rows[0].Cells[0].Column)
	assert.Equal(t, 4, rec.Rows[1].RowNumber)
	assert.Equal(t, 4, rec.Rows[1].Cells[0].Column)
}

func TestBuildRecordCellError(t *testing.T) {
	ws := sheet("A1=ok", "B3=")
	ws.Cells[1].IsError = true
	ws.Cells[1].Value = "#DIV/0!"

	for _, opts := range []RecordOptions{{}, {Alignment: true, Border: true, BackgroundColor: true, FontStyle: true}} {
		_, err := BuildRecord(ws, opts)
		require.ErrorIs(t, err, ErrCellValue)

		var cve *CellValueError
		require.True(t, errors.As(err, &cve))
		assert.Equal(t, "B3", cve.Ref)
		assert.EqualError(t, err, "error in cell B3: #DIV/0!")
	}
}

func TestBuildRecordSuppressedErrorIgnored(t *testing.T) {
	ws := sheet("A1=Title", "B1=")
	ws.Cells[1].IsError = true
	ws.MergeRanges = []string{"A1:B1"}

	_, err := BuildRecord(ws, RecordOptions{})
	assert.NoError(t, err)
}

func TestBuildRecordEmpty(t *testing.T) {
	_, err := BuildRecord(sheet(), RecordOptions{})
	assert.ErrorIs(t, err, ErrEmptyWorksheet)
}

func TestBuildRecordOverlappingMerges(t *testing.T) {
	ws := sheet("A1=x", "C3=y")
	ws.MergeRanges = []string{"A1:B2", "B2:C3"}

	_, err := BuildRecord(ws, RecordOptions{})
	assert.ErrorIs(t, err, ErrMergeOverlap)
}

func TestBuildRecordStyles(t *testing.T) {
	ws := sheet("A1=styled", "B1=plain")
	ws.Palette = officePalette
	ws.Cells[0].Format = styledFormat()

	rec, err := BuildRecord(ws, RecordOptions{Alignment: true, BackgroundColor: true})
	require.NoError(t, err)
	cells := rec.Rows[0].Cells

	require.NotNil(t, cells[0].Style)
	assert.Equal(t, &CellStyle{
		Alignment: &Alignment{Horizontal: "center", Vertical: "top"},
		Color:     "4472c4",
	}, cells[0].Style)
	assert.Nil(t, cells[1].Style)
}
