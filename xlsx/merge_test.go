package xlsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMergeCell(t *testing.T) {
	mr := ParseMergeCell("B2:D3")
	assert.Equal(t, Coordinate{Column: 2, Row: 2}, mr.Start)
	assert.Equal(t, Coordinate{Column: 4, Row: 3}, mr.End)
	assert.Equal(t, 3, mr.ColSpan())
	assert.Equal(t, 2, mr.RowSpan())

	reversed := ParseMergeCell("D3:B2")
	assert.Equal(t, mr.Start, reversed.Start)
	assert.Equal(t, mr.End, reversed.End)
	assert.Equal(t, "D3:B2", reversed.Range)
}

func TestResolveMerges(t *testing.T) {
	m, err := ResolveMerges([]string{"A1:B2", "D1:D3"}, Coordinate{Column: 4, Row: 3})
	require.NoError(t, err)
	require.Len(t, m.Ranges, 2)

	tests := []struct {
		ref        string
		suppressed bool
		anchor     string
	}{
		{"A1", false, "A1:B2"},
		{"B1", true, ""},
		{"A2", true, ""},
		{"B2", true, ""},
		{"C1", false, ""},
		{"D1", false, "D1:D3"},
		{"D2", true, ""},
		{"D3", true, ""},
		{"C3", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			col, row := ParseCellReference(tt.ref)
			pos := Coordinate{Column: col, Row: row}
			assert.Equal(t, tt.suppressed, m.Suppressed(pos))
			mr, ok := m.Anchor(pos)
			assert.Equal(t, tt.anchor != "", ok)
			assert.Equal(t, tt.anchor, mr.Range)
		})
	}
}

func TestResolveMergesOverlap(t *testing.T) {
	_, err := ResolveMerges([]string{"A1:B2", "B2:C3"}, Coordinate{Column: 3, Row: 3})
	require.ErrorIs(t, err, ErrMergeOverlap)
	assert.Contains(t, err.Error(), "A1:B2 and B2:C3")

	_, err = ResolveMerges([]string{"A1:B2", "C1:D2"}, Coordinate{Column: 4, Row: 2})
	assert.NoError(t, err)
}

func TestResolveMergesClipsToBounds(t *testing.T) {
	// a full-column merge must not index a million rows
	m, err := ResolveMerges([]string{"A1:A1048576"}, Coordinate{Column: 2, Row: 3})
	require.NoError(t, err)
	assert.Len(t, m.covered, 3)
	assert.True(t, m.Suppressed(Coordinate{Column: 1, Row: 3}))
	assert.False(t, m.Suppressed(Coordinate{Column: 2, Row: 3}))

	mr, ok := m.Anchor(Coordinate{Column: 1, Row: 1})
	require.True(t, ok)
	assert.Equal(t, 1048576, mr.RowSpan())
}
