package xlsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellValue(t *testing.T) {
	v, err := CellValue(Cell{Ref: "A1", Column: 1, Row: 1, Value: "42"})
	require.NoError(t, err)
	assert.Equal(t, "42", v)

	_, err = CellValue(Cell{Column: 3, Row: 7, IsError: true, Value: "#N/A"})
	var cve *CellValueError
	require.ErrorAs(t, err, &cve)
	assert.Equal(t, "C7", cve.Ref)
	assert.Equal(t, "#N/A", cve.Value)
	assert.ErrorIs(t, err, ErrCellValue)
}

func TestCellValueErrorMessage(t *testing.T) {
	assert.EqualError(t, &CellValueError{Ref: "D4"}, "error in cell D4")
	assert.EqualError(t, &CellValueError{Ref: "D4", Value: "#REF!"}, "error in cell D4: #REF!")
}
