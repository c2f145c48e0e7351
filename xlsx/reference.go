package xlsx

import (
	"strconv"
	"strings"

	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// Coordinate is a 1-based (column, row) position on a worksheet.
type Coordinate struct {
	Column int
	Row    int
}

func (c Coordinate) String() string {
	return CellName(c.Column, c.Row)
}

// ColumnToNumber converts spreadsheet column letters to a 1-based column
// number: A=1, Z=26, AA=27.
func ColumnToNumber(letters string) int {
	if letters == "" {
		return 0
	}
	return int(reference.ColumnToIndex(strings.ToUpper(letters))) + 1
}

// ParseCellReference splits a reference such as "B12" into its column and
// row numbers. The row is 0 when the numeric part is missing or malformed.
func ParseCellReference(ref string) (col, row int) {
	ref = strings.ReplaceAll(ref, "$", "")
	i := 0
	for i < len(ref) && isLetter(ref[i]) {
		i++
	}
	col = ColumnToNumber(ref[:i])
	row, err := strconv.Atoi(ref[i:])
	if err != nil || row < 0 {
		row = 0
	}
	return col, row
}

// ParseMergeRange splits "A1:C2" into "A1" and "C2". The input is expected to
// hold exactly one colon; a range without one yields the same ref twice.
func ParseMergeRange(rng string) (start, end string) {
	start, end, ok := strings.Cut(rng, ":")
	if !ok {
		return start, start
	}
	return start, end
}

// ColumnName is the inverse of ColumnToNumber.
func ColumnName(col int) string {
	if col < 1 {
		return ""
	}
	return reference.IndexToColumn(uint32(col - 1))
}

// CellName builds a reference such as "B12".
func CellName(col, row int) string {
	return ColumnName(col) + strconv.Itoa(row)
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
