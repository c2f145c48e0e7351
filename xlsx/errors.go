package xlsx

import (
	"errors"
	"fmt"
)

// Sentinel errors for worksheet conversion. Every one of them aborts the
// conversion; nothing is partially emitted.
var (
	ErrWorkbookParse  = errors.New("failed to read workbook")
	ErrSheetNotFound  = errors.New("worksheet not found")
	ErrEmptyWorksheet = errors.New("no data found in the worksheet")
	ErrCellValue      = errors.New("error in cell")
	ErrMergeOverlap   = errors.New("merged ranges overlap")
)

// CellValueError reports a cell whose raw value is a formula error such as
// #DIV/0!.
type CellValueError struct {
	Ref   string // e.g. "B3"
	Value string // the error literal as stored
}

func (e *CellValueError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%v %s", ErrCellValue, e.Ref)
	}
	return fmt.Sprintf("%v %s: %s", ErrCellValue, e.Ref, e.Value)
}

func (e *CellValueError) Unwrap() error {
	return ErrCellValue
}
