package xlsx

// CellValue returns the display text of c, or a *CellValueError when the
// stored value is a formula error.
func CellValue(c Cell) (string, error) {
	if c.IsError {
		ref := c.Ref
		if ref == "" {
			ref = CellName(c.Column, c.Row)
		}
		return "", &CellValueError{Ref: ref, Value: c.Value}
	}
	return c.Value, nil
}
