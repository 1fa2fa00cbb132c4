package attendance

// Validate checks the table for null cells.
// It returns ErrNullValues when any cell is null, nil otherwise.
func Validate(t *Table) error {
	if t.HasNulls() {
		return ErrNullValues
	}
	return nil
}
