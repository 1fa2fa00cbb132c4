package attendance

// Cell is one value of the attendance table.
type Cell struct {
	// Value is the raw text of the cell.
	Value string

	// Null is true when the cell has no value.
	Null bool
}

// String returns the cell text; null cells render as the empty string.
func (c Cell) String() string {
	if c.Null {
		return ""
	}
	return c.Value
}

// Row is an ordered list of cells, aligned with Table.Header.
type Row []Cell

// Table is an attendance table: a header plus rows of equal width.
// A Table is never modified after Load returns it.
type Table struct {
	// Header holds the column names in file order.
	Header []string

	// Rows holds the data rows in file order.
	Rows []Row
}

// Columns returns the number of columns.
func (t *Table) Columns() int {
	return len(t.Header)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasNulls reports whether any cell in any row is null.
func (t *Table) HasNulls() bool {
	for _, row := range t.Rows {
		for _, c := range row {
			if c.Null {
				return true
			}
		}
	}
	return false
}

// NullCount returns the number of null cells per column name.
// Columns without nulls are omitted.
func (t *Table) NullCount() map[string]int {
	counts := make(map[string]int)
	for _, row := range t.Rows {
		for i, c := range row {
			if c.Null && i < len(t.Header) {
				counts[t.Header[i]]++
			}
		}
	}
	return counts
}

// NullCells returns the total number of null cells.
func (t *Table) NullCells() int {
	n := 0
	for _, row := range t.Rows {
		for _, c := range row {
			if c.Null {
				n++
			}
		}
	}
	return n
}

// Records returns the table in row-major form with the header row first.
// The returned slices are copies.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, append([]string(nil), t.Header...))
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, c := range row {
			rec[i] = c.String()
		}
		records = append(records, rec)
	}
	return records
}
