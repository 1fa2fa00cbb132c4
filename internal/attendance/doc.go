// Package attendance loads and validates class-attendance tables.
//
// A table is read from a delimited text file whose first row is the header.
// Cells are kept as text: the report renders them verbatim, so no type
// inference is done. A cell is null when it is empty or holds one of the
// usual "not available" markers (NA, N/A, NaN, null, None, ...), and a row
// shorter than the header is padded with null cells.
//
// Loading and validating are separate steps. Validate returns ErrNullValues
// as a decision value; the caller decides what to do with it.
package attendance
