package attendance

import (
	"errors"
	"fmt"
)

var (
	// ErrNullValues is returned by Validate when at least one cell is null.
	ErrNullValues = errors.New("valores nulos encontrados nos dados")

	// ErrEmptyFile is returned when the file has no header row.
	ErrEmptyFile = errors.New("no columns to parse from file")

	// ErrTooManyFields is returned when a row has more cells than the header.
	ErrTooManyFields = errors.New("row has more fields than the header")
)

// DataFormatError reports a CSV file that is missing or cannot be parsed.
type DataFormatError struct {
	// Path is the file that failed to load.
	Path string

	// Line is the 1-based line number of the problem, or 0 when the
	// failure is not tied to a line.
	Line int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *DataFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid attendance data in %s at line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("invalid attendance data in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DataFormatError) Unwrap() error {
	return e.Err
}
