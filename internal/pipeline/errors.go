package pipeline

import "errors"

// ErrMissingTable is returned by a step that needs the attendance table
// when no earlier step loaded it.
var ErrMissingTable = errors.New("attendance table has not been loaded")
