package failure

import (
	"errors"
	"fmt"
)

// ExitCodeFailure is the process exit code of a handled failure.
const ExitCodeFailure = 1

// ExitError is a terminal error carrying the process exit code.
type ExitError struct {
	// Code is the exit code main passes to os.Exit.
	Code int

	// Message is the user-facing description sent in the alert.
	Message string

	// Err is the cause, joined with any notification failures.
	Err error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("exit status %d: %s: %v", e.Code, e.Message, e.Err)
}

// Unwrap returns the cause.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code for err: 0 for nil, the code of an
// *ExitError in the chain, and ExitCodeFailure for any other error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCodeFailure
}
