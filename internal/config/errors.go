package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidTimeout is returned when the orchestrator timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidDelimiter is returned when the CSV delimiter is not a single
	// printable character, or is a quote or line break.
	ErrInvalidDelimiter = errors.New("invalid delimiter: must be a single character other than quote or newline")

	// ErrInvalidParam is returned when a --param flag is not in NAME=VALUE form.
	ErrInvalidParam = errors.New("invalid parameter: expected NAME=VALUE")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
