package maestro

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingServer is returned when an HTTP client is built without a server URL.
	ErrMissingServer = errors.New("maestro server URL is required")

	// ErrMissingCredentials is returned when the login or the key is empty.
	ErrMissingCredentials = errors.New("maestro login and key are required")

	// ErrMissingTaskID is returned when the remote task ID is unknown.
	ErrMissingTaskID = errors.New("maestro task ID is required")

	// ErrEmptyToken is returned when the login response carries no token.
	ErrEmptyToken = errors.New("maestro login returned an empty access token")
)

// APIError describes a non-2xx response from the orchestrator.
type APIError struct {
	// Method is the HTTP method of the failed request.
	Method string

	// Path is the request path.
	Path string

	// StatusCode is the HTTP status returned by the server.
	StatusCode int

	// Body is the beginning of the response body.
	Body string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("maestro %s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("maestro %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}
