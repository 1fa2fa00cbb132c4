// Package failure turns a failed run into orchestrator notifications and a
// terminal error.
//
// Handler reports the error with the run log attached, raises an ERROR
// alert, appends the error to the run log and returns an *ExitError. The
// process exits in main only, so deferred cleanup in every caller still runs.
package failure
