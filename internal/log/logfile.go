package log

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TimestampLayout is the layout of the timestamp written on every log line.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// errorBanner introduces the error text in the log after a failure.
const errorBanner = "ERRO DE EXECUÇÃO..."

// LogFile is the append-only, human-readable log of robot runs.
// The file persists across runs; it is created empty when missing and never
// truncated.
//
// Each line is written as:
//
//	Horário: <timestamp>
//	<message>...
//
// The file is opened and closed for every message, so no handle is held
// between steps.
type LogFile struct {
	path string
	now  func() time.Time
}

// LogFileOption configures a LogFile.
type LogFileOption func(*LogFile)

// WithClock sets the time source used for the timestamp.
func WithClock(now func() time.Time) LogFileOption {
	return func(l *LogFile) {
		l.now = now
	}
}

// WithFrozenClock stamps every line with the time the LogFile was created,
// instead of the time of the Log call.
func WithFrozenClock() LogFileOption {
	return func(l *LogFile) {
		l.now = frozen(l.now())
	}
}

// frozen returns a clock that always reports t.
func frozen(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// NewLogFile opens the log at path, creating it (and its directory) with
// empty content when it does not exist. Existing content is left untouched.
func NewLogFile(path string, opts ...LogFileOption) (*LogFile, error) {
	l := &LogFile{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to check log file: %w", err)
		}
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		if err := os.WriteFile(path, nil, 0600); err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
	}

	return l, nil
}

// Path returns the path of the log file.
func (l *LogFile) Path() string {
	return l.path
}

// Log appends a message to the log file.
func (l *LogFile) Log(message string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) //nolint:gosec // Path comes from run parameters
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	_, werr := fmt.Fprintf(f, "Horário: %s\n%s...\n", l.now().Format(TimestampLayout), message)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("failed to write log file: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("failed to close log file: %w", cerr)
	}
	return nil
}

// LogError appends the error banner followed by the error text.
func (l *LogFile) LogError(err error) error {
	return l.Log(fmt.Sprintf("%s\n%v", errorBanner, err))
}
