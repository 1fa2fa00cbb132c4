package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "rollcall"

	// DefaultTimeout bounds each HTTP request to the orchestrator.
	// The orchestrator is usually on the same network as the robot, so a
	// minute is generous; a hung request would otherwise hang the run.
	DefaultTimeout = 60 * time.Second

	// DefaultDelimiter is the CSV field separator.
	DefaultDelimiter = ','
)

// Config holds the options of a rollcall invocation.
// This struct is populated from CLI flags and passed through the application
// via dependency injection rather than global state.
//
// Design decision: We keep command-line options apart from Settings. The
// former describe how the robot runs; the latter are the automation
// parameters that the orchestrator is allowed to override.
type Config struct {
	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches the current directory, the home directory
	// and the XDG config directory.
	ConfigFilePath string

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// Timeout is the per-request timeout for orchestrator calls.
	Timeout time.Duration

	// Delimiter is the field separator of the attendance CSV.
	Delimiter rune

	// Overrides are parameter overrides given on the command line with
	// --param NAME=VALUE. They are used as the execution parameters when
	// no orchestrator server is configured.
	Overrides map[string]any

	// FrozenLogClock makes the run log stamp every line with the time the
	// log file was opened instead of the time of the call.
	FrozenLogClock bool

	// File holds the parsed configuration file, if any.
	File *File
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:   DefaultTimeout,
		Delimiter: DefaultDelimiter,
		Overrides: make(map[string]any),
		File:      NewFile(),
	}
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	switch c.Delimiter {
	case 0, '"', '\r', '\n', utf8.RuneError:
		return ErrInvalidDelimiter
	}
	return nil
}

// ParseOverrides converts NAME=VALUE pairs into a parameter map.
// Later pairs win over earlier ones.
func ParseOverrides(pairs []string) (map[string]any, error) {
	overrides := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParam, pair)
		}
		overrides[name] = value
	}
	return overrides, nil
}

// ParseDelimiter converts a flag value to a delimiter rune.
// The literal "\t" and "tab" are accepted for tab-separated files.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case `\t`, "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, ErrInvalidDelimiter
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// XDGConfigDir returns the XDG config directory for rollcall.
// On Linux: ~/.config/rollcall
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGDataDir returns the XDG data directory for rollcall.
// On Linux: ~/.local/share/rollcall
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
