package maestro

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the orchestrator connection settings.
type Config struct {
	// Server is the base URL of the orchestrator. Empty selects the local client.
	Server string `env:"MAESTRO_SERVER"`

	// Login is the workspace login.
	Login string `env:"MAESTRO_LOGIN"`

	// Key is the workspace key.
	Key string `env:"MAESTRO_KEY"`

	// TaskID is the task this process was launched for.
	TaskID string `env:"MAESTRO_TASK_ID"`

	// Timeout bounds every HTTP request.
	Timeout time.Duration `env:"MAESTRO_TIMEOUT" envDefault:"60s"`
}

// LoadConfig reads the MAESTRO_* variables. The given .env files are loaded
// first (".env" when none is given); a missing file is not an error and
// variables already set in the environment win.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse maestro environment: %w", err)
	}
	return cfg, nil
}

// Remote reports whether cfg points at an orchestrator server.
func (c Config) Remote() bool {
	return c.Server != ""
}

// Validate checks the settings required by the HTTP client.
func (c Config) Validate() error {
	if c.Server == "" {
		return ErrMissingServer
	}
	if c.Login == "" || c.Key == "" {
		return ErrMissingCredentials
	}
	if c.TaskID == "" {
		return ErrMissingTaskID
	}
	return nil
}
