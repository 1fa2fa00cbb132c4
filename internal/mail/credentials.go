package mail

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider names accepted in the credential file.
const (
	ProviderSMTP   = "smtp"
	ProviderOutbox = "outbox"
)

// TLS modes accepted in the credential file.
const (
	TLSStartTLS = "starttls"
	TLSImplicit = "ssl"
)

// Credentials are the contents of the credential file.
type Credentials struct {
	// Provider selects the sender: "smtp" (default) or "outbox".
	Provider string `yaml:"provider" json:"provider"`

	// Host and Port address the SMTP server.
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`

	// Username defaults to the sender address when empty.
	Username string `yaml:"username" json:"username"`

	// Password is the account or application password.
	Password string `yaml:"password" json:"password"`

	// TLS is "starttls" (default) or "ssl" for implicit TLS.
	TLS string `yaml:"tls" json:"tls"`

	// InsecureSkipVerify disables server certificate verification.
	InsecureSkipVerify bool `yaml:"insecureSkipVerify" json:"insecureSkipVerify"`

	// OutboxDir is where the outbox provider writes messages.
	OutboxDir string `yaml:"outboxDir" json:"outboxDir"`
}

// LoadCredentials reads the credential file at path.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from run parameters
	if err != nil {
		return nil, fmt.Errorf("failed to read credential file: %w", err)
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidCredentials, path, err)
	}
	creds.applyDefaults()

	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (c *Credentials) applyDefaults() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = ProviderSMTP
	}
	c.TLS = strings.ToLower(strings.TrimSpace(c.TLS))
	if c.TLS == "" {
		c.TLS = TLSStartTLS
	}
	if c.Port == 0 {
		if c.TLS == TLSImplicit {
			c.Port = 465
		} else {
			c.Port = 587
		}
	}
}

// Validate checks that the credentials can build a sender.
func (c *Credentials) Validate() error {
	switch c.Provider {
	case ProviderOutbox:
		return nil
	case ProviderSMTP:
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidCredentials, c.Provider)
	}

	if c.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidCredentials)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidCredentials, c.Port)
	}
	if c.TLS != TLSStartTLS && c.TLS != TLSImplicit {
		return fmt.Errorf("%w: unknown tls mode %q", ErrInvalidCredentials, c.TLS)
	}
	return nil
}
