package mail

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-gomail/gomail"
)

// Sender delivers a prepared message.
type Sender interface {
	// Send delivers m. The message has been validated.
	Send(ctx context.Context, m *Message) error
}

// NewSender builds the Sender selected by creds. from is used as the SMTP
// username when the credentials do not name one.
func NewSender(creds *Credentials, from, defaultOutbox string) (Sender, error) {
	switch creds.Provider {
	case ProviderOutbox:
		dir := creds.OutboxDir
		if dir == "" {
			dir = defaultOutbox
		}
		return NewOutboxSender(dir), nil
	case ProviderSMTP:
		return NewSMTPSender(creds, from), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidCredentials, creds.Provider)
	}
}

// SMTPSender sends messages through an SMTP server.
type SMTPSender struct {
	dialer *gomail.Dialer
}

// NewSMTPSender creates an SMTPSender from creds.
func NewSMTPSender(creds *Credentials, from string) *SMTPSender {
	username := creds.Username
	if username == "" {
		username = from
	}

	dialer := gomail.NewDialer(creds.Host, creds.Port, username, creds.Password)
	dialer.SSL = creds.TLS == TLSImplicit
	dialer.TLSConfig = &tls.Config{
		ServerName:         creds.Host,
		InsecureSkipVerify: creds.InsecureSkipVerify, //nolint:gosec // Opt-in for test servers
		MinVersion:         tls.VersionTLS12,
	}
	return &SMTPSender{dialer: dialer}
}

// Send dials the server, authenticates and sends m.
func (s *SMTPSender) Send(ctx context.Context, m *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(m.mime()); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToSendEmail, err)
	}
	return nil
}

// OutboxSender writes messages to a directory instead of sending them.
// Each message produces an .eml file with the full MIME content and a
// .json file with its metadata.
type OutboxSender struct {
	dir string
	now func() time.Time
}

// NewOutboxSender creates an OutboxSender writing to dir.
// The directory is created on first use.
func NewOutboxSender(dir string) *OutboxSender {
	return &OutboxSender{dir: dir, now: time.Now}
}

// Dir returns the outbox directory.
func (o *OutboxSender) Dir() string {
	return o.dir
}

// outboxMetadata is the JSON written next to each message.
type outboxMetadata struct {
	Timestamp   string   `json:"timestamp"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	Subject     string   `json:"subject"`
	Attachments []string `json:"attachments"`
}

// Send writes m to the outbox directory.
func (o *OutboxSender) Send(ctx context.Context, m *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(o.dir, 0750); err != nil {
		return fmt.Errorf("%w: failed to create outbox: %v", ErrFailedToSendEmail, err)
	}

	now := o.now()
	base := filepath.Join(o.dir, fmt.Sprintf("%s_%s", now.Format("2006_01_02_150405"), sanitizeFilename(m.Subject)))

	f, err := os.Create(base + ".eml") //nolint:gosec // Name is sanitized
	if err != nil {
		return fmt.Errorf("%w: failed to create message file: %v", ErrFailedToSendEmail, err)
	}
	_, werr := m.mime().WriteTo(f)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("%w: failed to write message: %v", ErrFailedToSendEmail, werr)
	}
	if cerr != nil {
		return fmt.Errorf("%w: failed to close message file: %v", ErrFailedToSendEmail, cerr)
	}

	meta, err := json.MarshalIndent(outboxMetadata{
		Timestamp:   now.Format(time.RFC3339),
		From:        m.From,
		To:          m.To,
		Subject:     m.Subject,
		Attachments: m.Attachments,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal metadata: %v", ErrFailedToSendEmail, err)
	}
	if err := os.WriteFile(base+".json", meta, 0600); err != nil {
		return fmt.Errorf("%w: failed to write metadata: %v", ErrFailedToSendEmail, err)
	}
	return nil
}

// sanitizeRegex removes filesystem-unsafe characters from filenames
var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename converts a subject into a safe, lower-case file name.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
