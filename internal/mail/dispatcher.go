package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/rollcall/internal/config"
)

// Dispatcher sends the report e-mail of a run.
type Dispatcher struct {
	body          string
	sender        Sender
	defaultOutbox string
	logger        *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithSender makes the Dispatcher use s instead of the sender described by
// the credential file. The credential file is then not read.
func WithSender(s Sender) DispatcherOption {
	return func(d *Dispatcher) {
		d.sender = s
	}
}

// WithOutboxDir sets the directory used by the outbox provider when the
// credential file does not name one.
func WithOutboxDir(dir string) DispatcherOption {
	return func(d *Dispatcher) {
		d.defaultOutbox = dir
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher creates a Dispatcher sending body as the message text.
func NewDispatcher(body string, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		body:          body,
		defaultOutbox: filepath.Join(config.XDGDataDir(), "outbox"),
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Send e-mails the rendered report described by settings to the recipient
// and returns the message that was sent. Sender errors are returned
// wrapped, never replaced.
func (d *Dispatcher) Send(ctx context.Context, settings *config.Settings) (*Message, error) {
	attachment, err := filepath.Abs(settings.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve report path: %w", err)
	}

	msg := &Message{
		From:        settings.SenderEmail,
		To:          settings.RecipientEmail,
		Subject:     settings.Subject,
		Body:        d.body,
		Attachments: []string{attachment},
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(attachment); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingAttachment, attachment)
		}
		return nil, fmt.Errorf("failed to stat report: %w", err)
	}

	sender := d.sender
	if sender == nil {
		creds, err := LoadCredentials(settings.CredentialsPath)
		if err != nil {
			return nil, err
		}
		sender, err = NewSender(creds, msg.From, d.defaultOutbox)
		if err != nil {
			return nil, err
		}
	}

	d.logger.Debug("sending report", "recipient", msg.To, "attachment", attachment)
	if err := sender.Send(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
