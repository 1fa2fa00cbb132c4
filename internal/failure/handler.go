package failure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/rollcall/internal/config"
	"github.com/nao1215/rollcall/internal/model"
)

// Reporter is the part of the orchestrator client used on the error path.
type Reporter interface {
	Error(ctx context.Context, taskID string, err error, attachments []string) error
	Alert(ctx context.Context, taskID, title, message string, alertType model.AlertType) error
}

// Journal is the run log the handler appends to and attaches.
type Journal interface {
	Path() string
	LogError(err error) error
}

// Handler is the single funnel for run failures.
type Handler struct {
	reporter Reporter
	journal  Journal
	taskID   string
	title    string
	logger   *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used for notification failures.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithAlertTitle replaces the title of the ERROR alert.
func WithAlertTitle(title string) Option {
	return func(h *Handler) {
		if title != "" {
			h.title = title
		}
	}
}

// NewHandler creates a Handler for the given task.
func NewHandler(reporter Reporter, journal Journal, taskID string, opts ...Option) *Handler {
	h := &Handler{
		reporter: reporter,
		journal:  journal,
		taskID:   taskID,
		title:    config.DefaultErrorAlertTitle,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle reports err to the orchestrator with the run log attached, raises
// an ERROR alert carrying message, appends err to the run log and returns
// an *ExitError with ExitCodeFailure.
//
// Notification failures do not stop the remaining notifications; they are
// joined into the returned error.
func (h *Handler) Handle(ctx context.Context, message string, err error) error {
	errs := []error{err}

	if rerr := h.reporter.Error(ctx, h.taskID, err, []string{h.journal.Path()}); rerr != nil {
		h.logger.Warn("failed to report error", "task_id", h.taskID, "error", rerr)
		errs = append(errs, fmt.Errorf("report error: %w", rerr))
	}

	if aerr := h.reporter.Alert(ctx, h.taskID, h.title, message, model.AlertError); aerr != nil {
		h.logger.Warn("failed to raise alert", "task_id", h.taskID, "error", aerr)
		errs = append(errs, fmt.Errorf("raise alert: %w", aerr))
	}

	if lerr := h.journal.LogError(err); lerr != nil {
		h.logger.Warn("failed to write run log", "path", h.journal.Path(), "error", lerr)
		errs = append(errs, fmt.Errorf("write run log: %w", lerr))
	}

	return &ExitError{
		Code:    ExitCodeFailure,
		Message: message,
		Err:     errors.Join(errs...),
	}
}
