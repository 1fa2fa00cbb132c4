package maestro

import (
	"context"
	"log/slog"
	"maps"

	"github.com/google/uuid"

	"github.com/nao1215/rollcall/internal/model"
)

// LocalClient is a Client that runs without an orchestrator.
// Every call is written to the logger.
type LocalClient struct {
	taskID string
	params map[string]any
	logger *slog.Logger
}

// LocalOption configures a LocalClient.
type LocalOption func(*LocalClient)

// WithLocalLogger sets the logger that receives the orchestrator calls.
func WithLocalLogger(logger *slog.Logger) LocalOption {
	return func(c *LocalClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewLocalClient creates a LocalClient. An empty taskID is replaced by a
// random UUID. params is copied.
func NewLocalClient(taskID string, params map[string]any, opts ...LocalOption) *LocalClient {
	if taskID == "" {
		taskID = uuid.NewString()
	}
	c := &LocalClient{
		taskID: taskID,
		params: maps.Clone(params),
		logger: slog.Default(),
	}
	if c.params == nil {
		c.params = make(map[string]any)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TaskID returns the task ID of the local execution.
func (c *LocalClient) TaskID() string {
	return c.taskID
}

// Execution returns the local execution.
func (c *LocalClient) Execution(_ context.Context) (*Execution, error) {
	return &Execution{TaskID: c.taskID, Parameters: maps.Clone(c.params)}, nil
}

// Alert logs the alert at a level matching its type.
func (c *LocalClient) Alert(ctx context.Context, taskID, title, message string, alertType model.AlertType) error {
	level := slog.LevelInfo
	switch alertType {
	case model.AlertWarn:
		level = slog.LevelWarn
	case model.AlertError:
		level = slog.LevelError
	}
	c.logger.Log(ctx, level, "alert", "task_id", taskID, "title", title, "message", message, "type", alertType.String())
	return nil
}

// Error logs err with a generated error ID.
func (c *LocalClient) Error(ctx context.Context, taskID string, err error, attachments []string) error {
	c.logger.ErrorContext(ctx, "task error",
		"task_id", taskID,
		"error_id", uuid.NewString(),
		"error", errorMessage(err),
		"attachments", attachments,
	)
	return nil
}

// FinishTask logs the final status.
func (c *LocalClient) FinishTask(ctx context.Context, taskID string, status model.FinishStatus, message string) error {
	c.logger.InfoContext(ctx, "task finished", "task_id", taskID, "status", status.String(), "message", message)
	return nil
}
