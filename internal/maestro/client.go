package maestro

import (
	"context"
	"log/slog"

	"github.com/nao1215/rollcall/internal/model"
)

// Client is the orchestrator API used by the robot.
type Client interface {
	// Execution returns the task the robot runs for, with its parameters.
	Execution(ctx context.Context) (*Execution, error)

	// Alert raises an alert on the task.
	Alert(ctx context.Context, taskID, title, message string, alertType model.AlertType) error

	// Error reports err on the task and uploads the given files with it.
	Error(ctx context.Context, taskID string, err error, attachments []string) error

	// FinishTask closes the task with the given status.
	FinishTask(ctx context.Context, taskID string, status model.FinishStatus, message string) error
}

// Execution is the task handed to the robot. It is read-only for the run.
type Execution struct {
	// TaskID identifies the task on the orchestrator.
	TaskID string

	// Parameters holds the values supplied for this execution.
	Parameters map[string]any
}

// New returns an HTTPClient when cfg names a server and a LocalClient
// otherwise. params seeds the local execution and is ignored for remote runs.
func New(cfg Config, params map[string]any, logger *slog.Logger) (Client, error) {
	if !cfg.Remote() {
		return NewLocalClient(cfg.TaskID, params, WithLocalLogger(logger)), nil
	}
	return NewHTTPClient(cfg, WithLogger(logger))
}
