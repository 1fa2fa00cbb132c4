package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/rollcall/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the run state
// accumulated by the previous steps.
type Step interface {
	// Do executes the pipeline step.
	// It receives the context for cancellation, and the run to modify.
	Do(ctx context.Context, run *model.Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Announcer is implemented by steps that write a line to the run log
// before they start.
type Announcer interface {
	// Announcement returns the run-log message of the step.
	Announcement() string
}

// Journal is the run log.
type Journal interface {
	Log(message string) error
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// journal receives the announcement of each step. May be nil.
	journal Journal
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, a default logger is created.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithJournal sets the run log that step announcements are written to.
func WithJournal(j Journal) Option {
	return func(p *Pipeline) {
		p.journal = j
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
//
// Design decision: We check context.Done() before each step rather than
// during, because steps should handle their own timeouts. This allows
// graceful cleanup between steps while still respecting cancellation.
//
// The first error stops the pipeline; it is recorded on the run and
// returned unchanged.
func (p *Pipeline) Execute(ctx context.Context, run *model.Run) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			run.Fail(ctx.Err())
			return ctx.Err()
		default:
		}

		if err := p.announce(step); err != nil {
			run.Fail(err)
			return err
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"task_id", run.TaskID,
		)

		if err := step.Do(ctx, run); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"task_id", run.TaskID,
				"error", err,
			)
			run.Fail(err)
			return err
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"task_id", run.TaskID,
		)
		run.PerformedSteps = append(run.PerformedSteps, step.Name())
	}

	return nil
}

// announce writes the step's run-log line, if it has one.
func (p *Pipeline) announce(step Step) error {
	a, ok := step.(Announcer)
	if !ok || p.journal == nil {
		return nil
	}
	if err := p.journal.Log(a.Announcement()); err != nil {
		return fmt.Errorf("failed to log step %s: %w", step.Name(), err)
	}
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
