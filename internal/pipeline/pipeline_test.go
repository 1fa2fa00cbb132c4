package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/nao1215/rollcall/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, run *model.Run) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, run *model.Run) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, run)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// announcingStep is a mockStep with a run-log message.
type announcingStep struct {
	mockStep
	message string
}

// Announcement implements Announcer.
func (a *announcingStep) Announcement() string {
	return a.message
}

// memoryJournal records run-log messages.
type memoryJournal struct {
	messages []string
	err      error
}

func (j *memoryJournal) Log(message string) error {
	if j.err != nil {
		return j.err
	}
	j.messages = append(j.messages, message)
	return nil
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	p := New()

	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.StepCount() != 0 {
		t.Errorf("expected 0 steps, got %d", p.StepCount())
	}
	if p.logger == nil {
		t.Error("expected default logger")
	}
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	t.Run("adds single step", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "test-step"})

		if p.StepCount() != 1 {
			t.Errorf("expected 1 step, got %d", p.StepCount())
		}
	})

	t.Run("maintains step order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(&mockStep{name: "first"}, &mockStep{name: "second"}, &mockStep{name: "third"})

		names := p.StepNames()

		expected := []string{"first", "second", "third"}
		for i, name := range names {
			if name != expected[i] {
				t.Errorf("step %d: got %q, expected %q", i, name, expected[i])
			}
		}
	})
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		executionOrder := make([]string, 0)
		record := func(name string) func(context.Context, *model.Run) error {
			return func(_ context.Context, _ *model.Run) error {
				executionOrder = append(executionOrder, name)
				return nil
			}
		}

		p := New()
		p.AddStep(&mockStep{name: "step-1", doFunc: record("step-1")})
		p.AddStep(&mockStep{name: "step-2", doFunc: record("step-2")})

		run := model.NewRun("task-1")
		if err := p.Execute(t.Context(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(executionOrder) != 2 || executionOrder[0] != "step-1" || executionOrder[1] != "step-2" {
			t.Errorf("wrong execution order: %v", executionOrder)
		}
		if len(run.PerformedSteps) != 2 {
			t.Errorf("expected 2 performed steps, got %d", len(run.PerformedSteps))
		}
	})

	t.Run("stops on first error and records it", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("step failed")
		second := &mockStep{name: "should-not-run"}

		p := New()
		p.AddStep(&mockStep{
			name: "failing-step",
			doFunc: func(_ context.Context, _ *model.Run) error {
				return expectedErr
			},
		})
		p.AddStep(second)

		run := model.NewRun("task-1")
		err := p.Execute(t.Context(), run)

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if second.callCount != 0 {
			t.Error("second step should not have been called")
		}
		if run.State != model.StateNotifyFailure {
			t.Errorf("expected NOTIFY_FAILURE, got %s", run.State)
		}
		if run.ErrorMessage != expectedErr.Error() {
			t.Errorf("expected error message %q, got %q", expectedErr.Error(), run.ErrorMessage)
		}
		if len(run.PerformedSteps) != 0 {
			t.Errorf("failed step must not be recorded, got %v", run.PerformedSteps)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		step := &mockStep{name: "should-not-run"}
		p := New()
		p.AddStep(step)

		run := model.NewRun("task-1")
		err := p.Execute(ctx, run)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("step should not have been called")
		}
		if !errors.Is(run.Error, context.Canceled) {
			t.Errorf("expected cancellation to be recorded, got %v", run.Error)
		}
	})

	t.Run("announces steps in the journal", func(t *testing.T) {
		t.Parallel()

		journal := &memoryJournal{}
		p := New(WithJournal(journal))
		p.AddSteps(
			&announcingStep{mockStep: mockStep{name: "a"}, message: "first line"},
			&mockStep{name: "silent"},
			&announcingStep{mockStep: mockStep{name: "b"}, message: "second line"},
		)

		if err := p.Execute(t.Context(), model.NewRun("task-1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(journal.messages) != 2 || journal.messages[0] != "first line" || journal.messages[1] != "second line" {
			t.Errorf("unexpected journal: %v", journal.messages)
		}
	})

	t.Run("journal failure stops the step", func(t *testing.T) {
		t.Parallel()

		errDisk := errors.New("disk full")
		step := &announcingStep{mockStep: mockStep{name: "a"}, message: "line"}
		p := New(WithJournal(&memoryJournal{err: errDisk}))
		p.AddStep(step)

		err := p.Execute(t.Context(), model.NewRun("task-1"))
		if !errors.Is(err, errDisk) {
			t.Errorf("expected journal error, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("step should not run when its announcement fails")
		}
	})
}

// TestPipelineStepNames tests the StepNames method.
func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	if names := New().StepNames(); len(names) != 0 {
		t.Errorf("expected empty slice, got %v", names)
	}
}
