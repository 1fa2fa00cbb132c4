package failure

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/rollcall/internal/config"
	"github.com/nao1215/rollcall/internal/log"
	"github.com/nao1215/rollcall/internal/model"
)

type call struct {
	kind        string
	taskID      string
	title       string
	message     string
	alertType   model.AlertType
	err         error
	attachments []string
}

type recordingReporter struct {
	calls    []call
	errorErr error
	alertErr error
}

func (r *recordingReporter) Error(_ context.Context, taskID string, err error, attachments []string) error {
	r.calls = append(r.calls, call{kind: "error", taskID: taskID, err: err, attachments: attachments})
	return r.errorErr
}

func (r *recordingReporter) Alert(_ context.Context, taskID, title, message string, alertType model.AlertType) error {
	r.calls = append(r.calls, call{kind: "alert", taskID: taskID, title: title, message: message, alertType: alertType})
	return r.alertErr
}

func newLogFile(t *testing.T) *log.LogFile {
	t.Helper()

	lf, err := log.NewLogFile(filepath.Join(t.TempDir(), "logs.txt"))
	if err != nil {
		t.Fatalf("failed to create log file: %v", err)
	}
	return lf
}

func TestHandler_Handle(t *testing.T) {
	t.Parallel()

	reporter := &recordingReporter{}
	lf := newLogFile(t)
	h := NewHandler(reporter, lf, "task-1")

	cause := errors.New("valores nulos")
	err := h.Handle(t.Context(), config.DefaultNullValuesMessage, cause)

	t.Run("returns exit error with code 1", func(t *testing.T) {
		t.Parallel()

		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("expected *ExitError, got %T", err)
		}
		if exitErr.Code != 1 {
			t.Errorf("expected code 1, got %d", exitErr.Code)
		}
		if !errors.Is(err, cause) {
			t.Error("expected cause to be wrapped")
		}
	})

	t.Run("reports error before alert", func(t *testing.T) {
		t.Parallel()

		if len(reporter.calls) != 2 {
			t.Fatalf("expected 2 calls, got %d", len(reporter.calls))
		}
		if reporter.calls[0].kind != "error" || reporter.calls[1].kind != "alert" {
			t.Errorf("unexpected call order: %+v", reporter.calls)
		}
	})

	t.Run("attaches the log file", func(t *testing.T) {
		t.Parallel()

		got := reporter.calls[0].attachments
		if len(got) != 1 || got[0] != lf.Path() {
			t.Errorf("expected attachment %q, got %v", lf.Path(), got)
		}
	})

	t.Run("alert carries title message and type", func(t *testing.T) {
		t.Parallel()

		a := reporter.calls[1]
		if a.title != "Erro de execução" {
			t.Errorf("unexpected title %q", a.title)
		}
		if a.message != config.DefaultNullValuesMessage {
			t.Errorf("unexpected message %q", a.message)
		}
		if a.alertType != model.AlertError {
			t.Errorf("expected ERROR alert, got %s", a.alertType)
		}
		if a.taskID != "task-1" {
			t.Errorf("unexpected task %q", a.taskID)
		}
	})

	t.Run("log file ends with the error", func(t *testing.T) {
		t.Parallel()

		data, rerr := os.ReadFile(lf.Path())
		if rerr != nil {
			t.Fatalf("failed to read log: %v", rerr)
		}
		if !strings.HasSuffix(string(data), "ERRO DE EXECUÇÃO...\nvalores nulos...\n") {
			t.Errorf("unexpected log content: %q", data)
		}
	})
}

func TestHandler_NotificationFailures(t *testing.T) {
	t.Parallel()

	errDown := errors.New("maestro unavailable")
	reporter := &recordingReporter{errorErr: errDown, alertErr: errDown}
	lf := newLogFile(t)

	err := NewHandler(reporter, lf, "task-1").Handle(t.Context(), "msg", errors.New("boom"))

	if ExitCode(err) != 1 {
		t.Errorf("expected exit code 1, got %d", ExitCode(err))
	}
	if !errors.Is(err, errDown) {
		t.Errorf("expected notification failure to be joined, got %v", err)
	}
	if len(reporter.calls) != 2 {
		t.Errorf("expected alert to be attempted after a failed error report, got %d calls", len(reporter.calls))
	}

	data, rerr := os.ReadFile(lf.Path())
	if rerr != nil {
		t.Fatalf("failed to read log: %v", rerr)
	}
	if !strings.Contains(string(data), "boom") {
		t.Errorf("expected the log to be written, got %q", data)
	}
}

func TestHandler_WithAlertTitle(t *testing.T) {
	t.Parallel()

	reporter := &recordingReporter{}
	h := NewHandler(reporter, newLogFile(t), "task-1", WithAlertTitle("Falha"))

	_ = h.Handle(t.Context(), "msg", errors.New("boom"))

	if reporter.calls[1].title != "Falha" {
		t.Errorf("expected custom title, got %q", reporter.calls[1].title)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain error", err: errors.New("x"), want: 1},
		{name: "exit error", err: &ExitError{Code: 3}, want: 3},
		{name: "wrapped exit error", err: errors.Join(errors.New("x"), &ExitError{Code: 2}), want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
