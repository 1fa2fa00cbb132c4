package model

import (
	"time"
)

// Run carries the state of one execution of the attendance-report flow.
// Pipeline steps receive the same *Run and fill it in as they go.
//
// Design decision: The step outputs (table, document, digest) are typed as
// `any` here so that the model package stays at the bottom of the import
// graph. The steps that produce a value are the same steps that consume it,
// so the type assertions stay local to the pipeline package.
type Run struct {
	// TaskID identifies the orchestrator task this run belongs to.
	TaskID string `json:"task_id"`

	// StartedAt is when the run was created.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is set when the run reaches StateEnd.
	FinishedAt time.Time `json:"finished_at,omitzero"`

	// State is the current position in the flow.
	State State `json:"-"`

	// Table is the loaded attendance table (*attendance.Table).
	Table any `json:"-"`

	// Document is the assembled report (*report.Document).
	Document any `json:"-"`

	// OutputPath is the absolute path of the rendered PDF.
	OutputPath string `json:"output_path,omitempty"`

	// ReportDigest is the hex SHA3-256 of the rendered PDF.
	ReportDigest string `json:"report_digest,omitempty"`

	// Recipient is the address the report was delivered to.
	Recipient string `json:"recipient,omitempty"`

	// PerformedSteps lists the names of the steps that completed.
	PerformedSteps []string `json:"performed_steps"`

	// Error holds the error that moved the run to NOTIFY_FAILURE.
	Error error `json:"-"`

	// ErrorMessage is Error as a string, for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewRun creates a Run in StateStart for the given task.
func NewRun(taskID string) *Run {
	return &Run{
		TaskID:         taskID,
		StartedAt:      time.Now(),
		State:          StateStart,
		PerformedSteps: make([]string, 0),
	}
}

// Advance moves the run to the given state.
func (r *Run) Advance(s State) {
	r.State = s
	if s == StateEnd {
		r.FinishedAt = time.Now()
	}
}

// Fail records err and moves the run onto the error edge.
func (r *Run) Fail(err error) {
	r.Error = err
	if err != nil {
		r.ErrorMessage = err.Error()
	}
	r.State = StateNotifyFailure
}

// Succeeded reports whether the run ended without an error.
func (r *Run) Succeeded() bool {
	return r.Error == nil && r.State == StateEnd
}
