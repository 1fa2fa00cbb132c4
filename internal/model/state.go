package model

// State identifies where a run currently is in the attendance-report flow.
//
// The flow is strictly sequential:
//
//	START -> LOAD -> VALIDATE -> BUILD_REPORT -> SEND_EMAIL -> NOTIFY_SUCCESS -> END
//
// with a single error edge from any state to NOTIFY_FAILURE -> END.
type State int

const (
	// StateStart is the initial state. The execution is acquired and the
	// log file and error handler are prepared here.
	StateStart State = iota

	// StateLoad reads the attendance CSV into memory.
	StateLoad

	// StateValidate checks the attendance table for null cells.
	StateValidate

	// StateBuildReport assembles and renders the PDF report.
	StateBuildReport

	// StateSendEmail delivers the rendered PDF to the recipient.
	StateSendEmail

	// StateNotifySuccess raises the INFO alert and finishes the task.
	StateNotifySuccess

	// StateNotifyFailure hands the error over to the failure handler.
	StateNotifyFailure

	// StateEnd is the terminal state.
	StateEnd
)

// String returns the upper-case name of the state.
func (s State) String() string {
	switch s {
	case StateStart:
		return "START"
	case StateLoad:
		return "LOAD"
	case StateValidate:
		return "VALIDATE"
	case StateBuildReport:
		return "BUILD_REPORT"
	case StateSendEmail:
		return "SEND_EMAIL"
	case StateNotifySuccess:
		return "NOTIFY_SUCCESS"
	case StateNotifyFailure:
		return "NOTIFY_FAILURE"
	case StateEnd:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// Next returns the state that follows s on the success path.
// StateNotifyFailure and StateEnd both lead to StateEnd.
func (s State) Next() State {
	switch s {
	case StateStart, StateLoad, StateValidate, StateBuildReport, StateSendEmail:
		return s + 1
	default:
		return StateEnd
	}
}

// IsTerminal reports whether no further transition is possible.
func (s State) IsTerminal() bool {
	return s == StateEnd
}
