package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AlertType is the severity of an alert raised on the orchestrator.
//
// The wire form is the upper-case name returned by String; MarshalJSON
// and UnmarshalJSON use it.
type AlertType int

const (
	// AlertInfo is used for the success notification.
	AlertInfo AlertType = iota

	// AlertWarn is available for non-fatal conditions.
	AlertWarn

	// AlertError is used by the failure handler.
	AlertError
)

// String returns the orchestrator name of the alert type.
func (a AlertType) String() string {
	switch a {
	case AlertInfo:
		return "INFO"
	case AlertWarn:
		return "WARN"
	case AlertError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON encodes the alert type as its name.
func (a AlertType) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes an alert type from its name.
func (a *AlertType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAlertType(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAlertType converts a name such as "error" or "INFO" to an AlertType.
func ParseAlertType(s string) (AlertType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INFO":
		return AlertInfo, nil
	case "WARN", "WARNING":
		return AlertWarn, nil
	case "ERROR":
		return AlertError, nil
	default:
		return AlertInfo, fmt.Errorf("unknown alert type %q", s)
	}
}

// FinishStatus is the final status reported when a task is finished.
type FinishStatus int

const (
	// FinishSuccess marks a run that delivered the report.
	FinishSuccess FinishStatus = iota

	// FinishPartiallyCompleted marks a task that did only part of its work.
	FinishPartiallyCompleted

	// FinishFailed marks a task that did not complete its work.
	FinishFailed
)

// String returns the orchestrator name of the status.
func (f FinishStatus) String() string {
	switch f {
	case FinishSuccess:
		return "SUCCESS"
	case FinishPartiallyCompleted:
		return "PARTIALLY_COMPLETED"
	case FinishFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON encodes the status as its name.
func (f FinishStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}
