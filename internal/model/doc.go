// Package model defines the core data structures shared by the rollcall
// packages.
//
// This package contains:
//   - Run: the per-execution state threaded through the pipeline
//   - State: the position of a run in the sequential flow
//   - AlertType and FinishStatus: the vocabulary of the orchestrator API
//
// Design decision: We keep these types in their own package to avoid import
// cycles. The pipeline, bot, failure and maestro packages all need them.
package model
