// Package bot runs one attendance-report task from start to finish.
//
// A run acquires the execution from the orchestrator, resolves its
// settings, opens the run log and then drives the report pipeline. On
// success it raises an INFO alert and finishes the task; on any failure
// it hands the error to the failure handler and returns the resulting
// *failure.ExitError to the caller.
package bot
