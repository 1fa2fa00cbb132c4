// Package pipeline runs the steps of an attendance-report run in sequence.
//
// A run loads the attendance table, checks it for null values, renders the
// PDF report and e-mails it. Each stage is a Step that receives the current
// *model.Run and fills in its part of it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It provides consistent error handling and logging across steps
// 2. It gives every step the same run-log line before it starts
// 3. It supports cancellation via context between steps
//
// The pipeline stops at the first failing step. There is no partial
// success: the caller hands the error to the failure handler.
package pipeline
