package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/rollcall/internal/model"
)

// SimpleWriter outputs human-readable run summaries for the terminal.
type SimpleWriter struct {
	baseWriter

	// verbose adds the list of performed steps.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteSummary outputs the run in human-readable format.
func (w *SimpleWriter) WriteSummary(run *model.Run) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString("                    ROLLCALL RUN SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Task:      %s\n", run.TaskID))
	sb.WriteString(fmt.Sprintf("Started:   %s\n", run.StartedAt.Format(time.DateTime)))
	if !run.FinishedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Duration:  %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond)))
	}

	if run.Succeeded() {
		sb.WriteString("Status:    SUCCESS\n")
	} else {
		sb.WriteString(fmt.Sprintf("Status:    FAILED - %s\n", run.ErrorMessage))
	}

	if run.OutputPath != "" {
		sb.WriteString(fmt.Sprintf("Report:    %s\n", run.OutputPath))
	}
	if run.ReportDigest != "" {
		sb.WriteString(fmt.Sprintf("SHA3-256:  %s\n", run.ReportDigest))
	}
	if run.Recipient != "" {
		sb.WriteString(fmt.Sprintf("Sent to:   %s\n", run.Recipient))
	}

	if w.verbose && len(run.PerformedSteps) > 0 {
		sb.WriteString("\nSteps:\n")
		for _, step := range run.PerformedSteps {
			sb.WriteString(fmt.Sprintf("  - %s\n", step))
		}
	}

	return w.output.Write([]byte(sb.String()))
}
