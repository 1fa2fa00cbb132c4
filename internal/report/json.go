package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/rollcall/internal/model"
)

// JSONWriter outputs run summaries in JSON format.
// This format is designed for schedulers and scripts that inspect the
// outcome of a run.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because the summary is a handful of flat fields and the
// orchestrator client already speaks encoding/json.
type JSONWriter struct {
	baseWriter

	// version is stamped into every summary.
	version string

	// indent enables pretty-printed JSON output.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
		version:    version,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONSummary wraps a run with the version of the program that produced it.
type JSONSummary struct {
	// Version is the rollcall version.
	Version string `json:"version"`

	// Succeeded is true when the report was delivered.
	Succeeded bool `json:"succeeded"`

	// Run is the run state.
	Run *model.Run `json:"run"`
}

// WriteSummary outputs the run in JSON format.
func (w *JSONWriter) WriteSummary(run *model.Run) (int, error) {
	summary := JSONSummary{
		Version:   w.version,
		Succeeded: run.Succeeded(),
		Run:       run,
	}

	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(summary, "", "  ")
	} else {
		data, err = json.Marshal(summary)
	}
	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
