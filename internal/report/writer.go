package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nao1215/rollcall/internal/model"
)

// Renderer turns a Document into an output format.
//
// Design decision: We use an interface so that the run command and the
// preview command share the document model and only differ in the
// renderer they pick.
type Renderer interface {
	// Render writes doc to w.
	Render(doc *Document, w io.Writer) error
}

// WriteFile renders doc into the file at path, replacing any existing file,
// and returns the absolute path of the result. Parent directories are
// created as needed.
func WriteFile(r Renderer, doc *Document, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(abs) //nolint:gosec // Output path comes from run parameters
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	if err := r.Render(doc, f); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close output file: %w", err)
	}
	return abs, nil
}

// SummaryWriter outputs the outcome of a run.
// Implementations write the same information in different formats.
type SummaryWriter interface {
	// WriteSummary outputs run to the configured destination.
	// Returns the number of bytes written and any error encountered.
	WriteSummary(run *model.Run) (int, error)
}

// baseWriter provides common functionality for summary writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
