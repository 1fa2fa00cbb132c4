package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/nao1215/rollcall/internal/attendance"
	"github.com/nao1215/rollcall/internal/config"
	"github.com/nao1215/rollcall/internal/report"
	"github.com/spf13/cobra"
)

// Preview output formats.
const (
	formatMarkdown = "markdown"
	formatPDF      = "pdf"
)

// NewPreviewCmd creates the preview command.
func NewPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <attendance-table>",
		Short: "Render the report of an attendance table without sending it",
		Long: `Preview loads an attendance table and renders the report locally.
Nothing is e-mailed and the orchestrator is not contacted.

Missing values are listed as a warning instead of failing, so that the table
can be fixed before the real run.

Examples:
  # Print the report as Markdown
  rollcall preview resources/frequenciaTurmaA.csv

  # Write the PDF report to a file
  rollcall preview --format pdf -o report.pdf resources/frequenciaTurmaA.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runPreviewCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .rollcall in current or home directory)")
	cmd.Flags().StringP("delimiter", "d", string(config.DefaultDelimiter),
		`Field separator of the attendance table ("\t" or "tab" for tab)`)
	cmd.Flags().StringP("format", "f", formatMarkdown,
		"Output format: markdown or pdf")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to the specified file (required for pdf)")

	return cmd
}

// runPreviewCmd executes the preview command.
func runPreviewCmd(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	file, err := loadConfigFile(configPath)
	if err != nil {
		return err
	}

	delimiter, err := cmd.Flags().GetString("delimiter")
	if err != nil {
		return err
	}
	sep, err := config.ParseDelimiter(delimiter)
	if err != nil {
		return fmt.Errorf("invalid --delimiter %q: %w", delimiter, err)
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	renderer, err := previewRenderer(format, output, file.Template)
	if err != nil {
		return err
	}

	table, err := attendance.NewLoader(attendance.WithDelimiter(sep)).Load(args[0])
	if err != nil {
		return err
	}
	if err := attendance.Validate(table); errors.Is(err, attendance.ErrNullValues) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d missing value(s) in %s; a real run would fail\n",
			table.NullCells(), args[0])
	}

	doc := report.NewBuilder(file.Template.WithDefaults()).Build(table)
	return writePreview(cmd.OutOrStdout(), renderer, doc, output)
}

// previewRenderer returns the renderer for format.
func previewRenderer(format, output string, tmpl config.Template) (report.Renderer, error) {
	switch format {
	case formatMarkdown:
		return report.NewMarkdownRenderer(), nil
	case formatPDF:
		if output == "" {
			return nil, errors.New("--format pdf requires --output")
		}
		return report.NewPDFRenderer(
			report.WithTitle(tmpl.WithDefaults().Subtitle),
			report.WithCreationDate(time.Now()),
		), nil
	default:
		return nil, fmt.Errorf("unknown format %q (use %s or %s)", format, formatMarkdown, formatPDF)
	}
}

// writePreview renders doc to the output file, or to out when no file is given.
func writePreview(out io.Writer, r report.Renderer, doc *report.Document, output string) error {
	if output == "" {
		return r.Render(doc, out)
	}

	path, err := report.WriteFile(r, doc, output)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Report written to: %s\n", path)
	return nil
}
