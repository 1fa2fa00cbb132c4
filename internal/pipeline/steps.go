package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/rollcall/internal/attendance"
	"github.com/nao1215/rollcall/internal/config"
	"github.com/nao1215/rollcall/internal/mail"
	"github.com/nao1215/rollcall/internal/model"
	"github.com/nao1215/rollcall/internal/report"
)

// Run-log messages written before each step.
const (
	announceLoad     = "Extraindo dados da tabela"
	announceValidate = "Procurando por valores nulos"
	announceBuild    = "Gerando o PDF do relatório"
	announceSend     = "Enviando o relatório por e-mail"
)

// LoadStep reads the attendance table named by the run settings.
type LoadStep struct {
	settings *config.Settings
	loader   *attendance.Loader
}

// NewLoadStep creates a LoadStep.
func NewLoadStep(settings *config.Settings, loader *attendance.Loader) *LoadStep {
	if loader == nil {
		loader = attendance.NewLoader()
	}
	return &LoadStep{settings: settings, loader: loader}
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load_attendance"
}

// Announcement returns the run-log message.
func (s *LoadStep) Announcement() string {
	return announceLoad
}

// Do loads the table into run.Table.
func (s *LoadStep) Do(_ context.Context, run *model.Run) error {
	run.Advance(model.StateLoad)

	table, err := s.loader.Load(s.settings.DataTablePath)
	if err != nil {
		return err
	}
	run.Table = table
	return nil
}

// ValidateStep rejects tables that contain null values.
type ValidateStep struct {
	logger *slog.Logger
}

// NewValidateStep creates a ValidateStep.
func NewValidateStep(logger *slog.Logger) *ValidateStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ValidateStep{logger: logger}
}

// Name returns the step name.
func (s *ValidateStep) Name() string {
	return "validate_attendance"
}

// Announcement returns the run-log message.
func (s *ValidateStep) Announcement() string {
	return announceValidate
}

// Do returns attendance.ErrNullValues when the table has null cells.
func (s *ValidateStep) Do(_ context.Context, run *model.Run) error {
	run.Advance(model.StateValidate)

	table, err := tableOf(run)
	if err != nil {
		return err
	}
	if err := attendance.Validate(table); err != nil {
		if errors.Is(err, attendance.ErrNullValues) {
			s.logger.Warn("null values in attendance table", "null_cells", table.NullCount())
		}
		return err
	}
	return nil
}

// BuildReportStep assembles the report and renders it to the output path.
type BuildReportStep struct {
	settings *config.Settings
	builder  *report.Builder
	renderer report.Renderer
}

// NewBuildReportStep creates a BuildReportStep.
func NewBuildReportStep(settings *config.Settings, builder *report.Builder, renderer report.Renderer) *BuildReportStep {
	return &BuildReportStep{settings: settings, builder: builder, renderer: renderer}
}

// Name returns the step name.
func (s *BuildReportStep) Name() string {
	return "build_report"
}

// Announcement returns the run-log message.
func (s *BuildReportStep) Announcement() string {
	return announceBuild
}

// Do renders the report and records its path and digest on the run.
func (s *BuildReportStep) Do(_ context.Context, run *model.Run) error {
	run.Advance(model.StateBuildReport)

	table, err := tableOf(run)
	if err != nil {
		return err
	}

	doc := s.builder.Build(table)
	run.Document = doc

	path, err := report.WriteFile(s.renderer, doc, s.settings.OutputPath)
	if err != nil {
		return err
	}
	run.OutputPath = path

	digest, err := report.Digest(path)
	if err != nil {
		return err
	}
	run.ReportDigest = digest
	return nil
}

// SendEmailStep e-mails the rendered report.
type SendEmailStep struct {
	settings   *config.Settings
	dispatcher *mail.Dispatcher
}

// NewSendEmailStep creates a SendEmailStep.
func NewSendEmailStep(settings *config.Settings, dispatcher *mail.Dispatcher) *SendEmailStep {
	return &SendEmailStep{settings: settings, dispatcher: dispatcher}
}

// Name returns the step name.
func (s *SendEmailStep) Name() string {
	return "send_email"
}

// Announcement returns the run-log message.
func (s *SendEmailStep) Announcement() string {
	return announceSend
}

// Do sends the report and records the recipient on the run.
func (s *SendEmailStep) Do(ctx context.Context, run *model.Run) error {
	run.Advance(model.StateSendEmail)

	msg, err := s.dispatcher.Send(ctx, s.settings)
	if err != nil {
		return err
	}
	run.Recipient = msg.To
	return nil
}

// tableOf returns the table loaded by LoadStep.
func tableOf(run *model.Run) (*attendance.Table, error) {
	table, ok := run.Table.(*attendance.Table)
	if !ok || table == nil {
		return nil, ErrMissingTable
	}
	return table, nil
}

// ReportPipelineConfig holds the collaborators of the report pipeline.
type ReportPipelineConfig struct {
	// Settings are the resolved run parameters.
	Settings *config.Settings

	// Loader reads the attendance table. Nil uses the default loader.
	Loader *attendance.Loader

	// Builder assembles the report document.
	Builder *report.Builder

	// Renderer writes the report file.
	Renderer report.Renderer

	// Dispatcher e-mails the report.
	Dispatcher *mail.Dispatcher
}

// Validate checks that every collaborator is set.
func (c ReportPipelineConfig) Validate() error {
	switch {
	case c.Settings == nil:
		return fmt.Errorf("report pipeline: settings are required")
	case c.Builder == nil:
		return fmt.Errorf("report pipeline: builder is required")
	case c.Renderer == nil:
		return fmt.Errorf("report pipeline: renderer is required")
	case c.Dispatcher == nil:
		return fmt.Errorf("report pipeline: dispatcher is required")
	}
	return nil
}

// ReportPipeline creates the pipeline of an attendance-report run:
// load, validate, build report, send e-mail.
func ReportPipeline(cfg ReportPipelineConfig, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := New(opts...)
	p.AddSteps(
		NewLoadStep(cfg.Settings, cfg.Loader),
		NewValidateStep(p.logger),
		NewBuildReportStep(cfg.Settings, cfg.Builder, cfg.Renderer),
		NewSendEmailStep(cfg.Settings, cfg.Dispatcher),
	)
	return p, nil
}
