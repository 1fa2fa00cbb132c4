package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nao1215/rollcall/internal/attendance"
	"github.com/nao1215/rollcall/internal/config"
	"github.com/nao1215/rollcall/internal/failure"
	"github.com/nao1215/rollcall/internal/log"
	"github.com/nao1215/rollcall/internal/maestro"
	"github.com/nao1215/rollcall/internal/mail"
	"github.com/nao1215/rollcall/internal/model"
	"github.com/nao1215/rollcall/internal/pipeline"
	"github.com/nao1215/rollcall/internal/report"
)

// Bot drives a single run against an orchestrator client.
type Bot struct {
	client   maestro.Client
	file     *config.File
	logger   *slog.Logger
	loader   *attendance.Loader
	renderer report.Renderer
	sender   mail.Sender
	logOpts  []log.LogFileOption
	now      func() time.Time
}

// Option configures a Bot.
type Option func(*Bot)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithConfigFile sets the parameter defaults and template texts.
func WithConfigFile(f *config.File) Option {
	return func(b *Bot) {
		if f != nil {
			b.file = f
		}
	}
}

// WithLoader sets the attendance loader.
func WithLoader(l *attendance.Loader) Option {
	return func(b *Bot) {
		b.loader = l
	}
}

// WithRenderer replaces the PDF renderer.
func WithRenderer(r report.Renderer) Option {
	return func(b *Bot) {
		b.renderer = r
	}
}

// WithSender bypasses the credential file and sends through s.
func WithSender(s mail.Sender) Option {
	return func(b *Bot) {
		b.sender = s
	}
}

// WithLogFileOptions sets the options of the run log.
func WithLogFileOptions(opts ...log.LogFileOption) Option {
	return func(b *Bot) {
		b.logOpts = append(b.logOpts, opts...)
	}
}

// WithClock sets the clock used for the report date.
func WithClock(now func() time.Time) Option {
	return func(b *Bot) {
		b.now = now
	}
}

// New creates a Bot for the given orchestrator client.
func New(client maestro.Client, opts ...Option) *Bot {
	b := &Bot{
		client: client,
		file:   config.NewFile(),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.renderer == nil {
		b.renderer = report.NewPDFRenderer(report.WithTitle(b.file.Template.WithDefaults().Subtitle))
	}
	return b
}

// Run executes the task. It returns the run state and, on failure, an
// error wrapping a *failure.ExitError once the failure has been reported.
// Errors raised before the run log exists are returned as is.
func (b *Bot) Run(ctx context.Context) (*model.Run, error) {
	exec, err := b.client.Execution(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire execution: %w", err)
	}

	tmpl := b.file.Template.WithDefaults()
	provider := config.NewProvider(exec.Parameters, config.WithDefaults(b.file.Parameters))
	settings := config.Resolve(provider)
	if missing := settings.Missing(); len(missing) > 0 {
		b.logger.Warn("required parameters not supplied", "task_id", exec.TaskID, "parameters", missing)
	}

	journal, err := log.NewLogFile(settings.LogFilePath, b.logOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}

	handler := failure.NewHandler(b.client, journal, exec.TaskID,
		failure.WithAlertTitle(tmpl.ErrorAlertTitle),
		failure.WithLogger(b.logger),
	)

	run := model.NewRun(exec.TaskID)
	b.logger.Info("run started", "task_id", run.TaskID, "data_table", settings.DataTablePath)

	p, err := pipeline.ReportPipeline(pipeline.ReportPipelineConfig{
		Settings:   settings,
		Loader:     b.loader,
		Builder:    report.NewBuilder(tmpl, report.WithClock(b.now)),
		Renderer:   b.renderer,
		Dispatcher: b.dispatcher(tmpl),
	}, pipeline.WithLogger(b.logger), pipeline.WithJournal(journal))
	if err != nil {
		return run, b.fail(ctx, run, handler, tmpl, err)
	}

	if err := p.Execute(ctx, run); err != nil {
		return run, b.fail(ctx, run, handler, tmpl, err)
	}

	run.Advance(model.StateNotifySuccess)
	if err := b.notifySuccess(ctx, run, journal, tmpl); err != nil {
		return run, b.fail(ctx, run, handler, tmpl, err)
	}

	run.Advance(model.StateEnd)
	b.logger.Info("run finished",
		"task_id", run.TaskID,
		"report", run.OutputPath,
		"sha3_256", run.ReportDigest,
		"recipient", run.Recipient,
	)
	return run, nil
}

func (b *Bot) dispatcher(tmpl config.Template) *mail.Dispatcher {
	opts := []mail.DispatcherOption{mail.WithLogger(b.logger)}
	if b.sender != nil {
		opts = append(opts, mail.WithSender(b.sender))
	}
	return mail.NewDispatcher(tmpl.EmailBody, opts...)
}

// notifySuccess logs the completion, raises the INFO alert and finishes
// the task with SUCCESS.
func (b *Bot) notifySuccess(ctx context.Context, run *model.Run, journal *log.LogFile, tmpl config.Template) error {
	if err := journal.Log(strings.TrimRight(tmpl.FinishMessage, ".")); err != nil {
		return err
	}
	if err := b.client.Alert(ctx, run.TaskID, tmpl.SuccessAlertTitle, tmpl.SuccessAlertMessage, model.AlertInfo); err != nil {
		return err
	}
	return b.client.FinishTask(ctx, run.TaskID, model.FinishSuccess, tmpl.FinishMessage)
}

// fail reports err through the handler. Null values get their own
// message; every other error is reported as unexpected.
func (b *Bot) fail(ctx context.Context, run *model.Run, handler *failure.Handler, tmpl config.Template, err error) error {
	run.Fail(err)

	message := tmpl.UnexpectedErrorPrefix + err.Error()
	if errors.Is(err, attendance.ErrNullValues) {
		message = tmpl.NullValuesMessage
	}

	// Notifications still go out when the run was cancelled.
	herr := handler.Handle(context.WithoutCancel(ctx), message, err)
	run.Advance(model.StateEnd)
	return herr
}
