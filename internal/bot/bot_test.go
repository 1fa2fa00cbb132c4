package bot_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/rollcall/internal/attendance"
	"github.com/nao1215/rollcall/internal/bot"
	"github.com/nao1215/rollcall/internal/config"
	"github.com/nao1215/rollcall/internal/failure"
	"github.com/nao1215/rollcall/internal/log"
	"github.com/nao1215/rollcall/internal/maestro"
	"github.com/nao1215/rollcall/internal/mail"
	"github.com/nao1215/rollcall/internal/model"
)

type alert struct {
	title     string
	message   string
	alertType model.AlertType
}

type reported struct {
	err         error
	attachments []string
}

type finish struct {
	status  model.FinishStatus
	message string
}

// fakeClient records every orchestrator call in order.
type fakeClient struct {
	mu       sync.Mutex
	params   map[string]any
	order    []string
	alerts   []alert
	errors   []reported
	finishes []finish
}

func (f *fakeClient) Execution(_ context.Context) (*maestro.Execution, error) {
	return &maestro.Execution{TaskID: "task-42", Parameters: f.params}, nil
}

func (f *fakeClient) Alert(_ context.Context, _, title, message string, alertType model.AlertType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.order = append(f.order, "alert")
	f.alerts = append(f.alerts, alert{title: title, message: message, alertType: alertType})
	return nil
}

func (f *fakeClient) Error(_ context.Context, _ string, err error, attachments []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.order = append(f.order, "error")
	f.errors = append(f.errors, reported{err: err, attachments: attachments})
	return nil
}

func (f *fakeClient) FinishTask(_ context.Context, _ string, status model.FinishStatus, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.order = append(f.order, "finish")
	f.finishes = append(f.finishes, finish{status: status, message: message})
	return nil
}

type recordingSender struct {
	sent []*mail.Message
}

func (r *recordingSender) Send(_ context.Context, m *mail.Message) error {
	r.sent = append(r.sent, m)
	return nil
}

type fixture struct {
	dir    string
	params map[string]any
}

func newFixture(t *testing.T, csv string) fixture {
	t.Helper()

	dir := t.TempDir()
	data := filepath.Join(dir, "frequenciaTurmaA.csv")
	require.NoError(t, os.WriteFile(data, []byte(csv), 0600))

	return fixture{
		dir: dir,
		params: map[string]any{
			"EMAIL_PESSOAL":      "robo@example.com",
			"EMAIL_DESTINATARIO": "angelo@example.com",
			"ASSUNTO_EMAIL":      "Relatório de frequência",
			"PATH_TO_DATA_TABLE": data,
			"PATH_TO_LOGFILE":    filepath.Join(dir, "logs.txt"),
			"PATH_TO_OUTPUT":     filepath.Join(dir, "report.pdf"),
		},
	}
}

func newBot(client maestro.Client, sender mail.Sender) *bot.Bot {
	fixed := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	return bot.New(client,
		bot.WithSender(sender),
		bot.WithClock(func() time.Time { return fixed }),
		bot.WithLogFileOptions(log.WithClock(func() time.Time { return fixed })),
	)
}

func readLog(t *testing.T, f fixture) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(f.dir, "logs.txt"))
	require.NoError(t, err)
	return string(data)
}

func TestBot_Run_Success(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "Nome,Presença\nAna,Presente\nBruno,Ausente\n")
	client := &fakeClient{params: f.params}
	sender := &recordingSender{}

	run, err := newBot(client, sender).Run(t.Context())
	require.NoError(t, err)

	assert.True(t, run.Succeeded())
	assert.Equal(t, model.StateEnd, run.State)
	assert.Equal(t, "task-42", run.TaskID)
	assert.Equal(t, []string{"load_attendance", "validate_attendance", "build_report", "send_email"}, run.PerformedSteps)
	assert.Len(t, run.ReportDigest, 64)

	table, ok := run.Table.(*attendance.Table)
	require.True(t, ok)
	assert.Equal(t, 2, table.Len())

	pdf, err := os.ReadFile(filepath.Join(f.dir, "report.pdf"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "angelo@example.com", msg.To)
	assert.Equal(t, "robo@example.com", msg.From)
	assert.Equal(t, "Relatório de frequência", msg.Subject)
	assert.Equal(t, config.DefaultEmailBody, msg.Body)
	assert.Equal(t, []string{filepath.Join(f.dir, "report.pdf")}, msg.Attachments)

	assert.Equal(t, []string{"alert", "finish"}, client.order)
	assert.Equal(t, alert{
		title:     config.DefaultSuccessAlertTitle,
		message:   config.DefaultSuccessAlertMessage,
		alertType: model.AlertInfo,
	}, client.alerts[0])
	assert.Equal(t, finish{status: model.FinishSuccess, message: config.DefaultFinishMessage}, client.finishes[0])

	logText := readLog(t, f)
	for _, want := range []string{
		"Extraindo dados da tabela...",
		"Procurando por valores nulos...",
		"Gerando o PDF do relatório...",
		"Enviando o relatório por e-mail...",
		"Tarefa concluída com sucesso...",
	} {
		assert.Contains(t, logText, want)
	}
	assert.Equal(t, 5, strings.Count(logText, "Horário: 2024-03-05 09:00:00.000000"))
}

func TestBot_Run_NullValues(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "Nome,Presença\nAna,Presente\nBruno,\n")
	client := &fakeClient{params: f.params}
	sender := &recordingSender{}

	run, err := newBot(client, sender).Run(t.Context())
	require.Error(t, err)

	var exitErr *failure.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Equal(t, 1, failure.ExitCode(err))
	assert.ErrorIs(t, err, attendance.ErrNullValues)

	assert.False(t, run.Succeeded())
	assert.Equal(t, model.StateEnd, run.State)

	_, statErr := os.Stat(filepath.Join(f.dir, "report.pdf"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "no report must be written")
	assert.Empty(t, sender.sent)

	assert.Equal(t, []string{"error", "alert"}, client.order)
	assert.Equal(t, []string{filepath.Join(f.dir, "logs.txt")}, client.errors[0].attachments)
	assert.Equal(t, alert{
		title:     config.DefaultErrorAlertTitle,
		message:   config.DefaultNullValuesMessage,
		alertType: model.AlertError,
	}, client.alerts[0])
	assert.Empty(t, client.finishes)

	logText := readLog(t, f)
	assert.Contains(t, logText, "ERRO DE EXECUÇÃO...")
	assert.Contains(t, logText, "valores nulos encontrados nos dados")
	assert.NotContains(t, logText, "Gerando o PDF")
}

func TestBot_Run_MissingRecipient(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "Nome,Presença\nAna,Presente\n")
	delete(f.params, "EMAIL_DESTINATARIO")
	client := &fakeClient{params: f.params}
	sender := &recordingSender{}

	run, err := newBot(client, sender).Run(t.Context())
	require.Error(t, err)

	assert.Equal(t, 1, failure.ExitCode(err))
	assert.ErrorIs(t, err, mail.ErrInvalidRecipient)
	assert.Empty(t, sender.sent)
	assert.Equal(t, []string{"load_attendance", "validate_attendance", "build_report"}, run.PerformedSteps)

	require.Len(t, client.alerts, 1)
	assert.Equal(t, model.AlertError, client.alerts[0].alertType)
	assert.True(t, strings.HasPrefix(client.alerts[0].message, config.DefaultUnexpectedPrefix))
	assert.Equal(t, []string{"error", "alert"}, client.order)
}

func TestBot_Run_TemplateFromConfigFile(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "Nome,Presença\nAna,Presente\nBruno,\n")
	client := &fakeClient{params: f.params}

	file := config.NewFile()
	file.Template.NullValuesMessage = "Tabela incompleta."
	file.Template.ErrorAlertTitle = "Falha"

	b := bot.New(client, bot.WithConfigFile(file), bot.WithSender(&recordingSender{}))
	_, err := b.Run(t.Context())
	require.Error(t, err)

	require.Len(t, client.alerts, 1)
	assert.Equal(t, "Falha", client.alerts[0].title)
	assert.Equal(t, "Tabela incompleta.", client.alerts[0].message)
}

func TestBot_Run_CancelledContextStillReports(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "Nome,Presença\nAna,Presente\n")
	client := &fakeClient{params: f.params}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := newBot(client, &recordingSender{}).Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"error", "alert"}, client.order)
}
