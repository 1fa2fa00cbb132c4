package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/rollcall/internal/attendance"
	"github.com/nao1215/rollcall/internal/bot"
	"github.com/nao1215/rollcall/internal/config"
	"github.com/nao1215/rollcall/internal/log"
	"github.com/nao1215/rollcall/internal/maestro"
	"github.com/nao1215/rollcall/internal/report"
	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate and send the attendance report",
		Long: `Run executes one attendance-report task:

  1. Load the attendance table (PATH_TO_DATA_TABLE)
  2. Reject it if any value is missing
  3. Render the PDF report (PATH_TO_OUTPUT)
  4. E-mail the report to EMAIL_DESTINATARIO
  5. Notify the orchestrator and finish the task

Any failure is reported to the orchestrator with the run log attached, and
the command exits with status 1.

Orchestrator settings are read from MAESTRO_SERVER, MAESTRO_LOGIN,
MAESTRO_KEY and MAESTRO_TASK_ID (a .env file is honoured). Without a server
the run is local.

Examples:
  # Run against the orchestrator configured in the environment
  rollcall run

  # Local run with explicit parameters
  rollcall run --param EMAIL_PESSOAL=robo@example.com \
    --param EMAIL_DESTINATARIO=prof@example.com \
    --param ASSUNTO_EMAIL="Frequência da turma A"

  # Semicolon-separated table and a JSON summary
  rollcall run --delimiter ';' --json`,
		Args: cobra.NoArgs,
		RunE: runRunCmd,
	}

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .rollcall in current or home directory)")
	cmd.Flags().StringArrayP("param", "p", nil,
		"Parameter override NAME=VALUE for local runs (repeatable)")
	cmd.Flags().StringSlice("env-file", nil,
		"Env files to load before reading MAESTRO_* variables (default: .env)")

	// Orchestrator flags
	cmd.Flags().String("server", "", "Orchestrator URL (overrides MAESTRO_SERVER)")
	cmd.Flags().String("login", "", "Orchestrator login (overrides MAESTRO_LOGIN)")
	cmd.Flags().String("key", "", "Orchestrator key (overrides MAESTRO_KEY)")
	cmd.Flags().String("task-id", "", "Task ID (overrides MAESTRO_TASK_ID)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each orchestrator request")

	// Input and log flags
	cmd.Flags().StringP("delimiter", "d", string(config.DefaultDelimiter),
		`Field separator of the attendance table ("\t" or "tab" for tab)`)
	cmd.Flags().Bool("frozen-log-clock", false,
		"Stamp every run-log line with the time the log was opened")
	cmd.Flags().Bool("json-log", false, "Write structured logs as JSON")

	// Summary flags
	cmd.Flags().BoolP("json", "j", false, "Print the run summary as JSON")

	return cmd
}

// runOptions holds everything a run needs besides the context.
type runOptions struct {
	cfg         *config.Config
	maestro     maestro.Config
	jsonLog     bool
	jsonSummary bool
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, _ []string) error {
	opts, err := buildRunOptions(cmd)
	if err != nil {
		return err
	}

	if err := opts.cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), opts.cfg.Verbose, opts.jsonLog)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runBot(ctx, opts, cmd.OutOrStdout(), logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildRunOptions creates the run options from cobra command flags and the
// environment.
func buildRunOptions(cmd *cobra.Command) (*runOptions, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.File, err = loadConfigFile(cfg.ConfigFilePath)
	if err != nil {
		return nil, err
	}

	params, err := cmd.Flags().GetStringArray("param")
	if err != nil {
		return nil, err
	}
	cfg.Overrides, err = config.ParseOverrides(params)
	if err != nil {
		return nil, err
	}

	delimiter, err := cmd.Flags().GetString("delimiter")
	if err != nil {
		return nil, err
	}
	cfg.Delimiter, err = config.ParseDelimiter(delimiter)
	if err != nil {
		return nil, fmt.Errorf("invalid --delimiter %q: %w", delimiter, err)
	}

	cfg.FrozenLogClock, err = cmd.Flags().GetBool("frozen-log-clock")
	if err != nil {
		return nil, err
	}

	envFiles, err := cmd.Flags().GetStringSlice("env-file")
	if err != nil {
		return nil, err
	}
	mcfg, err := maestro.LoadConfig(envFiles...)
	if err != nil {
		return nil, err
	}
	if err := applyMaestroFlags(cmd, &mcfg); err != nil {
		return nil, err
	}
	cfg.Timeout = mcfg.Timeout

	opts := &runOptions{cfg: cfg, maestro: mcfg}
	opts.jsonLog, err = cmd.Flags().GetBool("json-log")
	if err != nil {
		return nil, err
	}
	opts.jsonSummary, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	return opts, nil
}

// loadConfigFile loads the configuration file. An explicit path that does
// not exist is an error; otherwise a missing file yields the defaults.
func loadConfigFile(explicit string) (*config.File, error) {
	path := config.FindConfigFile(explicit)
	if path == "" {
		if explicit != "" {
			return nil, fmt.Errorf("configuration file not found: %s", explicit)
		}
		return config.NewFile(), nil
	}

	f, err := config.LoadConfigFile(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.NewFile(), nil
		}
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return f, nil
}

// applyMaestroFlags overrides the environment with the flags that were set.
func applyMaestroFlags(cmd *cobra.Command, mcfg *maestro.Config) error {
	for flag, dst := range map[string]*string{
		"server":  &mcfg.Server,
		"login":   &mcfg.Login,
		"key":     &mcfg.Key,
		"task-id": &mcfg.TaskID,
	} {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		v, err := cmd.Flags().GetString(flag)
		if err != nil {
			return err
		}
		*dst = v
	}

	if cmd.Flags().Changed("timeout") {
		timeout, err := cmd.Flags().GetDuration("timeout")
		if err != nil {
			return err
		}
		mcfg.Timeout = timeout
	}
	return nil
}

// setupLogger creates a structured logger based on verbosity setting.
// Sensitive attributes are masked by the secure handler.
func setupLogger(w io.Writer, verbose, jsonFormat bool) *slog.Logger {
	if jsonFormat {
		return log.NewSecureJSONLogger(w, verbose)
	}
	return log.NewSecureLogger(w, verbose)
}

// runBot executes one task and prints its summary.
func runBot(ctx context.Context, opts *runOptions, out io.Writer, logger *slog.Logger) error {
	client, err := maestro.New(opts.maestro, opts.cfg.Overrides, logger)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator client: %w", err)
	}

	botOpts := []bot.Option{
		bot.WithLogger(logger),
		bot.WithConfigFile(opts.cfg.File),
		bot.WithLoader(attendance.NewLoader(attendance.WithDelimiter(opts.cfg.Delimiter))),
	}
	if opts.cfg.FrozenLogClock {
		botOpts = append(botOpts, bot.WithLogFileOptions(log.WithFrozenClock()))
	}

	run, runErr := bot.New(client, botOpts...).Run(ctx)
	if run != nil {
		if _, err := summaryWriter(out, opts).WriteSummary(run); err != nil {
			logger.Warn("failed to write run summary", "error", err)
		}
	}
	return runErr
}

// summaryWriter returns the writer selected by --json.
func summaryWriter(out io.Writer, opts *runOptions) report.SummaryWriter {
	if opts.jsonSummary {
		return report.NewJSONWriter(out, getVersion(), report.WithPrettyPrint())
	}
	return report.NewSimpleWriter(out, report.WithVerbose(opts.cfg.Verbose))
}
