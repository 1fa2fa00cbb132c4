// Package log provides the two logs written by rollcall.
//
// The first is the structured diagnostic log on stderr, built on log/slog.
// Its SecureHandler masks values that must never reach a terminal or a log
// collector: the SMTP password, the orchestrator key and access token,
// authorization headers, and URLs with embedded credentials.
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
// The second is the run log (LogFile): a plain-text, append-only file that
// the robot keeps next to its resources and attaches to every error report
// sent to the orchestrator.
//
//	lf, err := log.NewLogFile("resources/logs.txt")
//	_ = lf.Log("Extraindo dados da tabela")
package log
