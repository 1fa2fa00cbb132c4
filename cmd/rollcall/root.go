package main

import (
	"fmt"
	"os"

	"github.com/nao1215/rollcall/internal/failure"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for rollcall.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rollcall",
		Short: "Attendance report robot",
		Long: `rollcall turns a class attendance table into a PDF report and e-mails it
to the professor.

A run is driven by an orchestrator (Maestro). When MAESTRO_SERVER is not set,
rollcall runs locally: parameters come from --param flags and the
configuration file, and notifications are written to the log.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewPreviewCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return failure.ExitCode(err)
	}
	return 0
}
