package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Build metadata injected with -ldflags "-X main.version=...".
var (
	version = ""
	commit  = ""
	date    = ""
)

// shortCommitLen is the length of the printed commit hash.
const shortCommitLen = 7

// buildInfo is the version metadata printed by the version command.
type buildInfo struct {
	Version string
	Commit  string
	Date    string
}

// readBuildInfo merges ldflags values with the module build information.
// ldflags win; unknown fields fall back to placeholders.
func readBuildInfo() buildInfo {
	info := buildInfo{Version: version, Commit: commit, Date: date}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.Commit == "":
				info.Commit = s.Value
			case s.Key == "vcs.time" && info.Date == "":
				info.Date = s.Value
			}
		}
	}

	if info.Version == "" {
		info.Version = "(devel)"
	}
	if len(info.Commit) > shortCommitLen {
		info.Commit = info.Commit[:shortCommitLen]
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return info
}

// getVersion returns the version string shown by --version.
func getVersion() string {
	return readBuildInfo().Version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := readBuildInfo()

			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return err
			}
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "rollcall %s (commit %s, built %s)\n",
				info.Version, info.Commit, info.Date)
			return nil
		},
	}
	cmd.Flags().BoolP("short", "s", false, "Print only the version number")
	return cmd
}
