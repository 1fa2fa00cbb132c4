package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nao1215/rollcall/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/rollcall.yaml
var configTemplate embed.FS

// templatePath is the path of the configuration template inside configTemplate.
const templatePath = "templates/rollcall.yaml"

// errConfigExists is returned when init would overwrite a file without --force.
var errConfigExists = errors.New("configuration file already exists")

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented .rollcall configuration file",
		Long: `Init writes a .rollcall file holding the default automation parameters
and every report, e-mail and alert text, ready to be edited.

Examples:
  rollcall init
  rollcall init -o ~/.config/rollcall/config.yaml
  rollcall init -f`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}

			if err := writeConfigTemplate(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// writeConfigTemplate writes the embedded template to path. Without force
// an existing file is left untouched and errConfigExists is returned.
func writeConfigTemplate(path string, force bool) error {
	content, err := configTemplate.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0600) //nolint:gosec // Output path is chosen by the user
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s (use -f to overwrite)", errConfigExists, path)
		}
		return fmt.Errorf("failed to create configuration file: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return f.Close()
}
