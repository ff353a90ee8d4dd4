package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/jobreport/internal/config"
)

//go:embed templates/jobreport.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = config.DefaultConfigFile

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new jobreport configuration file",
		Long: `Initialize creates a new .jobreport configuration file in the current directory.

The generated file includes:
- The default dataset, chart and report file names
- The dataset column names used by each chart
- Documentation for all available options

Examples:
  # Create .jobreport in current directory
  jobreport init

  # Create config file at a specific path
  jobreport init -o myconfig.yaml

  # Force overwrite existing file
  jobreport init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/jobreport.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to configure settings such as:")
	fmt.Fprintln(out, "  - Dataset and output file locations")
	fmt.Fprintln(out, "  - Dataset column names")
	fmt.Fprintln(out, "  - Skills ranking size and order")

	return nil
}
