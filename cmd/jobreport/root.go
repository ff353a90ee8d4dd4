package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nao1215/jobreport/internal/analysis"
	"github.com/nao1215/jobreport/internal/config"
)

// NewRootCmd creates the root command for jobreport.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobreport",
		Short: "Build a PDF report from an AI job-postings dataset",
		Long: `jobreport loads a CSV of AI job postings and produces a report of the market.

It prints the descriptive statistics of every numeric column, renders three
charts (company sizes, job-growth projection and required skills) and
assembles them with the salary statistics into a three-page PDF.

Relative paths are resolved against the base directory, which defaults to
the directory holding the jobreport executable.

Examples:
  # Run with the defaults next to the executable
  jobreport

  # Use another base directory and rank the top 10 skills
  jobreport -b ./data --top-skills 10

  # Write a JSON run summary
  jobreport -j -o summary.json

Configuration file (.jobreport) example:
  dataset: ai_job_market_insights.csv
  topSkills: 20
  columns:
    salary: Salary_USD`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRootCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs to stderr as JSON lines")

	addInputFlags(cmd.Flags())

	// Ranking flags
	cmd.Flags().Int("top-skills", config.DefaultTopSkills,
		"Number of skills shown in the skills chart")
	cmd.Flags().String("skill-order", string(analysis.OrderDescending),
		"Skills ranking order: descending (most frequent) or ascending (least frequent)")

	// Summary flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON run summary (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown run summary (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write run summary to specified file path (creates directories if needed)")

	// Add subcommands
	cmd.AddCommand(NewDescribeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// addInputFlags adds the flags shared by every command that reads the dataset.
func addInputFlags(flags *pflag.FlagSet) {
	flags.StringP("config", "c", "",
		"Configuration file path (default: .jobreport in current or home directory)")
	flags.StringP("base-dir", "b", "",
		"Directory relative paths are resolved against (default: executable directory)")
	flags.StringP("dataset", "d", config.DefaultDatasetFile,
		"CSV dataset path")
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runRootCmd executes the full report.
func runRootCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, err := setupLogger(cmd, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runReport(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	return persistentBool(cmd, "verbose")
}

// persistentBool reads a boolean flag defined on the command or on the root.
func persistentBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// buildConfig creates a Config from the defaults, the configuration file and
// the command flags, in increasing order of precedence. Flags override the
// file only when they were set on the command line.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently keep the defaults if no file found.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	cfg.Verbose = getVerboseFlag(cmd)

	overrides := []struct {
		name string
		dst  *string
	}{
		{"base-dir", &cfg.BaseDir},
		{"dataset", &cfg.Paths.Dataset},
		{"output", &cfg.SummaryFile},
	}
	for _, o := range overrides {
		if !changed(flags, o.name) {
			continue
		}
		if *o.dst, err = flags.GetString(o.name); err != nil {
			return nil, err
		}
	}

	if changed(flags, "top-skills") {
		if cfg.TopSkills, err = flags.GetInt("top-skills"); err != nil {
			return nil, err
		}
	}
	if changed(flags, "skill-order") {
		order, err := flags.GetString("skill-order")
		if err != nil {
			return nil, err
		}
		cfg.SkillOrder = analysis.SkillOrder(order)
	}
	if changed(flags, "json") {
		if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
			return nil, err
		}
	}
	if changed(flags, "markdown") {
		if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// changed reports whether the named flag exists and was set by the user.
func changed(flags *pflag.FlagSet, name string) bool {
	f := flags.Lookup(name)
	return f != nil && f.Changed
}
