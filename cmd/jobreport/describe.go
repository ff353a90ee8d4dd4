package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/jobreport/internal/dataset"
	"github.com/nao1215/jobreport/internal/pipeline"
	"github.com/nao1215/jobreport/internal/report"
	"github.com/nao1215/jobreport/internal/stats"
)

// NewDescribeCmd creates the describe command.
func NewDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print descriptive statistics of the dataset's numeric columns",
		Long: `Describe loads the dataset and prints count, null count, mean, standard deviation,
minimum, quartiles and maximum of every numeric column. No chart or report
is written.

Examples:
  # Describe the default dataset
  jobreport describe

  # Describe another file
  jobreport describe -d postings.csv`,
		Args: cobra.NoArgs,
		RunE: runDescribeCmd,
	}

	addInputFlags(cmd.Flags())

	return cmd
}

// runDescribeCmd executes the describe command.
func runDescribeCmd(cmd *cobra.Command, _ []string) error {
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

	paths, err := cfg.Resolve()
	if err != nil {
		return err
	}

	var opts []dataset.Option
	if len(cfg.NullValues) > 0 {
		opts = append(opts, dataset.WithNullValues(cfg.NullValues...))
	}
	table, err := dataset.Load(paths.Dataset, opts...)
	if err != nil {
		return &pipeline.StepError{Step: pipeline.StepLoad, Err: err}
	}
	defer table.Release()

	logger.Info("dataset loaded", "path", paths.Dataset, "rows", table.NumRows())

	if err := report.WriteDescribe(cmd.OutOrStdout(), stats.Describe(table)); err != nil {
		return &pipeline.StepError{Step: pipeline.StepDescribe, Err: err}
	}
	return nil
}
