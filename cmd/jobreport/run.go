package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/jobreport/internal/config"
	"github.com/nao1215/jobreport/internal/database"
	applog "github.com/nao1215/jobreport/internal/log"
	"github.com/nao1215/jobreport/internal/model"
	"github.com/nao1215/jobreport/internal/pipeline"
	"github.com/nao1215/jobreport/internal/report"
)

// setupLogger creates the stderr logger and makes it the default. Paths
// below the base directory are logged relative to it.
func setupLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	base, err := filepath.Abs(cfg.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}
	newLogger := applog.NewLogger
	if persistentBool(cmd, "log-json") {
		newLogger = applog.NewJSONLogger
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose, base)
	slog.SetDefault(logger)
	return logger, nil
}

// runReport runs the default pipeline and writes the run summary. The
// summary is written even when a step failed, so the failure is reported in
// the requested format; the step error is still returned.
func runReport(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer, logger *slog.Logger) error {
	db, err := database.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	// Machine-readable summaries on stdout must not be interleaved with the
	// describe tables.
	describeOut := stdout
	if (cfg.JSONReport || cfg.MarkdownReport) && cfg.SummaryFile == "" {
		describeOut = stderr
	}

	p, err := pipeline.DefaultPipeline(cfg, db,
		[]pipeline.Option{pipeline.WithLogger(logger)},
		pipeline.WithPipelineOutput(describeOut),
		pipeline.WithPipelineLogger(logger),
	)
	if err != nil {
		return err
	}

	jobReport := model.NewJobReport(cfg.Paths.Dataset)
	defer jobReport.Release()

	logger.Info("starting report",
		"base_dir", cfg.BaseDir,
		"steps", p.StepNames(),
	)

	runErr := p.Execute(ctx, jobReport)

	if err := outputSummary(cfg, jobReport, stdout); err != nil {
		logger.Error("summary failed", "error", err)
		if runErr == nil {
			return err
		}
	}
	return runErr
}

// outputSummary writes the run summary in the requested format.
func outputSummary(cfg *config.Config, jobReport *model.JobReport, stdout io.Writer) error {
	output := stdout
	if cfg.SummaryFile != "" {
		dir := filepath.Dir(cfg.SummaryFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.SummaryFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	format := summaryFormat(cfg)
	writer := report.NewWriter(format, output, getVersion(), cfg.Verbose)
	if cfg.SummaryFile != "" && format != report.FormatText {
		// Keep the terminal informed when the machine-readable summary goes to a file.
		writer = report.NewMultiWriter(writer, report.NewSimpleWriter(stdout))
	}

	_, err := writer.Write(jobReport)
	return err
}

// summaryFormat returns the summary format selected by cfg.
func summaryFormat(cfg *config.Config) report.Format {
	switch {
	case cfg.JSONReport:
		return report.FormatJSON
	case cfg.MarkdownReport:
		return report.FormatMarkdown
	default:
		return report.FormatText
	}
}
