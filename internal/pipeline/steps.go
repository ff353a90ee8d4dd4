package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nao1215/jobreport/internal/analysis"
	"github.com/nao1215/jobreport/internal/chart"
	"github.com/nao1215/jobreport/internal/config"
	"github.com/nao1215/jobreport/internal/dataset"
	"github.com/nao1215/jobreport/internal/model"
	"github.com/nao1215/jobreport/internal/report"
	"github.com/nao1215/jobreport/internal/stats"
)

// Step names, in default execution order.
const (
	StepLoad             = "load"
	StepDescribe         = "describe"
	StepAggregate        = "aggregate"
	StepCompanySizeChart = "company_size_chart"
	StepJobGrowthChart   = "job_growth_chart"
	StepSkillsChart      = "skills_chart"
	StepPDFReport        = "pdf_report"
)

var (
	// ErrNotLoaded is returned by steps that run before the dataset is loaded.
	ErrNotLoaded = errors.New("dataset has not been loaded")

	// ErrMissingView is returned by chart steps that run before the aggregate step.
	ErrMissingView = errors.New("aggregate view is missing")

	// ErrChartsNotRendered is returned by the PDF step when a chart step has
	// not completed.
	ErrChartsNotRendered = errors.New("chart steps have not completed")

	// ErrIncompleteImport is returned when the aggregation store holds a
	// different number of rows than the loaded table.
	ErrIncompleteImport = errors.New("dataset import is incomplete")
)

// Store is the aggregation engine used by AggregateStep.
// *database.JobDB implements it.
type Store interface {
	analysis.Counter
	ImportTable(ctx context.Context, t *dataset.Table) error
	CountRows(ctx context.Context) (int, error)
}

// stepBase holds what every step shares.
type stepBase struct {
	logger *slog.Logger
}

// StepOption configures a step.
type StepOption func(*stepBase)

// WithStepLogger sets a custom logger for a step.
func WithStepLogger(logger *slog.Logger) StepOption {
	return func(b *stepBase) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func newStepBase(opts []StepOption) stepBase {
	b := stepBase{logger: slog.Default()}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// logFile logs a written file with its size.
func (b stepBase) logFile(msg, path string) {
	attrs := []any{"path", path}
	if info, err := os.Stat(path); err == nil {
		attrs = append(attrs, "size", humanize.Bytes(uint64(info.Size()))) //nolint:gosec // sizes are never negative
	}
	b.logger.Info(msg, attrs...)
}

// LoadStep reads the CSV dataset into the report's table.
type LoadStep struct {
	stepBase
	path       string
	nullValues []string
}

// NewLoadStep creates a step loading the dataset at path. Empty nullValues
// keeps the dataset package defaults.
func NewLoadStep(path string, nullValues []string, opts ...StepOption) *LoadStep {
	return &LoadStep{stepBase: newStepBase(opts), path: path, nullValues: nullValues}
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return StepLoad
}

// Do executes the load step.
func (s *LoadStep) Do(_ context.Context, r *model.JobReport) error {
	var opts []dataset.Option
	if len(s.nullValues) > 0 {
		opts = append(opts, dataset.WithNullValues(s.nullValues...))
	}

	t, err := dataset.Load(s.path, opts...)
	if err != nil {
		return err
	}

	r.Release()
	r.Dataset = s.path
	r.Table = t
	r.Rows = t.NumRows()

	s.logger.Info("dataset loaded",
		"path", s.path,
		"rows", humanize.Comma(int64(t.NumRows())),
		"columns", t.NumCols(),
	)
	return nil
}

// DescribeStep summarizes every numeric column and prints the describe
// table. The salary column summary is kept separately for the report.
type DescribeStep struct {
	stepBase
	out          io.Writer
	salaryColumn string
}

// NewDescribeStep creates a describe step writing the table to out.
// A nil out disables printing.
func NewDescribeStep(out io.Writer, salaryColumn string, opts ...StepOption) *DescribeStep {
	return &DescribeStep{stepBase: newStepBase(opts), out: out, salaryColumn: salaryColumn}
}

// Name returns the step name.
func (s *DescribeStep) Name() string {
	return StepDescribe
}

// Do executes the describe step.
func (s *DescribeStep) Do(_ context.Context, r *model.JobReport) error {
	if r.Table == nil {
		return ErrNotLoaded
	}

	col, ok := r.Table.Column(s.salaryColumn)
	if !ok {
		return fmt.Errorf("%w: %q", analysis.ErrMissingColumn, s.salaryColumn)
	}

	r.Columns = stats.Describe(r.Table)
	r.Salary = stats.DescribeColumn(col).Stats
	if r.Salary == nil {
		s.logger.Warn("salary column has no numeric values", "column", s.salaryColumn)
	}

	if s.out != nil {
		if err := report.WriteDescribe(s.out, r.Columns); err != nil {
			return fmt.Errorf("failed to write describe table: %w", err)
		}
	}
	return nil
}

// AggregateStep builds the company-size, skills and job-growth views.
type AggregateStep struct {
	stepBase
	store   Store
	columns config.Columns
	top     int
	order   analysis.SkillOrder
}

// NewAggregateStep creates an aggregate step computing its views with store.
func NewAggregateStep(
	store Store,
	columns config.Columns,
	top int,
	order analysis.SkillOrder,
	opts ...StepOption,
) *AggregateStep {
	return &AggregateStep{
		stepBase: newStepBase(opts),
		store:    store,
		columns:  columns,
		top:      top,
		order:    order,
	}
}

// Name returns the step name.
func (s *AggregateStep) Name() string {
	return StepAggregate
}

// Do executes the aggregate step.
func (s *AggregateStep) Do(ctx context.Context, r *model.JobReport) error {
	if r.Table == nil {
		return ErrNotLoaded
	}

	if err := s.store.ImportTable(ctx, r.Table); err != nil {
		return fmt.Errorf("failed to import dataset: %w", err)
	}
	imported, err := s.store.CountRows(ctx)
	if err != nil {
		return err
	}
	if imported != r.Table.NumRows() {
		return fmt.Errorf("%w: imported %d of %d rows", ErrIncompleteImport, imported, r.Table.NumRows())
	}

	sizes, err := analysis.CompanySizes(ctx, s.store, s.columns.CompanySize)
	if err != nil {
		return err
	}
	skills, err := analysis.RequiredSkills(ctx, s.store, r.Table, s.columns.RequiredSkills, s.top, s.order)
	if err != nil {
		return err
	}
	growth, err := analysis.JobGrowth(ctx, s.store, r.Table, s.columns.JobGrowth)
	if err != nil {
		return err
	}

	r.CompanySizes = sizes
	r.Skills = skills
	r.JobGrowth = growth
	r.SkillOrder = string(s.order)

	s.logger.Debug("views aggregated",
		"rows", humanize.Comma(int64(imported)),
		"company_sizes", sizes.Len(),
		"skills", skills.Len(),
		"skill_tokens", humanize.Comma(int64(skills.Total)),
		"job_growth_categorical", growth.Categorical(),
	)
	return nil
}

// CompanySizeChartStep renders the company-size pie chart.
type CompanySizeChartStep struct {
	stepBase
	path string
}

// NewCompanySizeChartStep creates a step writing the pie chart to path.
func NewCompanySizeChartStep(path string, opts ...StepOption) *CompanySizeChartStep {
	return &CompanySizeChartStep{stepBase: newStepBase(opts), path: path}
}

// Name returns the step name.
func (s *CompanySizeChartStep) Name() string {
	return StepCompanySizeChart
}

// Do executes the company-size chart step.
func (s *CompanySizeChartStep) Do(_ context.Context, r *model.JobReport) error {
	if r.CompanySizes == nil {
		return ErrMissingView
	}
	path, err := chart.CompanySize(r.CompanySizes, s.path)
	if err != nil {
		return err
	}
	r.Charts.CompanySize = path
	s.logFile("chart written", path)
	return nil
}

// JobGrowthChartStep prints the describe block of the job-growth column and
// renders its histogram.
type JobGrowthChartStep struct {
	stepBase
	path string
	bins int
	out  io.Writer
}

// NewJobGrowthChartStep creates a step writing the histogram to path.
// A nil out disables printing the describe block.
func NewJobGrowthChartStep(path string, bins int, out io.Writer, opts ...StepOption) *JobGrowthChartStep {
	return &JobGrowthChartStep{stepBase: newStepBase(opts), path: path, bins: bins, out: out}
}

// Name returns the step name.
func (s *JobGrowthChartStep) Name() string {
	return StepJobGrowthChart
}

// Do executes the job-growth chart step.
func (s *JobGrowthChartStep) Do(_ context.Context, r *model.JobReport) error {
	if r.JobGrowth == nil {
		return ErrMissingView
	}

	if s.out != nil {
		if err := report.WriteGrowthDescribe(s.out, r.JobGrowth); err != nil {
			return fmt.Errorf("failed to write describe block: %w", err)
		}
	}

	path, err := chart.JobGrowth(r.JobGrowth, s.bins, s.path)
	if err != nil {
		return err
	}
	r.Charts.JobGrowth = path
	s.logFile("chart written", path)
	return nil
}

// SkillsChartStep renders the required-skills bar chart.
type SkillsChartStep struct {
	stepBase
	path string
	top  int
}

// NewSkillsChartStep creates a step writing the bar chart to path. The
// title names the configured ranking size top.
func NewSkillsChartStep(path string, top int, opts ...StepOption) *SkillsChartStep {
	return &SkillsChartStep{stepBase: newStepBase(opts), path: path, top: top}
}

// Name returns the step name.
func (s *SkillsChartStep) Name() string {
	return StepSkillsChart
}

// Do executes the skills chart step.
func (s *SkillsChartStep) Do(_ context.Context, r *model.JobReport) error {
	if r.Skills == nil {
		return ErrMissingView
	}
	path, err := chart.Skills(r.Skills, s.path, chart.WithTitle(chart.SkillsTitle(s.top)))
	if err != nil {
		return err
	}
	r.Charts.Skills = path
	s.logFile("chart written", path)
	return nil
}

// PDFReportStep assembles the PDF report from the salary column and the
// rendered charts.
type PDFReportStep struct {
	stepBase
	path         string
	salaryColumn string
	assembler    *report.PDFAssembler
}

// NewPDFReportStep creates a step writing the report to path.
func NewPDFReportStep(path, salaryColumn string, assembler *report.PDFAssembler, opts ...StepOption) *PDFReportStep {
	if assembler == nil {
		assembler = report.NewPDFAssembler()
	}
	return &PDFReportStep{
		stepBase:     newStepBase(opts),
		path:         path,
		salaryColumn: salaryColumn,
		assembler:    assembler,
	}
}

// Name returns the step name.
func (s *PDFReportStep) Name() string {
	return StepPDFReport
}

// Do executes the PDF report step. Every chart step must have completed.
func (s *PDFReportStep) Do(_ context.Context, r *model.JobReport) error {
	for _, name := range []string{StepCompanySizeChart, StepJobGrowthChart, StepSkillsChart} {
		if !r.HasStep(name) {
			return &report.ReportWriteError{
				Path: s.path,
				Err:  fmt.Errorf("%w: %s", ErrChartsNotRendered, name),
			}
		}
	}
	if r.Table == nil {
		return ErrNotLoaded
	}

	col, ok := r.Table.Column(s.salaryColumn)
	if !ok {
		return fmt.Errorf("%w: %q", analysis.ErrMissingColumn, s.salaryColumn)
	}

	if err := s.assembler.Assemble(col.Floats(), r.Charts, s.path); err != nil {
		return err
	}
	r.ReportFile = s.path
	s.logFile("report written", s.path)
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline that
// does not come from config.Config.
type DefaultPipelineConfig struct {
	// Output receives the describe tables. Nil disables printing.
	Output io.Writer

	// Clock stamps the PDF creation date.
	Clock func() time.Time

	// Logger is passed to every step.
	Logger *slog.Logger
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineOutput sets where the describe tables are printed.
func WithPipelineOutput(w io.Writer) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Output = w
	}
}

// WithPipelineClock sets the clock used for the PDF creation date.
func WithPipelineClock(clock func() time.Time) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Clock = clock
	}
}

// WithPipelineLogger sets the logger used by every step.
func WithPipelineLogger(logger *slog.Logger) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Logger = logger
	}
}

// DefaultPipeline creates a pipeline running the full report:
// load, describe, aggregate, the three charts and the PDF report.
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts step options (WithPipelineOutput, etc).
func DefaultPipeline(
	cfg *config.Config,
	store Store,
	pipelineOpts []Option,
	opts ...DefaultPipelineOption,
) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	paths, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}

	pc := &DefaultPipelineConfig{Clock: time.Now}
	for _, opt := range opts {
		opt(pc)
	}

	stepOpts := []StepOption{WithStepLogger(pc.Logger)}
	assembler := report.NewPDFAssembler(
		report.WithClock(pc.Clock),
		report.WithTopSkills(cfg.TopSkills),
	)

	p := New(pipelineOpts...)
	p.AddSteps(
		NewLoadStep(paths.Dataset, cfg.NullValues, stepOpts...),
		NewDescribeStep(pc.Output, cfg.Columns.Salary, stepOpts...),
		NewAggregateStep(store, cfg.Columns, cfg.TopSkills, cfg.SkillOrder, stepOpts...),
		NewCompanySizeChartStep(paths.CompanySizeChart, stepOpts...),
		NewJobGrowthChartStep(paths.JobGrowthChart, cfg.HistogramBins, pc.Output, stepOpts...),
		NewSkillsChartStep(paths.SkillsChart, cfg.TopSkills, stepOpts...),
		NewPDFReportStep(paths.Report, cfg.Columns.Salary, assembler, stepOpts...),
	)
	return p, nil
}
