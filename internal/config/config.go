package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/nao1215/jobreport/internal/analysis"
	"github.com/nao1215/jobreport/internal/chart"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "jobreport"

	// DefaultDatasetFile is the dataset file name looked up in the base directory.
	DefaultDatasetFile = "ai_job_market_insights.csv"

	// DefaultCompanySizeChart is the file name of the company-size pie chart.
	DefaultCompanySizeChart = "companysize_histogram.png"

	// DefaultJobGrowthChart is the file name of the job-growth histogram.
	DefaultJobGrowthChart = "jobgrowth_histogram.png"

	// DefaultSkillsChart is the file name of the required-skills bar chart.
	DefaultSkillsChart = "requiredskill_histogram.png"

	// DefaultReportFile is the file name of the PDF report.
	DefaultReportFile = "AI-Powered_Job_Report.pdf"

	// DefaultTopSkills is the number of skills shown in the skills chart.
	DefaultTopSkills = 20

	// DefaultHistogramBins is the number of bins of the job-growth histogram.
	DefaultHistogramBins = chart.DefaultBins
)

// Default dataset column names.
const (
	DefaultSalaryColumn         = "Salary_USD"
	DefaultCompanySizeColumn    = "Company_Size"
	DefaultJobGrowthColumn      = "Job_Growth_Projection"
	DefaultRequiredSkillsColumn = "Required_Skills"
)

// Paths holds the input and output file locations. Relative paths are
// resolved against Config.BaseDir.
type Paths struct {
	// Dataset is the CSV file to load.
	Dataset string

	// CompanySizeChart is where the company-size pie chart is written.
	CompanySizeChart string

	// JobGrowthChart is where the job-growth histogram is written.
	JobGrowthChart string

	// SkillsChart is where the required-skills bar chart is written.
	SkillsChart string

	// Report is where the PDF report is written.
	Report string
}

// Columns names the dataset columns each view is built from.
type Columns struct {
	Salary         string
	CompanySize    string
	JobGrowth      string
	RequiredSkills string
}

// Config holds all configuration options for jobreport.
// This struct is populated from the config file and CLI flags and passed
// through the application explicitly rather than held in global state.
type Config struct {
	// BaseDir is the directory relative paths are resolved against.
	// Defaults to the directory holding the jobreport executable.
	BaseDir string

	// Paths holds the dataset and output file locations.
	Paths Paths

	// Columns names the dataset columns used by the report.
	Columns Columns

	// NullValues are the cell values treated as missing.
	// Empty means the dataset package defaults.
	NullValues []string

	// TopSkills is the number of skills kept in the skills ranking.
	TopSkills int

	// SkillOrder selects the skills ranking order.
	SkillOrder analysis.SkillOrder

	// HistogramBins is the number of bins of the job-growth histogram.
	HistogramBins int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// JSONReport enables the JSON run summary instead of the text summary.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables the Markdown run summary instead of the text summary.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// SummaryFile is the output file for the run summary.
	// When empty, the summary is written to stdout.
	SummaryFile string
}

// NewConfig creates a new Config with default values.
// The base directory is the executable's directory; when it cannot be
// determined the current directory is used.
func NewConfig() *Config {
	base, err := DefaultBaseDir()
	if err != nil {
		base = "."
	}

	return &Config{
		BaseDir: base,
		Paths: Paths{
			Dataset:          DefaultDatasetFile,
			CompanySizeChart: DefaultCompanySizeChart,
			JobGrowthChart:   DefaultJobGrowthChart,
			SkillsChart:      DefaultSkillsChart,
			Report:           DefaultReportFile,
		},
		Columns: Columns{
			Salary:         DefaultSalaryColumn,
			CompanySize:    DefaultCompanySizeColumn,
			JobGrowth:      DefaultJobGrowthColumn,
			RequiredSkills: DefaultRequiredSkillsColumn,
		},
		TopSkills:     DefaultTopSkills,
		SkillOrder:    analysis.OrderDescending,
		HistogramBins: DefaultHistogramBins,
	}
}

// DefaultBaseDir returns the directory containing the running executable,
// with symlinks resolved.
func DefaultBaseDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return filepath.Dir(exe), nil
}

// XDGConfigDir returns the XDG config directory for jobreport.
// On Linux: ~/.config/jobreport
// On macOS: ~/Library/Application Support/jobreport
// On Windows: %APPDATA%\jobreport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Resolve returns Paths with every path made absolute. Relative paths are
// joined with BaseDir.
func (c *Config) Resolve() (Paths, error) {
	base, err := filepath.Abs(c.BaseDir)
	if err != nil {
		return Paths{}, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	abs := func(p string) string {
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(base, p)
	}

	return Paths{
		Dataset:          abs(c.Paths.Dataset),
		CompanySizeChart: abs(c.Paths.CompanySizeChart),
		JobGrowthChart:   abs(c.Paths.JobGrowthChart),
		SkillsChart:      abs(c.Paths.SkillsChart),
		Report:           abs(c.Paths.Report),
	}, nil
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors in
// errors.go, wrapped with the offending field where useful.
func (c *Config) Validate() error {
	if c.BaseDir == "" {
		return ErrEmptyBaseDir
	}

	paths := []struct {
		name  string
		value string
	}{
		{"dataset", c.Paths.Dataset},
		{"company size chart", c.Paths.CompanySizeChart},
		{"job growth chart", c.Paths.JobGrowthChart},
		{"skills chart", c.Paths.SkillsChart},
		{"report", c.Paths.Report},
	}
	for _, p := range paths {
		if p.value == "" {
			return fmt.Errorf("%w: %s", ErrEmptyPath, p.name)
		}
	}

	columns := []struct {
		name  string
		value string
	}{
		{"salary", c.Columns.Salary},
		{"company size", c.Columns.CompanySize},
		{"job growth", c.Columns.JobGrowth},
		{"required skills", c.Columns.RequiredSkills},
	}
	for _, col := range columns {
		if col.value == "" {
			return fmt.Errorf("%w: %s", ErrEmptyColumn, col.name)
		}
	}

	if c.TopSkills <= 0 {
		return ErrInvalidTopSkills
	}

	if !c.SkillOrder.Valid() {
		return ErrInvalidSkillOrder
	}

	if c.HistogramBins <= 0 {
		return ErrInvalidBins
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
