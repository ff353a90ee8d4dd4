package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/jobreport/internal/analysis"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
// Changes to defaults must be intentional: these tests fail if a default changes.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default base dir is set", func(t *testing.T) {
		t.Parallel()
		if cfg.BaseDir == "" {
			t.Error("expected a non-empty base directory")
		}
	})

	t.Run("default file names", func(t *testing.T) {
		t.Parallel()
		want := Paths{
			Dataset:          "ai_job_market_insights.csv",
			CompanySizeChart: "companysize_histogram.png",
			JobGrowthChart:   "jobgrowth_histogram.png",
			SkillsChart:      "requiredskill_histogram.png",
			Report:           "AI-Powered_Job_Report.pdf",
		}
		if cfg.Paths != want {
			t.Errorf("expected %+v, got %+v", want, cfg.Paths)
		}
	})

	t.Run("default columns", func(t *testing.T) {
		t.Parallel()
		want := Columns{
			Salary:         "Salary_USD",
			CompanySize:    "Company_Size",
			JobGrowth:      "Job_Growth_Projection",
			RequiredSkills: "Required_Skills",
		}
		if cfg.Columns != want {
			t.Errorf("expected %+v, got %+v", want, cfg.Columns)
		}
	})

	t.Run("default ranking and bins", func(t *testing.T) {
		t.Parallel()
		if cfg.TopSkills != 20 {
			t.Errorf("expected TopSkills 20, got %d", cfg.TopSkills)
		}
		if cfg.SkillOrder != analysis.OrderDescending {
			t.Errorf("expected descending order, got %q", cfg.SkillOrder)
		}
		if cfg.HistogramBins != 20 {
			t.Errorf("expected 20 bins, got %d", cfg.HistogramBins)
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected default config to be valid, got %v", err)
		}
	})
}

// TestConfigValidate tests validation of each field.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"empty base dir", func(c *Config) { c.BaseDir = "" }, ErrEmptyBaseDir},
		{"empty dataset", func(c *Config) { c.Paths.Dataset = "" }, ErrEmptyPath},
		{"empty report", func(c *Config) { c.Paths.Report = "" }, ErrEmptyPath},
		{"empty skills chart", func(c *Config) { c.Paths.SkillsChart = "" }, ErrEmptyPath},
		{"empty salary column", func(c *Config) { c.Columns.Salary = "" }, ErrEmptyColumn},
		{"zero top skills", func(c *Config) { c.TopSkills = 0 }, ErrInvalidTopSkills},
		{"negative top skills", func(c *Config) { c.TopSkills = -1 }, ErrInvalidTopSkills},
		{"unknown order", func(c *Config) { c.SkillOrder = "random" }, ErrInvalidSkillOrder},
		{"zero bins", func(c *Config) { c.HistogramBins = 0 }, ErrInvalidBins},
		{
			"json and markdown",
			func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			ErrConflictingReportFormats,
		},
		{"ascending order", func(c *Config) { c.SkillOrder = analysis.OrderAscending }, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			cfg.BaseDir = "/srv/jobs"
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// TestConfigResolve tests path resolution against the base directory.
func TestConfigResolve(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere", "report.pdf")

	cfg := NewConfig()
	cfg.BaseDir = base
	cfg.Paths.Report = abs
	cfg.Paths.SkillsChart = filepath.Join("charts", "skills.png")

	paths, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if paths.Dataset != filepath.Join(base, DefaultDatasetFile) {
		t.Errorf("unexpected dataset path %q", paths.Dataset)
	}
	if paths.SkillsChart != filepath.Join(base, "charts", "skills.png") {
		t.Errorf("unexpected skills chart path %q", paths.SkillsChart)
	}
	if paths.Report != abs {
		t.Errorf("expected absolute report path to be kept, got %q", paths.Report)
	}
	if cfg.Paths.Dataset != DefaultDatasetFile {
		t.Error("Resolve must not modify the config")
	}
}

// TestDefaultBaseDir tests that the executable directory is found.
func TestDefaultBaseDir(t *testing.T) {
	t.Parallel()

	dir, err := DefaultBaseDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("base dir does not exist: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("expected %q to be a directory", dir)
	}
}

// TestFileApply tests overlaying a configuration file onto a Config.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("set fields override", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		f := &File{
			BaseDir:       "/data",
			Dataset:       "jobs.csv",
			Charts:        ChartFiles{Skills: "out/skills.png"},
			Columns:       ColumnNames{Salary: "Salary"},
			NullValues:    []string{"", "NA"},
			TopSkills:     10,
			SkillOrder:    "ascending",
			HistogramBins: 30,
		}
		f.Apply(cfg)

		if cfg.BaseDir != "/data" || cfg.Paths.Dataset != "jobs.csv" {
			t.Errorf("unexpected base/dataset: %q %q", cfg.BaseDir, cfg.Paths.Dataset)
		}
		if cfg.Paths.SkillsChart != "out/skills.png" {
			t.Errorf("unexpected skills chart %q", cfg.Paths.SkillsChart)
		}
		if cfg.Columns.Salary != "Salary" {
			t.Errorf("unexpected salary column %q", cfg.Columns.Salary)
		}
		if len(cfg.NullValues) != 2 {
			t.Errorf("expected 2 null values, got %v", cfg.NullValues)
		}
		if cfg.TopSkills != 10 || cfg.HistogramBins != 30 {
			t.Errorf("unexpected top=%d bins=%d", cfg.TopSkills, cfg.HistogramBins)
		}
		if cfg.SkillOrder != analysis.OrderAscending {
			t.Errorf("unexpected order %q", cfg.SkillOrder)
		}
	})

	t.Run("unset fields keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		want := *cfg
		(&File{}).Apply(cfg)

		if cfg.Paths != want.Paths || cfg.Columns != want.Columns {
			t.Error("expected paths and columns to be unchanged")
		}
		if cfg.TopSkills != want.TopSkills || cfg.SkillOrder != want.SkillOrder {
			t.Error("expected ranking to be unchanged")
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.jobreport")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".jobreport")
		content := `dataset: data/jobs.csv
report: out/report.pdf
charts:
  companySize: out/sizes.png
  jobGrowth: out/growth.png
columns:
  requiredSkills: Skills
nullValues: ["", "N/A"]
topSkills: 15
skillOrder: ascending
histogramBins: 25
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cf.Dataset != "data/jobs.csv" || cf.Report != "out/report.pdf" {
			t.Errorf("unexpected paths: %q %q", cf.Dataset, cf.Report)
		}
		if cf.Charts.CompanySize != "out/sizes.png" || cf.Charts.JobGrowth != "out/growth.png" {
			t.Errorf("unexpected charts: %+v", cf.Charts)
		}
		if cf.Columns.RequiredSkills != "Skills" {
			t.Errorf("unexpected skills column %q", cf.Columns.RequiredSkills)
		}
		if len(cf.NullValues) != 2 || cf.NullValues[1] != "N/A" {
			t.Errorf("unexpected null values %v", cf.NullValues)
		}
		if cf.TopSkills != 15 || cf.SkillOrder != "ascending" || cf.HistogramBins != 25 {
			t.Errorf("unexpected ranking: %d %q %d", cf.TopSkills, cf.SkillOrder, cf.HistogramBins)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".jobreport")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("topSkills: 5\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestXDGConfigDir tests the XDG config directory.
func TestXDGConfigDir(t *testing.T) {
	t.Parallel()

	dir := XDGConfigDir()
	if dir == "" {
		t.Fatal("expected non-empty XDG config dir")
	}
	if filepath.Base(dir) != AppName {
		t.Errorf("expected dir to end in %q, got %q", AppName, dir)
	}
}
