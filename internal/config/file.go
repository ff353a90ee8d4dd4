package config

import "github.com/nao1215/jobreport/internal/analysis"

// ChartFiles holds the chart image paths of a configuration file.
type ChartFiles struct {
	CompanySize string `yaml:"companySize,omitempty"`
	JobGrowth   string `yaml:"jobGrowth,omitempty"`
	Skills      string `yaml:"skills,omitempty"`
}

// ColumnNames holds the dataset column names of a configuration file.
type ColumnNames struct {
	Salary         string `yaml:"salary,omitempty"`
	CompanySize    string `yaml:"companySize,omitempty"`
	JobGrowth      string `yaml:"jobGrowth,omitempty"`
	RequiredSkills string `yaml:"requiredSkills,omitempty"`
}

// File represents the structure of the .jobreport configuration file.
// Every field is optional; unset fields keep the value already in Config.
type File struct {
	// BaseDir overrides the directory relative paths are resolved against.
	BaseDir string `yaml:"baseDir,omitempty"`

	// Dataset is the CSV file to load.
	Dataset string `yaml:"dataset,omitempty"`

	// Charts holds the chart image paths.
	Charts ChartFiles `yaml:"charts,omitempty"`

	// Report is the PDF report path.
	Report string `yaml:"report,omitempty"`

	// Columns names the dataset columns used by the report.
	Columns ColumnNames `yaml:"columns,omitempty"`

	// NullValues are the cell values treated as missing.
	NullValues []string `yaml:"nullValues,omitempty"`

	// TopSkills is the number of ranked skills.
	TopSkills int `yaml:"topSkills,omitempty"`

	// SkillOrder is "descending" or "ascending".
	SkillOrder string `yaml:"skillOrder,omitempty"`

	// HistogramBins is the number of job-growth histogram bins.
	HistogramBins int `yaml:"histogramBins,omitempty"`
}

// Apply overlays the fields set in the file onto c.
func (f *File) Apply(c *Config) {
	setString(&c.BaseDir, f.BaseDir)
	setString(&c.Paths.Dataset, f.Dataset)
	setString(&c.Paths.CompanySizeChart, f.Charts.CompanySize)
	setString(&c.Paths.JobGrowthChart, f.Charts.JobGrowth)
	setString(&c.Paths.SkillsChart, f.Charts.Skills)
	setString(&c.Paths.Report, f.Report)

	setString(&c.Columns.Salary, f.Columns.Salary)
	setString(&c.Columns.CompanySize, f.Columns.CompanySize)
	setString(&c.Columns.JobGrowth, f.Columns.JobGrowth)
	setString(&c.Columns.RequiredSkills, f.Columns.RequiredSkills)

	if len(f.NullValues) > 0 {
		c.NullValues = f.NullValues
	}
	if f.TopSkills != 0 {
		c.TopSkills = f.TopSkills
	}
	if f.SkillOrder != "" {
		c.SkillOrder = analysis.SkillOrder(f.SkillOrder)
	}
	if f.HistogramBins != 0 {
		c.HistogramBins = f.HistogramBins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
