package model

import (
	"time"

	"github.com/nao1215/jobreport/internal/dataset"
)

// Charts holds the paths of the rendered chart images.
// An empty path means the chart has not been rendered.
type Charts struct {
	CompanySize string `json:"company_size,omitempty"`
	JobGrowth   string `json:"job_growth,omitempty"`
	Skills      string `json:"skills,omitempty"`
}

// Paths returns the chart paths in report page order.
func (c Charts) Paths() []string {
	return []string{c.CompanySize, c.JobGrowth, c.Skills}
}

// Complete reports whether every chart has been rendered.
func (c Charts) Complete() bool {
	return c.CompanySize != "" && c.JobGrowth != "" && c.Skills != ""
}

// JobReport is the result of one pipeline run.
// Steps fill it in order: the loader sets Table, the describe step sets
// Columns, the aggregate step sets the views, chart steps set Charts and
// the PDF step sets ReportFile.
type JobReport struct {
	// Dataset is the path of the loaded CSV file.
	Dataset string `json:"dataset"`

	// GeneratedAt is when the run started.
	GeneratedAt time.Time `json:"generated_at"`

	// Table is the loaded dataset. It is shared by reference between steps
	// and never modified after load.
	Table *dataset.Table `json:"-"`

	// Rows is the number of data rows in Table.
	Rows int `json:"rows"`

	// Columns summarizes every numeric column of the dataset.
	Columns []ColumnSummary `json:"columns,omitempty"`

	// Salary summarizes the salary column.
	Salary *Summary `json:"salary,omitempty"`

	// CompanySizes counts postings per company-size category.
	CompanySizes *CategoryView `json:"company_sizes,omitempty"`

	// JobGrowth is the job-growth projection column.
	JobGrowth *GrowthView `json:"job_growth,omitempty"`

	// Skills ranks the required skills by frequency.
	Skills *CategoryView `json:"skills,omitempty"`

	// SkillOrder is the ranking order used for Skills ("descending" or "ascending").
	SkillOrder string `json:"skill_order,omitempty"`

	// Charts holds the rendered image paths.
	Charts Charts `json:"charts"`

	// ReportFile is the path of the written PDF report.
	ReportFile string `json:"report_file,omitempty"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error contains the error that stopped the pipeline, if any.
	Error error `json:"-"`

	// ErrorMessage is the string form of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewJobReport creates an empty report for the dataset at path.
func NewJobReport(path string) *JobReport {
	return &JobReport{
		Dataset:        path,
		GeneratedAt:    time.Now(),
		PerformedSteps: make([]string, 0),
	}
}

// HasStep reports whether the named step has completed.
func (r *JobReport) HasStep(name string) bool {
	for _, s := range r.PerformedSteps {
		if s == name {
			return true
		}
	}
	return false
}

// Release frees the loaded table. It is safe to call more than once.
func (r *JobReport) Release() {
	if r.Table != nil {
		r.Table.Release()
		r.Table = nil
	}
}
