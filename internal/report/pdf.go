package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/nao1215/jobreport/internal/chart"
	"github.com/nao1215/jobreport/internal/model"
	"github.com/nao1215/jobreport/internal/stats"
)

// Page layout in millimetres on A4 portrait.
const (
	lineHeight = 10.0
	cellWidth  = 200.0
	imageX     = 10.0
	imageWidth = 190.0
	imageGap   = 2.0
)

const (
	reportTitle   = "AI Powered Job Report"
	sectionHeader = "Descriptive Statistics for Salary(mean, median, std), Company Size and Required Skills"
	growthHeader  = "Job Growth Projection"
)

// PDFAssembler builds the multi-page PDF report from the salary values and
// the rendered chart images.
type PDFAssembler struct {
	clock     func() time.Time
	topSkills int
}

// PDFOption configures a PDFAssembler.
type PDFOption func(*PDFAssembler)

// WithClock sets the clock used for the PDF creation date. A fixed clock
// makes repeated runs produce identical files.
func WithClock(clock func() time.Time) PDFOption {
	return func(a *PDFAssembler) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// WithTopSkills sets the ranking size named in the skills page header.
func WithTopSkills(n int) PDFOption {
	return func(a *PDFAssembler) {
		if n > 0 {
			a.topSkills = n
		}
	}
}

// NewPDFAssembler creates a PDFAssembler with the given options.
func NewPDFAssembler(opts ...PDFOption) *PDFAssembler {
	a := &PDFAssembler{
		clock:     time.Now,
		topSkills: 20,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble writes the report to path, overwriting any existing file.
//
// Page 1 holds the title, the salary statistics and the company-size chart.
// Page 2 holds the job-growth histogram and page 3 the skills chart.
// Every chart image must exist before anything is built; otherwise a
// *ReportWriteError wrapping ErrMissingChart is returned and path is left
// untouched.
func (a *PDFAssembler) Assemble(salary []float64, charts model.Charts, path string) error {
	if err := checkCharts(charts); err != nil {
		return err
	}

	summary, err := stats.Summarize(salary)
	if err != nil {
		return &ReportWriteError{Path: path, Err: fmt.Errorf("salary statistics: %w", err)}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	now := a.clock()
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetCatalogSort(true)

	// Page 1
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(cellWidth, lineHeight, reportTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(cellWidth, lineHeight, sectionHeader, "", 1, "", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	for _, line := range salaryLines(summary) {
		pdf.CellFormat(cellWidth, lineHeight, line, "", 1, "", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	a.chartPage(pdf, chart.CompanySizeTitle, charts.CompanySize)

	// Page 2
	pdf.AddPage()
	a.chartPage(pdf, growthHeader, charts.JobGrowth)

	// Page 3
	pdf.AddPage()
	a.chartPage(pdf, chart.SkillsTitle(a.topSkills), charts.Skills)

	if err := pdf.Error(); err != nil {
		return &ReportWriteError{Path: path, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return &ReportWriteError{Path: path, Err: fmt.Errorf("failed to create directory: %w", err)}
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return &ReportWriteError{Path: path, Err: err}
	}
	return nil
}

// chartPage writes a header line and places the image below it at full
// content width. Errors are latched in pdf and surface from pdf.Error.
func (a *PDFAssembler) chartPage(pdf *fpdf.Fpdf, header, image string) {
	pdf.CellFormat(cellWidth, lineHeight, header, "", 1, "", false, 0, "")
	pdf.ImageOptions(image, imageX, pdf.GetY()+imageGap, imageWidth, 0, false,
		fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
}

// salaryLines formats the seven salary figures with two decimals.
func salaryLines(s model.Summary) []string {
	return []string{
		fmt.Sprintf("Mean Salary: %.2f", s.Mean),
		fmt.Sprintf("Median Salary: %.2f", s.Median),
		fmt.Sprintf("Standard Deviation of Salary: %.2f", s.Std),
		fmt.Sprintf("Min Salary: %.2f", s.Min),
		fmt.Sprintf("Percentile 25 Salary: %.2f", s.P25),
		fmt.Sprintf("Percentile 75 Salary: %.2f", s.P75),
		fmt.Sprintf("Max Salary: %.2f", s.Max),
	}
}

// checkCharts verifies every chart path names a non-empty regular file.
func checkCharts(charts model.Charts) error {
	for _, p := range charts.Paths() {
		if p == "" {
			return &ReportWriteError{Err: fmt.Errorf("%w: chart path is empty", ErrMissingChart)}
		}
		info, err := os.Stat(p)
		switch {
		case errors.Is(err, os.ErrNotExist):
			return &ReportWriteError{Path: p, Err: ErrMissingChart}
		case err != nil:
			return &ReportWriteError{Path: p, Err: fmt.Errorf("%w: %w", ErrMissingChart, err)}
		case !info.Mode().IsRegular() || info.Size() == 0:
			return &ReportWriteError{Path: p, Err: fmt.Errorf("%w: not a non-empty file", ErrMissingChart)}
		}
	}
	return nil
}
