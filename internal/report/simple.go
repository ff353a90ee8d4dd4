package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nao1215/jobreport/internal/analysis"
	"github.com/nao1215/jobreport/internal/model"
)

// ruleWidth is the width of the separator lines.
const ruleWidth = 70

// SimpleWriter outputs human-readable text summaries.
// This format is designed for terminal display with clear section
// formatting; headings are styled with lipgloss, which falls back to plain
// text when the output is not a terminal.
type SimpleWriter struct {
	baseWriter

	// heading styles section titles.
	heading lipgloss.Style

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with the full describe table.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		heading:    lipgloss.NewStyle().Bold(true),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run summary in human-readable format.
func (w *SimpleWriter) Write(report *model.JobReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSalary(&sb, report)
	w.writeCompanySizes(&sb, report)
	w.writeSkills(&sb, report)
	if w.verbose {
		w.writeColumns(&sb, report)
	}
	w.writeArtifacts(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeSection writes a section title between two rules.
func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(w.heading.Render(title))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.JobReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(w.heading.Render("                        AI JOB MARKET REPORT"))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Dataset:   %s\n", report.Dataset))
	sb.WriteString(fmt.Sprintf("Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Rows:      %s\n", humanize.Comma(int64(report.Rows))))

	if report.ErrorMessage != "" {
		sb.WriteString(fmt.Sprintf("Status:    ERROR - %s\n", report.ErrorMessage))
	} else {
		sb.WriteString("Status:    Complete\n")
	}
	sb.WriteString("\n")
}

// writeSalary writes the salary statistics section.
func (w *SimpleWriter) writeSalary(sb *strings.Builder, report *model.JobReport) {
	w.writeSection(sb, "SALARY STATISTICS")

	s := report.Salary
	if s == nil {
		sb.WriteString("  No salary data\n\n")
		return
	}

	sb.WriteString(fmt.Sprintf("  Mean:   %s\n", humanize.CommafWithDigits(s.Mean, 2)))
	sb.WriteString(fmt.Sprintf("  Median: %s\n", humanize.CommafWithDigits(s.Median, 2)))
	sb.WriteString(fmt.Sprintf("  Std:    %s\n", humanize.CommafWithDigits(s.Std, 2)))
	sb.WriteString(fmt.Sprintf("  Min:    %s\n", humanize.CommafWithDigits(s.Min, 2)))
	sb.WriteString(fmt.Sprintf("  P25:    %s\n", humanize.CommafWithDigits(s.P25, 2)))
	sb.WriteString(fmt.Sprintf("  P75:    %s\n", humanize.CommafWithDigits(s.P75, 2)))
	sb.WriteString(fmt.Sprintf("  Max:    %s\n", humanize.CommafWithDigits(s.Max, 2)))
	sb.WriteString("\n")
}

// writeCompanySizes writes the company-size shares.
func (w *SimpleWriter) writeCompanySizes(sb *strings.Builder, report *model.JobReport) {
	view := report.CompanySizes
	if view.Empty() {
		return
	}

	w.writeSection(sb, "COMPANY SIZES")
	for i, c := range view.Counts {
		sb.WriteString(fmt.Sprintf("  %-12s %6s  %5.1f%%\n", c.Name, humanize.Comma(int64(c.Count)), view.Share(i)))
	}
	sb.WriteString("\n")
}

// writeSkills writes the ranked skills.
func (w *SimpleWriter) writeSkills(sb *strings.Builder, report *model.JobReport) {
	view := report.Skills
	if view.Empty() {
		return
	}

	title := fmt.Sprintf("TOP %d REQUIRED SKILLS", view.Len())
	if report.SkillOrder == string(analysis.OrderAscending) {
		title = fmt.Sprintf("LEAST FREQUENT %d REQUIRED SKILLS", view.Len())
	}
	w.writeSection(sb, title)
	for i, c := range view.Counts {
		sb.WriteString(fmt.Sprintf("  %2d. %-24s %s\n", i+1, c.Name, humanize.Comma(int64(c.Count))))
	}
	sb.WriteString("\n")
}

// writeColumns writes the describe table of every numeric column.
func (w *SimpleWriter) writeColumns(sb *strings.Builder, report *model.JobReport) {
	if len(report.Columns) == 0 {
		return
	}
	w.writeSection(sb, "NUMERIC COLUMNS")
	_ = WriteDescribe(sb, report.Columns) //nolint:errcheck // strings.Builder never fails
	sb.WriteString("\n")
}

// writeArtifacts lists the files written by the run.
func (w *SimpleWriter) writeArtifacts(sb *strings.Builder, report *model.JobReport) {
	w.writeSection(sb, "OUTPUT FILES")

	artifacts := []struct {
		label string
		path  string
	}{
		{"Company sizes", report.Charts.CompanySize},
		{"Job growth", report.Charts.JobGrowth},
		{"Skills", report.Charts.Skills},
		{"Report", report.ReportFile},
	}
	for _, a := range artifacts {
		path := a.path
		if path == "" {
			path = "(not written)"
		}
		sb.WriteString(fmt.Sprintf("  %-14s %s\n", a.label+":", path))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}
