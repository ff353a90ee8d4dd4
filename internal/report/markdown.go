package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nao1215/jobreport/internal/analysis"
	"github.com/nao1215/jobreport/internal/model"
)

// MarkdownWriter outputs run summaries in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter

	// printer formats numbers with thousands separators.
	printer *message.Printer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
	}
}

// Write outputs the run summary in Markdown format.
func (w *MarkdownWriter) Write(report *model.JobReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSalary(md, report)
	w.writeCompanySizes(md, report)
	w.writeSkills(md, report)
	w.writeCharts(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.JobReport) {
	md.H1("AI Job Market Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Dataset", "`" + report.Dataset + "`"},
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Rows", w.printer.Sprintf("%d", report.Rows)},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.JobReport) string {
	if report.ErrorMessage != "" {
		return "❌ Error - " + report.ErrorMessage
	}
	if report.Error != nil {
		return "❌ Error - " + report.Error.Error()
	}
	return "✅ Complete"
}

// writeSalary writes the salary statistics table.
func (w *MarkdownWriter) writeSalary(md *markdown.Markdown, report *model.JobReport) {
	md.H2("Salary Statistics")
	md.PlainText("")

	s := report.Salary
	if s == nil {
		md.Warningf("No salary values were found in the dataset.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Statistic", "Value (USD)"},
		Rows: [][]string{
			{"Count", w.printer.Sprintf("%d", s.Count)},
			{"Mean", w.printer.Sprintf("%.2f", s.Mean)},
			{"Median", w.printer.Sprintf("%.2f", s.Median)},
			{"Standard Deviation", w.printer.Sprintf("%.2f", s.Std)},
			{"Min", w.printer.Sprintf("%.2f", s.Min)},
			{"25th Percentile", w.printer.Sprintf("%.2f", s.P25)},
			{"75th Percentile", w.printer.Sprintf("%.2f", s.P75)},
			{"Max", w.printer.Sprintf("%.2f", s.Max)},
		},
	})
	md.PlainText("")
}

// writeCompanySizes writes the company-size table and a mermaid pie chart.
func (w *MarkdownWriter) writeCompanySizes(md *markdown.Markdown, report *model.JobReport) {
	view := report.CompanySizes
	if view.Empty() {
		return
	}

	md.H2("Company Sizes")
	md.PlainText("")

	rows := make([][]string, 0, view.Len())
	for i, c := range view.Counts {
		rows = append(rows, []string{c.Name, w.printer.Sprintf("%d", c.Count), fmt.Sprintf("%.1f%%", view.Share(i))})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Company Size", "Postings", "Share"},
		Rows:   rows,
	})
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Distribution of Company Sizes"),
		piechart.WithShowData(true),
	)
	for _, c := range view.Counts {
		chart.LabelAndIntValue(c.Name, uint64(c.Count)) //nolint:gosec // counts are never negative
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeSkills writes the ranked skills table.
func (w *MarkdownWriter) writeSkills(md *markdown.Markdown, report *model.JobReport) {
	view := report.Skills
	if view.Empty() {
		return
	}

	md.H2("Required Skills")
	md.PlainText("")

	if report.SkillOrder == string(analysis.OrderAscending) {
		md.Note("Skills are ranked by ascending frequency: the table lists the least frequent skills.")
		md.PlainText("")
	}

	rows := make([][]string, 0, view.Len())
	for i, c := range view.Counts {
		rows = append(rows, []string{strconv.Itoa(i + 1), c.Name, w.printer.Sprintf("%d", c.Count)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Skill", "Frequency"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeCharts links the rendered chart images and the PDF report.
func (w *MarkdownWriter) writeCharts(md *markdown.Markdown, report *model.JobReport) {
	charts := []struct {
		title string
		path  string
	}{
		{"Distribution of Company Sizes", report.Charts.CompanySize},
		{"Histogram of Job Growth Projections", report.Charts.JobGrowth},
		{"Most Frequent Required Skills", report.Charts.Skills},
	}

	written := false
	for _, c := range charts {
		if c.path != "" {
			written = true
			break
		}
	}
	if !written && report.ReportFile == "" {
		return
	}

	md.H2("Charts")
	md.PlainText("")
	for _, c := range charts {
		if c.path == "" {
			continue
		}
		md.PlainTextf("![%s](%s)", c.title, c.path)
		md.PlainText("")
	}

	if report.ReportFile != "" {
		md.Tip("PDF report: `" + report.ReportFile + "`")
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by jobreport*")
}
