package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/jobreport/internal/model"
)

// createTestReport creates a report with sample data for testing.
func createTestReport() *model.JobReport {
	report := model.NewJobReport("/data/ai_job_market_insights.csv")
	report.GeneratedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	report.Rows = 500
	report.Salary = &model.Summary{
		Count: 4, Mean: 25, Std: 12.91, Min: 10, P25: 17.5, Median: 25, P75: 32.5, Max: 40,
	}
	report.CompanySizes = &model.CategoryView{
		Column: "Company_Size",
		Counts: []model.CategoryCount{
			{Name: "Small", Count: 3},
			{Name: "Medium", Count: 1},
		},
		Total: 4,
	}
	report.Skills = &model.CategoryView{
		Column: "Required_Skills",
		Counts: []model.CategoryCount{
			{Name: "Python", Count: 3},
			{Name: "SQL", Count: 1},
		},
		Total: 4,
	}
	report.SkillOrder = "descending"
	report.Charts = model.Charts{
		CompanySize: "/out/companysize_histogram.png",
		JobGrowth:   "/out/jobgrowth_histogram.png",
		Skills:      "/out/requiredskill_histogram.png",
	}
	report.ReportFile = "/out/AI-Powered_Job_Report.pdf"
	report.Columns = []model.ColumnSummary{
		{Column: "Salary_USD", Stats: report.Salary},
	}
	return report
}

// TestSimpleWriter tests the human-readable summary writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "AI JOB MARKET REPORT") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "ai_job_market_insights.csv") {
			t.Error("expected output to contain dataset path")
		}
		if !strings.Contains(output, "Complete") {
			t.Error("expected output to contain status")
		}
	})

	t.Run("writes sections", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"SALARY STATISTICS",
			"COMPANY SIZES",
			"75.0%",
			"TOP 2 REQUIRED SKILLS",
			"Python",
			"OUTPUT FILES",
			"AI-Powered_Job_Report.pdf",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
		if strings.Contains(output, "NUMERIC COLUMNS") {
			t.Error("expected describe table only in verbose mode")
		}
	})

	t.Run("verbose adds describe table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "NUMERIC COLUMNS") {
			t.Error("expected describe table in verbose output")
		}
	})

	t.Run("ascending order is labelled", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.SkillOrder = "ascending"

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "LEAST FREQUENT 2 REQUIRED SKILLS") {
			t.Error("expected ascending ranking title")
		}
	})

	t.Run("error and missing data", func(t *testing.T) {
		t.Parallel()

		report := model.NewJobReport("jobs.csv")
		report.ErrorMessage = "step load failed"

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "ERROR - step load failed") {
			t.Error("expected error status")
		}
		if !strings.Contains(output, "No salary data") {
			t.Error("expected missing salary note")
		}
		if !strings.Contains(output, "(not written)") {
			t.Error("expected unwritten artifacts to be marked")
		}
	})
}

// TestJSONWriter tests the JSON summary writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.JobReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Rows != 500 {
			t.Errorf("expected rows 500, got %d", decoded.Rows)
		}
		if decoded.Salary == nil || decoded.Salary.Mean != 25 {
			t.Errorf("expected salary mean 25, got %+v", decoded.Salary)
		}
		if decoded.Charts.Skills != "/out/requiredskill_histogram.png" {
			t.Errorf("unexpected skills chart %q", decoded.Charts.Skills)
		}
	})

	t.Run("compact by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Error("expected a single line of compact JSON")
		}
	})

	t.Run("pretty print", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"dataset\"") {
			t.Error("expected indented output")
		}
	})

	t.Run("custom indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithIndent("", "\t")).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n\t\"dataset\"") {
			t.Error("expected tab-indented output")
		}
	})

	t.Run("version wrapper", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithVersion("v1.2.3")).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded JSONReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Version != "v1.2.3" {
			t.Errorf("expected version v1.2.3, got %q", decoded.Version)
		}
		if decoded.Report == nil || decoded.Report.Rows != 500 {
			t.Error("expected wrapped report")
		}
	})

	t.Run("error is serialized", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.Error = errors.New("boom")

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), `"error":"boom"`) {
			t.Errorf("expected error message in output, got %s", buf.String())
		}
	})
}

// failingWriter is a Writer that always fails.
type failingWriter struct{}

func (failingWriter) Write(*model.JobReport) (int, error) {
	return 0, errors.New("write failed")
}

// TestMultiWriter tests writing to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var text, js bytes.Buffer
		mw := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&js))

		n, err := mw.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text.Len() == 0 || js.Len() == 0 {
			t.Error("expected output from both writers")
		}
		if n != text.Len()+js.Len() {
			t.Errorf("expected %d bytes, got %d", text.Len()+js.Len(), n)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var after bytes.Buffer
		mw := NewMultiWriter(failingWriter{}, NewSimpleWriter(&after))

		if _, err := mw.Write(createTestReport()); err == nil {
			t.Error("expected error")
		}
		if after.Len() != 0 {
			t.Error("expected later writers to be skipped")
		}
	})
}

// TestMarkdownWriter tests the Markdown summary writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes sections", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# AI Job Market Report",
			"## Salary Statistics",
			"## Company Sizes",
			"## Required Skills",
			"## Charts",
			"```mermaid",
			"pie",
			"![Distribution of Company Sizes](/out/companysize_histogram.png)",
			"AI-Powered_Job_Report.pdf",
			"75.0%",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("formats numbers with separators", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.Salary.Mean = 115322.5

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "115,322.50") {
			t.Error("expected thousands separator in salary mean")
		}
	})

	t.Run("ascending order adds a note", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.SkillOrder = "ascending"

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "least frequent skills") {
			t.Error("expected ascending order note")
		}
	})

	t.Run("error status", func(t *testing.T) {
		t.Parallel()

		report := model.NewJobReport("jobs.csv")
		report.Error = errors.New("dataset missing")

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Error - dataset missing") {
			t.Error("expected error status")
		}
		if strings.Contains(output, "## Charts") {
			t.Error("expected no charts section without charts")
		}
	})
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format Format
		want   string
	}{
		{FormatText, "AI JOB MARKET REPORT"},
		{FormatJSON, `"version": "v1.2.3"`},
		{FormatMarkdown, "# AI Job Market Report"},
		{Format("yaml"), "AI JOB MARKET REPORT"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if _, err := NewWriter(tt.format, &buf, "v1.2.3", false).Write(createTestReport()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected output to contain %q:\n%s", tt.want, buf.String())
			}
		})
	}
}
