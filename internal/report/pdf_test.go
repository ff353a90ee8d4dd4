package report

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/jobreport/internal/model"
	"github.com/nao1215/jobreport/internal/stats"
)

// writePNG writes a small solid image to dir/name and returns its path.
func writePNG(t *testing.T, dir, name string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		for y := 0; y < 30; y++ {
			img.Set(x, y, color.RGBA{R: 0, G: 128, B: 0, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// testCharts writes the three chart images into dir.
func testCharts(t *testing.T, dir string) model.Charts {
	t.Helper()

	return model.Charts{
		CompanySize: writePNG(t, dir, "companysize_histogram.png"),
		JobGrowth:   writePNG(t, dir, "jobgrowth_histogram.png"),
		Skills:      writePNG(t, dir, "requiredskill_histogram.png"),
	}
}

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestPDFAssemblerAssemble(t *testing.T) {
	t.Parallel()

	t.Run("writes a pdf", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		charts := testCharts(t, dir)
		path := filepath.Join(dir, "out", "AI-Powered_Job_Report.pdf")

		a := NewPDFAssembler(WithClock(fixedClock))
		if err := a.Assemble([]float64{10, 20, 30, 40}, charts, path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path) //nolint:gosec // test file
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Error("expected output to start with %PDF")
		}
	})

	t.Run("fixed clock gives identical output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		charts := testCharts(t, dir)
		a := NewPDFAssembler(WithClock(fixedClock))

		assemble := func(name string) []byte {
			path := filepath.Join(dir, name)
			if err := a.Assemble([]float64{10, 20, 30, 40}, charts, path); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			data, err := os.ReadFile(path) //nolint:gosec // test file
			if err != nil {
				t.Fatal(err)
			}
			return data
		}

		first := assemble("first.pdf")
		// Cross a wall-clock second so any unpinned timestamp would differ.
		time.Sleep(1100 * time.Millisecond)
		second := assemble("second.pdf")

		if !bytes.Equal(first, second) {
			t.Error("expected repeated runs with a fixed clock to produce identical bytes")
		}
		if !bytes.Contains(first, []byte("/ModDate (D:20240601120000")) {
			t.Error("expected the modification date to follow the clock")
		}
	})

	t.Run("overwrites an existing report", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		charts := testCharts(t, dir)
		path := filepath.Join(dir, "report.pdf")
		if err := os.WriteFile(path, []byte("stale"), 0600); err != nil {
			t.Fatal(err)
		}

		if err := NewPDFAssembler().Assemble([]float64{1}, charts, path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(path) //nolint:gosec // test file
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Error("expected stale file to be replaced")
		}
	})

	t.Run("missing chart image", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		charts := testCharts(t, dir)
		if err := os.Remove(charts.JobGrowth); err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(dir, "report.pdf")

		err := NewPDFAssembler().Assemble([]float64{1, 2}, charts, path)

		var writeErr *ReportWriteError
		if !errors.As(err, &writeErr) {
			t.Fatalf("expected ReportWriteError, got %v", err)
		}
		if !errors.Is(err, ErrMissingChart) {
			t.Errorf("expected ErrMissingChart, got %v", err)
		}
		if writeErr.Path != charts.JobGrowth {
			t.Errorf("expected the missing chart path, got %q", writeErr.Path)
		}
		if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
			t.Error("expected no report file to be created")
		}
	})

	t.Run("empty chart image", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		charts := testCharts(t, dir)
		if err := os.WriteFile(charts.Skills, nil, 0600); err != nil {
			t.Fatal(err)
		}

		err := NewPDFAssembler().Assemble([]float64{1}, charts, filepath.Join(dir, "report.pdf"))
		if !errors.Is(err, ErrMissingChart) {
			t.Errorf("expected ErrMissingChart, got %v", err)
		}
	})

	t.Run("unset chart path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		charts := testCharts(t, dir)
		charts.CompanySize = ""

		err := NewPDFAssembler().Assemble([]float64{1}, charts, filepath.Join(dir, "report.pdf"))
		if !errors.Is(err, ErrMissingChart) {
			t.Errorf("expected ErrMissingChart, got %v", err)
		}
	})

	t.Run("no salary values", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "report.pdf")

		err := NewPDFAssembler().Assemble(nil, testCharts(t, dir), path)

		var writeErr *ReportWriteError
		if !errors.As(err, &writeErr) {
			t.Fatalf("expected ReportWriteError, got %v", err)
		}
		if !errors.Is(err, stats.ErrNoValues) {
			t.Errorf("expected stats.ErrNoValues, got %v", err)
		}
		if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
			t.Error("expected no report file to be created")
		}
	})
}

func TestSalaryLines(t *testing.T) {
	t.Parallel()

	s, err := stats.Summarize([]float64{10, 20, 30, 40})
	if err != nil {
		t.Fatal(err)
	}

	lines := salaryLines(s)
	want := []string{
		"Mean Salary: 25.00",
		"Median Salary: 25.00",
		"Standard Deviation of Salary: 12.91",
		"Min Salary: 10.00",
		"Percentile 25 Salary: 17.50",
		"Percentile 75 Salary: 32.50",
		"Max Salary: 40.00",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, expected %q", i, lines[i], want[i])
		}
	}
}
