package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Chart names used in ChartRenderError.
const (
	CompanySizeChart = "company_size"
	JobGrowthChart   = "job_growth"
	SkillsChart      = "skills"
)

// Default chart titles.
const (
	CompanySizeTitle = "Distribution of Company Sizes"
	JobGrowthTitle   = "Histogram of Job Growth Projections"
)

// DefaultBins is the number of histogram bins used when none is given.
const DefaultBins = 20

var (
	// histogramFill is blue at 70% opacity.
	histogramFill = color.NRGBA{R: 0, G: 0, B: 255, A: 179}

	// skillsFill is the bar colour of the skills chart.
	skillsFill = color.RGBA{R: 0, G: 128, B: 0, A: 255}
)

// SkillsTitle returns the skills chart title for a top-n ranking.
func SkillsTitle(n int) string {
	return fmt.Sprintf("Top %d Most Frequent Required Skills", n)
}

// Option configures a chart.
type Option func(*options)

type options struct {
	title string
}

// WithTitle overrides the chart title.
func WithTitle(title string) Option {
	return func(o *options) {
		if title != "" {
			o.title = title
		}
	}
}

func newOptions(title string, opts []Option) *options {
	o := &options{title: title}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// save renders p as a PNG of the given size and writes it to path,
// creating the parent directory. The image is encoded in memory first.
func save(p *plot.Plot, w, h vg.Length, path string) error {
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return fmt.Errorf("failed to create canvas: %w", err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

// finite returns the finite values of vs.
func finite(vs []float64) []float64 {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
