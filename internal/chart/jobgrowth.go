package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/nao1215/jobreport/internal/model"
)

// JobGrowth renders the job-growth projections and writes the image to
// path as a PNG. A numeric view becomes a histogram with the given number
// of bins (DefaultBins when bins <= 0). A categorical view becomes one
// bar per label in the same style.
func JobGrowth(view *model.GrowthView, bins int, path string, opts ...Option) (string, error) {
	if view.Empty() {
		return "", &ChartRenderError{Chart: JobGrowthChart, Path: path, Err: ErrNoData}
	}
	if bins <= 0 {
		bins = DefaultBins
	}
	o := newOptions(JobGrowthTitle, opts)

	p := plot.New()
	p.Title.Text = o.title
	p.X.Label.Text = "Job Growth Projection"
	p.Y.Label.Text = "Frequency"
	p.Add(plotter.NewGrid())

	var err error
	if view.Categorical() {
		err = addCategoryBars(p, view.Categories)
	} else {
		err = addHistogram(p, view.Values, bins)
	}
	if err != nil {
		return "", &ChartRenderError{Chart: JobGrowthChart, Path: path, Err: err}
	}

	if err := save(p, 10*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", &ChartRenderError{Chart: JobGrowthChart, Path: path, Err: fmt.Errorf("save: %w", err)}
	}
	return path, nil
}

func addHistogram(p *plot.Plot, values []float64, bins int) error {
	vs := finite(values)
	if len(vs) == 0 {
		return ErrNoData
	}

	h, err := plotter.NewHist(plotter.Values(vs), bins)
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	h.FillColor = histogramFill
	h.LineStyle.Width = vg.Points(0.5)
	p.Add(h)
	return nil
}

func addCategoryBars(p *plot.Plot, view *model.CategoryView) error {
	values := make(plotter.Values, view.Len())
	for i, c := range view.Counts {
		values[i] = float64(c.Count)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = histogramFill
	bars.LineStyle.Width = vg.Points(0.5)
	p.Add(bars)
	p.NominalX(view.Names()...)
	return nil
}
