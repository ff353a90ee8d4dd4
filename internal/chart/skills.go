package chart

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/nao1215/jobreport/internal/model"
)

// Skills renders the ranked skills as a bar chart in view order and writes
// it to path as a PNG. The title defaults to SkillsTitle(view.Len()); pass
// WithTitle(SkillsTitle(n)) to name the configured ranking size instead.
func Skills(view *model.CategoryView, path string, opts ...Option) (string, error) {
	if view.Empty() {
		return "", &ChartRenderError{Chart: SkillsChart, Path: path, Err: ErrNoData}
	}
	o := newOptions(SkillsTitle(view.Len()), opts)

	values := make(plotter.Values, view.Len())
	for i, c := range view.Counts {
		values[i] = float64(c.Count)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(25))
	if err != nil {
		return "", &ChartRenderError{Chart: SkillsChart, Path: path, Err: fmt.Errorf("bar chart: %w", err)}
	}
	bars.Color = skillsFill
	bars.LineStyle.Width = 0

	p := plot.New()
	p.Title.Text = o.title
	p.X.Label.Text = "Skills"
	p.Y.Label.Text = "Frequency"
	p.Add(bars)
	p.NominalX(view.Names()...)

	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	if err := save(p, 14*vg.Inch, 8*vg.Inch, path); err != nil {
		return "", &ChartRenderError{Chart: SkillsChart, Path: path, Err: fmt.Errorf("save: %w", err)}
	}
	return path, nil
}
