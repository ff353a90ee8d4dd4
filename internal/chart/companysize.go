package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/nao1215/jobreport/internal/model"
)

// CompanySize renders the company-size shares as a pie chart and writes it
// to path as a PNG. Each slice is labelled with its category name and its
// share to one decimal place.
func CompanySize(view *model.CategoryView, path string, opts ...Option) (string, error) {
	if view.Empty() || view.Sum() == 0 {
		return "", &ChartRenderError{Chart: CompanySizeChart, Path: path, Err: ErrNoData}
	}
	o := newOptions(CompanySizeTitle, opts)

	shares := make([]float64, view.Len())
	for i := range shares {
		shares[i] = view.Share(i)
	}

	p := plot.New()
	p.Title.Text = o.title
	p.HideAxes()
	p.Add(&pie{names: view.Names(), shares: shares})

	if err := save(p, 8*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", &ChartRenderError{Chart: CompanySizeChart, Path: path, Err: fmt.Errorf("save: %w", err)}
	}
	return path, nil
}
