// Package stats computes descriptive statistics over dataset columns.
package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/nao1215/jobreport/internal/dataset"
	"github.com/nao1215/jobreport/internal/model"
)

// ErrNoValues is returned when a summary is requested over no values.
var ErrNoValues = errors.New("no values to summarize")

// Summarize computes count, mean, sample standard deviation, min, quartiles
// and max of values. NaN values are ignored. The input is not modified.
func Summarize(values []float64) (model.Summary, error) {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return model.Summary{}, ErrNoValues
	}
	sort.Float64s(clean)

	mean := stat.Mean(clean, nil)
	std := 0.0
	if len(clean) > 1 {
		std = stat.StdDev(clean, nil)
	}

	return model.Summary{
		Count:  len(clean),
		Mean:   mean,
		Std:    std,
		Min:    floats.Min(clean),
		P25:    Quantile(0.25, clean),
		Median: Quantile(0.5, clean),
		P75:    Quantile(0.75, clean),
		Max:    floats.Max(clean),
	}, nil
}

// Quantile returns the p-quantile of sorted using linear interpolation
// between the closest ranks: h = (n-1)p, q = x[⌊h⌋] + (h-⌊h⌋)(x[⌊h⌋+1]-x[⌊h⌋]).
// sorted must be in ascending order. It returns NaN for an empty slice.
//
// This is Hyndman-Fan type 7. gonum's stat.Quantile implements types 1 and 4 only.
func Quantile(p float64, sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	h := float64(n-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= n {
		return sorted[n-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Describe summarizes every numeric column of t in header order.
// A table without numeric columns yields an empty slice.
func Describe(t *dataset.Table) []model.ColumnSummary {
	out := make([]model.ColumnSummary, 0)
	for _, col := range t.Columns() {
		if col.Kind() != dataset.KindFloat {
			continue
		}
		out = append(out, DescribeColumn(col))
	}
	return out
}

// DescribeColumn summarizes a single numeric column. Stats is nil when the
// column holds no usable values.
func DescribeColumn(col *dataset.Column) model.ColumnSummary {
	cs := model.ColumnSummary{
		Column:    col.Name(),
		NullCount: col.NullCount(),
	}
	if s, err := Summarize(col.Floats()); err == nil {
		cs.Stats = &s
	}
	return cs
}
