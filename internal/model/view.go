package model

// CategoryCount is one entry of an aggregate view.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CategoryView maps categorical keys of a column to occurrence counts.
// The order of Counts is the presentation order.
type CategoryView struct {
	// Column is the dataset column the view was derived from.
	Column string `json:"column"`
	// Counts holds the categories in presentation order.
	Counts []CategoryCount `json:"counts"`
	// Total is the sum of all counts that were considered. For ranked views
	// it covers every category, including the ones cut from Counts.
	Total int `json:"total"`
}

// Len returns the number of categories in the view.
func (v *CategoryView) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Counts)
}

// Empty reports whether the view has no categories.
func (v *CategoryView) Empty() bool {
	return v.Len() == 0
}

// Sum returns the sum of the counts currently in the view.
func (v *CategoryView) Sum() int {
	sum := 0
	for _, c := range v.Counts {
		sum += c.Count
	}
	return sum
}

// Share returns the percentage of category i relative to the counts in the
// view. Shares of a view sum to 100.
func (v *CategoryView) Share(i int) float64 {
	sum := v.Sum()
	if sum == 0 {
		return 0
	}
	return float64(v.Counts[i].Count) * 100 / float64(sum)
}

// Names returns the category names in presentation order.
func (v *CategoryView) Names() []string {
	names := make([]string, len(v.Counts))
	for i, c := range v.Counts {
		names[i] = c.Name
	}
	return names
}

// GrowthView is the job-growth projection column prepared for plotting.
// Numeric columns fill Values; text columns fill Categories.
type GrowthView struct {
	// Column is the dataset column the view was derived from.
	Column string `json:"column"`
	// Values holds the non-null, non-NaN projections of a numeric column.
	Values []float64 `json:"values,omitempty"`
	// Stats summarizes Values. Nil for categorical columns.
	Stats *Summary `json:"stats,omitempty"`
	// Categories counts the labels of a text column.
	Categories *CategoryView `json:"categories,omitempty"`
	// NullCount is the number of null cells in the column.
	NullCount int `json:"null_count"`
}

// Categorical reports whether the view holds category counts instead of
// numeric values.
func (g *GrowthView) Categorical() bool {
	return g.Categories != nil
}

// Empty reports whether there is nothing to plot.
func (g *GrowthView) Empty() bool {
	if g == nil {
		return true
	}
	if g.Categorical() {
		return g.Categories.Empty()
	}
	return len(g.Values) == 0
}
