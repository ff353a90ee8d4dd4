package model

// Summary holds the descriptive statistics of one numeric column.
// Values are computed over non-null, non-NaN cells only.
type Summary struct {
	// Count is the number of values the statistics were computed from.
	Count int `json:"count"`
	// Mean is the arithmetic mean.
	Mean float64 `json:"mean"`
	// Std is the sample standard deviation (N-1 denominator).
	Std float64 `json:"std"`
	// Min is the smallest value.
	Min float64 `json:"min"`
	// P25 is the 25th percentile.
	P25 float64 `json:"p25"`
	// Median is the 50th percentile.
	Median float64 `json:"median"`
	// P75 is the 75th percentile.
	P75 float64 `json:"p75"`
	// Max is the largest value.
	Max float64 `json:"max"`
}

// ColumnSummary describes one numeric column of the dataset.
type ColumnSummary struct {
	// Column is the header name.
	Column string `json:"column"`
	// NullCount is the number of null cells in the column.
	NullCount int `json:"null_count"`
	// Stats is nil when the column holds no usable values.
	Stats *Summary `json:"stats,omitempty"`
}

// Count returns the number of values the column's statistics cover.
func (c ColumnSummary) Count() int {
	if c.Stats == nil {
		return 0
	}
	return c.Stats.Count
}
