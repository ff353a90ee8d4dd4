package chart

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when a chart has nothing to plot.
var ErrNoData = errors.New("no data to plot")

// ChartRenderError reports a failure to plot or save a chart.
type ChartRenderError struct {
	// Chart names the chart, e.g. "company_size".
	Chart string
	// Path is the image path that was being written.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ChartRenderError) Error() string {
	return fmt.Sprintf("failed to render %s chart to %s: %v", e.Chart, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ChartRenderError) Unwrap() error {
	return e.Err
}
