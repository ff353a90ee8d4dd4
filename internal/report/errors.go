package report

import (
	"errors"
	"fmt"
)

// ErrMissingChart is returned when a chart image the report embeds is
// missing, empty or not a regular file.
var ErrMissingChart = errors.New("chart image is missing")

// ReportWriteError reports a failure to build or write the PDF report.
type ReportWriteError struct { //nolint:revive // name reads well at call sites
	// Path is the report path, or the chart path for ErrMissingChart.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ReportWriteError) Error() string {
	return fmt.Sprintf("failed to write report %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReportWriteError) Unwrap() error {
	return e.Err
}
