package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the input has no header row.
	ErrEmptyInput = errors.New("empty input: no header row")

	// ErrInvalidHeader is returned when a header name is blank or repeated.
	ErrInvalidHeader = errors.New("invalid header")
)

// DataLoadError reports that the dataset could not be loaded: the file is
// missing or unreadable, or its rows could not be parsed.
type DataLoadError struct {
	// Path is the file that was being loaded. Empty when reading from a stream.
	Path string
	// Err is the underlying cause.
	Err error
}

func (e *DataLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load dataset: %v", e.Err)
	}
	return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}
