package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration. Callers can use
// errors.Is() for programmatic error handling.
var (
	// ErrEmptyBaseDir is returned when no base directory is set.
	ErrEmptyBaseDir = errors.New("base directory must not be empty")

	// ErrEmptyPath is returned when the dataset, a chart or the report path is empty.
	ErrEmptyPath = errors.New("file path must not be empty")

	// ErrEmptyColumn is returned when a dataset column name is empty.
	ErrEmptyColumn = errors.New("column name must not be empty")

	// ErrInvalidTopSkills is returned when the number of ranked skills is not positive.
	ErrInvalidTopSkills = errors.New("invalid top skills: must be positive")

	// ErrInvalidSkillOrder is returned when the skill order is neither
	// "descending" nor "ascending".
	ErrInvalidSkillOrder = errors.New("invalid skill order: must be descending or ascending")

	// ErrInvalidBins is returned when the histogram bin count is not positive.
	ErrInvalidBins = errors.New("invalid histogram bins: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one summary format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
