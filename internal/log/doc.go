// Package log provides the jobreport logger, built on top of the standard
// slog package.
//
// This package extends slog to provide:
//   - Rewriting of absolute paths below the base directory to short,
//     relative paths
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true, "/srv/jobs") // verbose=true
//
//	logger.Info("chart written",
//	    "path", "/srv/jobs/companysize_histogram.png", // logged as "companysize_histogram.png"
//	)
//
//	slog.SetDefault(logger)
package log
