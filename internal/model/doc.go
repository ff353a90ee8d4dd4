// Package model defines the data structures shared by the jobreport pipeline.
//
// This package contains the following main types:
//   - JobReport: the accumulator every pipeline step reads and writes
//   - Summary and ColumnSummary: descriptive statistics of numeric columns
//   - CategoryView and GrowthView: aggregate views derived from the table
//   - Charts: the paths of the rendered chart images
//
// Models live in their own package so that the analysis, chart, report and
// pipeline packages can share them without import cycles. They serialize to
// JSON for the summary writers.
package model
