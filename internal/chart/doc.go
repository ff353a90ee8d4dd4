// Package chart renders the report charts as PNG images with gonum/plot.
//
// There are three charts:
//   - CompanySize: a pie chart of the company-size shares
//   - JobGrowth: a histogram of the job-growth projections
//   - Skills: a bar chart of the most frequent required skills
//
// Each function takes a prepared view from package analysis, writes the
// image to the given path and returns that path. Images are rendered into
// memory first, so a failed render never leaves a partial file behind.
package chart
