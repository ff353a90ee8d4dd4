// Package main provides the entry point for the jobreport CLI.
//
// jobreport reads a CSV of AI job postings, prints descriptive statistics,
// renders three charts and assembles them into a PDF report.
//
// Usage:
//
//	jobreport
//	jobreport -b ./data --top-skills 10
//	jobreport describe -d postings.csv
//
// See --help for all available options.
package main

// main is the entry point for jobreport.
func main() {
	Execute()
}
