// Package report produces the outputs of a jobreport run.
//
// The main output is the PDF report built by PDFAssembler, which embeds the
// salary statistics and the three chart images.
//
// This package also contains summary writers for the run itself:
//   - SimpleWriter: human-readable text output for terminal display
//   - JSONWriter: structured JSON output for tool integration
//   - MarkdownWriter: Markdown output for documentation and sharing
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output. WriteDescribe
// prints the describe table of the numeric columns.
package report
