package report

import (
	"io"

	"github.com/nao1215/jobreport/internal/model"
)

// Writer writes a run summary.
type Writer interface {
	// Write outputs the summary of report and returns the number of bytes
	// written.
	Write(report *model.JobReport) (int, error)
}

// Format names a run summary format.
type Format string

// Supported summary formats.
const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// NewWriter returns the writer for format. JSON output is pretty printed
// and stamped with version; verbose adds the describe section to text
// output. Unknown formats fall back to text.
func NewWriter(format Format, output io.Writer, version string, verbose bool) Writer {
	switch format {
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint(), WithVersion(version))
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	default:
		return NewSimpleWriter(output, WithVerbose(verbose))
	}
}

// MultiWriter writes the same summary through several Writers, e.g. a
// JSON file and a text summary on the terminal.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write writes to each Writer in order and returns the total byte count.
// It stops at the first error.
func (m *MultiWriter) Write(report *model.JobReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter holds the destination shared by every writer.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
