package report

import (
	"io"

	"quotecrawl/internal/model"
)

// Writer is implemented by everything that can persist or render a
// completed crawl report: the CSV exporter, the terminal summary, and
// the Markdown summary.
type Writer interface {
	// Write outputs the report to the writer's destination.
	// Any failure is fatal to the run; writers do not partially
	// recover a sink error.
	Write(report *model.CrawlReport) error
}

// MultiWriter writes a report to multiple Writers in order.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface deals in reports,
// not raw bytes. Order matters: the CSV exporter runs before the
// terminal summary so the summary never reports files that were not
// written.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to every configured Writer, stopping on the
// first error.
func (m *MultiWriter) Write(report *model.CrawlReport) error {
	for _, w := range m.writers {
		if err := w.Write(report); err != nil {
			return err
		}
	}
	return nil
}

// baseWriter provides the shared output destination for stream-based
// report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
