package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"quotecrawl/internal/model"
)

// fmtPrecision rounds the elapsed time for display.
const fmtPrecision = time.Millisecond

// SimpleWriter outputs a human-readable crawl summary.
//
// Design decision: We use plain text without ANSI colors because it
// works in every terminal and pipes cleanly to files and other tools.
type SimpleWriter struct {
	baseWriter

	// quotesPath and authorsPath are echoed in the summary so users
	// can see where the outputs landed.
	quotesPath  string
	authorsPath string
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given
// writer and mentions the two output paths in its summary.
func NewSimpleWriter(output io.Writer, quotesPath, authorsPath string) *SimpleWriter {
	return &SimpleWriter{
		baseWriter:  newBaseWriter(output),
		quotesPath:  quotesPath,
		authorsPath: authorsPath,
	}
}

// Write outputs the summary.
func (w *SimpleWriter) Write(report *model.CrawlReport) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Crawl of %s complete.\n", report.StartURL)
	fmt.Fprintf(&sb, "  pages visited: %d\n", report.PagesVisited)
	fmt.Fprintf(&sb, "  quotes:        %d -> %s\n", report.QuoteCount(), w.quotesPath)
	fmt.Fprintf(&sb, "  authors:       %d -> %s\n", report.AuthorCount(), w.authorsPath)
	if degraded := report.DegradedAuthorCount(); degraded > 0 {
		fmt.Fprintf(&sb, "  degraded:      %d author(s) could not be fetched\n", degraded)
	}
	fmt.Fprintf(&sb, "  elapsed:       %s\n", report.Elapsed.Round(fmtPrecision))

	_, err := io.WriteString(w.output, sb.String())
	return err
}
