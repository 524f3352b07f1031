package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"quotecrawl/internal/model"
)

// MarkdownWriter outputs a crawl summary in GitHub Flavored Markdown.
// This format is meant for committing next to the exported CSVs or
// pasting into documentation.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation because it gives type-safe tables and GFM alerts
// without hand-rolled string formatting.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report summary as Markdown.
func (w *MarkdownWriter) Write(report *model.CrawlReport) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Quote Crawl Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Start URL", "`" + report.StartURL + "`"},
			{"Crawl Date", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Pages Visited", strconv.Itoa(report.PagesVisited)},
			{"Quotes", strconv.Itoa(report.QuoteCount())},
			{"Distinct Authors", strconv.Itoa(report.AuthorCount())},
			{"Elapsed", report.Elapsed.Round(fmtPrecision).String()},
		},
	})
	md.PlainText("")

	w.writeAuthors(md, report)
	w.writeAlert(md, report)

	return md.Build()
}

// writeAuthors writes the resolved author table in cache-insertion order.
func (w *MarkdownWriter) writeAuthors(md *markdown.Markdown, report *model.CrawlReport) {
	md.H2("Authors")
	md.PlainText("")

	if len(report.Authors) == 0 {
		md.PlainText("No authors resolved.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Authors))
	for _, rec := range report.Authors {
		name := rec.Author.Name
		if rec.Author.IsEmpty() {
			name = "(fetch failed)"
		}
		rows = append(rows, []string{name, rec.Author.BirthDate, rec.Author.BirthLocation})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Name", "Born", "Location"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeAlert flags degraded author records.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.CrawlReport) {
	if degraded := report.DegradedAuthorCount(); degraded > 0 {
		md.Warningf("%d author profile(s) could not be fetched; their rows carry empty fields.", degraded)
		md.PlainText("")
		return
	}
	md.Note("All referenced author profiles were resolved.")
	md.PlainText("")
}

// MarkdownFileWriter writes the Markdown summary to a file. The file is
// created inside Write, like the CSV files, so a run that aborts before
// export leaves no summary behind.
type MarkdownFileWriter struct {
	path string
}

// NewMarkdownFileWriter creates a MarkdownFileWriter targeting the
// given file path.
func NewMarkdownFileWriter(path string) *MarkdownFileWriter {
	return &MarkdownFileWriter{path: path}
}

// Write creates the summary file and renders the report into it.
func (w *MarkdownFileWriter) Write(report *model.CrawlReport) error {
	f, err := createOutputFile(w.path)
	if err != nil {
		return fmt.Errorf("write markdown summary: %w", err)
	}

	if err := NewMarkdownWriter(f).Write(report); err != nil {
		_ = f.Close()
		return fmt.Errorf("write markdown summary: %w", err)
	}
	return f.Close()
}
