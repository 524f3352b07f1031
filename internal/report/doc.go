// Package report persists and renders completed crawl reports.
//
// Three writers share the Writer interface: CSVWriter produces the
// quotes and authors files (the run's primary output), SimpleWriter
// prints the terminal summary, and MarkdownWriter renders an optional
// GFM summary. MultiWriter fans a report out to several of them.
package report
