// Package main provides the entry point for the quotecrawl CLI.
//
// quotecrawl collects quotes from a paginated quote listing site and
// exports them, together with resolved author profiles, as CSV files.
//
// Usage:
//
//	quotecrawl crawl
//	quotecrawl crawl out/quotes.csv --markdown
//
// See --help for all available options.
package main

// main is the entry point for quotecrawl.
func main() {
	Execute()
}
