package model

import "time"

// CrawlReport accumulates everything produced by one crawl run.
// It is created by the crawler and handed to the report writers and the
// optional run archive once pagination is exhausted.
//
// Design decision: We collect results into a single report value rather
// than streaming rows to the writers because:
//  1. The output files need complete, consistent datasets
//  2. A fatal mid-crawl failure must not leave partial files behind
//  3. Quote volumes on a paginated listing site are small relative to memory
type CrawlReport struct {
	// StartURL is the listing URL the crawl started from.
	StartURL string `json:"start_url"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total crawl duration.
	Elapsed time.Duration `json:"elapsed"`

	// PagesVisited is the number of listing pages fetched.
	PagesVisited int `json:"pages_visited"`

	// Quotes holds every successfully extracted quote, in the exact
	// order its source page was visited. Duplicates are not removed.
	Quotes []Quote `json:"quotes"`

	// Authors holds one record per distinct author-profile URL, in
	// cache-insertion order. Each URL was fetched at most once.
	Authors []AuthorRecord `json:"authors"`
}

// NewCrawlReport creates an empty report for the given start URL.
func NewCrawlReport(startURL string) *CrawlReport {
	return &CrawlReport{
		StartURL:  startURL,
		StartedAt: time.Now(),
	}
}

// QuoteCount returns the number of retained quotes.
func (r *CrawlReport) QuoteCount() int { return len(r.Quotes) }

// AuthorCount returns the number of distinct resolved authors.
func (r *CrawlReport) AuthorCount() int { return len(r.Authors) }

// DegradedAuthorCount returns the number of author records whose fetch
// failed outright, leaving every field empty.
func (r *CrawlReport) DegradedAuthorCount() int {
	n := 0
	for _, rec := range r.Authors {
		if rec.Author.IsEmpty() {
			n++
		}
	}
	return n
}
