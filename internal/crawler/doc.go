// Package crawler implements the quotes-site crawl: pagination over
// listing pages, quote extraction, and author-profile resolution with
// a per-run deduplication cache.
//
// # Architecture
//
// The Spider type owns the crawl loop. Each iteration fetches the
// current listing page, extracts its quote entries and author links,
// resolves any authors not yet cached, and advances to the page's
// "next" link. Pagination is strictly sequential because the next URL
// is only known after the current page is parsed.
//
// Design decision: We implement the loop ourselves rather than using a
// crawling framework because:
//  1. The pagination, ordering, and dedup semantics are the product here
//  2. Politeness pacing must sit at exact points in the loop
//  3. The site is one linear chain of pages; frontier management is trivial
//
// # Error policy
//
// Listing-page fetch failures are fatal: every later page hangs off
// the current one, so the run aborts and nothing is written. Author
// failures are absorbed into degraded records, and individual missing
// fields degrade to empty strings with a logged warning.
//
// # Politeness
//
// A fixed pacing delay follows each author fetch and separates page
// fetches. The delays are configurable minimum intervals, not retries
// or back-off.
package crawler
