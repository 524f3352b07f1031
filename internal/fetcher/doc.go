// Package fetcher retrieves HTML documents over HTTP.
//
// It is the crawl's only network dependency: given a URL it returns a
// goquery document or a TransportError, nothing else. Timeouts, body
// size caps, and charset decoding all live here so the crawler can
// treat "a page" as an already-parsed document.
package fetcher
