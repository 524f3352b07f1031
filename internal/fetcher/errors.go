package fetcher

import "fmt"

// TransportError reports a document fetch that did not yield a parsed
// page: network failure, non-success HTTP status, or an unreadable body.
//
// Design decision: We use a single typed error rather than separate
// status and network errors because callers never distinguish them -
// the propagation policy depends only on which kind of page was being
// fetched, not on why the fetch failed.
type TransportError struct {
	// URL is the URL whose fetch failed.
	URL string

	// StatusCode is the HTTP status code when the server responded
	// with a non-success status. Zero when no response was received.
	StatusCode int

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: http status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error for errors.Is / errors.As chains.
func (e *TransportError) Unwrap() error { return e.Err }
