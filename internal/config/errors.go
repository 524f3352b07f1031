package config

import "errors"

// Configuration validation errors.
// These are returned by Config.Validate so callers can match them with
// errors.Is while users still get a readable message.
var (
	// ErrInvalidBaseURL is returned when the base URL is empty or not
	// an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute URL with scheme and host")

	// ErrInvalidTimeout is returned when the request timeout is not
	// positive. A zero deadline would allow fetches to hang forever.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidDelay is returned when a pacing delay is negative.
	// Use 0 to disable a delay (tests do; production should not).
	ErrInvalidDelay = errors.New("invalid pacing delay: must be non-negative")

	// ErrInvalidMaxPages is returned when the page limit is negative.
	// Use 0 for unlimited.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be non-negative")

	// ErrInvalidWorkers is returned when the worker count is not
	// positive. 1 means sequential author resolution.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrInvalidMaxBodySize is returned when the body size cap is
	// negative. Use 0 for the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrNoOutputPath is returned when the quotes CSV path is empty.
	ErrNoOutputPath = errors.New("no output path: quotes CSV path must not be empty")
)
