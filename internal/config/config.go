package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The pacing defaults come from the site's modest size and the
// politeness requirement: the crawl must keep a fixed minimum interval
// between outbound requests.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "quotecrawl"

	// DefaultBaseURL is the root of the quotes site. The first listing
	// page lives at the root; pagination links are relative to it.
	DefaultBaseURL = "https://quotes.toscrape.com"

	// DefaultTimeout bounds each HTTP request. The target site is a
	// small static server, so 10 seconds is generous while still
	// guaranteeing a stalled request cannot hang the run.
	DefaultTimeout = 10 * time.Second

	// DefaultPageDelay is the pause between listing-page fetches.
	DefaultPageDelay = 100 * time.Millisecond

	// DefaultAuthorDelay is the pause after each author-profile fetch.
	DefaultAuthorDelay = 50 * time.Millisecond

	// DefaultMaxPages of 0 means pagination alone decides when the
	// crawl ends. Set a positive value to bound runaway pagination.
	DefaultMaxPages = 0

	// DefaultWorkers of 1 keeps author resolution strictly sequential.
	// Values above 1 resolve a page's new authors concurrently while
	// preserving the one-fetch-per-URL guarantee.
	DefaultWorkers = 1

	// DefaultUserAgent identifies quotecrawl in HTTP requests.
	DefaultUserAgent = "quotecrawl/1.0"

	// DefaultMaxBodySize limits response bodies to 5MB.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultQuotesFile is the quotes CSV path when none is given.
	DefaultQuotesFile = "quotes.csv"

	// AuthorsFileName is the fixed file name of the authors CSV,
	// always written next to the quotes file.
	AuthorsFileName = "authors.csv"
)

// Config holds all options for one crawl run.
// It is populated from CLI flags (and optionally a config file) and
// passed through the application explicitly; there is no global state.
type Config struct {
	// BaseURL is the listing URL the crawl starts from.
	BaseURL string

	// Timeout is the per-request deadline for every HTTP fetch.
	Timeout time.Duration

	// PageDelay is the minimum pause between listing-page fetches.
	PageDelay time.Duration

	// AuthorDelay is the minimum pause after each author fetch.
	AuthorDelay time.Duration

	// MaxPages bounds the number of listing pages visited.
	// Zero means unlimited: pagination ends the crawl.
	MaxPages int

	// Workers is the number of concurrent author fetches per page.
	// 1 (the default) means fully sequential operation.
	Workers int

	// UserAgent is the User-Agent header for all requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes.
	MaxBodySize int64

	// QuotesFile is the output path of the quotes CSV. The authors CSV
	// is derived from it; see AuthorsFile.
	QuotesFile string

	// MarkdownSummary enables writing a Markdown crawl summary next to
	// the CSV outputs.
	MarkdownSummary bool

	// SaveToDB enables archiving the run to the SQLite database.
	SaveToDB bool

	// DBDir is the directory holding the SQLite archive.
	// Defaults to the XDG data directory when SaveToDB is set.
	DBDir string

	// ConfigFilePath is an explicit config file path. If empty, the
	// tool searches for .quotecrawl in the current directory and then
	// in the user's home directory.
	ConfigFilePath string

	// Verbose enables debug-level log output.
	Verbose bool
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor instead of relying on zero
// values because most defaults are non-zero, and the constructor
// doubles as documentation of what they are.
func NewConfig() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
		PageDelay:   DefaultPageDelay,
		AuthorDelay: DefaultAuthorDelay,
		MaxPages:    DefaultMaxPages,
		Workers:     DefaultWorkers,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		QuotesFile:  DefaultQuotesFile,
	}
}

// AuthorsFile returns the authors CSV path: a sibling of the quotes
// file in the same directory, named authors.csv.
func (c *Config) AuthorsFile() string {
	return filepath.Join(filepath.Dir(c.QuotesFile), AuthorsFileName)
}

// SummaryFile returns the Markdown summary path: a sibling of the
// quotes file named summary.md.
func (c *Config) SummaryFile() string {
	return filepath.Join(filepath.Dir(c.QuotesFile), "summary.md")
}

// XDGDataDir returns the XDG data directory for quotecrawl.
// On Linux: ~/.local/share/quotecrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks if the configuration is valid, returning a specific
// sentinel error describing the first problem found.
//
// Validation happens once after flag parsing, before any network
// activity, so misconfiguration fails fast with a clear message.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidBaseURL
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.PageDelay < 0 || c.AuthorDelay < 0 {
		return ErrInvalidDelay
	}

	if c.MaxPages < 0 {
		return ErrInvalidMaxPages
	}

	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.QuotesFile == "" {
		return ErrNoOutputPath
	}

	return nil
}
