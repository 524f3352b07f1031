package fetcher

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// Default limits applied when no option overrides them.
const (
	// defaultMaxBodySize caps response bodies at 5MB. Listing and
	// profile pages are tiny; anything larger is not worth parsing.
	defaultMaxBodySize = 5 * 1024 * 1024

	// defaultUserAgent identifies quotecrawl in HTTP requests so site
	// operators can recognize scraper traffic in their logs.
	defaultUserAgent = "quotecrawl/1.0"
)

// Fetcher is implemented by anything that can turn a URL into a parsed
// HTML document. The crawler depends on this interface rather than on
// Client so tests can substitute fixture documents.
type Fetcher interface {
	// Fetch retrieves and parses the document at pageURL.
	// It returns a *TransportError when the request fails or the
	// server responds with a non-success status.
	Fetch(ctx context.Context, pageURL string) (*goquery.Document, error)
}

// Client fetches HTML documents over HTTP and parses them with goquery.
//
// Every request carries a bounded deadline via the underlying
// http.Client timeout, so a stalled server cannot hang the crawl
// indefinitely. Bodies are size-capped and decoded to UTF-8 based on
// the response charset before parsing.
type Client struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// NewClient creates a Client whose requests time out after the given
// duration. A timeout of zero disables the deadline; callers should
// always pass a positive value.
func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		client:      &http.Client{Timeout: timeout},
		userAgent:   defaultUserAgent,
		maxBodySize: defaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch retrieves pageURL and returns the parsed document.
//
// Any failure on the way to a parsed document - request construction,
// transport, non-2xx status, charset decoding, HTML parsing - surfaces
// as a *TransportError. Callers decide whether that is fatal: listing
// pages propagate it, author pages absorb it.
func (c *Client) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &TransportError{URL: pageURL, Err: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	// Decode to UTF-8 using the declared or sniffed charset before
	// handing the body to goquery.
	body := io.LimitReader(resp.Body, c.maxBodySize)
	utf8Body, err := charset.NewReader(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &TransportError{URL: pageURL, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		return nil, &TransportError{URL: pageURL, Err: err}
	}

	return doc, nil
}
