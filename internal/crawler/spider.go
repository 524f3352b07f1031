package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"quotecrawl/internal/config"
	"quotecrawl/internal/fetcher"
	"quotecrawl/internal/model"
)

// Spider crawls the paginated quote listing and resolves the author
// profiles it discovers.
//
// The crawl is a plain loop over "current page URL or none": each
// iteration fetches one listing page, accumulates its quotes, resolves
// any author URLs not seen before, and advances to the page's reported
// next URL. The loop terminates the first time a page carries no next
// control. No cycle detection is performed; the source site's
// pagination is assumed acyclic.
type Spider struct {
	// fetcher retrieves and parses documents. It is an interface so
	// tests can substitute fixtures.
	fetcher fetcher.Fetcher

	// logger receives per-record degradation warnings.
	logger *slog.Logger

	// pageDelay is the pause between listing-page fetches.
	pageDelay time.Duration

	// authorDelay is the pause after each author-profile fetch.
	authorDelay time.Duration

	// maxPages bounds the number of listing pages visited.
	// Zero means pagination alone decides when the crawl ends.
	maxPages int

	// workers is the author-fetch concurrency per page. 1 keeps the
	// crawl strictly sequential.
	workers int
}

// Option configures a Spider.
type Option func(*Spider)

// WithLogger sets a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Spider) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPageDelay sets the pause between listing-page fetches.
func WithPageDelay(d time.Duration) Option {
	return func(s *Spider) {
		s.pageDelay = d
	}
}

// WithAuthorDelay sets the pause after each author fetch.
func WithAuthorDelay(d time.Duration) Option {
	return func(s *Spider) {
		s.authorDelay = d
	}
}

// WithMaxPages bounds the number of listing pages visited.
func WithMaxPages(n int) Option {
	return func(s *Spider) {
		s.maxPages = n
	}
}

// WithWorkers sets the author-fetch concurrency per page.
// Values below 1 are treated as 1.
func WithWorkers(n int) Option {
	return func(s *Spider) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewSpider creates a Spider using the given document fetcher.
//
// Design decision: We require an external fetcher because:
//  1. HTTP configuration (timeout, user agent) lives in the fetcher package
//  2. Tests substitute a fixture fetcher without a network
//  3. The crawler stays a pure traversal of documents
func NewSpider(f fetcher.Fetcher, opts ...Option) *Spider {
	s := &Spider{
		fetcher:     f,
		pageDelay:   config.DefaultPageDelay,
		authorDelay: config.DefaultAuthorDelay,
		workers:     config.DefaultWorkers,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// FetchPage fetches one listing page and extracts its quotes, author
// links, and next-page URL.
//
// Transport failures propagate to the caller: listing pages are
// structurally required, and losing one means losing every page behind
// it, so there is no local recovery.
func (s *Spider) FetchPage(ctx context.Context, pageURL string) (*PageResult, error) {
	doc, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}

	return parseListing(doc, base), nil
}

// FetchAuthor fetches one author-profile page and extracts its
// biographical fields.
//
// Unlike listing pages, author failures are absorbed: a transport
// error is logged and yields an all-empty Author so one unreachable
// profile never aborts the crawl. Missing fields degrade individually
// inside parseAuthor.
func (s *Spider) FetchAuthor(ctx context.Context, profileURL string) model.Author {
	doc, err := s.fetcher.Fetch(ctx, profileURL)
	if err != nil {
		s.logger.Warn("author fetch failed", "url", profileURL, "error", err)
		return model.Author{}
	}
	return parseAuthor(doc, profileURL, s.logger)
}

// Crawl drives pagination to exhaustion starting from startURL and
// returns the assembled report.
//
// Quotes are finalized in the exact order their source pages were
// visited. Author-profile URLs are resolved at most once per run:
// links are deduplicated per page and against the set of URLs already
// resolved, and only the remainder is fetched.
func (s *Spider) Crawl(ctx context.Context, startURL string) (*model.CrawlReport, error) {
	start, err := url.Parse(startURL)
	if err != nil || start.Scheme == "" || start.Host == "" {
		return nil, fmt.Errorf("invalid start URL %q", startURL)
	}

	report := model.NewCrawlReport(startURL)
	resolved := make(map[string]bool)

	current := startURL
	for current != "" {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		page, err := s.FetchPage(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("listing page %s: %w", current, err)
		}

		report.Quotes = append(report.Quotes, page.Quotes...)
		report.PagesVisited++

		// Dedup within the page first, then against URLs already
		// resolved, preserving first-seen order.
		var fresh []string
		for _, link := range page.AuthorLinks {
			if resolved[link] {
				continue
			}
			resolved[link] = true
			fresh = append(fresh, link)
		}

		if err := s.resolveAuthors(ctx, fresh, report); err != nil {
			return nil, err
		}

		s.logger.Debug("page crawled",
			"url", current,
			"quotes", len(page.Quotes),
			"newAuthors", len(fresh),
			"next", page.NextURL,
		)

		if s.maxPages > 0 && report.PagesVisited >= s.maxPages {
			break
		}

		current = page.NextURL
		if current != "" && s.pageDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.pageDelay):
			}
		}
	}

	report.Elapsed = time.Since(report.StartedAt)
	return report, nil
}

// resolveAuthors fetches the given profile URLs and appends one record
// per URL to the report, preserving the order of links.
//
// links are already deduplicated on the loop thread before dispatch,
// so each URL is fetched exactly once even when workers > 1. With
// concurrency, each goroutine writes a distinct slice element, so no
// further synchronization around the results is needed.
func (s *Spider) resolveAuthors(ctx context.Context, links []string, report *model.CrawlReport) error {
	if len(links) == 0 {
		return nil
	}

	if s.workers <= 1 {
		for _, link := range links {
			report.Authors = append(report.Authors, model.AuthorRecord{
				URL:    link,
				Author: s.FetchAuthor(ctx, link),
			})
			if s.authorDelay > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(s.authorDelay):
				}
			}
		}
		return nil
	}

	records := make([]model.AuthorRecord, len(links))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, link := range links {
		i, link := i, link
		g.Go(func() error {
			records[i] = model.AuthorRecord{
				URL:    link,
				Author: s.FetchAuthor(gctx, link),
			}
			if s.authorDelay > 0 {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case <-time.After(s.authorDelay):
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	report.Authors = append(report.Authors, records...)
	return nil
}
