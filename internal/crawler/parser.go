package crawler

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"quotecrawl/internal/model"
)

// CSS selectors for the quotes site markup. The site's structure is
// stable; these are the only selectors the crawler knows about.
const (
	selQuote       = ".quote"
	selQuoteText   = ".text"
	selQuoteAuthor = ".author"
	selQuoteTag    = ".tag"
	selAuthorLink  = "a[href*='/author/']"
	selNextPage    = "li.next > a"

	selAuthorName     = ".author-title"
	selAuthorBorn     = ".author-born-date"
	selAuthorLocation = ".author-born-location"
	selAuthorBio      = ".author-description"
)

// PageResult is everything extracted from one listing page.
type PageResult struct {
	// Quotes are the successfully extracted entries in document order.
	Quotes []model.Quote

	// AuthorLinks are the absolute author-profile URLs referenced by
	// the quotes, in first-seen order. Duplicates within the page are
	// kept; deduplication happens in the crawl loop.
	AuthorLinks []string

	// NextURL is the absolute URL of the next listing page, or the
	// empty string when the page has no "next" control.
	NextURL string
}

// parseListing extracts quotes, author links, and the next-page URL
// from a listing document. Relative links resolve against base.
//
// Entries missing any of text, author name, or author link are skipped
// without error: partial markup must not abort the page.
func parseListing(doc *goquery.Document, base *url.URL) *PageResult {
	result := &PageResult{}

	doc.Find(selQuote).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Find(selQuoteText).First().Text())
		author := strings.TrimSpace(s.Find(selQuoteAuthor).First().Text())
		link := resolveURL(base, s.Find(selAuthorLink).First().AttrOr("href", ""))
		if text == "" || author == "" || link == "" {
			return
		}

		var tags []string
		s.Find(selQuoteTag).Each(func(_ int, tag *goquery.Selection) {
			if label := strings.TrimSpace(tag.Text()); label != "" {
				tags = append(tags, label)
			}
		})

		result.Quotes = append(result.Quotes, model.Quote{
			Text:   text,
			Author: author,
			Tags:   tags,
		})
		result.AuthorLinks = append(result.AuthorLinks, link)
	})

	if href, ok := doc.Find(selNextPage).First().Attr("href"); ok {
		result.NextURL = resolveURL(base, href)
	}

	return result
}

// parseAuthor extracts the four biographical fields from an author
// profile document. Each field is extracted independently: a missing
// element degrades that field to the empty string with a warning while
// the remaining fields are still populated.
func parseAuthor(doc *goquery.Document, pageURL string, logger *slog.Logger) model.Author {
	return model.Author{
		Name:          authorField(doc, selAuthorName, "name", pageURL, logger),
		BirthDate:     authorField(doc, selAuthorBorn, "birth_date", pageURL, logger),
		BirthLocation: authorField(doc, selAuthorLocation, "birth_location", pageURL, logger),
		Description:   authorField(doc, selAuthorBio, "description", pageURL, logger),
	}
}

// authorField returns the trimmed text of the first element matching
// sel, or "" with a warning when the element is absent.
func authorField(doc *goquery.Document, sel, field, pageURL string, logger *slog.Logger) string {
	s := doc.Find(sel).First()
	if s.Length() == 0 {
		logger.Warn("author field missing", "field", field, "url", pageURL)
		return ""
	}
	return strings.TrimSpace(s.Text())
}

// resolveURL resolves href against base and returns the absolute URL,
// or "" when href is empty or unparseable.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}
