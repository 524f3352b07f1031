package model

import "testing"

// TestCrawlReportCounts verifies the report accessors.
func TestCrawlReportCounts(t *testing.T) {
	t.Parallel()

	report := NewCrawlReport("https://quotes.example.com")
	if report.StartURL != "https://quotes.example.com" {
		t.Errorf("unexpected start URL: %q", report.StartURL)
	}
	if report.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}

	report.Quotes = append(report.Quotes,
		Quote{Text: "A", Author: "X", Tags: []string{"a", "b"}},
		Quote{Text: "B", Author: "Y"},
	)
	report.Authors = append(report.Authors,
		AuthorRecord{URL: "https://quotes.example.com/author/X", Author: Author{Name: "X"}},
		AuthorRecord{URL: "https://quotes.example.com/author/Y"},
	)

	if got := report.QuoteCount(); got != 2 {
		t.Errorf("expected 2 quotes, got %d", got)
	}
	if got := report.AuthorCount(); got != 2 {
		t.Errorf("expected 2 authors, got %d", got)
	}
	if got := report.DegradedAuthorCount(); got != 1 {
		t.Errorf("expected 1 degraded author, got %d", got)
	}
}

// TestAuthorIsEmpty verifies empty detection for degraded records.
func TestAuthorIsEmpty(t *testing.T) {
	t.Parallel()

	if !(Author{}).IsEmpty() {
		t.Error("zero-value author should be empty")
	}
	if (Author{BirthDate: "1900"}).IsEmpty() {
		t.Error("author with a populated field should not be empty")
	}
}
