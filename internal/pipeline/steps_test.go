package pipeline

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"quotecrawl/internal/crawler"
	"quotecrawl/internal/database"
	"quotecrawl/internal/fetcher"
	"quotecrawl/internal/model"
	"quotecrawl/internal/report"
)

const listingHTML = `<html><body>
<div class="quote">
  <span class="text">A</span>
  <small class="author">X</small>
  <a href="/author/X">(about)</a>
  <div class="tags"><a class="tag">a</a><a class="tag">b</a></div>
</div>
</body></html>`

const authorHTML = `<html><body>
<h3 class="author-title">X</h3>
<span class="author-born-date">1900</span>
<span class="author-born-location">Here</span>
<div class="author-description">D</div>
</body></html>`

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingHTML))
	})
	mux.HandleFunc("/author/X", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(authorHTML))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newTestSpider(t *testing.T) *crawler.Spider {
	t.Helper()
	client := fetcher.NewClient(5 * time.Second)
	return crawler.NewSpider(client,
		crawler.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

// TestCrawlStep runs the crawl against a fixture server.
func TestCrawlStep(t *testing.T) {
	t.Parallel()

	ts := newFixtureServer(t)
	step := NewCrawlStep(newTestSpider(t), ts.URL)

	if step.Name() != "crawl" {
		t.Errorf("unexpected step name: %s", step.Name())
	}

	rep := model.NewCrawlReport(ts.URL)
	if err := step.Do(context.Background(), rep); err != nil {
		t.Fatalf("crawl step failed: %v", err)
	}

	if rep.QuoteCount() != 1 {
		t.Errorf("expected 1 quote, got %d", rep.QuoteCount())
	}
	if rep.AuthorCount() != 1 {
		t.Errorf("expected 1 author, got %d", rep.AuthorCount())
	}
	if rep.Authors[0].Author.Name != "X" {
		t.Errorf("unexpected author: %+v", rep.Authors[0])
	}
}

// TestArchiveStep stores a report through the step.
func TestArchiveStep(t *testing.T) {
	t.Parallel()

	archive, err := database.Open(t.TempDir(), database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	defer archive.Close()

	step := NewArchiveStep(archive, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if step.Name() != "archive" {
		t.Errorf("unexpected step name: %s", step.Name())
	}

	rep := model.NewCrawlReport("https://quotes.example.com")
	rep.PagesVisited = 1
	rep.Quotes = []model.Quote{{Text: "A", Author: "X"}}

	if err := step.Do(context.Background(), rep); err != nil {
		t.Fatalf("archive step failed: %v", err)
	}

	runs, err := archive.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 archived run, got %d", len(runs))
	}
	if runs[0].QuoteCount != 1 {
		t.Errorf("unexpected quote count: %d", runs[0].QuoteCount)
	}
}

// TestExportStep writes CSV output through the step.
func TestExportStep(t *testing.T) {
	t.Parallel()

	t.Run("writes files on success", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		quotesPath := filepath.Join(dir, "quotes.csv")
		authorsPath := filepath.Join(dir, "authors.csv")
		step := NewExportStep(report.NewCSVWriter(quotesPath, authorsPath))

		if step.Name() != "export" {
			t.Errorf("unexpected step name: %s", step.Name())
		}

		rep := model.NewCrawlReport("https://quotes.example.com")
		rep.Quotes = []model.Quote{{Text: "A", Author: "X", Tags: []string{"a", "b"}}}

		if err := step.Do(context.Background(), rep); err != nil {
			t.Fatalf("export step failed: %v", err)
		}
	})

	t.Run("sink failure is fatal", func(t *testing.T) {
		t.Parallel()

		blocker := filepath.Join(t.TempDir(), "blocker")
		if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
			t.Fatalf("failed to create blocker file: %v", err)
		}

		unwritable := filepath.Join(blocker, "quotes.csv")
		step := NewExportStep(report.NewCSVWriter(unwritable, unwritable))

		rep := model.NewCrawlReport("https://quotes.example.com")
		if err := step.Do(context.Background(), rep); err == nil {
			t.Error("expected error for unwritable sink")
		}
	})
}
