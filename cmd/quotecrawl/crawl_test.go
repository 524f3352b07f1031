package main

import (
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

const testListingHTML = `<html><body>
<div class="quote">
  <span class="text">A</span>
  <small class="author">X</small>
  <a href="/author/X">(about)</a>
  <div class="tags"><a class="tag">a</a><a class="tag">b</a></div>
</div>
</body></html>`

const testAuthorHTML = `<html><body>
<h3 class="author-title">X</h3>
<span class="author-born-date">1900</span>
<span class="author-born-location">Here</span>
<div class="author-description">D</div>
</body></html>`

func newQuoteSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testListingHTML))
	})
	mux.HandleFunc("/author/X", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testAuthorHTML))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

// TestNewCrawlCmd tests the crawl command definition.
func TestNewCrawlCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCrawlCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "crawl [quotes-csv-path]" {
			t.Errorf("unexpected use: %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{
			"base-url", "timeout", "max-pages", "page-delay",
			"author-delay", "workers", "config", "markdown", "db",
		} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %q", name)
			}
		}
	})
}

// TestBuildConfig tests flag and config file handling.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults when nothing is set", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}
		if cfg.BaseURL != "https://quotes.toscrape.com" {
			t.Errorf("unexpected base URL: %s", cfg.BaseURL)
		}
		if cfg.QuotesFile != "quotes.csv" {
			t.Errorf("unexpected quotes file: %s", cfg.QuotesFile)
		}
		if cfg.Workers != 1 {
			t.Errorf("unexpected workers: %d", cfg.Workers)
		}
	})

	t.Run("positional argument sets quotes path", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"out/quotes.csv"})
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}
		if cfg.QuotesFile != "out/quotes.csv" {
			t.Errorf("unexpected quotes file: %s", cfg.QuotesFile)
		}
		if cfg.AuthorsFile() != filepath.Join("out", "authors.csv") {
			t.Errorf("unexpected authors file: %s", cfg.AuthorsFile())
		}
	})

	t.Run("flags override config file", func(t *testing.T) {
		t.Parallel()

		cfgPath := filepath.Join(t.TempDir(), "config.yml")
		content := "base_url: https://file.example.com\nworkers: 8\npage_delay: 2s\n"
		if err := os.WriteFile(cfgPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewCrawlCmd()
		args := []string{"--config", cfgPath, "--workers", "3"}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, nil)
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}
		if cfg.BaseURL != "https://file.example.com" {
			t.Errorf("config file base URL not applied: %s", cfg.BaseURL)
		}
		if cfg.Workers != 3 {
			t.Errorf("flag should override config file: got workers %d", cfg.Workers)
		}
		if cfg.PageDelay != 2*time.Second {
			t.Errorf("config file page delay not applied: %s", cfg.PageDelay)
		}
	})

	t.Run("explicit missing config file is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		args := []string{"--config", filepath.Join(t.TempDir(), "nope.yml")}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		if _, err := buildConfig(cmd, nil); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})
}

// TestCrawlCommand runs the full command against a fixture site.
func TestCrawlCommand(t *testing.T) {
	t.Parallel()

	t.Run("writes quotes and authors CSVs", func(t *testing.T) {
		t.Parallel()

		ts := newQuoteSite(t)
		dir := t.TempDir()
		quotesPath := filepath.Join(dir, "quotes.csv")

		root := NewRootCmd()
		root.SetArgs([]string{
			"crawl", quotesPath,
			"--base-url", ts.URL,
			"--page-delay", "0s",
			"--author-delay", "0s",
		})
		if err := root.Execute(); err != nil {
			t.Fatalf("crawl command failed: %v", err)
		}

		f, err := os.Open(quotesPath)
		if err != nil {
			t.Fatalf("quotes file missing: %v", err)
		}
		defer f.Close()

		rows, err := csv.NewReader(f).ReadAll()
		if err != nil {
			t.Fatalf("failed to read quotes csv: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected header + 1 quote, got %d rows", len(rows))
		}
		if !reflect.DeepEqual(rows[1], []string{"A", "X", "a, b"}) {
			t.Errorf("unexpected quote row: %v", rows[1])
		}

		af, err := os.Open(filepath.Join(dir, "authors.csv"))
		if err != nil {
			t.Fatalf("authors file missing: %v", err)
		}
		defer af.Close()

		authorRows, err := csv.NewReader(af).ReadAll()
		if err != nil {
			t.Fatalf("failed to read authors csv: %v", err)
		}
		if len(authorRows) != 2 {
			t.Fatalf("expected header + 1 author, got %d rows", len(authorRows))
		}
		if !reflect.DeepEqual(authorRows[1], []string{"X", "1900", "Here", "D"}) {
			t.Errorf("unexpected author row: %v", authorRows[1])
		}
	})

	t.Run("markdown flag adds a summary file", func(t *testing.T) {
		t.Parallel()

		ts := newQuoteSite(t)
		dir := t.TempDir()
		quotesPath := filepath.Join(dir, "quotes.csv")

		root := NewRootCmd()
		root.SetArgs([]string{
			"crawl", quotesPath,
			"--base-url", ts.URL,
			"--page-delay", "0s",
			"--author-delay", "0s",
			"--markdown",
		})
		if err := root.Execute(); err != nil {
			t.Fatalf("crawl command failed: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(dir, "summary.md"))
		if err != nil {
			t.Fatalf("summary file missing: %v", err)
		}
		if len(data) == 0 {
			t.Error("summary file is empty")
		}
	})

	t.Run("failed listing writes no output files", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		t.Cleanup(ts.Close)

		// Nested output dir: an aborted run must not create it either.
		outDir := filepath.Join(t.TempDir(), "out")
		quotesPath := filepath.Join(outDir, "quotes.csv")

		root := NewRootCmd()
		root.SetArgs([]string{
			"crawl", quotesPath,
			"--base-url", ts.URL,
			"--page-delay", "0s",
			"--markdown",
		})
		if err := root.Execute(); err == nil {
			t.Fatal("expected crawl to fail on listing error")
		}

		for _, name := range []string{"quotes.csv", "authors.csv", "summary.md"} {
			if _, err := os.Stat(filepath.Join(outDir, name)); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("%s must not exist after aborted crawl: %v", name, err)
			}
		}
		if _, err := os.Stat(outDir); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("output directory must not exist after aborted crawl: %v", err)
		}
	})

	t.Run("rejects invalid base URL", func(t *testing.T) {
		t.Parallel()

		root := NewRootCmd()
		root.SetArgs([]string{"crawl", "--base-url", "not-a-url"})
		if err := root.Execute(); err == nil {
			t.Error("expected configuration error for invalid base URL")
		}
	})
}
