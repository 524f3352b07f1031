package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"quotecrawl/internal/model"
	"quotecrawl/internal/report"
)

// Archive provides SQLite-based storage for completed crawl runs.
//
// Design decision: We store every run in a single database file rather
// than one file per run. This keeps run history queryable in one place
// and simplifies backup.
type Archive struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Archive behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default archive options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an Archive at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*Archive, error) {
	dbPath := filepath.Join(dbDir, "quotecrawl.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("archive not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check archive path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	a := &Archive{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := a.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return a, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (a *Archive) createTables() error {
	schema := `
	-- Runs store one row per completed crawl
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_url TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		pages INTEGER NOT NULL,
		quote_count INTEGER NOT NULL,
		author_count INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Quotes preserve listing order via position
	CREATE TABLE IF NOT EXISTS quotes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		position INTEGER NOT NULL,
		text TEXT NOT NULL,
		author TEXT NOT NULL,
		tags TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_quotes_run ON quotes(run_id);

	-- Authors preserve first-reference order via position
	CREATE TABLE IF NOT EXISTS authors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		position INTEGER NOT NULL,
		url TEXT NOT NULL,
		name TEXT NOT NULL,
		birth_date TEXT NOT NULL,
		birth_location TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_authors_run ON authors(run_id);
	`

	_, err := a.db.ExecContext(context.Background(), schema)
	return err
}

// SaveReport stores a completed crawl report as a new run.
// The insert runs in a single transaction so a failure leaves no
// partial run behind. It returns the new run's ID.
func (a *Archive) SaveReport(ctx context.Context, rep *model.CrawlReport) (int64, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	result, err := tx.ExecContext(ctx, `
	INSERT INTO runs (start_url, started_at, elapsed_ms, pages, quote_count, author_count)
	VALUES (?, ?, ?, ?, ?, ?)`,
		rep.StartURL,
		rep.StartedAt.UTC().Format("2006-01-02 15:04:05"),
		rep.Elapsed.Milliseconds(),
		rep.PagesVisited,
		rep.QuoteCount(),
		rep.AuthorCount(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	for i, q := range rep.Quotes {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO quotes (run_id, position, text, author, tags)
		VALUES (?, ?, ?, ?, ?)`,
			runID, i, q.Text, q.Author, report.JoinTags(q.Tags),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert quote: %w", err)
		}
	}

	for i, rec := range rep.Authors {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO authors (run_id, position, url, name, birth_date, birth_location, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, i, rec.URL,
			rec.Author.Name, rec.Author.BirthDate, rec.Author.BirthLocation, rec.Author.Description,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert author: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// RunSummary contains summary information about an archived run.
// This is used for listing run history without loading the quotes.
type RunSummary struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// StartURL is the listing page the crawl started from.
	StartURL string

	// StartedAt is when the crawl began.
	StartedAt time.Time

	// Elapsed is the crawl's wall-clock duration.
	Elapsed time.Duration

	// Pages is the number of listing pages visited.
	Pages int

	// QuoteCount is the number of quotes collected.
	QuoteCount int

	// AuthorCount is the number of distinct authors referenced.
	AuthorCount int
}

// ListRuns returns the most recent archived runs, newest first.
// A limit of zero or less returns all runs.
func (a *Archive) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `
	SELECT id, start_url, started_at, elapsed_ms, pages, quote_count, author_count
	FROM runs
	ORDER BY started_at DESC, id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []RunSummary
	for rows.Next() {
		var run RunSummary
		var startedAt string
		var elapsedMS int64

		err := rows.Scan(
			&run.ID,
			&run.StartURL,
			&startedAt,
			&elapsedMS,
			&run.Pages,
			&run.QuoteCount,
			&run.AuthorCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.StartedAt = parseTimestamp(startedAt)
		run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		results = append(results, run)
	}

	return results, rows.Err()
}

// RunQuotes returns the quotes stored for a run in listing order.
func (a *Archive) RunQuotes(ctx context.Context, runID int64) ([]model.Quote, error) {
	rows, err := a.db.QueryContext(ctx, `
	SELECT text, author, tags FROM quotes
	WHERE run_id = ?
	ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var quotes []model.Quote
	for rows.Next() {
		var q model.Quote
		var tags string
		if err := rows.Scan(&q.Text, &q.Author, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		q.Tags = report.SplitTags(tags)
		quotes = append(quotes, q)
	}

	return quotes, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
