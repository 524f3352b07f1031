package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quotecrawl/internal/model"
)

// CSV column headers for the two output files.
var (
	quotesHeader  = []string{"text", "author", "tags"}
	authorsHeader = []string{"name", "birth_date", "birth_location", "description"}
)

// CSVWriter persists a crawl report as two CSV files: the quotes file
// at the configured path and the authors file beside it.
//
// Both files are written only after the crawl completed successfully;
// a run that aborts never reaches this writer, so there are no partial
// output files to clean up.
type CSVWriter struct {
	quotesPath  string
	authorsPath string
}

// NewCSVWriter creates a CSVWriter targeting the given file paths.
func NewCSVWriter(quotesPath, authorsPath string) *CSVWriter {
	return &CSVWriter{
		quotesPath:  quotesPath,
		authorsPath: authorsPath,
	}
}

// Write writes the quotes and authors files. Any file-system or
// encoding failure is returned as-is: sink errors are fatal.
func (w *CSVWriter) Write(report *model.CrawlReport) error {
	quoteRows := make([][]string, 0, len(report.Quotes))
	for _, q := range report.Quotes {
		quoteRows = append(quoteRows, []string{q.Text, q.Author, JoinTags(q.Tags)})
	}
	if err := writeCSVFile(w.quotesPath, quotesHeader, quoteRows); err != nil {
		return fmt.Errorf("write quotes csv: %w", err)
	}

	authorRows := make([][]string, 0, len(report.Authors))
	for _, rec := range report.Authors {
		authorRows = append(authorRows, []string{
			rec.Author.Name,
			rec.Author.BirthDate,
			rec.Author.BirthLocation,
			rec.Author.Description,
		})
	}
	if err := writeCSVFile(w.authorsPath, authorsHeader, authorRows); err != nil {
		return fmt.Errorf("write authors csv: %w", err)
	}

	return nil
}

// JoinTags renders a tag sequence the way the quotes CSV stores it:
// joined with ", ". Splitting on the same separator reconstructs the
// sequence for tags without embedded commas.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// SplitTags is the inverse of JoinTags. An empty string yields nil.
func SplitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ", ")
}

// createOutputFile creates or truncates an output file, creating its
// parent directory first. Creation happens here, at write time, so no
// path appears on disk for a run that never reached export.
func createOutputFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, err
		}
	}
	return os.Create(path) //nolint:gosec // Output path comes from user flags
}

// writeCSVFile writes one header plus rows to path, creating or
// truncating the file.
func writeCSVFile(path string, header []string, rows [][]string) error {
	f, err := createOutputFile(path)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		_ = f.Close()
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			_ = f.Close()
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
