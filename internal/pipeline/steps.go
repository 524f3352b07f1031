package pipeline

import (
	"context"
	"log/slog"

	"quotecrawl/internal/crawler"
	"quotecrawl/internal/database"
	"quotecrawl/internal/model"
	"quotecrawl/internal/report"
)

// CrawlStep runs the paginated quote crawl and fills the report.
//
// Design decision: The crawl is the first step and its failure stops
// the pipeline because every later step consumes its results. A crawl
// that aborts on a listing-page error therefore produces no output at
// all, partial or otherwise.
type CrawlStep struct {
	// spider performs the actual crawl.
	spider *crawler.Spider

	// startURL is the listing page the crawl begins from.
	startURL string
}

// NewCrawlStep creates a crawl step starting from startURL.
func NewCrawlStep(spider *crawler.Spider, startURL string) *CrawlStep {
	return &CrawlStep{
		spider:   spider,
		startURL: startURL,
	}
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do executes the crawl and copies the result into the shared report.
func (s *CrawlStep) Do(ctx context.Context, rep *model.CrawlReport) error {
	result, err := s.spider.Crawl(ctx, s.startURL)
	if err != nil {
		return err
	}
	*rep = *result
	return nil
}

// ArchiveStep stores the completed report in the run history database.
type ArchiveStep struct {
	// archive is the run history store.
	archive *database.Archive

	// logger for structured logging.
	logger *slog.Logger
}

// NewArchiveStep creates an archive step writing to the given store.
func NewArchiveStep(archive *database.Archive, logger *slog.Logger) *ArchiveStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArchiveStep{
		archive: archive,
		logger:  logger,
	}
}

// Name returns the step name.
func (s *ArchiveStep) Name() string {
	return "archive"
}

// Do stores the report as a new run.
func (s *ArchiveStep) Do(ctx context.Context, rep *model.CrawlReport) error {
	runID, err := s.archive.SaveReport(ctx, rep)
	if err != nil {
		return err
	}
	s.logger.Debug("archived run", "run_id", runID)
	return nil
}

// ExportStep writes the report to its configured output sinks. It runs
// last so the files only appear for runs that completed every earlier
// step.
type ExportStep struct {
	// writer is the output sink, usually a MultiWriter combining the
	// CSV exporter with the terminal summary.
	writer report.Writer
}

// NewExportStep creates an export step targeting the given writer.
func NewExportStep(writer report.Writer) *ExportStep {
	return &ExportStep{writer: writer}
}

// Name returns the step name.
func (s *ExportStep) Name() string {
	return "export"
}

// Do writes the report. Sink errors are fatal.
func (s *ExportStep) Do(_ context.Context, rep *model.CrawlReport) error {
	return s.writer.Write(rep)
}
