package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"quotecrawl/internal/config"
	"quotecrawl/internal/crawler"
	"quotecrawl/internal/database"
	"quotecrawl/internal/fetcher"
	"quotecrawl/internal/model"
	"quotecrawl/internal/pipeline"
	"quotecrawl/internal/report"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [quotes-csv-path]",
		Short: "Crawl the quote listing and export CSV files",
		Long: `Crawl walks every listing page of the quote site, following the
next-page link until pagination ends. Each quote's text, author name,
and tags go to the quotes CSV; every referenced author profile is
fetched exactly once and its name, birth date, birth location, and
description go to a sibling authors.csv.

A failed listing page aborts the run and nothing is written. A failed
author profile degrades to empty fields and the crawl continues.

Examples:
  # Crawl with defaults, writing quotes.csv and authors.csv here
  quotecrawl crawl

  # Write the CSVs into a directory and add a Markdown summary
  quotecrawl crawl out/quotes.csv --markdown

  # Crawl a mirror, slower, with a page cap
  quotecrawl crawl --base-url https://mirror.example.com --page-delay 1s --max-pages 5

  # Resolve author profiles concurrently
  quotecrawl crawl --workers 4

Configuration file (.quotecrawl) example:
  base_url: https://quotes.toscrape.com
  page_delay: 250ms
  author_delay: 100ms
  workers: 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCrawlCmd,
	}

	// Crawl behavior flags
	cmd.Flags().StringP("base-url", "u", config.DefaultBaseURL,
		"Listing URL the crawl starts from")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of listing pages to visit (0 = unlimited)")
	cmd.Flags().Duration("page-delay", config.DefaultPageDelay,
		"Pause between listing-page fetches")
	cmd.Flags().Duration("author-delay", config.DefaultAuthorDelay,
		"Pause after each author-profile fetch")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Concurrent author-profile fetches per page (1 = sequential)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .quotecrawl in current or home directory)")

	// Output flags
	cmd.Flags().BoolP("markdown", "m", false,
		"Also write a Markdown crawl summary next to the CSV files")
	cmd.Flags().Bool("db", false,
		"Archive the run to the SQLite run history database")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCrawl(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and an optional
// config file. Flag defaults are overridden by the file, which in turn
// is overridden by flags the user actually set.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load the config file first so explicitly-set flags win below.
	// An explicitly requested file must exist; a discovered one is
	// optional.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cf.Apply(cfg); err != nil {
			return nil, err
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if cmd.Flags().Changed("base-url") {
		if cfg.BaseURL, err = cmd.Flags().GetString("base-url"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-pages") {
		if cfg.MaxPages, err = cmd.Flags().GetInt("max-pages"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("page-delay") {
		if cfg.PageDelay, err = cmd.Flags().GetDuration("page-delay"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("author-delay") {
		if cfg.AuthorDelay, err = cmd.Flags().GetDuration("author-delay"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("workers") {
		if cfg.Workers, err = cmd.Flags().GetInt("workers"); err != nil {
			return nil, err
		}
	}

	cfg.MarkdownSummary, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.SaveToDB, err = cmd.Flags().GetBool("db")
	if err != nil {
		return nil, err
	}
	if cfg.SaveToDB {
		cfg.DBDir = config.XDGDataDir()
	}

	// Positional argument overrides the quotes CSV path
	if len(args) == 1 {
		cfg.QuotesFile = args[0]
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}

// runCrawl executes the crawl pipeline.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting crawl",
		"baseURL", cfg.BaseURL,
		"quotesFile", cfg.QuotesFile,
		"workers", cfg.Workers,
		"saveToDB", cfg.SaveToDB,
	)

	client := fetcher.NewClient(cfg.Timeout,
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithMaxBodySize(cfg.MaxBodySize),
	)

	spider := crawler.NewSpider(client,
		crawler.WithLogger(logger),
		crawler.WithPageDelay(cfg.PageDelay),
		crawler.WithAuthorDelay(cfg.AuthorDelay),
		crawler.WithMaxPages(cfg.MaxPages),
		crawler.WithWorkers(cfg.Workers),
	)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddStep(pipeline.NewCrawlStep(spider, cfg.BaseURL))

	if cfg.SaveToDB {
		archive, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open run archive: %w", err)
		}
		defer archive.Close()
		logger.Info("run archive opened", "dir", cfg.DBDir)
		p.AddStep(pipeline.NewArchiveStep(archive, logger))
	}

	p.AddStep(pipeline.NewExportStep(buildWriter(cfg)))

	rep := model.NewCrawlReport(cfg.BaseURL)
	if err := p.Execute(ctx, rep); err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New("crawl cancelled")
		}
		return err
	}

	return nil
}

// buildWriter assembles the export sinks: the CSV pair always, an
// optional Markdown summary file, and the terminal summary last so it
// never reports files that were not written. Every file-backed writer
// creates its file inside Write, so an aborted run leaves nothing on
// disk.
func buildWriter(cfg *config.Config) report.Writer {
	writers := []report.Writer{
		report.NewCSVWriter(cfg.QuotesFile, cfg.AuthorsFile()),
	}

	if cfg.MarkdownSummary {
		writers = append(writers, report.NewMarkdownFileWriter(cfg.SummaryFile()))
	}

	writers = append(writers, report.NewSimpleWriter(os.Stdout, cfg.QuotesFile, cfg.AuthorsFile()))
	return report.NewMultiWriter(writers...)
}
