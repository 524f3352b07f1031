package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"quotecrawl/internal/config"
	"quotecrawl/internal/database"
)

// NewRunsCmd creates the runs command, which lists archived crawl runs.
func NewRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived crawl runs",
		Long: `Runs lists crawl runs previously archived with 'crawl --db',
newest first. Each line shows the run's ID, start time, start URL, and
headline counts.`,
		RunE: runRunsCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list (0 = all)")
	cmd.Flags().String("db-dir", "", "Archive directory (default: XDG data directory)")

	return cmd
}

// runRunsCmd executes the runs command.
func runRunsCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	// Listing must not create an empty archive as a side effect
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false

	archive, err := database.Open(dbDir, opts)
	if err != nil {
		return fmt.Errorf("no run archive found (run 'quotecrawl crawl --db' first): %w", err)
	}
	defer archive.Close()

	runs, err := archive.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No archived runs.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tURL\tPAGES\tQUOTES\tAUTHORS\tELAPSED")
	for _, run := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.StartedAt.Format(time.DateTime),
			run.StartURL,
			run.Pages,
			run.QuoteCount,
			run.AuthorCount,
			run.Elapsed.Round(time.Millisecond),
		)
	}
	return tw.Flush()
}
