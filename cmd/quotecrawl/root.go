// Package main provides the entry point for the quotecrawl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for quotecrawl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quotecrawl",
		Short: "Crawler for paginated quote listing sites",
		Long: `quotecrawl walks a paginated quote listing site, collects every quote
with its tags, resolves each referenced author profile exactly once,
and writes the results as CSV files (quotes.csv plus a sibling
authors.csv).

Author profiles that fail to load degrade to empty fields instead of
aborting the crawl; a failed listing page aborts the whole run without
writing any output.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewRunsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
