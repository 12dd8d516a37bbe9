package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/linkmap/internal/config"
	"github.com/nao1215/linkmap/internal/database"
)

// NewNextCmd creates the next command.
func NewNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the tracked site with the oldest crawl time",
		Long: `Next prints the site whose crawltime is oldest, i.e. the site most
overdue for a re-crawl. Sites that have never been crawled carry a
crawltime of 0 and therefore come first.

Examples:
  # Show the next site to crawl
  linkmap next

  # Show every tracked site instead
  linkmap next --all`,
		Args: cobra.NoArgs,
		RunE: runNextCmd,
	}

	cmd.Flags().BoolP("all", "a", false,
		"List every tracked site ordered by URL")
	cmd.Flags().String("db-dir", "",
		"Directory of the SQLite database (default: XDG data directory)")

	return cmd
}

// runNextCmd executes the next command.
func runNextCmd(cmd *cobra.Command, _ []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}

	// The database must already exist here; querying the schedule of
	// an empty store that was just implicitly created would only
	// mislead.
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open database (run `linkmap crawl --save` first): %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if all {
		sites, err := db.ListSites(ctx)
		if err != nil {
			return err
		}
		for _, site := range sites {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", site.URL, formatCrawltime(site.Crawltime))
		}
		return nil
	}

	site, err := db.GetSiteWithOldestCrawltime(ctx)
	if err != nil {
		return err
	}
	if site == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "no sites tracked")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", site.URL, formatCrawltime(site.Crawltime))
	return nil
}

// formatCrawltime renders a crawltime for display. 0 means the site has
// never been crawled.
func formatCrawltime(crawltime int64) string {
	if crawltime == 0 {
		return "never"
	}
	return time.Unix(crawltime, 0).UTC().Format(time.RFC3339)
}
