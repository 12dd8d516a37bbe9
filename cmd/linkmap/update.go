package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/linkmap/internal/config"
	"github.com/nao1215/linkmap/internal/database"
	"github.com/nao1215/linkmap/internal/log"
	"github.com/nao1215/linkmap/internal/model"
	"github.com/nao1215/linkmap/internal/pipeline"
)

// NewUpdateCmd creates the update command.
func NewUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Re-crawl the most outdated tracked sites",
		Long: `Update picks the site with the oldest crawltime, re-crawls it, replaces
its stored outgoing links with the fresh crawl's edges, and bumps its
crawltime. With --count, several sites are refreshed in oldest-first
order, one at a time.

Examples:
  # Refresh the single most outdated site
  linkmap update

  # Refresh the five most outdated sites
  linkmap update --count 5`,
		Args: cobra.NoArgs,
		RunE: runUpdateCmd,
	}

	cmd.Flags().IntP("count", "n", 1,
		"Number of sites to refresh, oldest first")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to fetch per site")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"HTTP timeout per request")
	cmd.Flags().String("extractor", string(config.ExtractorPattern),
		`Link extraction strategy: "pattern" or "dom"`)
	cmd.Flags().String("db-dir", "",
		"Directory of the SQLite database (default: XDG data directory)")

	return cmd
}

// runUpdateCmd executes the update command.
func runUpdateCmd(cmd *cobra.Command, _ []string) error {
	count, err := cmd.Flags().GetInt("count")
	if err != nil {
		return err
	}
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}

	cfg := config.NewConfig()
	if cfg.MaxPages, err = cmd.Flags().GetInt("max-pages"); err != nil {
		return err
	}
	if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return err
	}
	extractor, err := cmd.Flags().GetString("extractor")
	if err != nil {
		return err
	}
	cfg.Extractor = config.ExtractorName(extractor)
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}
	cfg.Recursive = true
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.SiteConfigs = &config.File{Sites: make(map[string]config.SiteConfig)}

	if cfg.Extractor != config.ExtractorPattern && cfg.Extractor != config.ExtractorDOM {
		return config.ErrUnknownExtractor
	}

	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open database (run `linkmap crawl --save` first): %w", err)
	}
	defer db.Close()

	return runUpdate(ctx, cmd, cfg, db, logger, count)
}

// runUpdate refreshes up to count sites, oldest crawltime first. The
// scheduling query naturally advances because every refreshed site gets
// its crawltime bumped before the next query.
func runUpdate(ctx context.Context, cmd *cobra.Command, cfg *config.Config, db *database.LinkDB, logger *slog.Logger, count int) error {
	store := pipeline.NewStore(db)

	for i := 0; i < count; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		site, err := db.GetSiteWithOldestCrawltime(ctx)
		if err != nil {
			return err
		}
		if site == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "no sites tracked")
			return nil
		}

		logger.Info("refreshing site",
			"url", site.URL,
			"crawltime", site.Crawltime,
		)

		p := refreshPipeline(cfg, store, logger, site.URL)

		report := model.NewCrawlReport(site.URL)
		if err := p.Execute(ctx, report); err != nil {
			return fmt.Errorf("failed to refresh %q: %w", site.URL, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "refreshed %s: %d pages fetched, %d edges recorded\n",
			site.URL, report.PagesFetched, len(report.Edges))
	}

	return nil
}

// refreshPipeline builds the crawl, persist-with-refresh, touch
// pipeline used by update. Refreshing replaces each re-crawled page's
// stored outgoing edges instead of accumulating stale ones across runs.
func refreshPipeline(cfg *config.Config, store *pipeline.Store, logger *slog.Logger, target string) *pipeline.Pipeline {
	spider := newSpiderForTarget(cfg, config.SiteConfig{}, logger, target)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddStep(pipeline.NewCrawlStep(spider, true))
	p.AddStep(pipeline.NewPersistStep(store, true))
	p.AddStep(pipeline.NewTouchStep(store))
	return p
}
