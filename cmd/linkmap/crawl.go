package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/linkmap/internal/config"
	"github.com/nao1215/linkmap/internal/crawler"
	"github.com/nao1215/linkmap/internal/database"
	"github.com/nao1215/linkmap/internal/log"
	"github.com/nao1215/linkmap/internal/model"
	"github.com/nao1215/linkmap/internal/pipeline"
	"github.com/nao1215/linkmap/internal/report"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [urls...]",
		Short: "Crawl one or more seed URLs and list the discovered links",
		Long: `Crawl fetches the given seed URLs and prints every discovered URL as a
newline-delimited, sorted, deduplicated list.

By default only the seed page itself is fetched and its outgoing links
listed. With --recursive, the whole site is crawled: every same-host HTML
page reachable from the seed is fetched in depth-first order; URLs on
other hosts and non-HTML assets are recorded but never fetched.

Examples:
  # List the links on a single page
  linkmap crawl https://kryptonaut.neocities.org/

  # Crawl the whole site, keeping only HTML pages in the output
  linkmap crawl --recursive --html-only https://kryptonaut.neocities.org/

  # Restrict output to one domain; pass a leading dot to avoid
  # matching similarly named hosts
  linkmap crawl -r -d .neocities.org https://kryptonaut.neocities.org/

  # Persist the discovered link graph for later re-crawl scheduling
  linkmap crawl -r --save https://kryptonaut.neocities.org/

  # Emit a Markdown report instead of the plain list
  linkmap crawl -r --markdown -o report.md https://kryptonaut.neocities.org/`,
		Args: cobra.ArbitraryArgs,
		RunE: runCrawlCmd,
	}

	// Crawl behavior flags
	cmd.Flags().BoolP("recursive", "r", false,
		"Crawl the whole site instead of a single page")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to fetch per site")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"HTTP timeout per request")
	cmd.Flags().String("extractor", string(config.ExtractorPattern),
		`Link extraction strategy: "pattern" (lexical href=/src= scan) or "dom"`)
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of seed sites crawled concurrently")

	// Output filter flags
	cmd.Flags().StringP("domain", "d", "",
		"Keep only URLs whose host ends with this suffix (use a leading dot)")
	cmd.Flags().BoolP("html-only", "H", false,
		"Keep only URLs that classify as HTML")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output a JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output a Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write output to the given file path instead of stdout")

	// Persistence flags
	cmd.Flags().BoolP("save", "s", false,
		"Persist discovered sites and links into the link graph database")
	cmd.Flags().String("db-dir", "",
		"Directory of the SQLite database (default: XDG data directory)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .linkmap in current or home directory)")

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

	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runCrawl(ctx, cfg, logger)
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	if cfg.Recursive, err = cmd.Flags().GetBool("recursive"); err != nil {
		return nil, err
	}
	if cfg.MaxPages, err = cmd.Flags().GetInt("max-pages"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return nil, err
	}
	extractor, err := cmd.Flags().GetString("extractor")
	if err != nil {
		return nil, err
	}
	cfg.Extractor = config.ExtractorName(extractor)
	if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
		return nil, err
	}
	if cfg.Domain, err = cmd.Flags().GetString("domain"); err != nil {
		return nil, err
	}
	if cfg.HTMLOnly, err = cmd.Flags().GetBool("html-only"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if cfg.SaveToDB, err = cmd.Flags().GetBool("save"); err != nil {
		return nil, err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	// Load per-site configurations. An explicitly given path must
	// exist; a missing default file just means no overrides.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case explicitConfigPath:
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	default:
		cfg.SiteConfigs = &config.File{Sites: make(map[string]config.SiteConfig)}
	}

	cfg.Targets = args
	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its
// parent.
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

// runCrawl executes the crawl for all targets.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Validate seeds up front so a typo fails before any fetching.
	for _, target := range cfg.Targets {
		if err := validateTarget(target); err != nil {
			return err
		}
	}

	var store *pipeline.Store
	if cfg.SaveToDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "path", db.Path())
		store = pipeline.NewStore(db)
	}

	out, closeOut, err := openOutput(cfg.ReportFile)
	if err != nil {
		return err
	}
	defer closeOut()

	writer := newWriter(out, cfg)

	reports, err := crawlTargets(ctx, cfg, store, logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	for _, rep := range reports {
		if rep == nil {
			continue
		}
		if _, werr := writer.Write(rep); werr != nil {
			return fmt.Errorf("failed to write report: %w", werr)
		}
	}

	return err
}

// crawlTargets runs one pipeline per seed, concurrently when more than
// one seed and a batch size above one were given.
func crawlTargets(ctx context.Context, cfg *config.Config, store *pipeline.Store, logger *slog.Logger) ([]*model.CrawlReport, error) {
	if len(cfg.Targets) > 1 && cfg.BatchSize > 1 {
		return crawlBatch(ctx, cfg, store, logger)
	}

	reports := make([]*model.CrawlReport, 0, len(cfg.Targets))
	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return reports, ctx.Err()
		default:
		}

		rep := model.NewCrawlReport(target)
		p := newPipelineForTarget(cfg, cfg.SiteConfigFor(target), store, logger, target)
		if err := p.Execute(ctx, rep); err != nil {
			logger.Error("crawl failed", "seed", target, "error", err)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

// crawlBatch fans out over seeds with the batch processor.
func crawlBatch(ctx context.Context, cfg *config.Config, store *pipeline.Store, logger *slog.Logger) ([]*model.CrawlReport, error) {
	bp := pipeline.NewBatchProcessor(
		func(seed string) *pipeline.Pipeline {
			return newPipelineForTarget(cfg, cfg.SiteConfigFor(seed), store, logger, seed)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	return bp.ProcessBatch(ctx, cfg.Targets)
}

// newSpiderForTarget builds a crawl engine for one seed, applying
// per-site overrides from the config file.
func newSpiderForTarget(cfg *config.Config, siteCfg config.SiteConfig, logger *slog.Logger, target string) *crawler.Spider {
	maxPages := cfg.MaxPages
	if siteCfg.MaxPages > 0 {
		maxPages = siteCfg.MaxPages
	}
	extractorName := cfg.Extractor
	if siteCfg.Extractor != "" {
		extractorName = siteCfg.Extractor
	}

	var extractor crawler.Extractor
	if extractorName == config.ExtractorDOM {
		extractor = crawler.NewDOMExtractor()
	} else {
		extractor = crawler.NewPatternExtractor()
	}

	fetcher := crawler.NewHTTPFetcher(
		&http.Client{Timeout: cfg.Timeout},
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
	)

	return crawler.NewSpider(fetcher, extractor,
		crawler.WithMaxPages(maxPages),
		crawler.WithMaxFrontier(cfg.MaxFrontier),
		crawler.WithLogger(logger.With("seed", target)),
	)
}

// newPipelineForTarget builds the crawl(+persist+touch) pipeline for
// one seed.
func newPipelineForTarget(cfg *config.Config, siteCfg config.SiteConfig, store *pipeline.Store, logger *slog.Logger, target string) *pipeline.Pipeline {
	spider := newSpiderForTarget(cfg, siteCfg, logger, target)

	p := pipeline.New(
		pipeline.WithLogger(logger),
	)
	p.AddStep(pipeline.NewCrawlStep(spider, cfg.Recursive))
	if store != nil {
		p.AddStep(pipeline.NewPersistStep(store, false))
		p.AddStep(pipeline.NewTouchStep(store))
	}
	return p
}

// newWriter picks the report writer matching the configured format.
func newWriter(out io.Writer, cfg *config.Config) report.Writer {
	opts := report.Options{
		DomainSuffix: cfg.Domain,
		HTMLOnly:     cfg.HTMLOnly,
	}
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(out, opts, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(out, opts)
	default:
		return report.NewTextWriter(out, opts)
	}
}

// openOutput returns the report destination: stdout, or the given file
// with parent directories created.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// validateTarget checks that a seed URL can act as a crawl root.
func validateTarget(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid seed url %q: %w", target, err)
	}
	if !u.IsAbs() || u.Opaque != "" || u.Host == "" {
		return fmt.Errorf("seed url %q must be absolute with a host", target)
	}
	return nil
}
