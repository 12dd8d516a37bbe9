package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/nao1215/linkmap/internal/crawler"
	"github.com/nao1215/linkmap/internal/model"
)

// CrawlStep runs the spider against the report's seed URL and fills the
// report with the discovered list, edges, and skip records.
type CrawlStep struct {
	// spider is the crawl engine to run.
	spider *crawler.Spider

	// recursive selects a full site crawl; when false only the seed
	// page is fetched and its references recorded.
	recursive bool
}

// NewCrawlStep creates a CrawlStep using the given spider.
func NewCrawlStep(spider *crawler.Spider, recursive bool) *CrawlStep {
	return &CrawlStep{spider: spider, recursive: recursive}
}

// Name implements Step.
func (s *CrawlStep) Name() string { return "crawl" }

// Do implements Step.
func (s *CrawlStep) Do(ctx context.Context, report *model.CrawlReport) error {
	seed, err := url.Parse(report.Seed)
	if err != nil {
		return fmt.Errorf("invalid seed url %q: %w", report.Seed, err)
	}

	var result *model.CrawlReport
	if s.recursive {
		result, err = s.spider.Crawl(ctx, seed)
	} else {
		result, err = s.spider.CrawlPage(ctx, seed)
	}
	if result != nil {
		// The spider returns partial results on cancellation; keep
		// whatever was discovered either way.
		report.Discovered = result.Discovered
		report.Edges = result.Edges
		report.PagesFetched = result.PagesFetched
		report.Skipped = result.Skipped
		report.Elapsed = result.Elapsed
	}
	return err
}

// PersistStep writes the crawl's sites and links into the store.
//
// Every distinct edge source is a fetched page of the site and gets a
// site row (satisfying the link table's foreign key) stamped with the
// crawl's start time. When Refresh is set, each source's previous
// outgoing edges are deleted first so that the stored graph reflects
// the current crawl instead of accumulating stale edges.
type PersistStep struct {
	// store is the write-serialized link graph store.
	store *Store

	// refresh replaces each source's outgoing edges instead of only
	// adding to them.
	refresh bool
}

// NewPersistStep creates a PersistStep writing through the given store.
func NewPersistStep(store *Store, refresh bool) *PersistStep {
	return &PersistStep{store: store, refresh: refresh}
}

// Name implements Step.
func (s *PersistStep) Name() string { return "persist" }

// Do implements Step.
func (s *PersistStep) Do(ctx context.Context, report *model.CrawlReport) error {
	crawltime := report.StartedAt.Unix()

	// The seed always gets a row, even when nothing was fetched, so
	// that the scheduler can pick it up later.
	seedSite, err := model.NewSite(report.Seed, crawltime)
	if err != nil {
		return err
	}
	if err := s.store.UpsertSite(ctx, seedSite); err != nil {
		return err
	}

	sources := make([]string, 0)
	seen := make(map[string]bool)
	for _, edge := range report.Edges {
		if !seen[edge.SrcURL] {
			seen[edge.SrcURL] = true
			sources = append(sources, edge.SrcURL)
		}
	}

	for _, src := range sources {
		site, err := model.NewSite(src, crawltime)
		if err != nil {
			return err
		}
		if err := s.store.UpsertSite(ctx, site); err != nil {
			return err
		}
		if s.refresh {
			if err := s.store.DeleteLinksBySource(ctx, src); err != nil {
				return err
			}
		}
	}

	for _, edge := range report.Edges {
		if err := s.store.UpsertLink(ctx, edge); err != nil {
			return err
		}
	}

	return nil
}

// TouchStep updates the seed site's crawltime to the current time after
// a completed crawl. The site must already exist (PersistStep creates
// it); a missing row is surfaced as an error, not papered over.
type TouchStep struct {
	// store is the write-serialized link graph store.
	store *Store

	// now is the clock, injectable for tests.
	now func() time.Time
}

// NewTouchStep creates a TouchStep writing through the given store.
func NewTouchStep(store *Store) *TouchStep {
	return &TouchStep{store: store, now: time.Now}
}

// Name implements Step.
func (s *TouchStep) Name() string { return "touch" }

// Do implements Step.
func (s *TouchStep) Do(ctx context.Context, report *model.CrawlReport) error {
	site, err := model.NewSite(report.Seed, s.now().Unix())
	if err != nil {
		return err
	}
	return s.store.UpdateSiteCrawltime(ctx, site)
}
