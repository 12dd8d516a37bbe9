package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/nao1215/linkmap/internal/model"
)

// Spider crawls the pages reachable from a seed URL within that seed's
// host and records the link graph it finds along the way.
//
// The traversal state (frontier, visited set, discovered list) is
// created inside Crawl and owned exclusively by that invocation, so a
// Spider can be reused for independent runs. The frontier is a stack:
// expansion happens in depth-first order (last pushed, first popped).
type Spider struct {
	// fetcher retrieves page markup, one blocking GET per page.
	fetcher Fetcher

	// extractor pulls raw references out of fetched markup.
	extractor Extractor

	// maxPages caps the number of pages fetched in one run. The crawl
	// stops when the cap is reached even if the frontier is non-empty.
	maxPages int

	// maxFrontier caps the number of queued URLs. Cross-host fan-out
	// can enqueue unboundedly many never-fetched entries before the
	// same-host filter sees them; references beyond the cap are
	// dropped with a log entry.
	maxFrontier int

	// logger receives skip/drop decisions during the crawl.
	logger *slog.Logger
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithMaxPages caps the number of pages fetched per run.
func WithMaxPages(n int) SpiderOption {
	return func(s *Spider) {
		s.maxPages = n
	}
}

// WithMaxFrontier caps the number of queued URLs per run.
func WithMaxFrontier(n int) SpiderOption {
	return func(s *Spider) {
		s.maxFrontier = n
	}
}

// WithLogger sets the logger used for per-page skip decisions.
func WithLogger(logger *slog.Logger) SpiderOption {
	return func(s *Spider) {
		s.logger = logger
	}
}

// NewSpider creates a Spider using the given fetcher and extractor.
// Both are injected so that the extraction strategy can be swapped and
// tests can count fetch calls with a stub.
func NewSpider(fetcher Fetcher, extractor Extractor, opts ...SpiderOption) *Spider {
	s := &Spider{
		fetcher:     fetcher,
		extractor:   extractor,
		maxPages:    1000,
		maxFrontier: 100000,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Crawl walks the link graph starting from root and returns the crawl
// report. The traversal:
//
//  1. pops a URL from the frontier stack
//  2. skips it if already visited
//  3. appends it to the discovered list
//  4. stops the branch (without fetching) if its host differs from the
//     root's host, or if it does not classify as HTML
//  5. otherwise marks it visited, fetches it, and pushes every
//     successfully resolved reference
//
// Only fetched pages are marked visited, so an asset or external URL
// referenced from several pages appears in the discovered list once per
// reference; deduplication is the caller's job.
//
// A failed fetch skips the page and continues the run; the page is
// recorded under Skipped in the report. Unresolvable references are
// logged and dropped. Termination is guaranteed because the visited
// set strictly grows, only same-host HTML pages are expanded, and the
// page and frontier caps bound the work.
func (s *Spider) Crawl(ctx context.Context, root *url.URL) (*model.CrawlReport, error) {
	if err := validateSeed(root); err != nil {
		return nil, err
	}

	report := model.NewCrawlReport(root.String())
	frontier := []*url.URL{root}
	visited := make(map[string]bool)

	for len(frontier) > 0 {
		select {
		case <-ctx.Done():
			report.Elapsed = time.Since(report.StartedAt)
			report.ErrorMessage = ctx.Err().Error()
			return report, ctx.Err()
		default:
		}

		if report.PagesFetched >= s.maxPages {
			s.logger.Warn("page cap reached, stopping crawl",
				"seed", report.Seed,
				"maxPages", s.maxPages,
				"frontier", len(frontier),
			)
			break
		}

		current := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		if visited[current.String()] {
			continue
		}

		report.Discovered = append(report.Discovered, current.String())

		// Out-of-site and non-HTML URLs are recorded but never
		// fetched or expanded.
		if !IsInSite(current, root) {
			continue
		}
		if !IsHTML(current) {
			continue
		}

		visited[current.String()] = true

		s.logger.Debug("processing page", "url", current.String())

		markup, err := s.fetcher.Fetch(ctx, current.String())
		if err != nil {
			s.logger.Warn("skipping page, fetch failed",
				"url", current.String(),
				"error", err,
			)
			report.Skipped = append(report.Skipped, model.SkippedPage{
				URL:    current.String(),
				Reason: err.Error(),
			})
			continue
		}
		report.PagesFetched++

		for _, ref := range s.extractor.Extract(markup) {
			resolved, err := Resolve(current, ref)
			if err != nil {
				s.logger.Debug("dropping unresolvable reference",
					"page", current.String(),
					"reference", ref,
					"error", err,
				)
				continue
			}

			if edge, err := model.NewLink(current.String(), resolved.String()); err == nil {
				report.Edges = append(report.Edges, edge)
			} else {
				s.logger.Debug("dropping edge with invalid endpoint",
					"page", current.String(),
					"destination", resolved.String(),
					"error", err,
				)
			}

			if len(frontier) >= s.maxFrontier {
				s.logger.Warn("frontier cap reached, dropping reference",
					"reference", resolved.String(),
					"maxFrontier", s.maxFrontier,
				)
				continue
			}
			frontier = append(frontier, resolved)
		}
	}

	report.Elapsed = time.Since(report.StartedAt)
	return report, nil
}

// CrawlPage fetches only the root page and records its resolved
// references, without expanding the frontier. This is the single-page
// mode of the crawl command: the discovered list holds the page's
// outgoing references in document order, and one edge is recorded per
// reference.
//
// Unlike Crawl, a fetch failure here fails the run: there is no
// remaining work to continue with.
func (s *Spider) CrawlPage(ctx context.Context, root *url.URL) (*model.CrawlReport, error) {
	if err := validateSeed(root); err != nil {
		return nil, err
	}

	report := model.NewCrawlReport(root.String())

	markup, err := s.fetcher.Fetch(ctx, root.String())
	if err != nil {
		report.Elapsed = time.Since(report.StartedAt)
		report.ErrorMessage = err.Error()
		return report, err
	}
	report.PagesFetched = 1

	for _, ref := range s.extractor.Extract(markup) {
		resolved, err := Resolve(root, ref)
		if err != nil {
			s.logger.Debug("dropping unresolvable reference",
				"page", root.String(),
				"reference", ref,
				"error", err,
			)
			continue
		}
		report.Discovered = append(report.Discovered, resolved.String())
		if edge, err := model.NewLink(root.String(), resolved.String()); err == nil {
			report.Edges = append(report.Edges, edge)
		}
	}

	report.Elapsed = time.Since(report.StartedAt)
	return report, nil
}

// validateSeed checks that a seed URL can act as a crawl root: it must
// be absolute, non-opaque, and carry a host.
func validateSeed(root *url.URL) error {
	if root == nil {
		return fmt.Errorf("seed url is nil")
	}
	if !root.IsAbs() || root.Opaque != "" {
		return fmt.Errorf("seed url %q cannot act as a base", root.String())
	}
	if root.Host == "" {
		return fmt.Errorf("seed url %q has no host", root.String())
	}
	return nil
}
