package model

import "time"

// CrawlReport aggregates the result of one crawl run.
//
// A report is owned by a single crawl invocation and returned by value;
// no two runs ever share one. Discovered preserves the exact processing
// order and is intentionally not deduplicated: filtering, sorting and
// deduplication belong to the caller (see the report package).
type CrawlReport struct {
	// Seed is the URL the crawl started from.
	Seed string `json:"seed"`

	// Discovered lists every URL popped from the frontier, in
	// processing order. It may contain duplicates for assets and
	// external URLs referenced from more than one page.
	Discovered []string `json:"discovered"`

	// Edges are the directed links recorded during the crawl: one
	// entry per successfully resolved reference on each fetched page.
	Edges []Link `json:"edges,omitempty"`

	// PagesFetched is the number of pages actually fetched, i.e. the
	// same-host HTML subset of Discovered.
	PagesFetched int `json:"pages_fetched"`

	// Skipped lists pages that were selected for fetching but failed,
	// together with the reason. The crawl continues past these.
	Skipped []SkippedPage `json:"skipped,omitempty"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total crawl duration.
	Elapsed time.Duration `json:"elapsed"`

	// ErrorMessage carries a run-level failure, if any. Per-page fetch
	// failures land in Skipped instead.
	ErrorMessage string `json:"error,omitempty"`
}

// SkippedPage records a page that could not be fetched.
type SkippedPage struct {
	// URL is the page that was skipped.
	URL string `json:"url"`

	// Reason is the error text explaining the skip.
	Reason string `json:"reason"`
}

// NewCrawlReport creates an empty report for the given seed URL.
func NewCrawlReport(seed string) *CrawlReport {
	return &CrawlReport{
		Seed:      seed,
		StartedAt: time.Now(),
	}
}
