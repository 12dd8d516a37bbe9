// Package report renders crawl results for output.
//
// The crawl engine returns the discovered list verbatim: unsorted,
// undeduplicated, unfiltered. This package owns the caller-side half of
// that contract: FilterURLs dedups, sorts and optionally filters by
// domain suffix or HTML classification, and the Writer implementations
// render either the plain URL list (text) or the full crawl report
// (JSON, Markdown).
package report
