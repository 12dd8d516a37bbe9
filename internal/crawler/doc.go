// Package crawler implements the crawl engine: page fetching, link
// extraction, URL resolution and classification, and the frontier
// traversal that ties them together.
//
// # Components
//
//   - Spider: the crawl engine driving the traversal
//   - Fetcher: one blocking HTTP GET per page
//   - Extractor: markup-in, raw-reference-list-out link extraction
//   - Resolve/IsHTML/IsInDomain/IsInSite: URL resolution and scope
//     classification helpers
//
// # Extraction strategy
//
// The default PatternExtractor is deliberately lexical: it scans for
// href="..." and src="..." attribute text without building a DOM.
// Malformed or nested-quote markup can yield spurious or truncated
// matches; that is an accepted limitation of the strategy, not a bug.
// DOMExtractor is a structured alternative behind the same interface
// for callers that want parser-grade extraction.
//
// # Traversal order
//
// The frontier is a stack, so the crawl expands pages in depth-first
// order (last pushed, first popped). Tests assert this order.
//
// # Concurrency
//
// A Spider run is fully synchronous and owns its frontier, visited set
// and discovered list for the lifetime of one Crawl call. Concurrency
// across independent seeds lives in the pipeline package.
package crawler
