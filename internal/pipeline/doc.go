// Package pipeline orchestrates crawl runs as sequences of steps.
//
// A Pipeline executes Steps in order against one CrawlReport: crawl the
// seed, persist the discovered graph, bump the site's crawltime. The
// BatchProcessor fans pipelines out over independent seed sites with a
// bounded errgroup.
//
// The link graph store assumes a single writer, so every persisting
// step goes through a Store guard that serializes writes across all
// concurrently running pipelines. Each crawl itself stays fully
// sequential; concurrency exists only between unrelated sites.
package pipeline
