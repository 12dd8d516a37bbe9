// Package main provides the entry point for the linkmap CLI.
//
// linkmap discovers the pages reachable from a seed URL within its
// host, prints or persists the resulting link graph, and schedules
// re-crawls by crawl freshness.
//
// Usage:
//
//	linkmap crawl <url>
//	linkmap crawl --recursive --save <url>
//	linkmap next
//	linkmap update
//
// See --help for all available options.
package main

// main is the entry point for linkmap.
func main() {
	Execute()
}
