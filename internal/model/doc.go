// Package model defines the core data types shared across linkmap.
//
// The two persisted entities are Site (a tracked URL with a crawl
// freshness timestamp) and Link (a directed edge between two URLs).
// Both are validated at construction time so that malformed URLs are
// rejected before they can reach the database layer.
//
// CrawlReport is the transient result of one crawl run. It is owned by
// value by the caller and is never shared between runs.
package model
