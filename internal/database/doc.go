// Package database provides the SQLite-backed link graph store.
//
// The store persists two tables: site (url primary key, crawltime unix
// seconds) and link (directed srcurl→dsturl edges keyed on the pair,
// with srcurl referencing site on cascade). SQLite does not enforce
// foreign keys by default, so the pragma is enabled explicitly on
// every connection; without it, deleting a site would strand its
// outgoing links.
//
// We use modernc.org/sqlite because it is CGO-free, which keeps
// cross-compilation trivial, and a single database file is all the
// deployment footprint this tool needs.
//
// The store has no internal locking beyond SQLite's own. It assumes a
// single writer; concurrent crawl workers must serialize their writes
// externally (the pipeline package funnels all writes through one
// guarded handle).
package database
