package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/linkmap/internal/model"
)

// DBFileName is the name of the SQLite database file inside the
// configured data directory.
const DBFileName = "linkmap.db"

// ErrRowCount is returned when an operation that must affect exactly
// one row affected zero or more than one.
var ErrRowCount = errors.New("operation must affect exactly one row")

// LinkDB is the SQLite-backed link graph store.
//
// It persists site freshness timestamps and directed link edges with
// referential integrity, and answers the least-recently-crawled query
// used for re-crawl scheduling.
type LinkDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures LinkDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// read performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a LinkDB at the specified directory.
//
// Table creation is idempotent (create-if-absent). An existing table
// with an incompatible schema is neither migrated nor validated.
// Foreign key enforcement is switched on in the DSN so that every
// connection cascades link deletion when a site row goes away; SQLite
// leaves the pragma off by default.
func Open(dbDir string, opts Options) (*LinkDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw prevents the driver from creating new files when the
	// caller asked to open an existing database only.
	mode := "rw"
	if opts.CreateIfNotExists {
		mode = "rwc"
	}
	dsn := dbPath + "?mode=" + mode + "&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer; a single connection avoids
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	ldb := &LinkDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := ldb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return ldb, nil
}

// Close closes the database connection.
func (ldb *LinkDB) Close() error {
	return ldb.db.Close()
}

// Path returns the path of the underlying database file.
func (ldb *LinkDB) Path() string {
	return ldb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (ldb *LinkDB) createTables() error {
	schema := `
	-- Sites track crawl freshness per URL.
	CREATE TABLE IF NOT EXISTS site (
		url TEXT NOT NULL PRIMARY KEY,
		crawltime INTEGER NOT NULL
	);

	-- Links are directed edges; the source must be a tracked site and
	-- follows it on update and delete.
	CREATE TABLE IF NOT EXISTS link (
		srcurl TEXT NOT NULL,
		dsturl TEXT NOT NULL,
		PRIMARY KEY (srcurl, dsturl),
		FOREIGN KEY (srcurl) REFERENCES site (url)
			ON UPDATE CASCADE
			ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_site_crawltime ON site(crawltime);
	CREATE INDEX IF NOT EXISTS idx_link_srcurl ON link(srcurl);
	`

	_, err := ldb.db.ExecContext(context.Background(), schema)
	return err
}

// UpsertSite inserts a site row, or updates only its crawltime when the
// URL already exists. The operation is idempotent.
func (ldb *LinkDB) UpsertSite(ctx context.Context, site model.Site) error {
	query := `
	INSERT INTO site (url, crawltime) VALUES (?, ?)
	ON CONFLICT(url) DO UPDATE SET crawltime = excluded.crawltime
	`

	if _, err := ldb.db.ExecContext(ctx, query, site.URL, site.Crawltime); err != nil {
		return fmt.Errorf("failed to upsert site %q: %w", site.URL, err)
	}
	return nil
}

// UpsertLink records a directed edge. Recording the same edge twice is
// a no-op (set-union semantics). The source URL must reference an
// existing site row; if it does not, the foreign key violation is
// surfaced to the caller, never swallowed.
func (ldb *LinkDB) UpsertLink(ctx context.Context, link model.Link) error {
	query := `
	INSERT INTO link (srcurl, dsturl) VALUES (?, ?)
	ON CONFLICT(srcurl, dsturl) DO UPDATE SET srcurl = excluded.srcurl, dsturl = excluded.dsturl
	`

	if _, err := ldb.db.ExecContext(ctx, query, link.SrcURL, link.DstURL); err != nil {
		return fmt.Errorf("failed to upsert link %q -> %q: %w", link.SrcURL, link.DstURL, err)
	}
	return nil
}

// DeleteSiteByURL deletes the site row with the given URL. Foreign key
// enforcement cascades the deletion to every link whose source equals
// the URL. Deleting a nonexistent site is not an error.
func (ldb *LinkDB) DeleteSiteByURL(ctx context.Context, url string) error {
	if _, err := ldb.db.ExecContext(ctx, "DELETE FROM site WHERE url = ?", url); err != nil {
		return fmt.Errorf("failed to delete site %q: %w", url, err)
	}
	return nil
}

// DeleteLinksBySource deletes every link whose source equals the given
// URL, leaving the site row in place. Used when re-crawling a site to
// replace its outgoing edges wholesale.
func (ldb *LinkDB) DeleteLinksBySource(ctx context.Context, srcURL string) error {
	if _, err := ldb.db.ExecContext(ctx, "DELETE FROM link WHERE srcurl = ?", srcURL); err != nil {
		return fmt.Errorf("failed to delete links from %q: %w", srcURL, err)
	}
	return nil
}

// GetSiteWithOldestCrawltime returns the site with the minimal
// crawltime, or nil when the table is empty. Ties are broken by URL
// order, which keeps the scheduling query deterministic.
func (ldb *LinkDB) GetSiteWithOldestCrawltime(ctx context.Context) (*model.Site, error) {
	query := `
	SELECT url, crawltime FROM site
	ORDER BY crawltime ASC, url ASC
	LIMIT 1
	`

	var site model.Site
	err := ldb.db.QueryRowContext(ctx, query).Scan(&site.URL, &site.Crawltime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query oldest crawltime: %w", err)
	}

	return &site, nil
}

// UpdateSiteCrawltime sets the crawltime of an existing site. The site
// must already exist, uniquely: affecting zero rows (or, with a
// corrupted schema, more than one) is an error.
func (ldb *LinkDB) UpdateSiteCrawltime(ctx context.Context, site model.Site) error {
	result, err := ldb.db.ExecContext(ctx,
		"UPDATE site SET crawltime = ? WHERE url = ?",
		site.Crawltime, site.URL,
	)
	if err != nil {
		return fmt.Errorf("failed to update crawltime of %q: %w", site.URL, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected != 1 {
		return fmt.Errorf("updating crawltime of %q changed %d rows: %w", site.URL, affected, ErrRowCount)
	}
	return nil
}

// GetLinksBySource returns all outgoing edges recorded for a source
// URL, in destination order.
func (ldb *LinkDB) GetLinksBySource(ctx context.Context, srcURL string) ([]model.Link, error) {
	query := `
	SELECT srcurl, dsturl FROM link
	WHERE srcurl = ?
	ORDER BY dsturl ASC
	`

	rows, err := ldb.db.QueryContext(ctx, query, srcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to query links from %q: %w", srcURL, err)
	}
	defer rows.Close()

	var links []model.Link
	for rows.Next() {
		var link model.Link
		if err := rows.Scan(&link.SrcURL, &link.DstURL); err != nil {
			return nil, fmt.Errorf("failed to scan link row: %w", err)
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

// ListSites returns every tracked site ordered by URL.
func (ldb *LinkDB) ListSites(ctx context.Context) ([]model.Site, error) {
	rows, err := ldb.db.QueryContext(ctx, "SELECT url, crawltime FROM site ORDER BY url ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	var sites []model.Site
	for rows.Next() {
		var site model.Site
		if err := rows.Scan(&site.URL, &site.Crawltime); err != nil {
			return nil, fmt.Errorf("failed to scan site row: %w", err)
		}
		sites = append(sites, site)
	}

	return sites, rows.Err()
}

// CountLinks returns the total number of recorded edges.
func (ldb *LinkDB) CountLinks(ctx context.Context) (int, error) {
	var count int
	if err := ldb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM link").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count links: %w", err)
	}
	return count, nil
}
