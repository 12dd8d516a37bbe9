package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout bounds each HTTP request. The reference crawl
	// loop itself imposes no deadline, so the HTTP client carries one;
	// callers needing tighter latency wrap the crawl context instead.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxPages caps the number of pages fetched per site. It
	// prevents runaway crawling on large or infinitely generating
	// sites and can be raised via the --max-pages flag.
	DefaultMaxPages = 1000

	// DefaultMaxFrontier caps queued URLs per crawl run. Cross-host
	// fan-out can enqueue many never-fetched entries before the
	// same-host filter sees them; this bounds that growth.
	DefaultMaxFrontier = 100000

	// DefaultBatchSize is the number of seed sites crawled
	// concurrently. Each individual crawl stays single-threaded; the
	// batch only fans out across independent sites.
	DefaultBatchSize = 4

	// DefaultUserAgent identifies linkmap in HTTP requests so that
	// site operators can recognize crawler traffic in their logs.
	DefaultUserAgent = "linkmap/1.0 (+https://github.com/nao1215/linkmap)"

	// DefaultMaxBodySize limits the response body bytes read per page.
	// 5MB covers any sane HTML page while bounding memory use.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "linkmap"
)

// ExtractorName selects a link extraction strategy.
type ExtractorName string

// Supported extraction strategies.
const (
	// ExtractorPattern is the default lexical href=/src= scan.
	ExtractorPattern ExtractorName = "pattern"

	// ExtractorDOM parses markup with x/net/html before extracting.
	ExtractorDOM ExtractorName = "dom"
)

// Config holds all configuration options for linkmap.
//
// A single flat struct keeps the flag mapping in cmd simple; the option
// count is small enough that nesting would only add noise.
type Config struct {
	// Targets is the list of seed URLs to crawl. Each must parse as an
	// absolute, non-opaque URL with a host.
	Targets []string

	// Recursive selects a full site crawl instead of a single-page
	// crawl.
	Recursive bool

	// Domain filters output to URLs whose host ends with this suffix.
	// Pass a leading-dot suffix (".example.org") to avoid matching
	// similarly named hosts; the suffix test does not enforce a label
	// boundary.
	Domain string

	// HTMLOnly filters output to URLs classified as HTML.
	HTMLOnly bool

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// MaxPages caps fetched pages per site crawl.
	MaxPages int

	// MaxFrontier caps queued URLs per crawl run.
	MaxFrontier int

	// BatchSize is the number of seed sites crawled concurrently.
	BatchSize int

	// Extractor selects the link extraction strategy.
	Extractor ExtractorName

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// MaxBodySize limits response body bytes read per page.
	MaxBodySize int64

	// Verbose enables debug-level log output.
	Verbose bool

	// JSONReport emits the crawl report as JSON instead of the plain
	// sorted URL list. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport emits the crawl report as Markdown. Mutually
	// exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to this path instead of stdout.
	ReportFile string

	// SaveToDB persists discovered sites and links into the store.
	SaveToDB bool

	// DBDir is the directory holding the SQLite database file.
	// Defaults to the XDG data directory.
	DBDir string

	// ConfigFilePath is an explicit .linkmap config file path. When
	// empty, the current and home directories are searched.
	ConfigFilePath string

	// SiteConfigs holds per-site overrides loaded from the config
	// file.
	SiteConfigs *File
}

// NewConfig creates a Config with default values. Many defaults are
// non-zero, so zero-value construction would be wrong; this constructor
// doubles as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		MaxPages:    DefaultMaxPages,
		MaxFrontier: DefaultMaxFrontier,
		BatchSize:   DefaultBatchSize,
		Extractor:   ExtractorPattern,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for linkmap.
// On Linux: ~/.local/share/linkmap
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for linkmap.
// On Linux: ~/.config/linkmap
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem
// found as a sentinel error. Called once after flag parsing, before
// any crawling begins.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}
	if c.MaxFrontier <= 0 {
		return ErrInvalidMaxFrontier
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.Extractor != ExtractorPattern && c.Extractor != ExtractorDOM {
		return ErrUnknownExtractor
	}
	return nil
}

// SiteConfigFor returns the per-site overrides for a seed URL, or a
// zero SiteConfig when none are configured.
func (c *Config) SiteConfigFor(seed string) SiteConfig {
	if c.SiteConfigs == nil {
		return SiteConfig{}
	}
	return c.SiteConfigs.Sites[seed]
}
