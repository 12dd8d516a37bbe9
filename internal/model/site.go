package model

import (
	"fmt"
	"net/url"
)

// Site is a tracked site entry in the link graph store.
//
// URL is the primary key and must be an absolute URL with a non-empty
// host. Crawltime is the unix timestamp (seconds) of the last completed
// crawl; sites that have never been crawled carry a crawltime of 0.
type Site struct {
	// URL is the absolute URL identifying the site (e.g.
	// "https://kryptonaut.neocities.org/").
	URL string `json:"url"`

	// Crawltime is the unix timestamp of the last completed crawl.
	// 0 means the site has never been crawled.
	Crawltime int64 `json:"crawltime"`
}

// NewSite creates a Site after validating the URL.
// The URL must parse as an absolute URL with a non-empty host; anything
// else is a construction error, never defaulted.
func NewSite(rawURL string, crawltime int64) (Site, error) {
	if err := validateEntryURL(rawURL); err != nil {
		return Site{}, fmt.Errorf("invalid site url %q: %w", rawURL, err)
	}
	return Site{URL: rawURL, Crawltime: crawltime}, nil
}

// validateEntryURL checks that a URL is absolute and has a host.
// Shared by Site and Link constructors so that the store never sees a
// URL it cannot key on.
func validateEntryURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if !u.IsAbs() {
		return fmt.Errorf("url is not absolute")
	}
	if u.Host == "" {
		return fmt.Errorf("url has no host")
	}
	return nil
}
