package model

import "fmt"

// Link is a directed edge in the link graph: the page at SrcURL
// references DstURL in its markup.
//
// The (SrcURL, DstURL) pair is the composite key; recording the same
// edge twice is a no-op at the store level. SrcURL must reference an
// existing Site row, DstURL need not.
type Link struct {
	// SrcURL is the URL of the page that contains the link.
	SrcURL string `json:"srcurl"`

	// DstURL is the URL the link points at.
	DstURL string `json:"dsturl"`
}

// NewLink creates a Link after validating both endpoints.
// Both URLs must parse as absolute with a non-empty host.
func NewLink(srcURL, dstURL string) (Link, error) {
	if err := validateEntryURL(srcURL); err != nil {
		return Link{}, fmt.Errorf("invalid source url %q: %w", srcURL, err)
	}
	if err := validateEntryURL(dstURL); err != nil {
		return Link{}, fmt.Errorf("invalid destination url %q: %w", dstURL, err)
	}
	return Link{SrcURL: srcURL, DstURL: dstURL}, nil
}
