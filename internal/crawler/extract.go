package crawler

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Extractor extracts raw link references from markup text.
//
// The interface is deliberately narrow (markup in, raw reference list
// out) so that the extraction strategy can be swapped without touching
// the crawl engine. Implementations return references in document
// order, unmerged and undeduplicated; deduplication is the caller's
// job.
type Extractor interface {
	// Extract returns every raw reference found in the markup.
	Extract(markup string) []string
}

// hrefPattern and srcPattern match attribute values lazily and
// non-overlapping, exactly as they appear in the markup text.
var (
	hrefPattern = regexp.MustCompile(`href="(.*?)"`)
	srcPattern  = regexp.MustCompile(`src="(.*?)"`)
)

// PatternExtractor extracts references with two independent lexical
// scans, one for href="..." and one for src="...", with no DOM
// construction. The href matches come first (in document order),
// followed by the src matches.
//
// Because the scan is purely textual, malformed or nested-quote markup
// can yield spurious or truncated matches. That is an accepted
// trade-off of the strategy; use DOMExtractor when structured parsing
// is required.
type PatternExtractor struct{}

// NewPatternExtractor creates the default lexical extractor.
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

// Extract implements Extractor.
func (e *PatternExtractor) Extract(markup string) []string {
	refs := make([]string, 0)
	for _, m := range hrefPattern.FindAllStringSubmatch(markup, -1) {
		refs = append(refs, m[1])
	}
	for _, m := range srcPattern.FindAllStringSubmatch(markup, -1) {
		refs = append(refs, m[1])
	}
	return refs
}

// DOMExtractor extracts references by parsing the markup with
// golang.org/x/net/html and collecting href and src attribute values
// from element nodes.
//
// It honors the same output contract as PatternExtractor: href values
// in document order first, then src values, undeduplicated. Unlike the
// lexical scan it tolerates unquoted attributes and never matches
// attribute-shaped text inside comments or scripts.
type DOMExtractor struct{}

// NewDOMExtractor creates the structured extractor.
func NewDOMExtractor() *DOMExtractor {
	return &DOMExtractor{}
}

// Extract implements Extractor.
//
// x/net/html is forgiving: it never fails on malformed markup but
// instead builds the best tree it can, so a parse error here means the
// reader itself failed. With a strings.Reader that cannot happen, and
// an empty list is returned defensively.
func (e *DOMExtractor) Extract(markup string) []string {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	hrefs := make([]string, 0)
	srcs := make([]string, 0)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				switch attr.Key {
				case "href":
					hrefs = append(hrefs, attr.Val)
				case "src":
					srcs = append(srcs, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return append(hrefs, srcs...)
}
