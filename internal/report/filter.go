package report

import (
	"net/url"
	"sort"

	"github.com/nao1215/linkmap/internal/crawler"
)

// FilterURLs deduplicates and sorts a list of discovered URLs,
// optionally keeping only URLs whose host ends with domainSuffix and/or
// URLs that classify as HTML.
//
// URLs that fail to parse are dropped: anything reaching this point
// came out of the resolver, so an unparsable entry has no meaningful
// classification. An empty domainSuffix matches every host.
func FilterURLs(urls []string, domainSuffix string, htmlOnly bool) []string {
	seen := make(map[string]bool, len(urls))
	filtered := make([]string, 0, len(urls))

	for _, raw := range urls {
		if seen[raw] {
			continue
		}
		seen[raw] = true

		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		if domainSuffix != "" && !crawler.IsInDomain(u, domainSuffix) {
			continue
		}
		if htmlOnly && !crawler.IsHTML(u) {
			continue
		}
		filtered = append(filtered, raw)
	}

	sort.Strings(filtered)
	return filtered
}
