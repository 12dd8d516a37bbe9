package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

// Resolve turns a raw reference found in markup into an absolute URL,
// using base (the URL of the page the reference appeared on) where
// needed:
//
//   - a reference that parses as absolute is used as-is
//   - an absolute reference with an opaque (cannot-be-a-base) form has
//     its opaque part re-joined against base
//   - anything else is treated as a relative reference and joined
//     against base with standard reference resolution
//
// An unjoinable reference is a non-fatal error; callers skip it and
// continue.
func Resolve(base *url.URL, ref string) (*url.URL, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("unparsable reference %q: %w", ref, err)
	}

	if u.IsAbs() {
		// Opaque URLs (e.g. "mailto:user@host", "data:...") cannot act
		// as a base themselves; re-join their payload against the page.
		if u.Opaque != "" {
			joined, err := base.Parse(u.Opaque)
			if err != nil {
				return nil, fmt.Errorf("cannot join opaque reference %q: %w", ref, err)
			}
			return joined, nil
		}
		return u, nil
	}

	return base.ResolveReference(u), nil
}

// IsHTML reports whether a URL looks like it points at an HTML page.
//
// The check depends only on the path, case-insensitively: a path ending
// in ".html" or ".htm" is HTML, and so is a path containing no "."
// at all (extensionless paths are assumed to be pages). Every other
// extension is treated as a non-HTML asset. This is a documented
// heuristic, not an exact classification.
func IsHTML(u *url.URL) bool {
	path := strings.ToLower(u.Path)
	if strings.HasSuffix(path, ".html") || strings.HasSuffix(path, ".htm") {
		return true
	}
	return !strings.Contains(path, ".")
}

// IsInDomain reports whether the URL's host ends with the given domain
// suffix. The match is a plain byte-suffix test without label-boundary
// checking: pass a leading-dot suffix (".example.org") to avoid false
// positives on similarly named hosts ("notexample.org").
func IsInDomain(u *url.URL, suffix string) bool {
	host := u.Hostname()
	if host == "" {
		return false
	}
	return strings.HasSuffix(host, suffix)
}

// IsInSite reports whether two URLs belong to the same site, defined as
// exact host equality.
func IsInSite(u, siteURL *url.URL) bool {
	return u.Hostname() == siteURL.Hostname()
}
