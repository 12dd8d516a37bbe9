package crawler

import (
	"net/url"
	"testing"
)

// TestResolve tests reference resolution against a page URL.
func TestResolve(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://a.example/dir/page.html")
	if err != nil {
		t.Fatalf("failed to parse base URL: %v", err)
	}

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"absolute URL used as-is", "https://b.example/x", "https://b.example/x"},
		{"relative path", "other.html", "https://a.example/dir/other.html"},
		{"rooted path", "/top.html", "https://a.example/top.html"},
		{"parent traversal", "../img/x.png", "https://a.example/img/x.png"},
		{"opaque mailto re-joined", "mailto:user@b.example", "https://a.example/dir/user@b.example"},
		{"query only", "?q=1", "https://a.example/dir/page.html?q=1"},
		{"fragment only", "#section", "https://a.example/dir/page.html#section"},
		{"protocol relative", "//c.example/asset.js", "https://c.example/asset.js"},
		{"empty reference resolves to page", "", "https://a.example/dir/page.html"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(base, tt.ref)
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.ref, err)
			}
			if got.String() != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got.String(), tt.want)
			}
		})
	}

	t.Run("unparsable reference returns error", func(t *testing.T) {
		t.Parallel()

		if _, err := Resolve(base, "http://a b.example/"); err == nil {
			t.Error("expected error for unparsable reference")
		}
	})
}

// TestIsHTML tests the page classification heuristic.
func TestIsHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rawURL string
		want   bool
	}{
		{"html extension", "https://a.example/page.html", true},
		{"htm extension", "https://a.example/page.htm", true},
		{"uppercase extension", "https://a.example/PAGE.HTML", true},
		{"extensionless path", "https://a.example/docs/guide", true},
		{"empty path", "https://a.example", true},
		{"root path", "https://a.example/", true},
		{"image", "https://a.example/img/logo.png", false},
		{"stylesheet", "https://a.example/style.css", false},
		{"dotted directory", "https://a.example/v1.2/page", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u, err := url.Parse(tt.rawURL)
			if err != nil {
				t.Fatalf("failed to parse URL: %v", err)
			}
			if got := IsHTML(u); got != tt.want {
				t.Errorf("IsHTML(%q) = %v, want %v", tt.rawURL, got, tt.want)
			}
		})
	}
}

// TestIsInDomain tests host suffix matching.
func TestIsInDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rawURL string
		suffix string
		want   bool
	}{
		{"exact host", "https://example.org/x", "example.org", true},
		{"subdomain", "https://docs.example.org/x", "example.org", true},
		{"other domain", "https://other.net/x", "example.org", false},
		{"suffix without label boundary", "https://notexample.org/x", "example.org", true},
		{"leading dot suffix avoids false positive", "https://notexample.org/x", ".example.org", false},
		{"leading dot suffix matches subdomain", "https://docs.example.org/x", ".example.org", true},
		{"no host", "file:///tmp/x", "example.org", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u, err := url.Parse(tt.rawURL)
			if err != nil {
				t.Fatalf("failed to parse URL: %v", err)
			}
			if got := IsInDomain(u, tt.suffix); got != tt.want {
				t.Errorf("IsInDomain(%q, %q) = %v, want %v", tt.rawURL, tt.suffix, got, tt.want)
			}
		})
	}
}

// TestIsInSite tests same-site detection.
func TestIsInSite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{"same host", "https://a.example/x", "https://a.example/y", true},
		{"same host different scheme", "http://a.example/x", "https://a.example/", true},
		{"different host", "https://a.example/x", "https://b.example/", false},
		{"subdomain is a different site", "https://docs.a.example/x", "https://a.example/", false},
		{"port ignored by hostname comparison", "https://a.example:8443/x", "https://a.example/", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u, err := url.Parse(tt.a)
			if err != nil {
				t.Fatalf("failed to parse URL: %v", err)
			}
			site, err := url.Parse(tt.b)
			if err != nil {
				t.Fatalf("failed to parse site URL: %v", err)
			}
			if got := IsInSite(u, site); got != tt.want {
				t.Errorf("IsInSite(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
