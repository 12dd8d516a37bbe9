package model

import (
	"testing"
)

// TestNewSite tests site construction and URL validation.
func TestNewSite(t *testing.T) {
	t.Parallel()

	t.Run("accepts absolute URL with host", func(t *testing.T) {
		t.Parallel()

		site, err := NewSite("https://a.example/page", 100)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if site.URL != "https://a.example/page" {
			t.Errorf("unexpected URL %q", site.URL)
		}
		if site.Crawltime != 100 {
			t.Errorf("expected crawltime 100, got %d", site.Crawltime)
		}
	})

	t.Run("rejects invalid URLs", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name   string
			rawURL string
		}{
			{"relative path", "relative/path"},
			{"no host", "https://"},
			{"opaque mailto", "mailto:user@a.example"},
			{"empty", ""},
			{"unparsable", "http://a b.example/"},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				if _, err := NewSite(tt.rawURL, 0); err == nil {
					t.Errorf("expected error for %q", tt.rawURL)
				}
			})
		}
	})
}

// TestNewLink tests edge construction and endpoint validation.
func TestNewLink(t *testing.T) {
	t.Parallel()

	t.Run("accepts two absolute URLs", func(t *testing.T) {
		t.Parallel()

		link, err := NewLink("https://a.example/", "https://b.example/x")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if link.SrcURL != "https://a.example/" || link.DstURL != "https://b.example/x" {
			t.Errorf("unexpected link %+v", link)
		}
	})

	t.Run("rejects invalid source", func(t *testing.T) {
		t.Parallel()

		if _, err := NewLink("relative", "https://b.example/"); err == nil {
			t.Error("expected error for relative source")
		}
	})

	t.Run("rejects invalid destination", func(t *testing.T) {
		t.Parallel()

		if _, err := NewLink("https://a.example/", "mailto:user@b.example"); err == nil {
			t.Error("expected error for opaque destination")
		}
	})
}

// TestNewCrawlReport tests report initialization.
func TestNewCrawlReport(t *testing.T) {
	t.Parallel()

	report := NewCrawlReport("https://a.example/")
	if report.Seed != "https://a.example/" {
		t.Errorf("unexpected seed %q", report.Seed)
	}
	if report.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
	if len(report.Discovered) != 0 || len(report.Edges) != 0 {
		t.Error("expected empty report")
	}
}
