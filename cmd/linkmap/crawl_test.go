package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/linkmap/internal/database"
)

// TestNewCrawlCmd tests the crawl command creation.
func TestNewCrawlCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCrawlCmd()

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{
			"recursive", "max-pages", "timeout", "extractor", "batch",
			"domain", "html-only", "json", "markdown", "output",
			"save", "db-dir", "config",
		} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %q", name)
			}
		}
	})

	t.Run("recursive shorthand", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("recursive").Shorthand != "r" {
			t.Error("expected shorthand 'r' for recursive")
		}
	})
}

// TestValidateTarget tests seed URL validation.
func TestValidateTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  string
		wantErr bool
	}{
		{"https URL", "https://a.example/", false},
		{"http URL with path", "http://a.example/dir/page.html", false},
		{"relative path", "relative/path", true},
		{"missing host", "https://", true},
		{"opaque URL", "mailto:user@a.example", true},
		{"unparsable", "http://a b.example/", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateTarget(tt.target)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateTarget(%q) error = %v, wantErr %v", tt.target, err, tt.wantErr)
			}
		})
	}
}

// TestRunCrawlCmd tests end-to-end crawl command execution against a
// local HTTP server.
func TestRunCrawlCmd(t *testing.T) {
	t.Run("single page crawl lists outgoing links", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body><a href="/about.html">About</a><a href="/contact.html">Contact</a></body></html>`))
		}))
		defer server.Close()

		outputPath := filepath.Join(t.TempDir(), "out.txt")

		cmd := NewCrawlCmd()
		cmd.SetArgs([]string{"-o", outputPath, server.URL})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		out := string(content)
		if !strings.Contains(out, server.URL+"/about.html") {
			t.Errorf("expected about.html in output, got: %s", out)
		}
		if !strings.Contains(out, server.URL+"/contact.html") {
			t.Errorf("expected contact.html in output, got: %s", out)
		}
	})

	t.Run("recursive crawl with save persists the graph", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body><a href="/deep.html">Deep</a></body></html>`))
		})
		mux.HandleFunc("/deep.html", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body>leaf</body></html>`))
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		dbDir := t.TempDir()
		outputPath := filepath.Join(t.TempDir(), "out.txt")

		cmd := NewCrawlCmd()
		cmd.SetArgs([]string{"-r", "--save", "--db-dir", dbDir, "-o", outputPath, server.URL})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		links, err := db.GetLinksBySource(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("failed to query links: %v", err)
		}
		if len(links) != 1 || links[0].DstURL != server.URL+"/deep.html" {
			t.Errorf("expected persisted edge to deep.html, got %v", links)
		}
	})

	t.Run("json and markdown together fail validation", func(t *testing.T) {
		cmd := NewCrawlCmd()
		cmd.SetArgs([]string{"-j", "-m", "https://a.example/"})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for conflicting report formats")
		}
	})

	t.Run("no targets fail validation", func(t *testing.T) {
		cmd := NewCrawlCmd()
		cmd.SetArgs([]string{})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for missing targets")
		}
	})

	t.Run("explicit missing config file is an error", func(t *testing.T) {
		cmd := NewCrawlCmd()
		cmd.SetArgs([]string{"-c", filepath.Join(t.TempDir(), "missing"), "https://a.example/"})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("invalid seed fails before crawling", func(t *testing.T) {
		cmd := NewCrawlCmd()
		cmd.SetArgs([]string{"not-a-url"})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for invalid seed")
		}
	})
}
