package report

import (
	"reflect"
	"testing"
)

// TestFilterURLs tests deduplication, sorting, and the output filters.
func TestFilterURLs(t *testing.T) {
	t.Parallel()

	t.Run("deduplicates and sorts", func(t *testing.T) {
		t.Parallel()

		urls := []string{
			"https://b.example/",
			"https://a.example/",
			"https://b.example/",
			"https://a.example/",
		}

		got := FilterURLs(urls, "", false)
		want := []string{"https://a.example/", "https://b.example/"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("FilterURLs() = %v, want %v", got, want)
		}
	})

	t.Run("domain suffix keeps matching hosts", func(t *testing.T) {
		t.Parallel()

		urls := []string{
			"https://a.example.org/",
			"https://b.example.org/page.html",
			"https://other.net/",
		}

		got := FilterURLs(urls, "example.org", false)
		want := []string{"https://a.example.org/", "https://b.example.org/page.html"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("FilterURLs() = %v, want %v", got, want)
		}
	})

	t.Run("html only drops assets", func(t *testing.T) {
		t.Parallel()

		urls := []string{
			"https://a.example/page.html",
			"https://a.example/logo.png",
			"https://a.example/docs",
			"https://a.example/style.css",
		}

		got := FilterURLs(urls, "", true)
		want := []string{"https://a.example/docs", "https://a.example/page.html"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("FilterURLs() = %v, want %v", got, want)
		}
	})

	t.Run("filters combine", func(t *testing.T) {
		t.Parallel()

		urls := []string{
			"https://a.example.org/page.html",
			"https://a.example.org/logo.png",
			"https://other.net/page.html",
		}

		got := FilterURLs(urls, "example.org", true)
		want := []string{"https://a.example.org/page.html"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("FilterURLs() = %v, want %v", got, want)
		}
	})

	t.Run("unparsable URLs are dropped", func(t *testing.T) {
		t.Parallel()

		urls := []string{"https://a.example/", "http://a b.example/"}

		got := FilterURLs(urls, "", false)
		want := []string{"https://a.example/"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("FilterURLs() = %v, want %v", got, want)
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		t.Parallel()

		if got := FilterURLs(nil, "", false); len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
	})
}
