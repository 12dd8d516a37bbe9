package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/html/charset"
)

// Fetcher retrieves the markup of a single page.
//
// Implementations perform exactly one blocking GET per call with no
// retries. Every failure (transport error, bad status, undecodable
// body) is returned as a per-page error so that the engine can log and
// skip the page instead of aborting the whole run.
type Fetcher interface {
	// Fetch returns the markup text of the page at pageURL.
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// HTTPFetcher fetches pages over plain HTTP(S).
type HTTPFetcher struct {
	// client performs the requests. Timeouts, if any, are the
	// client's; the fetcher itself imposes none.
	client *http.Client

	// userAgent is sent with every request.
	userAgent string

	// maxBodySize caps how many bytes of a response body are read.
	maxBodySize int64
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize caps the number of response body bytes read per page.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *HTTPFetcher) {
		f.maxBodySize = size
	}
}

// NewHTTPFetcher creates a fetcher using the given HTTP client.
// The client is injected rather than constructed here so that callers
// control transport details and tests can supply their own.
func NewHTTPFetcher(client *http.Client, opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:      client,
		userAgent:   "linkmap/1.0 (+https://github.com/nao1215/linkmap)",
		maxBodySize: 5 * 1024 * 1024, // 5MB
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch implements Fetcher. The response body is read up to the
// configured size limit and decoded to UTF-8 based on the Content-Type
// charset where one is declared.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %q: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http get failed for %q: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("unexpected status %d for %q", resp.StatusCode, pageURL)
	}

	limited := io.LimitReader(resp.Body, f.maxBodySize)

	// Decode to UTF-8 using the declared charset; falls back to
	// sniffing when the header is silent.
	reader, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("cannot decode body of %q: %w", pageURL, err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read body of %q: %w", pageURL, err)
	}

	return string(body), nil
}
