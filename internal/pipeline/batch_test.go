package pipeline

import (
	"context"
	"sync"
	"testing"

	"github.com/nao1215/linkmap/internal/crawler"
	"github.com/nao1215/linkmap/internal/model"
)

// TestBatchProcessor tests concurrent multi-seed crawling.
func TestBatchProcessor(t *testing.T) {
	t.Parallel()

	t.Run("returns one report per seed in input order", func(t *testing.T) {
		t.Parallel()

		fetcher := mapFetcher{
			"https://a.example/": ``,
			"https://b.example/": ``,
			"https://c.example/": ``,
		}

		factory := func(_ string) *Pipeline {
			spider := crawler.NewSpider(fetcher, crawler.NewPatternExtractor())
			p := New()
			p.AddStep(NewCrawlStep(spider, true))
			return p
		}

		seeds := []string{"https://a.example/", "https://b.example/", "https://c.example/"}
		bp := NewBatchProcessor(factory, WithConcurrency(2))

		reports, err := bp.ProcessBatch(context.Background(), seeds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(reports) != len(seeds) {
			t.Fatalf("expected %d reports, got %d", len(seeds), len(reports))
		}
		for i, report := range reports {
			if report == nil {
				t.Fatalf("report %d is nil", i)
			}
			if report.Seed != seeds[i] {
				t.Errorf("report %d has seed %q, want %q", i, report.Seed, seeds[i])
			}
		}
	})

	t.Run("one failing seed does not abort the batch", func(t *testing.T) {
		t.Parallel()

		fetcher := mapFetcher{
			"https://a.example/": ``,
			// b.example is absent, so its crawl fails in single-page mode.
			"https://c.example/": ``,
		}

		factory := func(_ string) *Pipeline {
			spider := crawler.NewSpider(fetcher, crawler.NewPatternExtractor())
			p := New()
			p.AddStep(NewCrawlStep(spider, false))
			return p
		}

		seeds := []string{"https://a.example/", "https://b.example/", "https://c.example/"}
		bp := NewBatchProcessor(factory)

		reports, err := bp.ProcessBatch(context.Background(), seeds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if reports[0].ErrorMessage != "" || reports[2].ErrorMessage != "" {
			t.Error("healthy seeds must not carry errors")
		}
		if reports[1].ErrorMessage == "" {
			t.Error("expected error recorded for the failing seed")
		}
	})

	t.Run("respects the concurrency limit", func(t *testing.T) {
		t.Parallel()

		var current, peak int64
		var mu sync.Mutex

		gate := make(chan struct{})
		factory := func(_ string) *Pipeline {
			p := New()
			p.AddStep(&gateStep{current: &current, peak: &peak, mu: &mu, gate: gate})
			return p
		}

		seeds := []string{
			"https://a.example/", "https://b.example/",
			"https://c.example/", "https://d.example/",
		}
		bp := NewBatchProcessor(factory, WithConcurrency(2))

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = bp.ProcessBatch(context.Background(), seeds)
		}()

		close(gate)
		<-done

		if peak > 2 {
			t.Errorf("expected at most 2 concurrent crawls, observed %d", peak)
		}
	})

	t.Run("propagates cancellation", func(t *testing.T) {
		t.Parallel()

		factory := func(_ string) *Pipeline {
			return New()
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		bp := NewBatchProcessor(factory)
		if _, err := bp.ProcessBatch(ctx, []string{"https://a.example/"}); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}

// gateStep tracks how many instances run at once, holding each run open
// until the gate closes.
type gateStep struct {
	current *int64
	peak    *int64
	mu      *sync.Mutex
	gate    chan struct{}
}

func (s *gateStep) Name() string { return "gate" }

func (s *gateStep) Do(_ context.Context, _ *model.CrawlReport) error {
	s.mu.Lock()
	*s.current++
	if *s.current > *s.peak {
		*s.peak = *s.current
	}
	s.mu.Unlock()

	<-s.gate

	s.mu.Lock()
	*s.current--
	s.mu.Unlock()
	return nil
}
