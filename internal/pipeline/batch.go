package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/linkmap/internal/model"
)

// BatchProcessor crawls multiple independent seed sites concurrently.
//
// Each seed gets its own pipeline instance from the factory, so no
// traversal state is shared between runs. Only the fan-out is
// concurrent; individual crawls stay sequential, and the shared Store
// guard keeps the database single-writer.
type BatchProcessor struct {
	// pipelineFactory creates a fresh pipeline per seed. The seed is
	// passed in so per-site configuration can be applied.
	pipelineFactory func(seed string) *Pipeline

	// concurrency is the maximum number of simultaneous crawls.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed reports, one per seed, in seed order.
	results []*model.CrawlReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent crawls.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor. The factory is called
// once per seed so that pipeline state never leaks between crawls.
func NewBatchProcessor(pipelineFactory func(seed string) *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch crawls all seeds, at most `concurrency` at a time, and
// returns one report per seed in input order. Per-seed failures are
// recorded in the corresponding report rather than aborting the batch;
// the error return reflects cancellation only.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, seeds []string) ([]*model.CrawlReport, error) {
	bp.logger.Info("starting batch crawl",
		"total_seeds", len(seeds),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()
	bp.results = make([]*model.CrawlReport, len(seeds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("crawling seed",
				"seed", seed,
				"index", i+1,
				"total", len(seeds),
			)

			report := model.NewCrawlReport(seed)
			err := bp.pipelineFactory(seed).Execute(ctx, report)

			bp.mu.Lock()
			bp.results[i] = report
			bp.mu.Unlock()

			if err != nil {
				bp.logger.Warn("crawl failed",
					"seed", seed,
					"error", err,
				)
				// The failure is recorded in the report; other seeds
				// keep crawling.
				return nil
			}
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch crawl complete",
		"total_seeds", len(seeds),
		"elapsed", time.Since(startTime),
	)
	return bp.results, err
}
