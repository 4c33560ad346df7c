package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webfetch"
)

// Ensure LoggingBatchFetcher implements webfetch.BatchFetcher.
var _ webfetch.BatchFetcher = (*LoggingBatchFetcher)(nil)

// LoggingBatchFetcher wraps a BatchFetcher with logging.
type LoggingBatchFetcher struct {
	next   webfetch.BatchFetcher
	logger *slog.Logger
}

// NewLoggingBatchFetcher creates a new LoggingBatchFetcher.
func NewLoggingBatchFetcher(next webfetch.BatchFetcher, logger *slog.Logger) *LoggingBatchFetcher {
	return &LoggingBatchFetcher{next: next, logger: logger}
}

// FetchAll logs the batch size and failure count and delegates to the
// wrapped fetcher.
func (f *LoggingBatchFetcher) FetchAll(ctx context.Context, urls []string) []webfetch.Result {
	begin := time.Now()
	results := f.next.FetchAll(ctx, urls)

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	f.logger.Info("fetch batch",
		"urls", len(urls),
		"failed", failed,
		"duration", time.Since(begin),
	)
	return results
}
