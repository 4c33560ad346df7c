package mock

import (
	"context"

	"github.com/fwojciec/webfetch"
)

var _ webfetch.BatchFetcher = (*BatchFetcher)(nil)

// BatchFetcher is a mock implementation of webfetch.BatchFetcher.
type BatchFetcher struct {
	FetchAllFn func(ctx context.Context, urls []string) []webfetch.Result
}

func (f *BatchFetcher) FetchAll(ctx context.Context, urls []string) []webfetch.Result {
	return f.FetchAllFn(ctx, urls)
}
