package mock

import (
	"context"

	"github.com/fwojciec/webfetch"
)

var _ webfetch.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of webfetch.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, includeDomains []string) ([]webfetch.SearchResult, error)
}

func (s *Searcher) Search(ctx context.Context, query string, includeDomains []string) ([]webfetch.SearchResult, error) {
	return s.SearchFn(ctx, query, includeDomains)
}
