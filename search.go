package webfetch

import "context"

// SearchResult is a single web search hit.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// Searcher queries an external web search provider.
type Searcher interface {
	// Search returns results for the natural language query.
	// If includeDomains is non-empty, results only come from those domains.
	Search(ctx context.Context, query string, includeDomains []string) ([]SearchResult, error)
}
