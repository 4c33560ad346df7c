package webfetch

import "context"

// Result is the per-URL outcome of a batch fetch. Exactly one of Markdown
// or Err is meaningful: a failed fetch carries Err and empty content.
type Result struct {
	URL      string
	Title    string
	Markdown string
	Err      error
}

// Fetcher retrieves HTML from a single URL.
// Implementations may use browser automation to handle JavaScript-rendered
// content, or a plain HTTP client for static pages.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// BatchFetcher retrieves and converts a batch of URLs to Markdown.
// Implementations hide HTTP vs browser selection and fallback policy.
type BatchFetcher interface {
	// FetchAll returns exactly one Result per input URL, in input order.
	// Per-URL failures are reported in the Result's Err field; the batch
	// itself never fails as a whole.
	FetchAll(ctx context.Context, urls []string) []Result
}
