// Package exa provides a webfetch.Searcher backed by the Exa search API.
package exa

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/webfetch"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Exa API endpoint prefix.
const DefaultBaseURL = "https://api.exa.ai"

// DefaultNumResults is how many results a search requests.
const DefaultNumResults = 3

// DefaultTimeout bounds a single search call.
const DefaultTimeout = 10 * time.Second

// defaultRateLimit caps outbound API calls per second.
const defaultRateLimit = 5

// Ensure Searcher implements webfetch.Searcher at compile time.
var _ webfetch.Searcher = (*Searcher)(nil)

// Searcher queries the Exa /search endpoint. Searcher is safe for
// concurrent use.
type Searcher struct {
	apiKey     string
	baseURL    string
	numResults int
	client     *http.Client
	limiter    *rate.Limiter
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithBaseURL overrides the API endpoint prefix (used in tests).
func WithBaseURL(u string) Option {
	return func(s *Searcher) {
		s.baseURL = u
	}
}

// WithNumResults sets how many results to request. Defaults to 3.
func WithNumResults(n int) Option {
	return func(s *Searcher) {
		s.numResults = n
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Searcher) {
		s.client = c
	}
}

// WithRateLimit sets the outbound requests-per-second cap.
func WithRateLimit(rps float64) Option {
	return func(s *Searcher) {
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewSearcher creates a Searcher. An empty apiKey is allowed at construction
// time; Search then fails with EINVALID while fetch paths stay unaffected.
func NewSearcher(apiKey string, opts ...Option) *Searcher {
	s := &Searcher{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		numResults: DefaultNumResults,
		client:     &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(defaultRateLimit, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type searchRequest struct {
	Query          string         `json:"query"`
	IncludeDomains []string       `json:"include_domains,omitempty"`
	NumResults     int            `json:"num_results"`
	Contents       searchContents `json:"contents"`
}

type searchContents struct {
	Text    bool `json:"text"`
	Summary bool `json:"summary"`
}

type searchResponse struct {
	Results []webfetch.SearchResult `json:"results"`
}

// Search returns results for the query, optionally restricted to the given
// domains.
func (s *Searcher) Search(ctx context.Context, query string, includeDomains []string) ([]webfetch.SearchResult, error) {
	if s.apiKey == "" {
		return nil, webfetch.Errorf(webfetch.EINVALID, "search API key not configured")
	}
	if query == "" {
		return nil, webfetch.Errorf(webfetch.EINVALID, "search query required")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(searchRequest{
		Query:          query,
		IncludeDomains: includeDomains,
		NumResults:     s.numResults,
		Contents:       searchContents{Text: false, Summary: true},
	})
	if err != nil {
		return nil, webfetch.Errorf(webfetch.EINTERNAL, "encoding search request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, webfetch.Errorf(webfetch.EINTERNAL, "building search request: %v", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, webfetch.Errorf(webfetch.EUNAVAILABLE, "searching: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, webfetch.Errorf(webfetch.EUNAVAILABLE, "reading search response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, webfetch.Errorf(webfetch.EUNAVAILABLE, "search API returned HTTP %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	var parsed searchResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, webfetch.Errorf(webfetch.EINTERNAL, "decoding search response: %v", err)
	}

	return parsed.Results, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
