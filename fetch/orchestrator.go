// Package fetch orchestrates batch URL fetching: a cheap plain-HTTP attempt
// per URL with fallback to browser rendering when the page needs JavaScript
// to produce real content.
package fetch

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/webfetch"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// MinMarkdownLength is the sufficiency threshold: a lightweight fetch whose
// converted Markdown trims to fewer characters is assumed to have missed
// JavaScript-rendered content and triggers the browser fallback.
const MinMarkdownLength = 300

// Sufficient reports whether converted Markdown carries enough text to
// accept the lightweight fetch result.
func Sufficient(markdown string) bool {
	return len(strings.TrimSpace(markdown)) >= MinMarkdownLength
}

// Ensure Orchestrator implements webfetch.BatchFetcher at compile time.
var _ webfetch.BatchFetcher = (*Orchestrator)(nil)

// Orchestrator implements webfetch.BatchFetcher. For each URL it tries the
// lightweight fetcher first and falls back to the browser fetcher on any
// failure or insufficient content. Browser-backed attempts run concurrently;
// the browser fetcher is expected to lazily initialize its shared browser at
// most once (see rod.Manager).
type Orchestrator struct {
	light     webfetch.Fetcher
	browser   webfetch.Fetcher
	extractor webfetch.Extractor
	converter webfetch.Converter

	browserOnly bool
	logger      *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithBrowserOnly skips the lightweight attempt entirely and renders every
// URL in the browser.
func WithBrowserOnly(v bool) Option {
	return func(o *Orchestrator) {
		o.browserOnly = v
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// NewOrchestrator creates an Orchestrator with the given dependencies.
func NewOrchestrator(
	light webfetch.Fetcher,
	browser webfetch.Fetcher,
	extractor webfetch.Extractor,
	converter webfetch.Converter,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		light:     light,
		browser:   browser,
		extractor: extractor,
		converter: converter,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// FetchAll returns exactly one result per input URL, in input order. A
// single URL's failure never fails the batch; it surfaces as that slot's
// Err. Execution order across browser-backed URLs is unordered.
func (o *Orchestrator) FetchAll(ctx context.Context, urls []string) []webfetch.Result {
	logger := o.logger.With("batch_id", uuid.NewString(), "urls", len(urls))

	results := make([]webfetch.Result, len(urls))
	var pending []int

	for i, url := range urls {
		results[i] = webfetch.Result{URL: url}

		if o.browserOnly || o.light == nil {
			pending = append(pending, i)
			continue
		}

		res, err := o.fetchLight(ctx, url)
		if err != nil {
			// InsufficientContent and network failures trigger the
			// same fallback; the code only matters for the log line.
			logger.Debug("lightweight fetch failed, falling back to browser",
				"url", url,
				"code", webfetch.ErrorCode(err),
				"err", err,
			)
			pending = append(pending, i)
			continue
		}

		logger.Debug("lightweight fetch succeeded", "url", url, "chars", len(res.Markdown))
		results[i] = res
	}

	if len(pending) == 0 {
		return results
	}

	logger.Info("rendering in browser", "count", len(pending))

	g, gctx := errgroup.WithContext(ctx)
	for _, i := range pending {
		g.Go(func() error {
			results[i] = o.fetchBrowser(gctx, urls[i])
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// fetchLight runs the plain-HTTP path: fetch, extract, convert, and check
// the sufficiency threshold.
func (o *Orchestrator) fetchLight(ctx context.Context, url string) (webfetch.Result, error) {
	html, err := o.light.Fetch(ctx, url)
	if err != nil {
		return webfetch.Result{}, err
	}

	title, markdown, err := o.process(html)
	if err != nil {
		return webfetch.Result{}, err
	}

	if !Sufficient(markdown) {
		return webfetch.Result{}, webfetch.Errorf(webfetch.EINSUFFICIENT,
			"content below %d characters for %s", MinMarkdownLength, url)
	}

	return webfetch.Result{URL: url, Title: title, Markdown: markdown}, nil
}

// fetchBrowser runs the rendering path. The sufficiency threshold does not
// apply here; whatever the browser rendered is the final answer for the URL.
func (o *Orchestrator) fetchBrowser(ctx context.Context, url string) webfetch.Result {
	html, err := o.browser.Fetch(ctx, url)
	if err != nil {
		return webfetch.Result{URL: url, Err: err}
	}

	title, markdown, err := o.process(html)
	if err != nil {
		return webfetch.Result{URL: url, Err: err}
	}

	return webfetch.Result{URL: url, Title: title, Markdown: markdown}
}

func (o *Orchestrator) process(html string) (title, markdown string, err error) {
	result, err := o.extractor.Extract(html)
	if err != nil {
		return "", "", err
	}

	markdown, err = o.converter.Convert(result.ContentHTML)
	if err != nil {
		return "", "", err
	}

	return result.Title, markdown, nil
}
