// Package rod provides a browser-backed implementation of webfetch.Fetcher
// using Chrome automation. It renders JavaScript-dependent pages in an
// isolated tab per fetch against a shared, lazily-launched browser process.
package rod

import (
	"context"
	"log/slog"

	"github.com/fwojciec/webfetch"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements webfetch.Fetcher at compile time.
var _ webfetch.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using a shared headless browser.
// Each Fetch opens its own tab, so Fetcher is safe for concurrent use by
// multiple goroutines; no fetch can touch another fetch's tab.
type Fetcher struct {
	manager   *Manager
	readiness Readiness
	logger    *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithReadiness overrides the readiness detection parameters.
func WithReadiness(r Readiness) Option {
	return func(f *Fetcher) {
		f.readiness = r
	}
}

// WithLogger sets the logger used for best-effort cleanup warnings.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a Fetcher backed by the given Manager. The browser is
// not launched until the first Fetch that needs it.
func NewFetcher(manager *Manager, opts ...Option) *Fetcher {
	f := &Fetcher{
		manager: manager,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates a new tab to the URL, waits for content readiness, and
// returns the rendered HTML. Errors identify the failing stage and never
// tear down the shared browser.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.manager.Browser()
	if err != nil {
		return "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", webfetch.Errorf(webfetch.EUNAVAILABLE, "opening tab for %s: %v", url, err)
	}
	// Tab cleanup is best-effort and outlives ctx; a close failure is
	// logged, not reported.
	defer func() {
		if err := page.Close(); err != nil {
			f.logger.Warn("closing tab", "url", url, "err", err)
		}
	}()

	tab := page.Context(ctx)

	if err := tab.Navigate(url); err != nil {
		return "", webfetch.Errorf(webfetch.EUNAVAILABLE, "navigating to %s: %v", url, err)
	}

	if err := f.readiness.Wait(ctx, pageProbe{page: tab}); err != nil {
		return "", err
	}

	html, err := tab.HTML()
	if err != nil {
		return "", webfetch.Errorf(webfetch.EINTERNAL, "reading rendered content of %s: %v", url, err)
	}

	return html, nil
}

// Close releases the shared browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// pageProbe adapts a rod page to the ContentProbe interface.
type pageProbe struct {
	page *rod.Page
}

func (p pageProbe) HasSelector(selector string) (bool, error) {
	has, _, err := p.page.Has(selector)
	return has, err
}

func (p pageProbe) BodyHasContent() (bool, error) {
	res, err := p.page.Eval(bodyContentJS)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}
