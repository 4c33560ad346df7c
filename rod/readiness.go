package rod

import (
	"context"
	"time"

	"github.com/fwojciec/webfetch"
)

// ContentSelectors are probed in order on each poll. The first match is
// taken as evidence that meaningful content has rendered.
var ContentSelectors = []string{
	"main",
	"article",
	"[role='main']",
	".content",
	".main-content",
	"#content",
	"[data-testid]",
	"[data-component]",
}

// bodyContentJS is the heuristic fallback when no known selector matches:
// the body must carry a minimum of visible text and at least one child
// element.
const bodyContentJS = `() => document.body.innerText.length > 100 && document.body.children.length > 0`

// Readiness polling defaults.
const (
	DefaultReadyTimeout = 15 * time.Second
	DefaultPollInterval = 50 * time.Millisecond
)

// ContentProbe inspects a live rendered page. The production implementation
// wraps a rod page; tests substitute fakes.
type ContentProbe interface {
	// HasSelector reports whether any element matches the CSS selector.
	HasSelector(selector string) (bool, error)

	// BodyHasContent evaluates the in-page content heuristic.
	BodyHasContent() (bool, error)
}

// Readiness decides when a rendered page has loaded enough content to
// extract, within a bounded timeout. Zero-value fields fall back to
// package defaults.
type Readiness struct {
	Timeout   time.Duration
	Interval  time.Duration
	Selectors []string
}

// Wait polls the probe until a readiness signal fires or the timeout
// elapses. A timeout is terminal for this page and reported as ETIMEOUT;
// retry policy belongs to the caller.
func (r Readiness) Wait(ctx context.Context, probe ContentProbe) error {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultReadyTimeout
	}
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	selectors := r.Selectors
	if selectors == nil {
		selectors = ContentSelectors
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		for _, selector := range selectors {
			// Probe errors here are not terminal; the selector may
			// still appear on a later poll.
			if ok, err := probe.HasSelector(selector); err == nil && ok {
				return nil
			}
		}

		ok, err := probe.BodyHasContent()
		if err != nil {
			return webfetch.Errorf(webfetch.EINTERNAL, "probing page content: %v", err)
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}

	return webfetch.Errorf(webfetch.ETIMEOUT, "no content detected within %s", timeout)
}
