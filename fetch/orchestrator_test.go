package fetch_test

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/webfetch"
	"github.com/fwojciec/webfetch/fetch"
	"github.com/fwojciec/webfetch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Orchestrator implements webfetch.BatchFetcher at compile time.
var _ webfetch.BatchFetcher = (*fetch.Orchestrator)(nil)

// passthrough returns an extractor and converter that forward HTML unchanged,
// so tests control output length directly through fetcher return values.
func passthrough() (*mock.Extractor, *mock.Converter) {
	extractor := &mock.Extractor{
		ExtractFn: func(html string) (*webfetch.ExtractResult, error) {
			return &webfetch.ExtractResult{Title: "t", ContentHTML: html}, nil
		},
	}
	converter := &mock.Converter{
		ConvertFn: func(html string) (string, error) {
			return html, nil
		},
	}
	return extractor, converter
}

func TestSufficient_Boundary(t *testing.T) {
	t.Parallel()

	assert.False(t, fetch.Sufficient(strings.Repeat("a", fetch.MinMarkdownLength-1)))
	assert.True(t, fetch.Sufficient(strings.Repeat("a", fetch.MinMarkdownLength)))

	// Trimming happens before the length check.
	assert.False(t, fetch.Sufficient("  \n"+strings.Repeat("a", fetch.MinMarkdownLength-1)+"\n  "))
}

func TestOrchestrator_FetchAll(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", fetch.MinMarkdownLength)

	t.Run("returns one result per URL in input order", func(t *testing.T) {
		t.Parallel()

		extractor, converter := passthrough()
		light := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return long + " " + url, nil
			},
		}
		browser := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				t.Fatal("browser must not run when lightweight content is sufficient")
				return "", nil
			},
		}

		o := fetch.NewOrchestrator(light, browser, extractor, converter)

		urls := []string{"https://a.example", "https://b.example", "https://c.example"}
		results := o.FetchAll(context.Background(), urls)

		require.Len(t, results, len(urls))
		for i, url := range urls {
			assert.Equal(t, url, results[i].URL)
			require.NoError(t, results[i].Err)
			assert.Contains(t, results[i].Markdown, url)
		}
	})

	t.Run("isolates a single URL failure", func(t *testing.T) {
		t.Parallel()

		extractor, converter := passthrough()
		light := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "bad://url" {
					return "", webfetch.Errorf(webfetch.EUNAVAILABLE, "fetching bad://url: unsupported scheme")
				}
				return long, nil
			},
		}
		browser := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", webfetch.Errorf(webfetch.EUNAVAILABLE, "navigating to %s: invalid URL", url)
			},
		}

		o := fetch.NewOrchestrator(light, browser, extractor, converter)

		results := o.FetchAll(context.Background(), []string{"https://a.example", "bad://url", "https://c.example"})

		require.Len(t, results, 3)
		require.NoError(t, results[0].Err)
		require.Error(t, results[1].Err)
		require.NoError(t, results[2].Err)
		assert.Contains(t, webfetch.ErrorMessage(results[1].Err), "bad://url")
	})

	t.Run("falls back to browser on insufficient content", func(t *testing.T) {
		t.Parallel()

		extractor, converter := passthrough()
		light := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				// One character below the threshold.
				return strings.Repeat("a", fetch.MinMarkdownLength-1), nil
			},
		}
		var browserCalls int64
		browser := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				atomic.AddInt64(&browserCalls, 1)
				return "rendered", nil
			},
		}

		o := fetch.NewOrchestrator(light, browser, extractor, converter)

		results := o.FetchAll(context.Background(), []string{"https://spa.example"})

		require.Len(t, results, 1)
		require.NoError(t, results[0].Err)
		assert.Equal(t, "rendered", results[0].Markdown)
		assert.Equal(t, int64(1), atomic.LoadInt64(&browserCalls))
	})

	t.Run("accepts lightweight content exactly at the threshold", func(t *testing.T) {
		t.Parallel()

		extractor, converter := passthrough()
		light := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return strings.Repeat("a", fetch.MinMarkdownLength), nil
			},
		}
		browser := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				t.Fatal("browser must not run at the sufficiency threshold")
				return "", nil
			},
		}

		o := fetch.NewOrchestrator(light, browser, extractor, converter)

		results := o.FetchAll(context.Background(), []string{"https://static.example"})

		require.Len(t, results, 1)
		require.NoError(t, results[0].Err)
	})

	t.Run("falls back to browser on lightweight network error", func(t *testing.T) {
		t.Parallel()

		extractor, converter := passthrough()
		light := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", webfetch.Errorf(webfetch.EUNAVAILABLE, "fetching %s: connection refused", url)
			},
		}
		browser := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "rendered " + long, nil
			},
		}

		o := fetch.NewOrchestrator(light, browser, extractor, converter)

		results := o.FetchAll(context.Background(), []string{"https://flaky.example"})

		require.Len(t, results, 1)
		require.NoError(t, results[0].Err)
		assert.Contains(t, results[0].Markdown, "rendered")
	})

	t.Run("browser-only mode skips the lightweight path", func(t *testing.T) {
		t.Parallel()

		extractor, converter := passthrough()
		light := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				t.Fatal("lightweight fetcher must not run in browser-only mode")
				return "", nil
			},
		}
		browser := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "rendered", nil
			},
		}

		o := fetch.NewOrchestrator(light, browser, extractor, converter, fetch.WithBrowserOnly(true))

		results := o.FetchAll(context.Background(), []string{"https://a.example", "https://b.example"})

		require.Len(t, results, 2)
		require.NoError(t, results[0].Err)
		require.NoError(t, results[1].Err)
	})

	t.Run("browser fetches run concurrently", func(t *testing.T) {
		t.Parallel()

		extractor, converter := passthrough()

		started := make(chan struct{}, 2)
		release := make(chan struct{})
		var overlapped atomic.Bool

		go func() {
			<-started
			select {
			case <-started:
				overlapped.Store(true)
			case <-time.After(2 * time.Second):
			}
			close(release)
		}()

		browser := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				started <- struct{}{}
				<-release
				return "rendered", nil
			},
		}

		o := fetch.NewOrchestrator(nil, browser, extractor, converter, fetch.WithBrowserOnly(true))

		results := o.FetchAll(context.Background(), []string{"https://a.example", "https://b.example"})

		require.Len(t, results, 2)
		assert.True(t, overlapped.Load(), "browser fetches must overlap, not run sequentially")
	})

	t.Run("browser init failure surfaces per URL", func(t *testing.T) {
		t.Parallel()

		extractor, converter := passthrough()
		browser := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				// rod.Manager caches the launch failure, so every URL
				// observes the same error without a relaunch attempt.
				return "", webfetch.Errorf(webfetch.EUNAVAILABLE, "browser initialization failed: no executable")
			},
		}

		o := fetch.NewOrchestrator(nil, browser, extractor, converter, fetch.WithBrowserOnly(true))

		results := o.FetchAll(context.Background(), []string{"https://a.example", "https://b.example"})

		require.Len(t, results, 2)
		for _, r := range results {
			require.Error(t, r.Err)
			assert.Equal(t, webfetch.EUNAVAILABLE, webfetch.ErrorCode(r.Err))
		}
	})

	t.Run("conversion failure surfaces as the URL's error", func(t *testing.T) {
		t.Parallel()

		extractor, _ := passthrough()
		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "", webfetch.Errorf(webfetch.EINTERNAL, "converting HTML to markdown: boom")
			},
		}
		browser := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}

		o := fetch.NewOrchestrator(nil, browser, extractor, converter, fetch.WithBrowserOnly(true))

		results := o.FetchAll(context.Background(), []string{"https://a.example"})

		require.Len(t, results, 1)
		require.Error(t, results[0].Err)
		assert.Equal(t, webfetch.EINTERNAL, webfetch.ErrorCode(results[0].Err))
	})

	t.Run("empty batch returns empty results", func(t *testing.T) {
		t.Parallel()

		extractor, converter := passthrough()
		o := fetch.NewOrchestrator(nil, &mock.Fetcher{}, extractor, converter)

		results := o.FetchAll(context.Background(), nil)

		assert.Empty(t, results)
	})
}
