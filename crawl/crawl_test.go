package crawl_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/mdcopy"
	"github.com/fwojciec/mdcopy/crawl"
	"github.com/fwojciec/mdcopy/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// site describes pages served by the mocks: URL to exported Markdown.
// A page mapped to "" has no content root.
type site map[string]string

// recorder captures store activity.
type recorder struct {
	mu        sync.Mutex
	saved     []*mdcopy.Page
	committed bool
	aborted   bool
}

func (r *recorder) store() *mock.PageStore {
	return &mock.PageStore{
		SaveFn: func(_ context.Context, page *mdcopy.Page) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.saved = append(r.saved, page)
			return nil
		},
		CommitFn: func() error {
			r.committed = true
			return nil
		},
		AbortFn: func() error {
			r.aborted = true
			return nil
		},
	}
}

func newCrawler(urls []string, pages site, rec *recorder) *crawl.Crawler {
	return &crawl.Crawler{
		Sitemaps: &mock.SitemapService{
			DiscoverURLsFn: func(context.Context, string, *mdcopy.URLFilter) ([]string, error) {
				return urls, nil
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if _, ok := pages[url]; !ok {
					return "", errors.New("connection reset")
				}
				return "<html><body><article><p>page</p></article></body></html>", nil
			},
		},
		Exporter: &mock.Exporter{
			ExportFn: func(_ *html.Node, pageURL string) (*mdcopy.Export, error) {
				md := pages[pageURL]
				if md == "" {
					return nil, mdcopy.Errorf(mdcopy.ENOTFOUND, "no content root found")
				}
				return &mdcopy.Export{URL: pageURL, Title: "Title of " + pageURL, Markdown: md}, nil
			},
		},
		Store:       rec.store(),
		Concurrency: 3,
		RetryDelays: []time.Duration{0},
	}
}

func TestCrawler_ExportSite(t *testing.T) {
	t.Parallel()

	t.Run("saves every page in sitemap order and commits", func(t *testing.T) {
		t.Parallel()

		urls := []string{
			"https://example.com/a",
			"https://example.com/b",
			"https://example.com/c",
			"https://example.com/d",
		}
		pages := site{
			"https://example.com/a": "# A",
			"https://example.com/b": "# B",
			"https://example.com/c": "# C",
			"https://example.com/d": "# D",
		}
		rec := &recorder{}

		result, err := newCrawler(urls, pages, rec).ExportSite(context.Background(), "https://example.com", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 4, result.Saved)
		assert.Equal(t, 12, result.Bytes)
		require.Len(t, rec.saved, 4)
		for i, page := range rec.saved {
			assert.Equal(t, urls[i], page.URL)
			assert.Equal(t, "Title of "+urls[i], page.Title)
			assert.Len(t, page.Hash, 16)
		}
		assert.True(t, rec.committed)
		assert.False(t, rec.aborted)
	})

	t.Run("counts missing content roots separately from failures", func(t *testing.T) {
		t.Parallel()

		urls := []string{
			"https://example.com/ok",
			"https://example.com/empty",
			"https://example.com/broken",
		}
		pages := site{
			"https://example.com/ok":    "# OK",
			"https://example.com/empty": "",
		}
		rec := &recorder{}

		result, err := newCrawler(urls, pages, rec).ExportSite(context.Background(), "https://example.com", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, result.Missing)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("skips pages with identical Markdown", func(t *testing.T) {
		t.Parallel()

		urls := []string{"https://example.com/latest/guide", "https://example.com/v2/guide"}
		pages := site{
			"https://example.com/latest/guide": "# Guide",
			"https://example.com/v2/guide":     "# Guide",
		}
		rec := &recorder{}

		result, err := newCrawler(urls, pages, rec).ExportSite(context.Background(), "https://example.com", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, result.Duplicates)
		require.Len(t, rec.saved, 1)
		assert.Equal(t, "https://example.com/latest/guide", rec.saved[0].URL)
	})

	t.Run("index.html is the same page as its directory", func(t *testing.T) {
		t.Parallel()

		urls := []string{"https://example.com/docs/", "https://example.com/docs/index.html"}
		pages := site{
			"https://example.com/docs/":           "# Docs",
			"https://example.com/docs/index.html": "# Docs, rendered differently",
		}
		rec := &recorder{}

		result, err := newCrawler(urls, pages, rec).ExportSite(context.Background(), "https://example.com", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		require.Len(t, rec.saved, 1)
		assert.Equal(t, "https://example.com/docs/", rec.saved[0].URL)
	})

	t.Run("store conflicts count as duplicates, not saves", func(t *testing.T) {
		t.Parallel()

		urls := []string{"https://example.com/docs", "https://example.com/docs.html"}
		pages := site{
			"https://example.com/docs":      "# Docs",
			"https://example.com/docs.html": "# Docs (legacy)",
		}
		rec := &recorder{}
		crawler := newCrawler(urls, pages, rec)
		store := rec.store()
		save := store.SaveFn
		store.SaveFn = func(ctx context.Context, page *mdcopy.Page) error {
			if page.URL == "https://example.com/docs.html" {
				return mdcopy.Errorf(mdcopy.ECONFLICT, "both map to docs.md")
			}
			return save(ctx, page)
		}
		crawler.Store = store

		result, err := crawler.ExportSite(context.Background(), "https://example.com", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, result.Duplicates)
		assert.Zero(t, result.Failed)
		assert.True(t, rec.committed)
	})

	t.Run("fetches repeated sitemap entries once", func(t *testing.T) {
		t.Parallel()

		urls := []string{
			"https://example.com/guide",
			"https://example.com/guide/",
			"https://EXAMPLE.com/guide#intro",
		}
		pages := site{"https://example.com/guide": "# Guide"}
		rec := &recorder{}
		c := newCrawler(urls, pages, rec)

		var mu sync.Mutex
		var fetched []string
		c.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				mu.Lock()
				defer mu.Unlock()
				fetched = append(fetched, url)
				return "<p>guide</p>", nil
			},
		}

		result, err := c.ExportSite(context.Background(), "https://example.com", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/guide"}, fetched)
		assert.Equal(t, 1, result.Saved)
	})

	t.Run("aborts when nothing was saved", func(t *testing.T) {
		t.Parallel()

		urls := []string{"https://example.com/empty"}
		pages := site{"https://example.com/empty": ""}
		rec := &recorder{}

		result, err := newCrawler(urls, pages, rec).ExportSite(context.Background(), "https://example.com", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Saved)
		assert.True(t, rec.aborted)
		assert.False(t, rec.committed)
	})

	t.Run("returns ENOTFOUND for an empty sitemap", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}

		_, err := newCrawler(nil, site{}, rec).ExportSite(context.Background(), "https://example.com", nil, nil)

		assert.Equal(t, mdcopy.ENOTFOUND, mdcopy.ErrorCode(err))
		assert.False(t, rec.committed)
	})

	t.Run("returns sitemap errors", func(t *testing.T) {
		t.Parallel()

		c := newCrawler(nil, site{}, &recorder{})
		c.Sitemaps = &mock.SitemapService{
			DiscoverURLsFn: func(context.Context, string, *mdcopy.URLFilter) ([]string, error) {
				return nil, mdcopy.Errorf(mdcopy.EUNAVAILABLE, "robots.txt: 503")
			},
		}

		_, err := c.ExportSite(context.Background(), "https://example.com", nil, nil)

		require.Error(t, err)
		assert.Equal(t, mdcopy.EUNAVAILABLE, mdcopy.ErrorCode(err))
	})

	t.Run("passes the filter to sitemap discovery", func(t *testing.T) {
		t.Parallel()

		filter, err := mdcopy.NewURLFilter([]string{"/docs/"}, nil)
		require.NoError(t, err)

		var got *mdcopy.URLFilter
		c := newCrawler(nil, site{}, &recorder{})
		c.Sitemaps = &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, f *mdcopy.URLFilter) ([]string, error) {
				got = f
				return nil, nil
			},
		}

		_, _ = c.ExportSite(context.Background(), "https://example.com", filter, nil)

		assert.Same(t, filter, got)
	})

	t.Run("waits on the rate limiter per host", func(t *testing.T) {
		t.Parallel()

		urls := []string{"https://example.com/a", "https://docs.example.org/b"}
		pages := site{
			"https://example.com/a":      "# A",
			"https://docs.example.org/b": "# B",
		}
		c := newCrawler(urls, pages, &recorder{})

		var mu sync.Mutex
		var hosts []string
		c.RateLimiter = &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				mu.Lock()
				defer mu.Unlock()
				hosts = append(hosts, domain)
				return nil
			},
		}

		_, err := c.ExportSite(context.Background(), "https://example.com", nil, nil)

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"example.com", "docs.example.org"}, hosts)
	})

	t.Run("retries transient fetch errors", func(t *testing.T) {
		t.Parallel()

		urls := []string{"https://example.com/flaky"}
		pages := site{"https://example.com/flaky": "# Flaky"}
		c := newCrawler(urls, pages, &recorder{})

		var calls int
		c.Fetcher = &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls++
				if calls == 1 {
					return "", errors.New("timeout")
				}
				return "<p>ok</p>", nil
			},
		}

		result, err := c.ExportSite(context.Background(), "https://example.com", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		assert.Equal(t, 1, result.Saved)
	})

	t.Run("aborts and returns the error on cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		urls := []string{"https://example.com/a"}
		rec := &recorder{}
		c := newCrawler(urls, site{"https://example.com/a": "# A"}, rec)
		c.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, _ string) (string, error) {
				cancel()
				return "", ctx.Err()
			},
		}

		_, err := c.ExportSite(ctx, "https://example.com", nil, nil)

		require.ErrorIs(t, err, context.Canceled)
		assert.True(t, rec.aborted)
		assert.Empty(t, rec.saved)
	})

	t.Run("reports progress", func(t *testing.T) {
		t.Parallel()

		urls := []string{"https://example.com/a", "https://example.com/b"}
		pages := site{"https://example.com/a": "# A"}

		var events []crawl.ProgressEvent
		progress := func(e crawl.ProgressEvent) { events = append(events, e) }

		_, err := newCrawler(urls, pages, &recorder{}).ExportSite(context.Background(), "https://example.com", nil, progress)

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, crawl.ProgressFinished, events[3].Type)

		var failed int
		for _, e := range events[1:3] {
			if e.Type == crawl.ProgressFailed {
				failed++
				assert.Equal(t, "https://example.com/b", e.URL)
				assert.Error(t, e.Error)
			}
		}
		assert.Equal(t, 1, failed)
	})
}
