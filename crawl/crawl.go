// Package crawl exports every page of a documentation site as Markdown.
// It coordinates sitemap discovery, rate-limited fetching with retry,
// export and storage.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/mdcopy"
	"github.com/fwojciec/mdcopy/bloom"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages fetched at once when
// Crawler.Concurrency is not set.
const DefaultConcurrency = 4

// claimFalsePositiveRate keeps the chance of wrongly skipping a sitemap URL
// negligible for sites of any realistic size.
const claimFalsePositiveRate = 1e-6

// Crawler exports all pages listed in a site's sitemap.
type Crawler struct {
	Sitemaps    mdcopy.SitemapService
	Fetcher     mdcopy.Fetcher
	Exporter    mdcopy.Exporter
	Store       mdcopy.PageStore
	RateLimiter mdcopy.DomainLimiter
	Logger      *slog.Logger
	Concurrency int
	RetryDelays []time.Duration
}

// Result holds the outcome of a site export.
type Result struct {
	Saved      int // pages written to the store
	Duplicates int // pages skipped because an identical page, or one stored under the same name, was saved
	Missing    int // pages without a content root
	Failed     int // pages that could not be fetched, exported or saved
	Bytes      int // Markdown bytes written
}

// ProgressEvent reports progress during a site export.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting export progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	position int
	url      string
	export   *mdcopy.Export
	err      error
}

// ExportSite discovers the pages of the site at baseURL, exports each one
// and saves the unique ones to the store. Pages are saved in sitemap order.
// The store is committed when at least one page was saved and aborted
// otherwise, including on cancellation.
func (c *Crawler) ExportSite(ctx context.Context, baseURL string, filter *mdcopy.URLFilter, progress ProgressFunc) (*Result, error) {
	urls, err := c.Sitemaps.DiscoverURLs(ctx, baseURL, filter)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}
	urls = unique(urls)
	if len(urls) == 0 {
		return nil, mdcopy.Errorf(mdcopy.ENOTFOUND, "no pages found in the sitemap of %s", baseURL)
	}

	results := c.exportAll(ctx, urls, progress)
	if err := ctx.Err(); err != nil {
		_ = c.Store.Abort()
		return nil, err
	}

	result, err := c.save(ctx, results)
	if err != nil {
		_ = c.Store.Abort()
		return nil, err
	}

	if result.Saved == 0 {
		if err := c.Store.Abort(); err != nil {
			return nil, fmt.Errorf("abort store: %w", err)
		}
		return result, nil
	}
	if err := c.Store.Commit(); err != nil {
		return nil, fmt.Errorf("commit store: %w", err)
	}
	return result, nil
}

// exportAll processes urls concurrently and returns their results in
// input order.
func (c *Crawler) exportAll(ctx context.Context, urls []string, progress ProgressFunc) []pageResult {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	notify(progress, ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan pageResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				resultCh <- c.processURL(gctx, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	results := make([]pageResult, total)
	for result := range resultCh {
		n := int(completed.Add(1))
		results[result.position] = result

		event := ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: result.url}
		if result.err != nil {
			event.Type = ProgressFailed
			event.Error = result.err
		}
		notify(progress, event)
	}

	notify(progress, ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return results
}

// processURL fetches and exports a single URL.
func (c *Crawler) processURL(ctx context.Context, position int, rawURL string) pageResult {
	result := pageResult{position: position, url: rawURL}

	if c.RateLimiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			result.err = mdcopy.Errorf(mdcopy.EINVALID, "invalid page URL %q: %v", rawURL, err)
			return result
		}
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			result.err = err
			return result
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	src, err := FetchWithRetryDelays(ctx, rawURL, c.Fetcher.Fetch, c.Logger, delays)
	if err != nil {
		result.err = err
		return result
	}

	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		result.err = fmt.Errorf("parse %s: %w", rawURL, err)
		return result
	}

	result.export, result.err = c.Exporter.Export(doc, rawURL)
	return result
}

// save stores successful results in order, skipping pages whose Markdown
// is identical to one already saved.
func (c *Crawler) save(ctx context.Context, results []pageResult) (*Result, error) {
	var result Result
	hashes := make(map[string]bool)

	for _, r := range results {
		switch {
		case mdcopy.ErrorCode(r.err) == mdcopy.ENOTFOUND:
			result.Missing++
			continue
		case r.err != nil:
			result.Failed++
			continue
		}

		hash := ComputeHash(r.export.Markdown)
		if hashes[hash] {
			result.Duplicates++
			continue
		}

		page := &mdcopy.Page{
			URL:     r.url,
			Title:   r.export.Title,
			Content: r.export.Markdown,
			Hash:    hash,
		}
		if err := c.Store.Save(ctx, page); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			if mdcopy.ErrorCode(err) == mdcopy.ECONFLICT {
				if c.Logger != nil {
					c.Logger.Info("skip page", "url", r.url, "err", err)
				}
				result.Duplicates++
				continue
			}
			if c.Logger != nil {
				c.Logger.Warn("save page", "url", r.url, "err", err)
			}
			result.Failed++
			continue
		}

		hashes[hash] = true
		result.Saved++
		result.Bytes += len(page.Content)
	}

	return &result, nil
}

// unique drops sitemap entries naming a page listed earlier.
func unique(urls []string) []string {
	seen := bloom.NewFilter(uint(len(urls)), claimFalsePositiveRate)
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen.Claim(u) {
			out = append(out, u)
		}
	}
	return out
}

func notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
