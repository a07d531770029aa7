package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/mdcopy"
	"github.com/fwojciec/mdcopy/crawl"
	"github.com/fwojciec/mdcopy/fs"
	mdslog "github.com/fwojciec/mdcopy/slog"
	"github.com/fwojciec/mdcopy/sqlite"
)

// Run executes the site command.
func (c *SiteCmd) Run(deps *Dependencies) error {
	filter, err := mdcopy.NewURLFilter(c.Include, c.Exclude)
	if err != nil {
		printError(deps, err)
		return err
	}

	if c.Preview {
		urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, filter)
		if err != nil {
			printError(deps, err)
			return err
		}
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	name := c.Name
	if name == "" {
		name = siteName(c.URL)
	}
	var store mdcopy.PageStore = fs.NewFileStore(c.Path, name)
	if c.DB != "" {
		db := sqlite.NewDB(c.DB)
		if err := db.Open(); err != nil {
			printError(deps, err)
			return err
		}
		defer db.Close()
		store = sqlite.NewPageStore(db, name)
	}

	crawler := &crawl.Crawler{
		Sitemaps:    deps.Sitemaps,
		Fetcher:     deps.Fetcher,
		Exporter:    deps.Exporter,
		Store:       mdslog.NewLoggingPageStore(store, deps.Logger),
		RateLimiter: crawl.NewDomainLimiter(c.Rate),
		Logger:      deps.Logger,
		Concurrency: c.Concurrency,
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d pages\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "\r[%d/%d] %s\033[K", event.Completed, event.Total, displayURL(event.URL, 60))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "\r\033[Kskip %s: %s\n", event.URL, mdcopy.ErrorMessage(event.Error))
		case crawl.ProgressFinished:
			fmt.Fprint(deps.Stderr, "\r\033[K")
		}
	}

	result, err := crawler.ExportSite(deps.Ctx, c.URL, filter, progress)
	if err != nil {
		printError(deps, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages (%s) as %s\n", result.Saved, crawl.FormatBytes(result.Bytes), name)
	if result.Duplicates > 0 || result.Missing > 0 || result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d duplicate, %d without content, %d failed\n",
			result.Duplicates, result.Missing, result.Failed)
	}
	return nil
}

// siteName derives an output directory name from the site's host.
func siteName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "site"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// displayURL drops the scheme and host, which every page of a site shares,
// and keeps the last limit bytes of what is left.
func displayURL(rawURL string, limit int) string {
	s := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		s = u.RequestURI()
	}
	if len(s) <= limit {
		return s
	}
	if limit <= 3 {
		return s[len(s)-limit:]
	}
	return "..." + s[len(s)-limit+3:]
}
