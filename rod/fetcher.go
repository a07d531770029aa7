// Package rod fetches pages through a headless Chrome browser so that
// documentation sites which render their content client-side can be
// exported as they appear to a reader.
package rod

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/mdcopy"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds navigation, load and the content wait of a
// single fetch.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements mdcopy.Fetcher at compile time.
var _ mdcopy.Fetcher = (*Fetcher)(nil)

// serializeJS returns the document including the contents of open shadow
// roots, which outerHTML omits. Web-component documentation themes keep
// their article body in shadow DOM.
const serializeJS = `() => {
	const roots = [];
	const walk = (root) => {
		for (const el of root.querySelectorAll('*')) {
			if (el.shadowRoot) {
				roots.push(el.shadowRoot);
				walk(el.shadowRoot);
			}
		}
	};
	walk(document);
	const el = document.documentElement;
	const html = typeof el.getHTML === 'function'
		? el.getHTML({ shadowRoots: roots })
		: el.innerHTML;
	const attrs = Array.from(el.attributes).map(a => ' ' + a.name + '="' + a.value.replace(/"/g, '&quot;') + '"').join('');
	return '<!DOCTYPE html><html' + attrs + '>' + html + '</html>';
}`

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager  *BrowserManager
	timeout  time.Duration
	waitFor  []string
	maxPages int64
	bin      string
	closed   atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithWaitFor makes Fetch wait, after the load event, until an element
// matching one of the selectors exists. Client-rendered documentation
// fills its article body after load.
func WithWaitFor(selectors ...string) Option {
	return func(f *Fetcher) {
		f.waitFor = selectors
	}
}

// WithRecycleAfter sets how many pages are fetched before the browser is
// restarted. Defaults to DefaultMaxPages.
func WithRecycleAfter(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// WithBrowserBin launches the Chrome or Chromium binary at path instead of
// the one the launcher finds or downloads.
func WithBrowserBin(path string) Option {
	return func(f *Fetcher) {
		f.bin = path
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithMaxPages(f.maxPages), WithBin(f.bin))
	if err != nil {
		return nil, mdcopy.Errorf(mdcopy.EUNAVAILABLE, "start browser: %v", err)
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", mdcopy.Errorf(mdcopy.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	html, err := func() (string, error) {
		if err := page.Navigate(url); err != nil {
			return "", err
		}
		if err := page.WaitLoad(); err != nil {
			return "", err
		}
		if len(f.waitFor) > 0 {
			if _, err := page.Element(strings.Join(f.waitFor, ", ")); err != nil {
				return "", err
			}
		}
		res, err := page.Eval(serializeJS)
		if err != nil {
			return "", err
		}
		return res.Value.Str(), nil
	}()
	if err != nil {
		// Report timeouts and cancellation as context errors.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
