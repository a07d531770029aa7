// Package http fetches pages and sitemaps over plain HTTP.
// It does not execute JavaScript; use package rod for pages that
// render their content client-side.
package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/mdcopy"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize caps the size of a fetched page.
const DefaultMaxBodySize = 16 << 20

// DefaultUserAgent identifies mdcopy to the sites it fetches.
var DefaultUserAgent = "mdcopy/" + mdcopy.Version

// Ensure Fetcher implements mdcopy.Fetcher at compile time.
var _ mdcopy.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBody   int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize limits how many bytes of a response are read.
// Larger pages are rejected with EINVALID.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBody = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		maxBody:   DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL, decoded to UTF-8
// according to the response's declared or sniffed charset.
// A 404 or 410 response is reported as ENOTFOUND, other non-200 responses
// as EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", mdcopy.Errorf(mdcopy.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, url); err != nil {
		return "", err
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return "", err
	}
	if int64(len(raw)) > f.maxBody {
		return "", mdcopy.Errorf(mdcopy.EINVALID, "page %s exceeds %d bytes", url, f.maxBody)
	}

	body, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func checkStatus(resp *http.Response, url string) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound, http.StatusGone:
		return mdcopy.Errorf(mdcopy.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	default:
		return mdcopy.Errorf(mdcopy.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}
}
