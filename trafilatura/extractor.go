// Package trafilatura recovers the main content of pages whose layout no
// content selector recognises, using go-trafilatura's heuristics.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/mdcopy"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements mdcopy.Extractor at compile time.
var _ mdcopy.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
// Links, images and tables are kept since they carry meaning in
// documentation.
type Extractor struct {
	pageURL *url.URL
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPageURL tells the extractor where the page came from, which
// improves metadata detection.
func WithPageURL(u *url.URL) Option {
	return func(e *Extractor) {
		e.pageURL = u
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*mdcopy.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, mdcopy.Errorf(mdcopy.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		OriginalURL:    e.pageURL,
		EnableFallback: true,
		IncludeLinks:   true,
		IncludeImages:  true,
	})
	if err != nil {
		return nil, mdcopy.Errorf(mdcopy.ENOTFOUND, "no main content: %v", err)
	}
	if result.ContentNode == nil {
		return nil, mdcopy.Errorf(mdcopy.ENOTFOUND, "no main content")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, err
	}

	return &mdcopy.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: buf.String(),
	}, nil
}
