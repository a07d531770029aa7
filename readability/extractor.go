// Package readability recovers the main content of unrecognised pages with
// go-readability, a port of Mozilla's Reader View heuristics.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/mdcopy"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements mdcopy.Extractor at compile time.
var _ mdcopy.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct {
	pageURL *url.URL
}

// NewExtractor creates a new Extractor. pageURL may be nil; when set,
// relative links in the content are made absolute against it.
func NewExtractor(pageURL *url.URL) *Extractor {
	return &Extractor{pageURL: pageURL}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*mdcopy.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, mdcopy.Errorf(mdcopy.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.pageURL)
	if err != nil {
		return nil, mdcopy.Errorf(mdcopy.ENOTFOUND, "no main content: %v", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, mdcopy.Errorf(mdcopy.ENOTFOUND, "no main content")
	}

	return &mdcopy.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
