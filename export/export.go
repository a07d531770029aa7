// Package export runs a page through location, conversion and assembly and
// delivers the result to the clipboard.
package export

import (
	"fmt"

	"github.com/fwojciec/mdcopy"
	"github.com/fwojciec/mdcopy/markdown"
	"golang.org/x/net/html"
)

// Ensure Exporter implements mdcopy.Exporter at compile time.
var _ mdcopy.Exporter = (*Exporter)(nil)

// Exporter turns a parsed page into a Markdown document.
type Exporter struct {
	locator   mdcopy.Locator
	converter mdcopy.Converter
}

// NewExporter creates an Exporter that finds content with locator and
// renders it with converter.
func NewExporter(locator mdcopy.Locator, converter mdcopy.Converter) *Exporter {
	return &Exporter{
		locator:   locator,
		converter: converter,
	}
}

// Export locates the content of doc, converts it and prepends the title.
// Returns ENOTFOUND if the page has no content root. doc is never modified:
// the locator hands the converter a copy.
func (e *Exporter) Export(doc *html.Node, pageURL string) (*mdcopy.Export, error) {
	content, err := e.locator.Locate(doc)
	if err != nil {
		return nil, err
	}

	raw, err := e.converter.Convert(content.Root)
	if err != nil {
		return nil, fmt.Errorf("convert content: %w", err)
	}

	return &mdcopy.Export{
		URL:       pageURL,
		Title:     content.Title,
		Markdown:  markdown.Assemble(content.Title, raw),
		Framework: content.Framework,
		Converter: e.converter.Name(),
	}, nil
}
