package mdcopy

import "golang.org/x/net/html"

// Export is the Markdown rendition of one page.
type Export struct {
	// URL is the page the export was taken from. May be empty for local files.
	URL string

	// Title is the heading prepended to Markdown.
	Title string

	// Markdown is the normalized document, title line included.
	Markdown string

	// Framework is the documentation framework detected on the page.
	Framework Framework

	// Converter names the converter that produced Markdown.
	Converter string
}

// Exporter renders a parsed page as Markdown.
type Exporter interface {
	// Export locates the content of doc and converts it.
	// Returns ENOTFOUND if the page has no content root.
	// doc is only read, never modified.
	Export(doc *html.Node, pageURL string) (*Export, error)
}
