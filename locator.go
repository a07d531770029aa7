package mdcopy

import "golang.org/x/net/html"

// Content is the article body of a page, ready for conversion.
type Content struct {
	// Root is a detached deep copy of the content element with chrome
	// (buttons, hash links, navigation, banners, TOC widgets) removed.
	// Mutating it never affects the document it was located in.
	Root *html.Node

	// Title is the text of the first h1 inside Root, or the document
	// <title> when the content has no h1.
	Title string

	// Framework is the documentation framework the page was built with.
	Framework Framework
}

// Locator finds the content root of a parsed page.
type Locator interface {
	// Locate returns the cleaned copy of the page's content root.
	// Returns ENOTFOUND if the page has no content root. The document
	// passed in is only read, never modified.
	Locate(doc *html.Node) (*Content, error)
}
