package mdcopy

import "golang.org/x/net/html"

// Converter converts a content subtree to Markdown.
type Converter interface {
	// Convert serializes root and its descendants to Markdown.
	// root must be a detached copy: implementations are free to read it in
	// any order and some of them rewrite it while converting.
	// The result is not yet normalized; see markdown.Assemble.
	Convert(root *html.Node) (string, error)

	// Name returns the converter's identifier (e.g., "rules", "library").
	Name() string
}
