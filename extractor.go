package mdcopy

// ExtractResult is what a heuristic extractor recovered from a page.
type ExtractResult struct {
	// Title from page metadata, possibly empty.
	Title string

	// ContentHTML is the main content re-rendered as HTML with navigation,
	// footers and other chrome stripped.
	ContentHTML string
}

// Extractor guesses the main content of a page whose layout no content
// selector recognises. Locators fall back to it only after every selector
// has missed.
type Extractor interface {
	// Extract returns ENOTFOUND when the page has no recognisable main
	// content and EINVALID for empty input.
	Extract(html string) (*ExtractResult, error)
}
