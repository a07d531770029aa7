package mdcopy

import "context"

// Fetcher loads the HTML of a page. The HTTP fetcher returns the document
// as served, the browser fetcher returns the DOM after scripts have run and
// the filesystem fetcher reads a saved page from disk.
type Fetcher interface {
	// Fetch returns ENOTFOUND for missing pages and honours ctx for
	// cancellation and deadlines.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases the browser or connections behind the fetcher.
	Close() error
}
