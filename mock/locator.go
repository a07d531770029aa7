package mock

import (
	"github.com/fwojciec/mdcopy"
	"golang.org/x/net/html"
)

var _ mdcopy.Locator = (*Locator)(nil)

// Locator is a mock implementation of mdcopy.Locator.
type Locator struct {
	LocateFn func(doc *html.Node) (*mdcopy.Content, error)
}

func (l *Locator) Locate(doc *html.Node) (*mdcopy.Content, error) {
	return l.LocateFn(doc)
}
