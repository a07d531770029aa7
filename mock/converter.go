package mock

import (
	"github.com/fwojciec/mdcopy"
	"golang.org/x/net/html"
)

var _ mdcopy.Converter = (*Converter)(nil)

// Converter is a mock implementation of mdcopy.Converter.
type Converter struct {
	ConvertFn func(root *html.Node) (string, error)
	NameFn    func() string
}

func (c *Converter) Convert(root *html.Node) (string, error) {
	return c.ConvertFn(root)
}

func (c *Converter) Name() string {
	return c.NameFn()
}
