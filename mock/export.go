package mock

import (
	"github.com/fwojciec/mdcopy"
	"golang.org/x/net/html"
)

var _ mdcopy.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of mdcopy.Exporter.
type Exporter struct {
	ExportFn func(doc *html.Node, pageURL string) (*mdcopy.Export, error)
}

func (e *Exporter) Export(doc *html.Node, pageURL string) (*mdcopy.Export, error) {
	return e.ExportFn(doc, pageURL)
}
