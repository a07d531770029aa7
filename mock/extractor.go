package mock

import "github.com/fwojciec/mdcopy"

var _ mdcopy.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of mdcopy.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*mdcopy.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*mdcopy.ExtractResult, error) {
	return e.ExtractFn(html)
}
