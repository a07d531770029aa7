package mock

import (
	"context"

	"github.com/fwojciec/mdcopy"
)

var _ mdcopy.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of mdcopy.Clipboard.
type Clipboard struct {
	WriteTextFn func(ctx context.Context, text string) error
}

func (c *Clipboard) WriteText(ctx context.Context, text string) error {
	return c.WriteTextFn(ctx, text)
}
