// Package clipboard writes exports to the system clipboard.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	atotto "github.com/atotto/clipboard"
	"github.com/fwojciec/mdcopy"
	xclipboard "golang.design/x/clipboard"
)

// Ensure Clipboard implements mdcopy.Clipboard at compile time.
var _ mdcopy.Clipboard = (*Clipboard)(nil)

// WriteFunc is one way of putting text on the clipboard.
type WriteFunc func(text string) error

// Clipboard tries the native clipboard first and falls back to the
// platform's command-line helpers (pbcopy, xclip, xsel, wl-copy, clip.exe).
type Clipboard struct {
	primary  WriteFunc
	fallback WriteFunc
}

// Option configures a Clipboard.
type Option func(*Clipboard)

// WithPrimary replaces the native clipboard writer.
func WithPrimary(fn WriteFunc) Option {
	return func(c *Clipboard) {
		c.primary = fn
	}
}

// WithFallback replaces the command-line helper writer. A nil fn disables
// the fallback.
func WithFallback(fn WriteFunc) Option {
	return func(c *Clipboard) {
		c.fallback = fn
	}
}

// NewClipboard creates a Clipboard backed by the system clipboard.
func NewClipboard(opts ...Option) *Clipboard {
	c := &Clipboard{
		primary:  Native,
		fallback: Legacy,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WriteText replaces the clipboard contents with text.
func (c *Clipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	primaryErr := c.primary(text)
	if primaryErr == nil {
		return nil
	}
	if c.fallback == nil {
		return mdcopy.Errorf(mdcopy.EUNAVAILABLE, "clipboard unavailable: %v", primaryErr)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	fallbackErr := c.fallback(text)
	if fallbackErr == nil {
		return nil
	}
	return mdcopy.Errorf(mdcopy.EUNAVAILABLE, "clipboard unavailable: %v; fallback: %v", primaryErr, fallbackErr)
}

var (
	initOnce sync.Once
	initErr  error
)

// Native writes text through the platform clipboard API. The clipboard is
// initialized on first use.
func Native(text string) error {
	initOnce.Do(func() {
		initErr = xclipboard.Init()
	})
	if initErr != nil {
		return fmt.Errorf("init native clipboard: %w", initErr)
	}
	if xclipboard.Write(xclipboard.FmtText, []byte(text)) == nil {
		return errors.New("native clipboard write failed")
	}
	return nil
}

// Legacy writes text by piping it to a clipboard utility.
func Legacy(text string) error {
	if atotto.Unsupported {
		return errors.New("no clipboard utility found")
	}
	return atotto.WriteAll(text)
}
