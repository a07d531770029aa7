package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mdcopy"
)

// Ensure LoggingClipboard implements mdcopy.Clipboard.
var _ mdcopy.Clipboard = (*LoggingClipboard)(nil)

// LoggingClipboard wraps a Clipboard with logging. The copied text itself
// is never logged.
type LoggingClipboard struct {
	next   mdcopy.Clipboard
	logger *slog.Logger
}

// NewLoggingClipboard creates a new LoggingClipboard.
func NewLoggingClipboard(next mdcopy.Clipboard, logger *slog.Logger) *LoggingClipboard {
	return &LoggingClipboard{next: next, logger: logger}
}

// WriteText delegates to the wrapped clipboard.
func (c *LoggingClipboard) WriteText(ctx context.Context, text string) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("clipboard write",
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.WriteText(ctx, text)
}
