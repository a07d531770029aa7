package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/mdcopy"
	"golang.org/x/net/html"
)

// Ensure LoggingConverter implements mdcopy.Converter.
var _ mdcopy.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with logging.
type LoggingConverter struct {
	next   mdcopy.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next mdcopy.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter and logs the output size.
func (c *LoggingConverter) Convert(root *html.Node) (markdown string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("convert",
			"engine", c.next.Name(),
			"bytes", len(markdown),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Convert(root)
}

// Name delegates to the wrapped converter.
func (c *LoggingConverter) Name() string {
	return c.next.Name()
}
