package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/mdcopy"
	"golang.org/x/net/html"
)

// Ensure LoggingLocator implements mdcopy.Locator.
var _ mdcopy.Locator = (*LoggingLocator)(nil)

// LoggingLocator wraps a Locator and logs the detected framework and title.
type LoggingLocator struct {
	next   mdcopy.Locator
	logger *slog.Logger
}

// NewLoggingLocator creates a new LoggingLocator.
func NewLoggingLocator(next mdcopy.Locator, logger *slog.Logger) *LoggingLocator {
	return &LoggingLocator{next: next, logger: logger}
}

// Locate delegates to the wrapped locator and logs the outcome.
func (l *LoggingLocator) Locate(doc *html.Node) (content *mdcopy.Content, err error) {
	defer func(begin time.Time) {
		framework, title := "(unknown)", ""
		if content != nil {
			if content.Framework != mdcopy.FrameworkUnknown {
				framework = string(content.Framework)
			}
			title = content.Title
		}
		l.logger.Info("locate content",
			"framework", framework,
			"title", title,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Locate(doc)
}
