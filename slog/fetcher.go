package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mdcopy"
)

var _ mdcopy.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every page fetch. Failures are logged at warn level
// with their error code so that missing pages stand out from outages.
type LoggingFetcher struct {
	next   mdcopy.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher wraps next.
func NewLoggingFetcher(next mdcopy.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.Warn("fetch", "url", url, "code", mdcopy.ErrorCode(err), "duration", time.Since(begin), "err", err)
			return
		}
		f.logger.Info("fetch", "url", url, "bytes", len(html), "duration", time.Since(begin))
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
