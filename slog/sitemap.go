package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mdcopy"
)

var _ mdcopy.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs each discovery with the number of URLs found
// and the number of include and exclude patterns applied.
type LoggingSitemapService struct {
	next   mdcopy.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService wraps next.
func NewLoggingSitemapService(next mdcopy.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *mdcopy.URLFilter) (urls []string, err error) {
	var include, exclude int
	if filter != nil {
		include, exclude = len(filter.Include), len(filter.Exclude)
	}
	defer func(begin time.Time) {
		s.logger.Info("discover urls",
			"base", baseURL,
			"include", include,
			"exclude", exclude,
			"found", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
