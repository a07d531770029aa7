package mock

import (
	"context"

	"github.com/fwojciec/mdcopy"
)

var _ mdcopy.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of mdcopy.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *mdcopy.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *mdcopy.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
