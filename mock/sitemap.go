package mock

import (
	"context"

	"github.com/mkrawiec/scrapbook"
)

var _ scrapbook.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of scrapbook.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *scrapbook.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *scrapbook.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
