//go:build integration

package http_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/mkrawiec/scrapbook"
	scrapbookhttp "github.com/mkrawiec/scrapbook/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_Integration_Htmx(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc := scrapbookhttp.NewSitemapService(nil)

	// htmx.org declares a sitemap in robots.txt, which makes it a stable
	// target for exercising the discovery path end to end.
	urls, err := svc.DiscoverURLs(ctx, "https://htmx.org", nil)
	require.NoError(t, err)

	assert.NotEmpty(t, urls, "expected at least some URLs from htmx.org sitemap")
	t.Logf("Found %d URLs from htmx.org sitemap", len(urls))

	for _, u := range urls[:min(5, len(urls))] {
		t.Logf("  - %s", u)
	}
}

func TestSitemapService_Integration_Htmx_WithFilter(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc := scrapbookhttp.NewSitemapService(nil)

	filter := &scrapbook.URLFilter{
		Include: []*regexp.Regexp{regexp.MustCompile(`/docs/`)},
	}

	urls, err := svc.DiscoverURLs(ctx, "https://htmx.org", filter)
	require.NoError(t, err)

	assert.NotEmpty(t, urls, "expected some /docs/ URLs from htmx.org")
	for _, u := range urls {
		assert.Contains(t, u, "/docs/")
	}
}
