package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/mkrawiec/scrapbook"
	scrapbookhttp "github.com/mkrawiec/scrapbook/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_DiscoverURLs_FromRobotsTxt(t *testing.T) {
	t.Parallel()

	robotsTxt := `User-agent: *
Disallow: /private/
Sitemap: {{BASE}}/sitemap.xml
`
	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/jobs/backend-engineer</loc></url>
  <url><loc>{{BASE}}/jobs/data-analyst</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/robots.txt":  robotsTxt,
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	svc := scrapbookhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Len(t, urls, 2)
	assert.Contains(t, urls, srv.URL+"/jobs/backend-engineer")
	assert.Contains(t, urls, srv.URL+"/jobs/data-analyst")
}

func TestSitemapService_DiscoverURLs_FallbackToSitemapXML(t *testing.T) {
	t.Parallel()

	// No robots.txt, should fall back to /sitemap.xml
	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/jobs/1</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	svc := scrapbookhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Len(t, urls, 1)
	assert.Contains(t, urls, srv.URL+"/jobs/1")
}

func TestSitemapService_DiscoverURLs_SitemapIndex(t *testing.T) {
	t.Parallel()

	sitemapIndex := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap-jobs.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-blog.xml</loc></sitemap>
</sitemapindex>`

	sitemapJobs := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/jobs/backend-engineer</loc></url>
</urlset>`

	sitemapBlog := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/blog/hiring-update</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml":      sitemapIndex,
		"/sitemap-jobs.xml": sitemapJobs,
		"/sitemap-blog.xml": sitemapBlog,
	})
	defer srv.Close()

	svc := scrapbookhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Len(t, urls, 2)
	assert.Contains(t, urls, srv.URL+"/jobs/backend-engineer")
	assert.Contains(t, urls, srv.URL+"/blog/hiring-update")
}

func TestSitemapService_DiscoverURLs_WithIncludeFilter(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/jobs/backend-engineer</loc></url>
  <url><loc>{{BASE}}/blog/company-news</loc></url>
  <url><loc>{{BASE}}/jobs/data-analyst</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	filter := &scrapbook.URLFilter{
		Include: []*regexp.Regexp{regexp.MustCompile(`/jobs/`)},
	}

	svc := scrapbookhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL, filter)

	require.NoError(t, err)
	assert.Len(t, urls, 2)
	assert.Contains(t, urls, srv.URL+"/jobs/backend-engineer")
	assert.Contains(t, urls, srv.URL+"/jobs/data-analyst")
}

func TestSitemapService_DiscoverURLs_WithExcludeFilter(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/jobs/backend-engineer</loc></url>
  <url><loc>{{BASE}}/jobs/archived/clerk</loc></url>
  <url><loc>{{BASE}}/jobs/data-analyst</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	filter := &scrapbook.URLFilter{
		Exclude: []*regexp.Regexp{regexp.MustCompile(`/archived/`)},
	}

	svc := scrapbookhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL, filter)

	require.NoError(t, err)
	assert.Len(t, urls, 2)
	assert.Contains(t, urls, srv.URL+"/jobs/backend-engineer")
	assert.Contains(t, urls, srv.URL+"/jobs/data-analyst")
}

func TestSitemapService_DiscoverURLs_PathPrefix(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/careers/backend-engineer</loc></url>
  <url><loc>{{BASE}}/careers-archive/old-role</loc></url>
  <url><loc>{{BASE}}/about</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	svc := scrapbookhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/careers/", nil)

	require.NoError(t, err)
	// Path boundary matters: /careers-archive/ must not slip through.
	assert.Equal(t, []string{srv.URL + "/careers/backend-engineer"}, urls)
}

func TestSitemapService_DiscoverURLs_ContextCancellation(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/jobs/1</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	svc := scrapbookhttp.NewSitemapService(srv.Client())
	_, err := svc.DiscoverURLs(ctx, srv.URL, nil)

	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSitemapService_DiscoverURLs_MultipleSitemapsInRobots(t *testing.T) {
	t.Parallel()

	robotsTxt := `User-agent: *
Sitemap: {{BASE}}/sitemap1.xml
Sitemap: {{BASE}}/sitemap2.xml
`
	sitemap1 := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/jobs/1</loc></url>
</urlset>`

	sitemap2 := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/jobs/2</loc></url>
  <url><loc>{{BASE}}/jobs/1</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/robots.txt":   robotsTxt,
		"/sitemap1.xml": sitemap1,
		"/sitemap2.xml": sitemap2,
	})
	defer srv.Close()

	svc := scrapbookhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	// /jobs/1 appears in both sitemaps but is reported once.
	assert.Len(t, urls, 2)
	assert.Contains(t, urls, srv.URL+"/jobs/1")
	assert.Contains(t, urls, srv.URL+"/jobs/2")
}

func TestSitemapService_DiscoverURLs_NoSitemapFound(t *testing.T) {
	t.Parallel()

	// No robots.txt, no sitemap.xml
	srv := newTestServer(t, map[string]string{})
	defer srv.Close()

	svc := scrapbookhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.NotNil(t, urls)
	assert.Empty(t, urls)
}

func TestSitemapService_DiscoverURLs_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	svc := scrapbookhttp.NewSitemapService(nil)
	_, err := svc.DiscoverURLs(context.Background(), "http://[::1]:bad", nil)

	require.Error(t, err)
	assert.Equal(t, scrapbook.EINVALID, scrapbook.ErrorCode(err))
}

// newTestServer creates a test HTTP server with the given path->content
// mapping. Content strings may contain {{BASE}} which is replaced with
// the server URL.
func newTestServer(t *testing.T, content map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := content[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		body = replaceBaseURL(body, srv.URL)

		if r.URL.Path == "/robots.txt" {
			w.Header().Set("Content-Type", "text/plain")
		} else {
			w.Header().Set("Content-Type", "application/xml")
		}
		_, _ = w.Write([]byte(body))
	}))

	return srv
}

func replaceBaseURL(content, baseURL string) string {
	return regexp.MustCompile(`\{\{BASE\}\}`).ReplaceAllString(content, baseURL)
}
