package http

import (
	"context"
	"io"
	"net/http"

	"github.com/mkrawiec/scrapbook"
)

// Ensure AssetFetcher implements scrapbook.AssetFetcher at compile time.
var _ scrapbook.AssetFetcher = (*AssetFetcher)(nil)

// AssetFetcher downloads binary resources (images) referenced by article
// content. Assets never need a browser, so even book scrapes that render
// pages through rod fetch their images over plain HTTP.
type AssetFetcher struct {
	client *http.Client
}

// NewAssetFetcher creates an AssetFetcher using the given HTTP client.
// If client is nil, a client with DefaultFetchTimeout is used.
func NewAssetFetcher(client *http.Client) *AssetFetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &AssetFetcher{client: client}
}

// FetchAsset downloads the resource at url and reports the media type
// from the Content-Type response header.
func (f *AssetFetcher) FetchAsset(ctx context.Context, url string) (*scrapbook.Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, scrapbook.Errorf(scrapbook.EINVALID, "invalid request for %s: %s", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, scrapbook.Errorf(scrapbook.EFETCH, "fetching asset %s: %s", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, scrapbook.Errorf(scrapbook.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, scrapbook.Errorf(scrapbook.EFETCH, "reading asset %s: %s", url, err)
	}

	return &scrapbook.Asset{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
