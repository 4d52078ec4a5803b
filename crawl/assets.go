package crawl

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mkrawiec/scrapbook"
	"golang.org/x/sync/singleflight"
)

// AssetCache memoizes image downloads for one scrape session. Each
// distinct URL is fetched at most once, concurrent first references
// included; later references resolve from the cache. Failures are
// cached too, so a broken image URL is not re-attempted within the
// session.
type AssetCache struct {
	fetcher scrapbook.AssetFetcher
	store   scrapbook.AssetStore

	flight singleflight.Group
	mu     sync.Mutex
	assets map[string]assetOutcome
}

type assetOutcome struct {
	path string
	err  error
}

// NewAssetCache creates an empty cache backed by the given fetcher and
// store.
func NewAssetCache(fetcher scrapbook.AssetFetcher, store scrapbook.AssetStore) *AssetCache {
	return &AssetCache{
		fetcher: fetcher,
		store:   store,
		assets:  make(map[string]assetOutcome),
	}
}

// Resolve returns the local path for url, downloading and storing it on
// first reference. The stored file is named after the first referencing
// article: ch<chapter>_art<article>_img<index> plus an extension picked
// from the response content type. A cached failure returns its original
// error with an empty path.
func (c *AssetCache) Resolve(ctx context.Context, url string, chapter, article, index int) (string, error) {
	c.mu.Lock()
	if out, ok := c.assets[url]; ok {
		c.mu.Unlock()
		return out.path, out.err
	}
	c.mu.Unlock()

	v, err, _ := c.flight.Do(url, func() (any, error) {
		// A concurrent flight may have completed between the check
		// above and this call.
		c.mu.Lock()
		if out, ok := c.assets[url]; ok {
			c.mu.Unlock()
			return out.path, out.err
		}
		c.mu.Unlock()

		path, err := c.download(ctx, url, chapter, article, index)

		c.mu.Lock()
		c.assets[url] = assetOutcome{path: path, err: err}
		c.mu.Unlock()

		return path, err
	})

	path, _ := v.(string)
	return path, err
}

// Size returns the number of distinct URLs resolved so far, failures
// included.
func (c *AssetCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.assets)
}

func (c *AssetCache) download(ctx context.Context, url string, chapter, article, index int) (string, error) {
	asset, err := c.fetcher.FetchAsset(ctx, url)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("ch%d_art%d_img%d%s", chapter, article, index, extensionFor(asset.ContentType))
	return c.store.Save(ctx, name, asset.Data)
}

// extensionFor picks a file extension from the response content type,
// defaulting to .jpg.
func extensionFor(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "gif"):
		return ".gif"
	case strings.Contains(ct, "svg"):
		return ".svg"
	case strings.Contains(ct, "webp"):
		return ".webp"
	default:
		return ".jpg"
	}
}
