package mock

import (
	"context"

	"github.com/mkrawiec/scrapbook"
)

var _ scrapbook.AssetFetcher = (*AssetFetcher)(nil)

// AssetFetcher is a mock implementation of scrapbook.AssetFetcher.
type AssetFetcher struct {
	FetchAssetFn func(ctx context.Context, url string) (*scrapbook.Asset, error)
}

func (f *AssetFetcher) FetchAsset(ctx context.Context, url string) (*scrapbook.Asset, error) {
	return f.FetchAssetFn(ctx, url)
}

var _ scrapbook.AssetStore = (*AssetStore)(nil)

// AssetStore is a mock implementation of scrapbook.AssetStore.
type AssetStore struct {
	SaveFn func(ctx context.Context, name string, data []byte) (string, error)
}

func (s *AssetStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	return s.SaveFn(ctx, name, data)
}
