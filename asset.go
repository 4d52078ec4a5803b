package scrapbook

import "context"

// Asset is a fetched binary resource, typically an image.
type Asset struct {
	Data []byte

	// ContentType is the response media type, used to pick a file
	// extension when storing.
	ContentType string
}

// AssetFetcher retrieves binary resources referenced by article content.
type AssetFetcher interface {
	FetchAsset(ctx context.Context, url string) (*Asset, error)
}

// AssetStore persists fetched assets and returns the stored path.
type AssetStore interface {
	// Save writes data under the given file name and returns the path
	// the asset can later be read from.
	Save(ctx context.Context, name string, data []byte) (string, error)
}
