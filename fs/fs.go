// Package fs stores scrape output on disk: downloaded images plus JSON
// and markdown exports.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mkrawiec/scrapbook"
)

// Ensure Store implements scrapbook.AssetStore at compile time.
var _ scrapbook.AssetStore = (*Store)(nil)

// Store persists downloaded assets under a root directory. Images land
// in an images/ subdirectory, and the returned paths point there so a
// book export and its image files can travel together.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created on
// first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes data under images/<name> and returns the written path.
func (s *Store) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	imagesDir := filepath.Join(s.dir, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(imagesDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	return path, nil
}
