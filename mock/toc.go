package mock

import "github.com/mkrawiec/scrapbook"

var _ scrapbook.TocResolver = (*TocResolver)(nil)

// TocResolver is a mock implementation of scrapbook.TocResolver.
type TocResolver struct {
	ResolveFn func(html string, baseURL string) []*scrapbook.TocEntry
}

func (r *TocResolver) Resolve(html string, baseURL string) []*scrapbook.TocEntry {
	return r.ResolveFn(html, baseURL)
}

var _ scrapbook.BookMetaExtractor = (*BookMetaExtractor)(nil)

// BookMetaExtractor is a mock implementation of scrapbook.BookMetaExtractor.
type BookMetaExtractor struct {
	ExtractMetaFn func(html string) scrapbook.BookMeta
}

func (e *BookMetaExtractor) ExtractMeta(html string) scrapbook.BookMeta {
	return e.ExtractMetaFn(html)
}
