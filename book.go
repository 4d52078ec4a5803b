package scrapbook

import (
	"context"
	"time"
)

// Book is the aggregated result of scraping a learning-platform book:
// its metadata plus every chapter and article the table of contents led
// to. Articles that failed to fetch or extract are still present, marked
// with an error, so the totals always reflect what the TOC promised.
type Book struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	ScrapedAt   time.Time  `json:"scrapedAt"`
	Chapters    []*Chapter `json:"chapters"`
	Totals      Totals     `json:"totals"`
}

// Totals counts the actual entries present in the book, including
// error-marked articles and images whose download failed.
type Totals struct {
	Chapters int `json:"chapters"`
	Articles int `json:"articles"`
	Images   int `json:"images"`
}

// Validate returns an error if the book contains invalid fields.
func (b *Book) Validate() error {
	if b.URL == "" {
		return Errorf(EINVALID, "book URL required")
	}
	return nil
}

// CountTotals recomputes the book's totals from its chapters.
func (b *Book) CountTotals() Totals {
	t := Totals{Chapters: len(b.Chapters)}
	for _, ch := range b.Chapters {
		t.Articles += len(ch.Articles)
		for _, a := range ch.Articles {
			t.Images += len(a.Images)
		}
	}
	return t
}

// Chapter groups the articles listed under one TOC section. Number is
// 1-based and follows TOC order.
type Chapter struct {
	Number   int        `json:"number"`
	Title    string     `json:"title"`
	Articles []*Article `json:"articles"`
}

// Article is one scraped page of a book. An article that could not be
// fetched or extracted keeps its number, title and URL, has empty
// content, and records the failure in Err.
type Article struct {
	Number   int             `json:"number"`
	Title    string          `json:"title"`
	URL      string          `json:"url"`
	Content  Document        `json:"content"`
	Images   []Image         `json:"images"`
	Metadata ArticleMetadata `json:"metadata"`
	Err      string          `json:"error,omitempty"`

	// ContentHTML is the content root's markup, kept in memory for
	// markdown conversion but excluded from exports and storage.
	ContentHTML string `json:"-"`
}

// Failed reports whether the article is error-marked.
func (a *Article) Failed() bool { return a.Err != "" }

// Image is one image reference found in an article's content. LocalPath
// is nil when the download failed or was skipped; the entry is kept
// either way.
type Image struct {
	SourceURL string  `json:"sourceUrl"`
	LocalPath *string `json:"localPath"`
	Alt       string  `json:"altText"`
	Title     string  `json:"title,omitempty"`
	Caption   string  `json:"caption,omitempty"`
}

// BookMeta is the book-level title and description extracted from the
// root page.
type BookMeta struct {
	Title       string
	Description string
}

// BookMetaExtractor extracts book metadata from the root page. It never
// fails: when no heuristic matches, the title falls back to
// "Untitled Book" and the description stays empty.
type BookMetaExtractor interface {
	ExtractMeta(html string) BookMeta
}

// BookService represents a service for managing stored books.
type BookService interface {
	// CreateBook persists a scraped book with all of its articles.
	CreateBook(ctx context.Context, book *Book) error

	// FindBookByID retrieves a book by ID, chapters and articles
	// included. Returns ENOTFOUND if the book does not exist.
	FindBookByID(ctx context.Context, id string) (*Book, error)

	// FindBooks retrieves books matching the filter, newest first.
	// Chapters are not loaded.
	FindBooks(ctx context.Context, filter BookFilter) ([]*Book, error)

	// DeleteBook permanently removes a book and its articles.
	// Returns ENOTFOUND if the book does not exist.
	DeleteBook(ctx context.Context, id string) error
}

// BookFilter represents a filter for FindBooks.
type BookFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
