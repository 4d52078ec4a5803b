package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mkrawiec/scrapbook"
)

// Compile-time interface verification.
var _ scrapbook.BookService = (*BookService)(nil)

// BookService implements scrapbook.BookService using SQLite.
type BookService struct {
	db *DB
}

// NewBookService creates a new BookService.
func NewBookService(db *DB) *BookService {
	return &BookService{db: db}
}

// CreateBook persists a book with all of its chapters and articles in a
// single transaction, so an interrupted save never leaves a partial
// book behind. The book's ScrapedAt is kept when already set by the
// scrape; totals are recomputed from the chapters.
func (s *BookService) CreateBook(ctx context.Context, book *scrapbook.Book) error {
	if err := book.Validate(); err != nil {
		return err
	}

	book.ID = uuid.New().String()
	if book.ScrapedAt.IsZero() {
		book.ScrapedAt = time.Now().UTC()
	}
	book.Totals = book.CountTotals()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO books (id, title, description, url, scraped_at, total_chapters, total_articles, total_images)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, book.ID, book.Title, book.Description, book.URL, book.ScrapedAt.Format(time.RFC3339),
		book.Totals.Chapters, book.Totals.Articles, book.Totals.Images)
	if err != nil {
		return err
	}

	for _, chapter := range book.Chapters {
		chapterID := uuid.New().String()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO chapters (id, book_id, number, title)
			VALUES (?, ?, ?, ?)
		`, chapterID, book.ID, chapter.Number, chapter.Title)
		if err != nil {
			return err
		}

		for _, article := range chapter.Articles {
			content, err := encodeJSON(article.Content)
			if err != nil {
				return err
			}
			images, err := encodeJSON(article.Images)
			if err != nil {
				return err
			}
			metadata, err := encodeJSON(article.Metadata)
			if err != nil {
				return err
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO articles (id, chapter_id, number, title, url, content, images, metadata, content_hash, error)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, uuid.New().String(), chapterID, article.Number, article.Title, article.URL,
				content, images, metadata, hashContent(content), article.Err)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// FindBookByID retrieves a book by ID, chapters and articles included.
func (s *BookService) FindBookByID(ctx context.Context, id string) (*scrapbook.Book, error) {
	books, err := s.FindBooks(ctx, scrapbook.BookFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, scrapbook.Errorf(scrapbook.ENOTFOUND, "book not found")
	}

	book := books[0]
	book.Chapters, err = s.findChapters(ctx, book.ID)
	if err != nil {
		return nil, err
	}

	return book, nil
}

// FindBooks retrieves books matching the filter, newest first. Chapters
// are not loaded.
func (s *BookService) FindBooks(ctx context.Context, filter scrapbook.BookFilter) ([]*scrapbook.Book, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, description, url, scraped_at, total_chapters, total_articles, total_images FROM books WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY scraped_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*scrapbook.Book
	for rows.Next() {
		var book scrapbook.Book
		var scrapedAt string

		if err := rows.Scan(&book.ID, &book.Title, &book.Description, &book.URL, &scrapedAt,
			&book.Totals.Chapters, &book.Totals.Articles, &book.Totals.Images); err != nil {
			return nil, err
		}

		book.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at")
		if err != nil {
			return nil, err
		}

		books = append(books, &book)
	}

	return books, rows.Err()
}

// DeleteBook permanently removes a book. Chapters and articles go with
// it through the cascading foreign keys.
func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return scrapbook.Errorf(scrapbook.ENOTFOUND, "book not found")
	}

	return nil
}

// findChapters loads a book's chapters and their articles, both in TOC
// order.
func (s *BookService) findChapters(ctx context.Context, bookID string) ([]*scrapbook.Chapter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, number, title
		FROM chapters
		WHERE book_id = ?
		ORDER BY number ASC
	`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []*scrapbook.Chapter
	byID := make(map[string]*scrapbook.Chapter)
	for rows.Next() {
		var chapterID string
		var chapter scrapbook.Chapter

		if err := rows.Scan(&chapterID, &chapter.Number, &chapter.Title); err != nil {
			return nil, err
		}

		chapters = append(chapters, &chapter)
		byID[chapterID] = &chapter
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachArticles(ctx, bookID, byID); err != nil {
		return nil, err
	}

	return chapters, nil
}

// attachArticles loads every article of the book and appends each to
// its chapter, in article order.
func (s *BookService) attachArticles(ctx context.Context, bookID string, chapters map[string]*scrapbook.Chapter) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.chapter_id, a.number, a.title, a.url, a.content, a.images, a.metadata, a.error
		FROM articles a
		JOIN chapters c ON a.chapter_id = c.id
		WHERE c.book_id = ?
		ORDER BY c.number ASC, a.number ASC
	`, bookID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var chapterID string
		var article scrapbook.Article
		var content, images, metadata string

		if err := rows.Scan(&chapterID, &article.Number, &article.Title, &article.URL,
			&content, &images, &metadata, &article.Err); err != nil {
			return err
		}

		if err := decodeJSON(content, &article.Content, "content"); err != nil {
			return err
		}
		if err := decodeJSON(images, &article.Images, "images"); err != nil {
			return err
		}
		if err := decodeJSON(metadata, &article.Metadata, "metadata"); err != nil {
			return err
		}

		chapter := chapters[chapterID]
		chapter.Articles = append(chapter.Articles, &article)
	}

	return rows.Err()
}
