package scrapbook_test

import (
	"testing"

	"github.com/mkrawiec/scrapbook"
	"github.com/stretchr/testify/assert"
)

func TestBook_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires a URL", func(t *testing.T) {
		t.Parallel()

		book := &scrapbook.Book{Title: "Go Patterns"}
		err := book.Validate()

		assert.Equal(t, scrapbook.EINVALID, scrapbook.ErrorCode(err))
	})

	t.Run("accepts a book with a URL", func(t *testing.T) {
		t.Parallel()

		book := &scrapbook.Book{URL: "https://learn.example/books/go-patterns"}
		assert.NoError(t, book.Validate())
	})
}

func TestBook_CountTotals(t *testing.T) {
	t.Parallel()

	local := "images/img_ch1_art1_001.png"
	book := &scrapbook.Book{
		Chapters: []*scrapbook.Chapter{
			{Number: 1, Articles: []*scrapbook.Article{
				{Number: 1, Images: []scrapbook.Image{
					{SourceURL: "https://learn.example/a.png", LocalPath: &local},
					{SourceURL: "https://learn.example/b.png"},
				}},
				{Number: 2, Err: "HTTP 404"},
			}},
			{Number: 2, Articles: []*scrapbook.Article{
				{Number: 1},
			}},
		},
	}

	totals := book.CountTotals()

	assert.Equal(t, 2, totals.Chapters)
	// Error-marked articles and failed downloads still count
	assert.Equal(t, 3, totals.Articles)
	assert.Equal(t, 2, totals.Images)
}

func TestArticle_Failed(t *testing.T) {
	t.Parallel()

	assert.False(t, (&scrapbook.Article{Title: "Introduction"}).Failed())
	assert.True(t, (&scrapbook.Article{Title: "Gone", Err: "HTTP 404"}).Failed())
}
