package scrapbook_test

import (
	"testing"

	"github.com/mkrawiec/scrapbook"
	"github.com/stretchr/testify/assert"
)

func TestTocEntry_Walk(t *testing.T) {
	t.Parallel()

	t.Run("visits entries in pre-order", func(t *testing.T) {
		t.Parallel()

		root := &scrapbook.TocEntry{
			Title: "Chapter 1",
			Children: []*scrapbook.TocEntry{
				{Title: "Intro", URL: "https://example.com/intro"},
				{Title: "Setup", URL: "https://example.com/setup"},
			},
		}

		var titles []string
		root.Walk(func(e *scrapbook.TocEntry) bool {
			titles = append(titles, e.Title)
			return true
		})

		assert.Equal(t, []string{"Chapter 1", "Intro", "Setup"}, titles)
	})

	t.Run("stops when the visitor returns false", func(t *testing.T) {
		t.Parallel()

		root := &scrapbook.TocEntry{
			Title: "Chapter 1",
			Children: []*scrapbook.TocEntry{
				{Title: "Intro", URL: "https://example.com/intro"},
				{Title: "Setup", URL: "https://example.com/setup"},
			},
		}

		var count int
		root.Walk(func(e *scrapbook.TocEntry) bool {
			count++
			return count < 2
		})

		assert.Equal(t, 2, count)
	})

	t.Run("skips subtrees with already visited URLs", func(t *testing.T) {
		t.Parallel()

		shared := &scrapbook.TocEntry{Title: "Shared", URL: "https://example.com/shared"}
		root := &scrapbook.TocEntry{
			Title: "Book",
			Children: []*scrapbook.TocEntry{
				shared,
				{Title: "Shared again", URL: "https://example.com/shared"},
				{Title: "Other", URL: "https://example.com/other"},
			},
		}

		var visited []string
		root.Walk(func(e *scrapbook.TocEntry) bool {
			visited = append(visited, e.Title)
			return true
		})

		assert.Equal(t, []string{"Book", "Shared", "Other"}, visited)
	})

	t.Run("survives cyclic references", func(t *testing.T) {
		t.Parallel()

		a := &scrapbook.TocEntry{Title: "A", URL: "https://example.com/a"}
		b := &scrapbook.TocEntry{Title: "B", URL: "https://example.com/b"}
		a.Children = []*scrapbook.TocEntry{b}
		b.Children = []*scrapbook.TocEntry{a}

		var count int
		a.Walk(func(e *scrapbook.TocEntry) bool {
			count++
			return true
		})

		assert.Equal(t, 2, count)
	})
}

func TestTocEntry_CountLeaves(t *testing.T) {
	t.Parallel()

	root := &scrapbook.TocEntry{
		Title: "Book",
		Children: []*scrapbook.TocEntry{
			{
				Title: "Chapter 1",
				Children: []*scrapbook.TocEntry{
					{Title: "Intro", URL: "https://example.com/intro"},
					{Title: "Setup", URL: "https://example.com/setup"},
				},
			},
			{
				Title: "Chapter 2",
				Children: []*scrapbook.TocEntry{
					{Title: "Usage", URL: "https://example.com/usage"},
				},
			},
		},
	}

	assert.Equal(t, 3, root.CountLeaves())
}
