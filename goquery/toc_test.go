package goquery_test

import (
	"testing"

	"github.com/mkrawiec/scrapbook/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTocResolver_ChapterHeadings(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<div class="toc">
			<div class="chapter-name">Getting Started</div>
			<ul>
				<li><a href="/books/go/ch1/intro">Introduction</a></li>
				<li><a href="/books/go/ch1/setup">Setting Up</a></li>
			</ul>
			<h3 class="section-head">Advanced Topics</h3>
			<ul>
				<li><a href="/books/go/ch2/generics">Generics</a></li>
			</ul>
		</div>
	</body></html>`

	r := goquery.NewTocResolver()
	toc := r.Resolve(html, "https://learn.example/books/go")

	require.Len(t, toc, 2)

	assert.Equal(t, "Getting Started", toc[0].Title)
	require.Len(t, toc[0].Children, 2)
	assert.Equal(t, "Introduction", toc[0].Children[0].Title)
	assert.Equal(t, "https://learn.example/books/go/ch1/intro", toc[0].Children[0].URL)
	assert.Equal(t, "Setting Up", toc[0].Children[1].Title)

	assert.Equal(t, "Advanced Topics", toc[1].Title)
	require.Len(t, toc[1].Children, 1)
	assert.Equal(t, "https://learn.example/books/go/ch2/generics", toc[1].Children[0].URL)
}

func TestTocResolver_NestedChapterList(t *testing.T) {
	t.Parallel()

	// The article list sits inside the chapter element rather than after
	// it; the chapter title flattens the whole element's text.
	html := `<html><body>
		<div class="toc">
			<div class="chapter-group">Shipping
				<ul><li><a href="ship/basics">Basics</a></li></ul>
			</div>
		</div>
	</body></html>`

	r := goquery.NewTocResolver()
	toc := r.Resolve(html, "https://learn.example/books/ops/")

	require.Len(t, toc, 1)
	assert.Equal(t, "Shipping Basics", toc[0].Title)
	require.Len(t, toc[0].Children, 1)
	assert.Equal(t, "https://learn.example/books/ops/ship/basics", toc[0].Children[0].URL)
}

func TestTocResolver_ChapterWithoutArticlesDropped(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<div class="toc">
			<div class="chapter-empty">Placeholder</div>
			<p>coming soon</p>
			<div class="chapter-real">Real Chapter</div>
			<ul><li><a href="/a1">Article</a></li></ul>
		</div>
	</body></html>`

	r := goquery.NewTocResolver()
	toc := r.Resolve(html, "https://learn.example/book")

	require.Len(t, toc, 1)
	assert.Equal(t, "Real Chapter", toc[0].Title)
}

func TestTocResolver_DuplicateURLsKeepFirst(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<div class="toc">
			<div class="chapter-one">Chapter One</div>
			<ul>
				<li><a href="/ch1/a">First Title</a></li>
				<li><a href="/ch1/b">Other</a></li>
				<li><a href="/ch1/a">Duplicate Title</a></li>
			</ul>
		</div>
	</body></html>`

	r := goquery.NewTocResolver()
	toc := r.Resolve(html, "https://learn.example/book")

	require.Len(t, toc, 1)
	require.Len(t, toc[0].Children, 2)
	assert.Equal(t, "First Title", toc[0].Children[0].Title)
	assert.Equal(t, "Other", toc[0].Children[1].Title)
}

func TestTocResolver_FlatFallback(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<div class="sidebar">
			<a href="#top">Back to top</a>
			<a href="https://other.example/away">External site</a>
			<a href="/lesson/1">Lesson One</a>
			<a href="/lesson/2">Lesson Two</a>
			<a href="/lesson/1#notes">Lesson One notes</a>
		</div>
		<a href="/outside">Not in the container</a>
	</body></html>`

	r := goquery.NewTocResolver()
	toc := r.Resolve(html, "https://learn.example/books/go")

	require.Len(t, toc, 1)
	assert.Equal(t, "Main Content", toc[0].Title)

	// Fragment-only and cross-origin links are dropped, the anchored
	// variant of lesson 1 deduplicates against the plain one, and links
	// outside the TOC container are never considered.
	require.Len(t, toc[0].Children, 2)
	assert.Equal(t, "Lesson One", toc[0].Children[0].Title)
	assert.Equal(t, "https://learn.example/lesson/1", toc[0].Children[0].URL)
	assert.Equal(t, "https://learn.example/lesson/2", toc[0].Children[1].URL)
}

func TestTocResolver_NavFallbackContainer(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<nav>
			<a href="/guide/start">Start Here</a>
		</nav>
		<p>body text</p>
	</body></html>`

	r := goquery.NewTocResolver()
	toc := r.Resolve(html, "https://learn.example/guide")

	require.Len(t, toc, 1)
	assert.Equal(t, "Main Content", toc[0].Title)
	require.Len(t, toc[0].Children, 1)
	assert.Equal(t, "Start Here", toc[0].Children[0].Title)
}

func TestTocResolver_NoLinksYieldsNothing(t *testing.T) {
	t.Parallel()

	r := goquery.NewTocResolver()
	toc := r.Resolve(`<html><body><p>no table of contents here</p></body></html>`, "https://learn.example/book")

	assert.Empty(t, toc)
}

func TestTocResolver_ExtractMeta(t *testing.T) {
	t.Parallel()

	r := goquery.NewTocResolver()

	t.Run("classed heading and meta description", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<meta name="description" content="An introduction to distributed systems.">
		</head><body>
			<h1 class="book-title">Distributed Systems</h1>
		</body></html>`

		meta := r.ExtractMeta(html)

		assert.Equal(t, "Distributed Systems", meta.Title)
		assert.Equal(t, "An introduction to distributed systems.", meta.Description)
	})

	t.Run("platform suffix stripped from page title", func(t *testing.T) {
		t.Parallel()

		meta := r.ExtractMeta(`<html><head><title>Go Fundamentals - Zoho Learn</title></head><body></body></html>`)

		assert.Equal(t, "Go Fundamentals", meta.Title)
	})

	t.Run("plain heading beats page title", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>wrong</title></head><body><h1>Right Title</h1></body></html>`

		meta := r.ExtractMeta(html)

		assert.Equal(t, "Right Title", meta.Title)
	})

	t.Run("description from classed element", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<h1>Anything</h1>
			<div class="book-summary">Short overview of the material.</div>
		</body></html>`

		meta := r.ExtractMeta(html)

		assert.Equal(t, "Short overview of the material.", meta.Description)
	})

	t.Run("untitled fallback", func(t *testing.T) {
		t.Parallel()

		meta := r.ExtractMeta(`<html><body><p>nothing usable</p></body></html>`)

		assert.Equal(t, "Untitled Book", meta.Title)
		assert.Empty(t, meta.Description)
	})
}
