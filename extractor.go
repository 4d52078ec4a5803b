package scrapbook

// ImageRef is an image reference collected from article markup before
// any download is attempted.
type ImageRef struct {
	// URL is the absolute image URL, resolved from src or data-src.
	URL string

	Alt   string
	Title string

	// Caption comes from an enclosing figure's figcaption, or failing
	// that a short text element immediately following the image.
	Caption string
}

// ArticleContent holds everything extracted from one article page.
type ArticleContent struct {
	// Doc is the structured content of the located content root.
	Doc Document

	// Images lists the image references found under the content root,
	// in document order.
	Images []ImageRef

	// ContentHTML is the content root's markup, kept for conversion to
	// other formats.
	ContentHTML string
}

// ArticleExtractor extracts structured content from a fetched article
// page. Missing structure degrades to empty content; an error is
// returned only when the markup cannot be parsed at all.
type ArticleExtractor interface {
	ExtractArticle(html string, pageURL string) (*ArticleContent, error)
}

// Distilled holds generic main-content extraction output.
type Distilled struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Distiller extracts main content from HTML pages, removing boilerplate.
// Article extraction uses it as a fallback when the structural content
// root heuristics find nothing, before giving up and using the body.
type Distiller interface {
	Distill(html string) (*Distilled, error)
}
