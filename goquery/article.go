package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkrawiec/scrapbook"
)

var _ scrapbook.ArticleExtractor = (*ArticleExtractor)(nil)

// maxCaptionLength bounds sibling-derived captions; anything longer is
// body text, not a caption.
const maxCaptionLength = 200

// contentRootRules locate the article's content container, most
// specific first.
func contentRootRules() []Rule {
	return []Rule{
		{Selector: "article"},
		{Selector: "div", Class: classPattern(`content|article|main|body`)},
		{Selector: "main"},
		{Selector: "div", ID: classPattern(`content|article|main`)},
		{Selector: "section", Class: classPattern(`content|article`)},
	}
}

// ArticleExtractor extracts structured article content. When none of
// the structural content-root rules match, an optional Distiller is
// consulted before falling back to the whole body.
type ArticleExtractor struct {
	Fallback scrapbook.Distiller
}

// NewArticleExtractor creates an extractor with the given distiller
// fallback. A nil fallback skips straight to the body.
func NewArticleExtractor(fallback scrapbook.Distiller) *ArticleExtractor {
	return &ArticleExtractor{Fallback: fallback}
}

// ExtractArticle extracts structured content, image references and the
// content root's markup. Returns EPARSE only when the markup cannot be
// parsed.
func (e *ArticleExtractor) ExtractArticle(html string, pageURL string) (*scrapbook.ArticleContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scrapbook.Errorf(scrapbook.EPARSE, "failed to parse article page: %v", err)
	}

	root := firstSelection(doc, contentRootRules())
	if root == nil {
		root = e.distill(html)
	}
	if root == nil {
		root = doc.Find("body").First()
		if root.Length() == 0 {
			root = doc.Selection
		}
	}

	markup, err := goquery.OuterHtml(root)
	if err != nil {
		markup = ""
	}

	return &scrapbook.ArticleContent{
		Doc: scrapbook.Document{
			Blocks:  StructureContent(root),
			RawText: CollapseWhitespace(FlattenText(root)),
		},
		Images:      extractImages(root, pageURL),
		ContentHTML: markup,
	}, nil
}

// distill runs the fallback distiller and re-parses its output. Returns
// nil when the distiller is unset, fails, or finds nothing.
func (e *ArticleExtractor) distill(html string) *goquery.Selection {
	if e.Fallback == nil {
		return nil
	}
	distilled, err := e.Fallback.Distill(html)
	if err != nil || distilled.ContentHTML == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(distilled.ContentHTML))
	if err != nil {
		return nil
	}
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return doc.Selection
	}
	return body
}

// extractImages collects image references under the content root in
// document order. Lazy-loaded images keep their URL in data-src, so
// src is preferred and data-src consulted second; images with neither
// are skipped.
func extractImages(root *goquery.Selection, pageURL string) []scrapbook.ImageRef {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	var images []scrapbook.ImageRef
	root.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			src, _ = img.Attr("data-src")
		}
		if src == "" {
			return
		}

		ref := scrapbook.ImageRef{
			URL:     resolveImageURL(base, src),
			Caption: findCaption(img),
		}
		ref.Alt, _ = img.Attr("alt")
		ref.Title, _ = img.Attr("title")
		images = append(images, ref)
	})
	return images
}

// findCaption prefers a figcaption within an enclosing figure, then a
// short text element immediately following the image.
func findCaption(img *goquery.Selection) string {
	if figure := img.Closest("figure"); figure.Length() > 0 {
		return FlattenText(figure.Find("figcaption").First())
	}
	sibling := img.NextAllFiltered("p, div, span").First()
	if sibling.Length() == 0 {
		return ""
	}
	text := FlattenText(sibling)
	if text == "" || len([]rune(text)) >= maxCaptionLength {
		return ""
	}
	return text
}

func resolveImageURL(base *url.URL, src string) string {
	if base == nil {
		return src
	}
	ref, err := url.Parse(strings.TrimSpace(src))
	if err != nil {
		return src
	}
	return base.ResolveReference(ref).String()
}
