package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkrawiec/scrapbook"
)

var (
	_ scrapbook.TocResolver       = (*TocResolver)(nil)
	_ scrapbook.BookMetaExtractor = (*TocResolver)(nil)
)

// platformSuffixRE strips learning-platform branding from page titles
// ("My Book - Zoho Learn" becomes "My Book").
var platformSuffixRE = regexp.MustCompile(`\s*-\s*Zoho\s+Learn.*$`)

// tocContainerRules locate the element most likely to hold the table of
// contents.
func tocContainerRules() []Rule {
	return []Rule{
		{Selector: "div", Class: classPattern(`toc|table.?of.?contents|sidebar|navigation`)},
		{Selector: "nav", Class: classPattern(`toc|navigation|sidebar`)},
		{Selector: "aside", Class: classPattern(`toc|navigation|sidebar`)},
		{Selector: "ul", Class: classPattern(`chapter|article.?list`)},
	}
}

func bookTitleRules() []Rule {
	return []Rule{
		{Selector: "h1", Class: classPattern(`book.?title|title`)},
		{Selector: "h1"},
		{Selector: "title"},
		{Selector: `meta[property="og:title"]`, Attr: "content"},
	}
}

func bookDescriptionRules() []Rule {
	return []Rule{
		{Selector: `meta[name="description"]`, Attr: "content"},
		{Selector: `meta[property="og:description"]`, Attr: "content"},
		{Selector: "div", Class: classPattern(`description|summary`)},
		{Selector: "p", Class: classPattern(`description|summary`)},
	}
}

// TocResolver derives a book's chapter/article structure from its root
// page. Resolution is two-phased: chapter headings with their adjacent
// or nested link lists first, then a flat harvest of every link in the
// TOC container under a single synthetic chapter. It also extracts the
// book-level title and description.
type TocResolver struct{}

// NewTocResolver creates a resolver.
func NewTocResolver() *TocResolver {
	return &TocResolver{}
}

// ExtractMeta extracts the book title and description. The title falls
// back to "Untitled Book" when nothing matches.
func (r *TocResolver) ExtractMeta(html string) scrapbook.BookMeta {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return scrapbook.BookMeta{Title: "Untitled Book"}
	}

	title := firstValue(doc, bookTitleRules())
	title = strings.TrimSpace(platformSuffixRE.ReplaceAllString(title, ""))
	if title == "" {
		title = "Untitled Book"
	}

	return scrapbook.BookMeta{
		Title:       title,
		Description: firstValue(doc, bookDescriptionRules()),
	}
}

// Resolve derives the table of contents. It never fails: pages without
// recognizable structure yield an empty slice.
func (r *TocResolver) Resolve(html string, baseURL string) []*scrapbook.TocEntry {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	container := firstSelection(doc, tocContainerRules())
	if container == nil {
		if nav := doc.Find("nav").First(); nav.Length() > 0 {
			container = nav
		} else if aside := doc.Find("aside").First(); aside.Length() > 0 {
			container = aside
		} else {
			container = doc.Selection
		}
	}

	chapters := r.resolveChapters(container, base)
	if len(chapters) == 0 {
		chapters = r.resolveFlat(container, base)
	}
	return chapters
}

// resolveChapters finds chapter headings and attaches the articles from
// each heading's adjacent or nested link list. Chapters that end up
// with no articles are dropped.
func (r *TocResolver) resolveChapters(container *goquery.Selection, base *url.URL) []*scrapbook.TocEntry {
	var chapters []*scrapbook.TocEntry

	headings := container.Find("h2, h3, h4, div, li").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		return ok && chapterClassRE.MatchString(class)
	})

	headings.Each(func(_ int, heading *goquery.Selection) {
		title := FlattenText(heading)
		if title == "" {
			return
		}

		list := heading.Next().Filter("ul, ol")
		if list.Length() == 0 {
			list = heading.Find("ul, ol").First()
		}
		if list.Length() == 0 {
			return
		}

		articles := collectArticleLinks(list, base, false)
		if len(articles) == 0 {
			return
		}

		chapters = append(chapters, &scrapbook.TocEntry{
			Title:    title,
			Children: articles,
		})
	})

	return chapters
}

var chapterClassRE = classPattern(`chapter|section|heading`)

// resolveFlat gathers every link in the container under one synthetic
// chapter. Unlike chapter resolution, the flat harvest filters
// aggressively: fragment-only links and links leaving the page's origin
// are navigation chrome, not book content.
func (r *TocResolver) resolveFlat(container *goquery.Selection, base *url.URL) []*scrapbook.TocEntry {
	articles := collectArticleLinks(container, base, true)
	if len(articles) == 0 {
		return nil
	}
	return []*scrapbook.TocEntry{{
		Title:    "Main Content",
		Children: articles,
	}}
}

// collectArticleLinks flattens all anchors under sel into article
// entries, deduplicated by resolved URL, first occurrence wins. In
// strict mode fragment-only and cross-origin links are dropped.
func collectArticleLinks(sel *goquery.Selection, base *url.URL, strict bool) []*scrapbook.TocEntry {
	var articles []*scrapbook.TocEntry
	seen := make(map[string]bool)

	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		title := FlattenText(a)
		href, _ := a.Attr("href")
		if title == "" || href == "" {
			return
		}
		if strict && strings.HasPrefix(href, "#") {
			return
		}

		resolved := resolveTocURL(base, href)
		if resolved == "" {
			return
		}
		if strict && !sameOrigin(base, resolved) {
			return
		}
		if seen[resolved] {
			return
		}
		seen[resolved] = true

		articles = append(articles, &scrapbook.TocEntry{
			Title: title,
			URL:   resolved,
		})
	})

	return articles
}

// resolveTocURL resolves href against the base URL, stripping fragments
// so the same page linked with different anchors deduplicates.
func resolveTocURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// sameOrigin reports whether the resolved URL shares the base URL's
// scheme and host. TOC links leaving the origin are navigation chrome,
// not book content.
func sameOrigin(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Scheme == base.Scheme && u.Host == base.Host
}
