package goquery

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// FlattenText returns the visible text of a selection: every text node
// trimmed, empties dropped, the rest joined with single spaces. This
// keeps words from running together across element boundaries, which
// matters for word counting and keyword scans.
func FlattenText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// CollapseWhitespace folds runs of whitespace into single spaces and
// trims the ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// cleanPageText returns the page text with script, style and chrome
// elements removed and whitespace collapsed. It mutates the document,
// so callers extract it last.
func cleanPageText(doc *goquery.Document) string {
	doc.Find("script, style, nav, footer, header").Remove()
	return CollapseWhitespace(FlattenText(doc.Selection))
}

// titleCase uppercases the first letter of every word, where a word
// starts after any non-letter. "full-time" becomes "Full-Time".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prev := ' '
	for _, r := range s {
		if !unicode.IsLetter(prev) {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		prev = r
	}
	return b.String()
}

// containsAny reports whether s contains any of the given substrings.
// The caller is responsible for case normalization.
func containsAny(s string, subs []string) string {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return sub
		}
	}
	return ""
}
