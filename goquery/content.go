package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkrawiec/scrapbook"
)

// structuredTags are the element kinds the structurer recognizes, in
// the order they are reported when nested (document order).
const structuredTags = "h1, h2, h3, h4, h5, h6, p, ul, ol, pre, code, blockquote, table"

// StructureContent walks the content root in document order and builds
// one typed block per recognized element. Elements whose flattened text
// is empty are skipped. Elements nested inside a blockquote, pre or
// table are skipped too: those containers already capture their whole
// subtree, and reporting the children again would duplicate their text.
func StructureContent(root *goquery.Selection) []scrapbook.ContentBlock {
	var blocks []scrapbook.ContentBlock
	root.Find(structuredTags).Each(func(_ int, sel *goquery.Selection) {
		if insideOpaqueContainer(sel, root) {
			return
		}
		if FlattenText(sel) == "" {
			return
		}
		if block, ok := buildBlock(sel); ok {
			blocks = append(blocks, block)
		}
	})
	return blocks
}

func buildBlock(sel *goquery.Selection) (scrapbook.ContentBlock, bool) {
	name := goquery.NodeName(sel)
	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return scrapbook.ContentBlock{
			Kind:  scrapbook.BlockHeading,
			Level: int(name[1] - '0'),
			Text:  FlattenText(sel),
		}, true
	case "p":
		return scrapbook.ContentBlock{
			Kind: scrapbook.BlockParagraph,
			Text: FlattenText(sel),
		}, true
	case "ul", "ol":
		return scrapbook.ContentBlock{
			Kind:    scrapbook.BlockList,
			Ordered: name == "ol",
			Items:   directListItems(sel),
		}, true
	case "pre", "code":
		return scrapbook.ContentBlock{
			Kind: scrapbook.BlockCode,
			// Interior whitespace is significant in code.
			Text:     sel.Text(),
			Language: firstClassToken(sel),
		}, true
	case "blockquote":
		return scrapbook.ContentBlock{
			Kind: scrapbook.BlockQuote,
			Text: FlattenText(sel),
		}, true
	case "table":
		markup, err := goquery.OuterHtml(sel)
		if err != nil {
			markup = ""
		}
		return scrapbook.ContentBlock{
			Kind:      scrapbook.BlockTable,
			Text:      FlattenText(sel),
			RawMarkup: markup,
		}, true
	}
	return scrapbook.ContentBlock{}, false
}

// directListItems returns the texts of the list's direct li children
// only. Nested lists are reported as their own blocks, not flattened
// into the parent's items.
func directListItems(sel *goquery.Selection) []string {
	var items []string
	sel.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		items = append(items, FlattenText(li))
	})
	return items
}

// insideOpaqueContainer reports whether sel sits under a blockquote,
// pre or table that is itself within the content root.
func insideOpaqueContainer(sel *goquery.Selection, root *goquery.Selection) bool {
	parents := sel.ParentsUntilSelection(root).Filter("blockquote, pre, table")
	return parents.Length() > 0
}

// firstClassToken returns the first class attribute token, which by
// convention carries the code language ("language-go", "python").
func firstClassToken(sel *goquery.Selection) string {
	class, ok := sel.Attr("class")
	if !ok {
		return ""
	}
	fields := strings.Fields(class)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
