package scrapbook

// maxTocDepth bounds Walk traversal. Resolvers emit two levels (chapter,
// article) but nothing prevents a consumer from assembling deeper trees.
const maxTocDepth = 16

// TocEntry is one node of a resolved table of contents. Chapter-level
// entries typically carry no URL of their own, only a title and their
// article children. An entry's identity for deduplication purposes is
// its absolute URL.
type TocEntry struct {
	Title    string      `json:"title"`
	URL      string      `json:"url"`
	Children []*TocEntry `json:"children,omitempty"`
}

// Walk visits the entry and its descendants in pre-order, calling fn for
// each. Traversal stops early when fn returns false. Entries whose URL
// was already visited are skipped along with their subtree, so cyclic
// references cannot loop, and depth is capped.
func (e *TocEntry) Walk(fn func(*TocEntry) bool) {
	seen := make(map[string]bool)
	e.walk(fn, seen, 0)
}

func (e *TocEntry) walk(fn func(*TocEntry) bool, seen map[string]bool, depth int) bool {
	if e == nil || depth > maxTocDepth {
		return true
	}
	if e.URL != "" {
		if seen[e.URL] {
			return true
		}
		seen[e.URL] = true
	}
	if !fn(e) {
		return false
	}
	for _, c := range e.Children {
		if !c.walk(fn, seen, depth+1) {
			return false
		}
	}
	return true
}

// CountLeaves returns the number of URL-bearing leaf entries under e,
// e included.
func (e *TocEntry) CountLeaves() int {
	n := 0
	e.Walk(func(entry *TocEntry) bool {
		if len(entry.Children) == 0 && entry.URL != "" {
			n++
		}
		return true
	})
	return n
}

// TocResolver derives a table of contents from a book's root page.
// Resolution never fails: pages without any recognizable TOC structure
// yield an empty slice, which is a valid (empty) book.
type TocResolver interface {
	Resolve(html string, baseURL string) []*TocEntry
}
