package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// Rule is one step of an extraction chain: a structural selector plus
// optional class/id patterns narrowing the candidates, and optionally an
// attribute to read instead of the element text. Chains are data, not
// code: each field is a slice of rules evaluated in priority order, and
// the first rule that produces a non-empty value wins.
type Rule struct {
	// Selector is the CSS selector for candidate elements.
	Selector string

	// Class, when set, keeps only candidates whose class attribute
	// matches the pattern.
	Class *regexp.Regexp

	// ID, when set, keeps only candidates whose id attribute matches.
	ID *regexp.Regexp

	// Attr names an attribute to read as the value. When empty the
	// value is the element's flattened text.
	Attr string
}

// match returns the first element the rule selects, or an empty
// selection.
func (r Rule) match(doc *goquery.Document) *goquery.Selection {
	sel := doc.Find(r.Selector)
	if r.Class != nil {
		sel = sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
			class, ok := s.Attr("class")
			return ok && r.Class.MatchString(class)
		})
	}
	if r.ID != nil {
		sel = sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
			id, ok := s.Attr("id")
			return ok && r.ID.MatchString(id)
		})
	}
	return sel.First()
}

// value extracts the rule's value from a matched element.
func (r Rule) value(sel *goquery.Selection) string {
	if r.Attr != "" {
		v, _ := sel.Attr(r.Attr)
		return CollapseWhitespace(v)
	}
	return FlattenText(sel)
}

// firstValue evaluates rules in order and returns the first non-empty
// value, or "" when no rule matched.
func firstValue(doc *goquery.Document, rules []Rule) string {
	for _, r := range rules {
		sel := r.match(doc)
		if sel.Length() == 0 {
			continue
		}
		if v := r.value(sel); v != "" {
			return v
		}
	}
	return ""
}

// firstSelection evaluates rules in order and returns the first matched
// element, or nil when no rule matched. Used for container rules where
// the caller needs the element itself rather than its text.
func firstSelection(doc *goquery.Document, rules []Rule) *goquery.Selection {
	for _, r := range rules {
		if sel := r.match(doc); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// classPattern compiles a case-insensitive class-name pattern.
func classPattern(expr string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + expr)
}
