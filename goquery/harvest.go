package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Keyword sets for the list-section harvest. A header whose lowercased
// text contains any keyword claims the nearest following list or text
// element.
var (
	requirementKeywords    = []string{"requirement", "qualification", "must have", "essential", "you will have", "you'll have"}
	responsibilityKeywords = []string{"responsibilit", "duties", "you will", "role", "day to day", "what you'll do"}
	benefitKeywords        = []string{"benefit", "perk", "we offer", "what we offer", "why join"}
	skillKeywords          = []string{"skill", "technical", "competenc", "experience with"}
)

// harvester finds keyword-labeled sections in a parsed page. It
// precomputes document order once so "the nearest following element"
// lookups stay cheap across the four harvested fields.
type harvester struct {
	headers    []*goquery.Selection
	candidates []*goquery.Selection
	order      map[*html.Node]int
}

func newHarvester(doc *goquery.Document) *harvester {
	h := &harvester{order: make(map[*html.Node]int)}
	i := 0
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		h.order[sel.Get(0)] = i
		i++
	})
	doc.Find("h2, h3, h4, strong, b, p").Each(func(_ int, sel *goquery.Selection) {
		h.headers = append(h.headers, sel)
	})
	doc.Find("ul, ol, div, p").Each(func(_ int, sel *goquery.Selection) {
		h.candidates = append(h.candidates, sel)
	})
	return h
}

// section collects list items for every header matching the keyword set,
// concatenated in document order. Returns nil when nothing matched, so
// the field serializes as null rather than an empty list.
func (h *harvester) section(keywords []string) []string {
	var items []string
	for _, header := range h.headers {
		headerText := strings.ToLower(FlattenText(header))
		if headerText == "" || containsAny(headerText, keywords) == "" {
			continue
		}
		next := h.nextCandidate(header)
		if next == nil {
			continue
		}
		switch goquery.NodeName(next) {
		case "ul", "ol":
			next.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
				if t := FlattenText(li); t != "" {
					items = append(items, t)
				}
			})
		default:
			t := FlattenText(next)
			if t != "" && !strings.Contains(headerText, strings.ToLower(t)) {
				items = append(items, t)
			}
		}
	}
	return items
}

// nextCandidate returns the first list or text element after the header
// in document order.
func (h *harvester) nextCandidate(header *goquery.Selection) *goquery.Selection {
	pos, ok := h.order[header.Get(0)]
	if !ok {
		return nil
	}
	for _, c := range h.candidates {
		if h.order[c.Get(0)] > pos {
			return c
		}
	}
	return nil
}

// Single-shot page-text patterns.

var (
	salaryRE   = regexp.MustCompile(`(?i)\$[\d,]+(?:\s*-\s*\$[\d,]+)?(?:\s*(?:per|/|\+)\s*(?:year|hour|month|annum))?`)
	deadlineRE = regexp.MustCompile(`(?i)(?:deadline|apply by|closes on)[:\s]+([^\n]+)`)
	emailRE    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phoneRE    = regexp.MustCompile(`\b(?:\+?61|0)[2-478](?:[ -]?[0-9]){8}\b`)

	educationRE = regexp.MustCompile(`(?i)\b(?:bachelor|master|phd|mba|associate|diploma|degree)(?:'s)?\s+(?:degree|in|of)?\s*[^\n.]+`)
)

// experienceLevels are probed in seniority order; the first matching
// level wins, so a page mentioning both "graduate" and "senior"
// classifies as entry level.
var experienceLevels = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"Entry Level", regexp.MustCompile(`(?i)\b(?:entry[- ]level|junior|graduate|0-2 years|early career)\b`)},
	{"Mid Level", regexp.MustCompile(`(?i)\b(?:mid[- ]level|intermediate|2-5 years)\b`)},
	{"Senior", regexp.MustCompile(`(?i)\b(?:senior|lead|5\+ years|experienced)\b`)},
	{"Executive", regexp.MustCompile(`(?i)\b(?:executive|director|c-level|vp)\b`)},
}

var jobTypeKeywords = []string{
	"full-time", "part-time", "contract", "temporary",
	"internship", "freelance", "casual", "permanent",
}

var remoteKeywords = []string{
	"remote", "work from home", "wfh", "telecommute",
	"virtual", "hybrid", "flexible location",
}

func matchSalary(text string) string {
	return strings.TrimSpace(salaryRE.FindString(text))
}

func matchDeadline(text string) string {
	m := deadlineRE.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func matchExperienceLevel(text string) string {
	for _, level := range experienceLevels {
		if level.pattern.MatchString(text) {
			return level.name
		}
	}
	return ""
}

func matchEducation(text string) string {
	return strings.TrimSpace(educationRE.FindString(text))
}

func matchJobType(text string) string {
	if kw := containsAny(strings.ToLower(text), jobTypeKeywords); kw != "" {
		return titleCase(kw)
	}
	return ""
}

func matchRemote(text string) bool {
	return containsAny(strings.ToLower(text), remoteKeywords) != ""
}

// matchContact collects email and phone into a contact map, nil when
// neither was found.
func matchContact(text string) map[string]string {
	contact := make(map[string]string)
	if email := emailRE.FindString(text); email != "" {
		contact["email"] = email
	}
	if phone := phoneRE.FindString(text); phone != "" {
		contact["phone"] = phone
	}
	if len(contact) == 0 {
		return nil
	}
	return contact
}
