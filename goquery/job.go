package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkrawiec/scrapbook"
)

var _ scrapbook.JobExtractor = (*JobExtractor)(nil)

// JobExtractor extracts job postings with layered heuristics: rule
// chains for labeled fields (site-specific attribute rules before
// generic class-pattern fallbacks), a keyword harvest for list sections,
// and page-text regexes for everything else. Fields no heuristic can
// resolve stay nil.
type JobExtractor struct {
	registry *SiteRegistry
}

// NewJobExtractor creates an extractor with the built-in site registry.
func NewJobExtractor() *JobExtractor {
	return &JobExtractor{registry: NewSiteRegistry(DefaultSites()...)}
}

// ExtractJob extracts a posting from the fetched page. Returns EPARSE
// only when the markup cannot be parsed; missing structure degrades
// field by field.
func (e *JobExtractor) ExtractJob(html string, pageURL string) (*scrapbook.JobPosting, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scrapbook.Errorf(scrapbook.EPARSE, "failed to parse job page: %v", err)
	}

	site := e.registry.ForURL(pageURL)

	// Raw page text drives the regex and keyword scans. Captured before
	// any extraction mutates the document.
	pageText := doc.Text()

	p := &scrapbook.JobPosting{URL: pageURL}
	if site != nil {
		p.Source = site.Source
	}

	p.Title = optional(firstValue(doc, chain(siteRules(site, func(s *SiteRules) []Rule { return s.Title }), genericTitleRules())))
	p.Company = optional(firstValue(doc, chain(siteRules(site, func(s *SiteRules) []Rule { return s.Company }), genericCompanyRules())))
	p.Location = optional(firstValue(doc, chain(siteRules(site, func(s *SiteRules) []Rule { return s.Location }), genericLocationRules())))
	p.PostedDate = optional(firstValue(doc, chain(siteRules(site, func(s *SiteRules) []Rule { return s.PostedDate }), genericPostedDateRules())))

	p.Salary = optional(e.extractSalary(doc, site, pageText))
	p.Type = optional(e.extractType(doc, site, pageText))
	p.Description = e.extractDescription(doc, site)

	harvest := newHarvester(doc)
	p.Requirements = harvest.section(requirementKeywords)
	p.Responsibilities = harvest.section(responsibilityKeywords)
	p.Benefits = harvest.section(benefitKeywords)
	p.Skills = harvest.section(skillKeywords)

	p.Deadline = optional(matchDeadline(pageText))
	p.ExperienceLevel = optional(matchExperienceLevel(pageText))
	p.Education = optional(matchEducation(pageText))
	p.Contact = matchContact(pageText)
	p.Remote = matchRemote(pageText)

	// Mutates the document, so it runs last.
	p.RawText = cleanPageText(doc)

	return p, nil
}

// extractSalary prefers a labeled salary element and falls back to a
// currency pattern over the page text.
func (e *JobExtractor) extractSalary(doc *goquery.Document, site *SiteRules, pageText string) string {
	if v := firstValue(doc, chain(siteRules(site, func(s *SiteRules) []Rule { return s.Salary }), genericSalaryRules())); v != "" {
		return v
	}
	return matchSalary(pageText)
}

// extractType takes a site-labeled work type verbatim; otherwise it
// keyword-matches a generically labeled element, then the page text.
func (e *JobExtractor) extractType(doc *goquery.Document, site *SiteRules, pageText string) string {
	if site != nil {
		if v := firstValue(doc, site.JobType); v != "" {
			return v
		}
	}
	if labeled := firstValue(doc, genericJobTypeRules()); labeled != "" {
		if kw := matchJobType(labeled); kw != "" {
			return kw
		}
	}
	return matchJobType(pageText)
}

// extractDescription locates the description container and structures
// its content. Returns nil when no container matched.
func (e *JobExtractor) extractDescription(doc *goquery.Document, site *SiteRules) *scrapbook.Document {
	rules := chain(siteRules(site, func(s *SiteRules) []Rule { return s.Description }), genericDescriptionRules())
	sel := firstSelection(doc, rules)
	if sel == nil {
		return nil
	}
	return &scrapbook.Document{
		Blocks:  StructureContent(sel),
		RawText: CollapseWhitespace(FlattenText(sel)),
	}
}

// siteRules reads a field chain off a possibly nil rule set.
func siteRules(site *SiteRules, field func(*SiteRules) []Rule) []Rule {
	if site == nil {
		return nil
	}
	return field(site)
}

// chain concatenates site rules with the generic fallbacks.
func chain(site, generic []Rule) []Rule {
	if len(site) == 0 {
		return generic
	}
	out := make([]Rule, 0, len(site)+len(generic))
	out = append(out, site...)
	return append(out, generic...)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
