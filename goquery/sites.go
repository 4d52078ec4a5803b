package goquery

import (
	"net/url"
	"strings"
)

// SiteRules is the rule table for one job site family. Site rules match
// exact attributes the site is known to emit and are always tried before
// the generic class-pattern fallbacks; a field left nil simply defers to
// the generic chain.
type SiteRules struct {
	// Source labels postings extracted with this rule set.
	Source string

	// Hosts are substrings matched against the page URL's host.
	Hosts []string

	Title       []Rule
	Company     []Rule
	Location    []Rule
	Salary      []Rule
	JobType     []Rule
	PostedDate  []Rule
	Description []Rule
}

// matches reports whether the rule set applies to the page URL.
func (s *SiteRules) matches(pageURL string) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Host)
	for _, h := range s.Hosts {
		if strings.Contains(host, h) {
			return true
		}
	}
	return false
}

// SiteRegistry selects the site rule set for a page URL.
type SiteRegistry struct {
	sites []*SiteRules
}

// NewSiteRegistry creates a registry over the given rule sets. Lookup
// order follows registration order.
func NewSiteRegistry(sites ...*SiteRules) *SiteRegistry {
	return &SiteRegistry{sites: sites}
}

// ForURL returns the first rule set matching the page URL, or nil when
// only the generic rules apply.
func (r *SiteRegistry) ForURL(pageURL string) *SiteRules {
	for _, s := range r.sites {
		if s.matches(pageURL) {
			return s
		}
	}
	return nil
}

// DefaultSites returns the built-in site rule sets.
func DefaultSites() []*SiteRules {
	return []*SiteRules{SeekRules()}
}

// SeekRules returns the rule set for seek.com.au, which annotates its
// markup with stable data-automation attributes.
func SeekRules() *SiteRules {
	return &SiteRules{
		Source: "seek.com.au",
		Hosts:  []string{"seek.com"},
		Title: []Rule{
			{Selector: `h1[data-automation="job-detail-title"]`},
		},
		Company: []Rule{
			{Selector: `span[data-automation="advertiser-name"]`},
			{Selector: `a[data-automation="company-link"]`},
		},
		Location: []Rule{
			{Selector: `span[data-automation="job-detail-location"]`},
			{Selector: `a[data-automation="job-detail-location"]`},
		},
		Salary: []Rule{
			{Selector: `span[data-automation="job-detail-salary"]`},
		},
		JobType: []Rule{
			{Selector: `span[data-automation="job-detail-work-type"]`},
		},
		PostedDate: []Rule{
			{Selector: `span[data-automation="job-detail-date"]`},
		},
		Description: []Rule{
			{Selector: `div[data-automation="jobAdDetails"]`},
			{Selector: "div", Class: classPattern(`job.?details`)},
		},
	}
}

// Generic field chains, applied after any site rules.

func genericTitleRules() []Rule {
	return []Rule{
		{Selector: "h1", Class: classPattern(`job.?title`)},
		{Selector: "h1", Class: classPattern(`title`)},
		{Selector: "h1"},
		{Selector: "h2", Class: classPattern(`job.?title`)},
		{Selector: `meta[property="og:title"]`, Attr: "content"},
		{Selector: "title"},
	}
}

func genericCompanyRules() []Rule {
	return []Rule{
		{Selector: "span", Class: classPattern(`company`)},
		{Selector: "div", Class: classPattern(`company`)},
		{Selector: "a", Class: classPattern(`company`)},
		{Selector: `meta[property="og:site_name"]`, Attr: "content"},
	}
}

func genericLocationRules() []Rule {
	return []Rule{
		{Selector: "span", Class: classPattern(`location`)},
		{Selector: "div", Class: classPattern(`location`)},
		{Selector: "p", Class: classPattern(`location`)},
	}
}

func genericSalaryRules() []Rule {
	return []Rule{
		{Selector: "span", Class: classPattern(`salary|compensation|pay`)},
		{Selector: "div", Class: classPattern(`salary|compensation|pay`)},
	}
}

func genericJobTypeRules() []Rule {
	return []Rule{
		{Selector: "span", Class: classPattern(`job.?type|employment.?type|work.?type`)},
		{Selector: "div", Class: classPattern(`job.?type|employment.?type|work.?type`)},
	}
}

func genericPostedDateRules() []Rule {
	return []Rule{
		{Selector: "time", Attr: "datetime"},
		{Selector: "time"},
		{Selector: "span", Class: classPattern(`date|posted`)},
		{Selector: "div", Class: classPattern(`date|posted`)},
	}
}

func genericDescriptionRules() []Rule {
	return []Rule{
		{Selector: "div", Class: classPattern(`job.?description|description`)},
		{Selector: "section", Class: classPattern(`job.?description|description`)},
		{Selector: "div", ID: classPattern(`job.?description|description`)},
	}
}
