package scrapbook

import (
	"context"
	"time"
)

// JobPosting is the fixed-schema result of scraping a single job ad.
// Fields the heuristics could not resolve are nil, never absent from the
// schema and never collapsed into a free-form map. List-valued fields
// are either present (possibly empty) or nil as a whole; they are never
// partially populated and then nulled.
type JobPosting struct {
	ID string `json:"id,omitempty"`

	Title           *string `json:"title"`
	Company         *string `json:"company"`
	Location        *string `json:"location"`
	Salary          *string `json:"salary"`
	Type            *string `json:"type"`
	PostedDate      *string `json:"postedDate"`
	Deadline        *string `json:"deadline"`
	ExperienceLevel *string `json:"experienceLevel"`
	Education       *string `json:"education"`

	// Remote reports whether any remote-work keyword appeared anywhere
	// in the page text.
	Remote bool `json:"remote"`

	// Description is the structured content of the located description
	// container, nil when no container matched.
	Description *Document `json:"description"`

	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	Benefits         []string `json:"benefits"`
	Skills           []string `json:"skills"`

	// Contact holds optional "email" and "phone" keys harvested from
	// the page text, nil when neither was found.
	Contact map[string]string `json:"contact"`

	// RawText is the whitespace-collapsed page text with script, style
	// and chrome elements (nav, footer, header) removed.
	RawText string `json:"rawText"`

	// Source labels the site-specific rule set that produced the
	// posting, empty for the generic rules.
	Source string `json:"source,omitempty"`

	URL       string    `json:"url"`
	ScrapedAt time.Time `json:"scrapedAt"`
}

// Validate returns an error if the posting contains invalid fields.
func (p *JobPosting) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "job posting URL required")
	}
	return nil
}

// JobExtractor extracts a job posting from a fetched page. Missing
// structure degrades to nil fields; an error is returned only when the
// markup cannot be parsed at all.
type JobExtractor interface {
	ExtractJob(html string, pageURL string) (*JobPosting, error)
}

// JobService represents a service for managing stored job postings.
type JobService interface {
	// CreateJob persists a scraped posting.
	CreateJob(ctx context.Context, job *JobPosting) error

	// FindJobByID retrieves a posting by ID.
	// Returns ENOTFOUND if the posting does not exist.
	FindJobByID(ctx context.Context, id string) (*JobPosting, error)

	// FindJobs retrieves postings matching the filter, newest first.
	FindJobs(ctx context.Context, filter JobFilter) ([]*JobPosting, error)

	// DeleteJob permanently removes a posting.
	// Returns ENOTFOUND if the posting does not exist.
	DeleteJob(ctx context.Context, id string) error
}

// JobFilter represents a filter for FindJobs.
type JobFilter struct {
	ID      *string `json:"id"`
	URL     *string `json:"url"`
	Company *string `json:"company"`
	Source  *string `json:"source"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
