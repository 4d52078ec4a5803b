package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mkrawiec/scrapbook"
)

// Compile-time interface verification.
var _ scrapbook.JobService = (*JobService)(nil)

// JobService implements scrapbook.JobService using SQLite.
//
// Scalar fields the extraction heuristics could not resolve are nil on
// the posting and stored as SQL NULL; list-valued fields and the
// contact map keep their present-or-nil distinction through JSON
// encoding.
type JobService struct {
	db *DB
}

// NewJobService creates a new JobService.
func NewJobService(db *DB) *JobService {
	return &JobService{db: db}
}

// CreateJob persists a scraped posting. The posting's ScrapedAt is kept
// when already set by the scrape.
func (s *JobService) CreateJob(ctx context.Context, job *scrapbook.JobPosting) error {
	if err := job.Validate(); err != nil {
		return err
	}

	job.ID = uuid.New().String()
	if job.ScrapedAt.IsZero() {
		job.ScrapedAt = time.Now().UTC()
	}

	description, err := encodeJSON(job.Description)
	if err != nil {
		return err
	}
	requirements, err := encodeJSON(job.Requirements)
	if err != nil {
		return err
	}
	responsibilities, err := encodeJSON(job.Responsibilities)
	if err != nil {
		return err
	}
	benefits, err := encodeJSON(job.Benefits)
	if err != nil {
		return err
	}
	skills, err := encodeJSON(job.Skills)
	if err != nil {
		return err
	}
	contact, err := encodeJSON(job.Contact)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, url, title, company, location, salary, type, posted_date, deadline,
			experience_level, education, remote, description, requirements, responsibilities,
			benefits, skills, contact, raw_text, source, content_hash, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, job.ID, job.URL, job.Title, job.Company, job.Location, job.Salary, job.Type,
		job.PostedDate, job.Deadline, job.ExperienceLevel, job.Education, job.Remote,
		description, requirements, responsibilities, benefits, skills, contact,
		job.RawText, job.Source, hashContent(job.RawText), job.ScrapedAt.Format(time.RFC3339))

	return err
}

// FindJobByID retrieves a posting by ID.
func (s *JobService) FindJobByID(ctx context.Context, id string) (*scrapbook.JobPosting, error) {
	jobs, err := s.FindJobs(ctx, scrapbook.JobFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, scrapbook.Errorf(scrapbook.ENOTFOUND, "job posting not found")
	}
	return jobs[0], nil
}

// FindJobs retrieves postings matching the filter, newest first.
func (s *JobService) FindJobs(ctx context.Context, filter scrapbook.JobFilter) ([]*scrapbook.JobPosting, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, url, title, company, location, salary, type, posted_date, deadline,
		experience_level, education, remote, description, requirements, responsibilities,
		benefits, skills, contact, raw_text, source, scraped_at FROM jobs WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Company != nil {
		query.WriteString(" AND company = ?")
		args = append(args, *filter.Company)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}

	query.WriteString(" ORDER BY scraped_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*scrapbook.JobPosting
	for rows.Next() {
		var job scrapbook.JobPosting
		var description, requirements, responsibilities, benefits, skills, contact string
		var scrapedAt string

		if err := rows.Scan(&job.ID, &job.URL, &job.Title, &job.Company, &job.Location,
			&job.Salary, &job.Type, &job.PostedDate, &job.Deadline, &job.ExperienceLevel,
			&job.Education, &job.Remote, &description, &requirements, &responsibilities,
			&benefits, &skills, &contact, &job.RawText, &job.Source, &scrapedAt); err != nil {
			return nil, err
		}

		if err := decodeJSON(description, &job.Description, "description"); err != nil {
			return nil, err
		}
		if err := decodeJSON(requirements, &job.Requirements, "requirements"); err != nil {
			return nil, err
		}
		if err := decodeJSON(responsibilities, &job.Responsibilities, "responsibilities"); err != nil {
			return nil, err
		}
		if err := decodeJSON(benefits, &job.Benefits, "benefits"); err != nil {
			return nil, err
		}
		if err := decodeJSON(skills, &job.Skills, "skills"); err != nil {
			return nil, err
		}
		if err := decodeJSON(contact, &job.Contact, "contact"); err != nil {
			return nil, err
		}

		job.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at")
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, &job)
	}

	return jobs, rows.Err()
}

// DeleteJob permanently removes a posting.
func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return scrapbook.Errorf(scrapbook.ENOTFOUND, "job posting not found")
	}

	return nil
}
