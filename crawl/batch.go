package crawl

import (
	"context"

	"github.com/mkrawiec/scrapbook"
)

// JobOutcome is the per-URL result of a batch run. Posting is nil when
// Err is set.
type JobOutcome struct {
	URL     string
	Posting *scrapbook.JobPosting
	Err     error
}

// ScrapeJobBatch scrapes a list of job posting URLs sequentially,
// pacing between fetches. Blank entries and repeated URLs are dropped
// up front; a failing URL records its error and the batch moves on.
// Canceling the session stops the loop between jobs, returning the
// outcomes collected so far.
func (s *Scraper) ScrapeJobBatch(ctx context.Context, urls []string, progress ProgressFunc) ([]JobOutcome, error) {
	seen := NewSeenFilter(uint(len(urls)))
	work := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" || seen.Seen(u) {
			continue
		}
		work = append(work, u)
	}

	emit(progress, ProgressEvent{Type: ProgressStarted, Total: len(work)})

	outcomes := make([]JobOutcome, 0, len(work))
	for _, u := range work {
		if s.canceled() || ctx.Err() != nil {
			break
		}

		posting, err := s.ScrapeJob(ctx, u)
		outcomes = append(outcomes, JobOutcome{URL: u, Posting: posting, Err: err})

		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: len(outcomes),
			Total:     len(work),
			URL:       u,
		}
		if err != nil {
			event.Type = ProgressFailed
			event.Error = err
		}
		emit(progress, event)
	}

	emit(progress, ProgressEvent{
		Type:      ProgressFinished,
		Completed: len(outcomes),
		Total:     len(work),
	})

	return outcomes, nil
}
