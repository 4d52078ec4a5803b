package main

import (
	"fmt"

	"github.com/mkrawiec/scrapbook"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	books, err := deps.Books.FindBooks(deps.Ctx, scrapbook.BookFilter{Limit: c.Limit, Offset: c.Offset})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
		return err
	}

	jobs, err := deps.Jobs.FindJobs(deps.Ctx, scrapbook.JobFilter{Limit: c.Limit, Offset: c.Offset})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
		return err
	}

	if len(books) == 0 && len(jobs) == 0 {
		fmt.Fprintln(deps.Stdout, "Nothing stored yet. Use 'scrapbook book --save <url>' or 'scrapbook job --save <url>' to keep a scrape.")
		return nil
	}

	if len(books) > 0 {
		fmt.Fprintln(deps.Stdout, "Books:")
		for _, b := range books {
			fmt.Fprintf(deps.Stdout, "  %s  %s (%d chapters, %d articles)  %s\n",
				b.ID, b.Title, b.Totals.Chapters, b.Totals.Articles, b.URL)
		}
	}

	if len(jobs) > 0 {
		fmt.Fprintln(deps.Stdout, "Job postings:")
		for _, j := range jobs {
			fmt.Fprintf(deps.Stdout, "  %s  %s at %s  %s\n",
				j.ID, orDash(j.Title), orDash(j.Company), j.URL)
		}
	}

	return nil
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
