package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mkrawiec/scrapbook"
)

// Run executes the job command.
func (c *JobCmd) Run(deps *Dependencies) error {
	job, err := deps.Scraper.ScrapeJob(deps.Ctx, c.URL)
	if err != nil {
		// A failed scrape still produces a result: the error record
		// replaces the posting.
		rec := scrapbook.NewErrorRecord(err, c.URL, time.Now().UTC())
		printJSON(deps.Stdout, rec)
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
		return err
	}

	if c.Save {
		if err := deps.Jobs.CreateJob(deps.Ctx, job); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
			return err
		}
	}

	if c.Out != "" {
		path, err := deps.Exporter.ExportJob(c.Out, job)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	} else {
		printJSON(deps.Stdout, job)
	}

	if c.Save {
		fmt.Fprintf(deps.Stdout, "Saved posting %s\n", job.ID)
	}

	return nil
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "%v\n", v)
		return
	}
	_, _ = w.Write(data)
	fmt.Fprintln(w)
}
