package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mkrawiec/scrapbook"
	"github.com/mkrawiec/scrapbook/crawl"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	urls, err := c.collectURLs(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No URLs to scrape.")
		return nil
	}

	dir, err := deps.Exporter.NewBatchDir(deps.outDir(c.Out))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
		return err
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scraping %d postings into %s\n", event.Total, dir)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "\r  [%d/%d] %s", event.Completed, event.Total, crawl.TruncateURL(event.URL, 60))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stdout, "\r  [%d/%d] %s", event.Completed, event.Total, crawl.TruncateURL(event.URL, 60))
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case crawl.ProgressFinished:
			if event.Total > 0 {
				fmt.Fprintln(deps.Stdout)
			}
		}
	}

	outcomes, err := deps.Scraper.ScrapeJobBatch(deps.Ctx, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
		return err
	}

	var ok int
	for i, outcome := range outcomes {
		if outcome.Err != nil {
			rec := scrapbook.NewErrorRecord(outcome.Err, outcome.URL, time.Now().UTC())
			if _, err := deps.Exporter.ExportBatchError(dir, i+1, rec); err != nil {
				fmt.Fprintf(deps.Stderr, "error writing record for %s: %v\n", outcome.URL, err)
			}
			continue
		}

		if _, err := deps.Exporter.ExportBatchJob(dir, i+1, outcome.Posting); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", outcome.URL, err)
			continue
		}
		ok++

		if c.Save {
			if err := deps.Jobs.CreateJob(deps.Ctx, outcome.Posting); err != nil {
				fmt.Fprintf(deps.Stderr, "error saving %s: %v\n", outcome.URL, err)
			}
		}
	}

	fmt.Fprintf(deps.Stdout, "Scraped %d of %d postings into %s\n", ok, len(outcomes), dir)
	return nil
}

// collectURLs resolves the batch's URL list from its source flag: a
// line-per-URL file or a sitemap walk.
func (c *BatchCmd) collectURLs(deps *Dependencies) ([]string, error) {
	switch {
	case c.File != "" && c.Sitemap != "":
		return nil, scrapbook.Errorf(scrapbook.EINVALID, "use either --file or --sitemap, not both")

	case c.File != "":
		data, err := os.ReadFile(c.File)
		if err != nil {
			return nil, scrapbook.Errorf(scrapbook.EINVALID, "cannot read URL file %q: %s", c.File, err)
		}
		var urls []string
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			urls = append(urls, line)
		}
		return urls, nil

	case c.Sitemap != "":
		filter, err := scrapbook.NewURLFilter(c.Filter, c.Exclude)
		if err != nil {
			return nil, err
		}
		return deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Sitemap, filter)

	default:
		return nil, scrapbook.Errorf(scrapbook.EINVALID, "either --file or --sitemap is required")
	}
}
