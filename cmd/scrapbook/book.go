package main

import (
	"fmt"

	"github.com/mkrawiec/scrapbook"
	"github.com/mkrawiec/scrapbook/crawl"
)

// Run executes the book command.
func (c *BookCmd) Run(deps *Dependencies) error {
	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scraping %s\n", event.URL)
		case crawl.ProgressTocResolved:
			fmt.Fprintf(deps.Stdout, "  Found %d articles in %d chapters\n", event.Total, event.Chapters)
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

	book, err := deps.Scraper.ScrapeBook(deps.Ctx, c.URL, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
		return err
	}

	dir := deps.outDir(c.Out)

	path, err := deps.Exporter.ExportBook(dir, book)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)

	if c.Units {
		unitsPath, n, err := deps.Exporter.ExportUnits(dir, book)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s (%d units)\n", unitsPath, n)
	}

	if c.Markdown {
		mdPath, err := deps.Exporter.ExportBookMarkdown(dir, book, deps.Conv)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", mdPath)
	}

	if c.Save {
		if err := deps.Books.CreateBook(deps.Ctx, book); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scrapbook.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved book %s\n", book.ID)
	}

	totals := book.Totals
	fmt.Fprintf(deps.Stdout, "Scraped %q: %d chapters, %d articles, %d images\n",
		book.Title, totals.Chapters, totals.Articles, totals.Images)
	if failed := countFailed(book); failed > 0 {
		fmt.Fprintf(deps.Stdout, "  %d articles failed; their entries carry the error\n", failed)
	}

	return nil
}

func countFailed(book *scrapbook.Book) int {
	var n int
	for _, ch := range book.Chapters {
		for _, a := range ch.Articles {
			if a.Failed() {
				n++
			}
		}
	}
	return n
}
