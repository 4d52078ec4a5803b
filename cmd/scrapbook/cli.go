package main

import (
	"context"
	"io"
	"time"

	"github.com/mkrawiec/scrapbook"
	"github.com/mkrawiec/scrapbook/crawl"
	"github.com/mkrawiec/scrapbook/fs"
	"github.com/mkrawiec/scrapbook/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Books    scrapbook.BookService
	Jobs     scrapbook.JobService
	Sitemaps scrapbook.SitemapService
	Scraper  *crawl.Scraper
	Exporter *fs.Exporter
	Conv     scrapbook.Converter
	Asker    scrapbook.Asker
	Tokens   scrapbook.TokenCounter

	// OutDir is the default output directory for commands that write
	// files; per-command --out flags override it.
	OutDir string
}

// outDir resolves a command's output directory: the flag value when
// given, the configured default otherwise.
func (d *Dependencies) outDir(flag string) string {
	if flag != "" {
		return flag
	}
	return d.OutDir
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Job    JobCmd    `cmd:"" help:"Scrape a single job posting"`
	Batch  BatchCmd  `cmd:"" help:"Scrape job postings from a URL list or sitemap"`
	Book   BookCmd   `cmd:"" help:"Scrape a book with all of its chapters and articles"`
	List   ListCmd   `cmd:"" help:"List stored books and job postings"`
	Units  UnitsCmd  `cmd:"" help:"Export learning units from a stored book"`
	Quiz   QuizCmd   `cmd:"" help:"Generate a quiz from a stored book's learning units"`
	Tailor TailorCmd `cmd:"" help:"Draft an application letter for a stored posting"`
	Delete DeleteCmd `cmd:"" help:"Delete a stored book or job posting"`

	Debug bool `help:"Log scraping activity to stderr"`
}

// JobCmd is the "job" subcommand.
type JobCmd struct {
	URL    string        `arg:"" help:"Job posting URL"`
	Static bool          `help:"Fetch with plain HTTP instead of a browser"`
	Wait   time.Duration `short:"w" default:"2s" help:"Render settle time for browser fetches"`
	Save   bool          `short:"s" help:"Store the posting in the database"`
	Out    string        `short:"o" help:"Write the JSON file into this directory instead of printing"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	File    string        `short:"f" help:"File with one posting URL per line"`
	Sitemap string        `help:"Site URL whose sitemap lists the postings"`
	Filter  []string      `short:"F" help:"Keep sitemap URLs matching regex (repeatable)"`
	Exclude []string      `short:"X" help:"Drop sitemap URLs matching regex (repeatable)"`
	Static  bool          `help:"Fetch with plain HTTP instead of a browser"`
	Wait    time.Duration `short:"w" default:"2s" help:"Render settle time for browser fetches"`
	Delay   time.Duration `short:"d" default:"1s" help:"Politeness delay between fetches"`
	Save    bool          `short:"s" help:"Also store scraped postings in the database"`
	Out     string        `short:"o" help:"Directory that receives the batch folder"`
}

// BookCmd is the "book" subcommand.
type BookCmd struct {
	URL         string        `arg:"" help:"Book root URL"`
	Static      bool          `help:"Fetch with plain HTTP instead of a browser"`
	Wait        time.Duration `short:"w" default:"2s" help:"Render settle time for browser fetches"`
	Delay       time.Duration `short:"d" default:"1s" help:"Politeness delay between article fetches"`
	Concurrency int           `short:"c" default:"1" help:"Concurrent article fetch limit"`
	ImagesDir   string        `help:"Download article images under this directory"`
	Units       bool          `help:"Also write the learning-units JSON"`
	Markdown    bool          `help:"Also write a markdown rendition"`
	Save        bool          `short:"s" help:"Store the book in the database"`
	Out         string        `short:"o" help:"Output directory"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit  int `default:"20" help:"Maximum rows per section"`
	Offset int `help:"Rows to skip"`
}

// UnitsCmd is the "units" subcommand.
type UnitsCmd struct {
	ID  string `arg:"" name:"book-id" help:"Stored book ID"`
	Out string `short:"o" help:"Output directory"`
}

// QuizCmd is the "quiz" subcommand.
type QuizCmd struct {
	ID     string `arg:"" name:"book-id" help:"Stored book ID"`
	DryRun bool   `help:"Print the prompt without calling Gemini"`
}

// TailorCmd is the "tailor" subcommand.
type TailorCmd struct {
	ID      string `arg:"" name:"job-id" help:"Stored job posting ID"`
	Profile string `short:"p" help:"File with the applicant profile text"`
	DryRun  bool   `help:"Print the prompt without calling Gemini"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Stored book or posting ID"`
	Force bool   `help:"Confirm deletion"`
}
