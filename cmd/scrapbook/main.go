package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/mkrawiec/scrapbook"
	"github.com/mkrawiec/scrapbook/crawl"
	"github.com/mkrawiec/scrapbook/fs"
	"github.com/mkrawiec/scrapbook/gemini"
	"github.com/mkrawiec/scrapbook/goquery"
	"github.com/mkrawiec/scrapbook/htmltomarkdown"
	scraphttp "github.com/mkrawiec/scrapbook/http"
	"github.com/mkrawiec/scrapbook/rod"
	scrapslog "github.com/mkrawiec/scrapbook/slog"
	"github.com/mkrawiec/scrapbook/sqlite"
	"github.com/mkrawiec/scrapbook/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Default output directory for file-writing commands.
	OutDir string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	BookService scrapbook.BookService
	JobService  scrapbook.JobService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		OutDir: defaultOutDir(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		OutDir: m.OutDir,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("scrapbook"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'scrapbook --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	var logger *slog.Logger
	if cli.Debug {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SCRAPBOOK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.BookService = sqlite.NewBookService(m.DB)
	m.JobService = sqlite.NewJobService(m.DB)
	deps.DB = m.DB
	deps.Books = m.BookService
	deps.Jobs = m.JobService
	deps.Exporter = &fs.Exporter{}
	deps.Sitemaps = scraphttp.NewSitemapService(nil)
	if logger != nil {
		deps.Sitemaps = scrapslog.NewLoggingSitemapService(deps.Sitemaps, logger)
	}

	// Wire command-specific dependencies based on command
	switch cmd {
	case "job":
		fetcher, err := newFetcher(cli.Job.Static, stderr, logger)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		deps.Scraper = &crawl.Scraper{
			Fetcher: fetcher,
			Jobs:    goquery.NewJobExtractor(),
			Wait:    cli.Job.Wait,
		}

	case "batch":
		fetcher, err := newFetcher(cli.Batch.Static, stderr, logger)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		deps.Scraper = &crawl.Scraper{
			Fetcher: fetcher,
			Jobs:    goquery.NewJobExtractor(),
			Wait:    cli.Batch.Wait,
			Delay:   cli.Batch.Delay,
		}

	case "book":
		fetcher, err := newFetcher(cli.Book.Static, stderr, logger)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		toc := goquery.NewTocResolver()
		scraper := &crawl.Scraper{
			Fetcher:     fetcher,
			Articles:    goquery.NewArticleExtractor(trafilatura.NewDistiller()),
			Toc:         toc,
			Meta:        toc,
			Wait:        cli.Book.Wait,
			Delay:       cli.Book.Delay,
			Concurrency: cli.Book.Concurrency,
		}
		if logger != nil {
			scraper.Toc = scrapslog.NewLoggingTocResolver(toc, logger)
		}
		if cli.Book.ImagesDir != "" {
			scraper.Cache = crawl.NewAssetCache(
				scraphttp.NewAssetFetcher(nil),
				fs.NewStore(cli.Book.ImagesDir),
			)
		}
		deps.Scraper = scraper
		deps.Conv = htmltomarkdown.NewConverter()

	case "quiz", "tailor":
		counter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		deps.Tokens = counter

		dryRun := cli.Quiz.DryRun
		if cmd == "tailor" {
			dryRun = cli.Tailor.DryRun
		}
		if !dryRun {
			apiKey := os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
				return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
			}

			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}

			deps.Asker = gemini.NewAsker(client)
			if logger != nil {
				deps.Asker = scrapslog.NewLoggingAsker(deps.Asker, logger)
			}
		}
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for local token counting; generation happens
// with the model configured in the gemini package.
const tokenizerModel = "gemini-2.5-flash"

// newFetcher builds the page fetcher for scraping commands: a headless
// browser by default, plain HTTP when static is set.
func newFetcher(static bool, stderr io.Writer, logger *slog.Logger) (scrapbook.Fetcher, error) {
	var fetcher scrapbook.Fetcher
	if static {
		fetcher = scraphttp.NewFetcher()
	} else {
		f, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --static to fetch without a browser")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	}
	if logger != nil {
		fetcher = rod.NewLoggingFetcher(fetcher, logger)
	}
	return fetcher, nil
}

func defaultDBPath() string {
	if path := os.Getenv("SCRAPBOOK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "scrapbook.db"
	}
	dir := filepath.Join(home, ".scrapbook")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "scrapbook.db")
}

func defaultOutDir() string {
	if dir := os.Getenv("SCRAPBOOK_OUT"); dir != "" {
		return dir
	}
	return "scrapbook_output"
}
