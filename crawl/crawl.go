// Package crawl orchestrates scraping sessions. It coordinates
// fetching, extraction, asset caching and politeness pacing, and
// reports progress through callback events.
package crawl

import (
	"context"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mkrawiec/scrapbook"
	"golang.org/x/sync/errgroup"
)

// Scraper orchestrates scraping. One Scraper is one session: the asset
// cache, pacing state and the cancellation flag live exactly as long as
// the Scraper itself.
//
// Fetcher is always required. ScrapeJob and ScrapeJobBatch need Jobs;
// ScrapeBook needs Articles, Toc and Meta. Cache and Limiter are
// optional.
type Scraper struct {
	Fetcher  scrapbook.Fetcher
	Jobs     scrapbook.JobExtractor
	Articles scrapbook.ArticleExtractor
	Toc      scrapbook.TocResolver
	Meta     scrapbook.BookMetaExtractor
	Cache    *AssetCache

	// Limiter paces fetches per domain. When nil and Delay is set, a
	// limiter spacing fetches by Delay is created on first use. The
	// book's root page is fetched unpaced.
	Limiter scrapbook.DomainLimiter
	Delay   time.Duration

	// Wait is the render-settle hint forwarded to the Fetcher.
	Wait time.Duration

	// Concurrency caps parallel article fetches during ScrapeBook.
	// Zero or one means sequential.
	Concurrency int

	// RetryDelays overrides the backoff schedule for job and book-root
	// fetches. Nil means DefaultRetryDelays; article fetches are never
	// retried, they degrade to error-marked articles instead.
	RetryDelays []time.Duration

	// Now returns the timestamp stamped onto results. Nil means
	// time.Now in UTC.
	Now func() time.Time

	pacerOnce sync.Once
	pacer     scrapbook.DomainLimiter
	stop      atomic.Bool
}

// Cancel asks the session to stop scheduling further work. The flag is
// checked between articles and between batch jobs; an in-flight fetch
// is never interrupted, and a canceled run still aggregates what it
// has. Canceling is sticky for the session. Context cancellation
// remains the hard-abort path.
func (s *Scraper) Cancel() {
	s.stop.Store(true)
}

func (s *Scraper) canceled() bool {
	return s.stop.Load()
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressStarted opens a run; URL carries the root or Total the
	// batch size.
	ProgressStarted ProgressType = iota

	// ProgressTocResolved reports the resolved table of contents:
	// Total articles across Chapters chapters.
	ProgressTocResolved

	// ProgressCompleted and ProgressFailed report one finished unit of
	// work, an article or a batch job.
	ProgressCompleted
	ProgressFailed

	// ProgressImageCached reports one image resolved to a local path.
	ProgressImageCached

	// ProgressFinished closes a run.
	ProgressFinished
)

// ProgressEvent reports progress during a scrape. Chapter and Article
// are 1-based ordinals, set for article and image events of a book run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Chapters  int
	Chapter   int
	Article   int
	URL       string
	Error     error
}

// ProgressFunc is a callback for reporting scrape progress. It is
// always invoked from the goroutine running the scrape, never from
// workers.
type ProgressFunc func(event ProgressEvent)

func emit(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}

// ScrapeJob fetches a single job posting page and extracts it. The
// fetch is paced and retried; the returned posting carries the page URL
// and the scrape timestamp.
func (s *Scraper) ScrapeJob(ctx context.Context, jobURL string) (*scrapbook.JobPosting, error) {
	if err := s.pace(ctx, jobURL); err != nil {
		return nil, err
	}
	html, err := s.fetchWithRetry(ctx, jobURL)
	if err != nil {
		return nil, err
	}
	posting, err := s.Jobs.ExtractJob(html, jobURL)
	if err != nil {
		return nil, err
	}
	posting.ScrapedAt = s.now()
	return posting, nil
}

// ScrapeBook fetches a book's root page, resolves its table of
// contents, and crawls every listed article. Only the root fetch can
// fail the whole run; a page without a recognizable table of contents
// produces an empty book, and per-article failures produce error-marked
// articles while the crawl continues. Articles appear in TOC order
// regardless of Concurrency.
func (s *Scraper) ScrapeBook(ctx context.Context, bookURL string, progress ProgressFunc) (*scrapbook.Book, error) {
	emit(progress, ProgressEvent{Type: ProgressStarted, URL: bookURL})

	html, err := s.fetchWithRetry(ctx, bookURL)
	if err != nil {
		return nil, err
	}

	meta := s.Meta.ExtractMeta(html)
	toc := s.Toc.Resolve(html, bookURL)

	book := &scrapbook.Book{
		Title:       meta.Title,
		Description: meta.Description,
		URL:         bookURL,
		ScrapedAt:   s.now(),
	}

	tasks, chapters := buildWork(toc)
	book.Chapters = chapters

	emit(progress, ProgressEvent{
		Type:     ProgressTocResolved,
		Total:    len(tasks),
		Chapters: len(chapters),
	})

	var done int
	if len(tasks) > 0 {
		done = s.crawlArticles(ctx, tasks, chapters, progress)
	}

	book.Totals = book.CountTotals()

	emit(progress, ProgressEvent{
		Type:      ProgressFinished,
		Completed: done,
		Total:     len(tasks),
	})

	return book, nil
}

// articleTask is one unit of book work: an article at a fixed place in
// the TOC.
type articleTask struct {
	position int
	chapter  int
	ordinal  int
	title    string
	url      string
}

// articleResult is the outcome of one article task.
type articleResult struct {
	position int
	chapter  int
	ordinal  int
	article  *scrapbook.Article
	err      error
}

// buildWork flattens the TOC into chapter shells and an ordered task
// list. Chapter and article numbers are 1-based TOC positions.
func buildWork(toc []*scrapbook.TocEntry) ([]articleTask, []*scrapbook.Chapter) {
	chapters := make([]*scrapbook.Chapter, 0, len(toc))
	var tasks []articleTask
	for i, entry := range toc {
		chapter := &scrapbook.Chapter{
			Number:   i + 1,
			Title:    entry.Title,
			Articles: make([]*scrapbook.Article, 0, len(entry.Children)),
		}
		chapters = append(chapters, chapter)
		for j, art := range entry.Children {
			tasks = append(tasks, articleTask{
				position: len(tasks),
				chapter:  i + 1,
				ordinal:  j + 1,
				title:    art.Title,
				url:      art.URL,
			})
		}
	}
	return tasks, chapters
}

// crawlArticles runs the task list and attaches results to their
// chapters in TOC order. The scheduling loop checks the cancellation
// flag before each task, so canceling stops new work while in-flight
// tasks drain. Returns the number of tasks that ran.
func (s *Scraper) crawlArticles(ctx context.Context, tasks []articleTask, chapters []*scrapbook.Chapter, progress ProgressFunc) int {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	resultCh := make(chan articleResult, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, task := range tasks {
			if s.canceled() {
				break
			}
			g.Go(func() error {
				resultCh <- s.processArticle(gctx, task)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Results arrive in completion order; slots keep TOC order.
	results := make([]*scrapbook.Article, len(tasks))
	var done int
	for res := range resultCh {
		done++
		results[res.position] = res.article

		if res.err != nil {
			emit(progress, ProgressEvent{
				Type:      ProgressFailed,
				Completed: done,
				Total:     len(tasks),
				Chapter:   res.chapter,
				Article:   res.ordinal,
				URL:       res.article.URL,
				Error:     res.err,
			})
			continue
		}

		emit(progress, ProgressEvent{
			Type:      ProgressCompleted,
			Completed: done,
			Total:     len(tasks),
			Chapter:   res.chapter,
			Article:   res.ordinal,
			URL:       res.article.URL,
		})
		for _, img := range res.article.Images {
			if img.LocalPath == nil {
				continue
			}
			emit(progress, ProgressEvent{
				Type:    ProgressImageCached,
				Chapter: res.chapter,
				Article: res.ordinal,
				URL:     img.SourceURL,
			})
		}
	}

	for i, task := range tasks {
		if results[i] == nil {
			continue
		}
		chapters[task.chapter-1].Articles = append(chapters[task.chapter-1].Articles, results[i])
	}

	return done
}

// processArticle runs one CrawlingArticle step: pace, fetch, extract,
// resolve images, compute metadata. Any failure error-marks the article
// instead of propagating.
func (s *Scraper) processArticle(ctx context.Context, task articleTask) articleResult {
	res := articleResult{position: task.position, chapter: task.chapter, ordinal: task.ordinal}
	article := &scrapbook.Article{
		Number: task.ordinal,
		Title:  task.title,
		URL:    task.url,
	}
	res.article = article

	fail := func(err error) articleResult {
		article.Err = err.Error()
		res.err = err
		return res
	}

	if err := s.pace(ctx, task.url); err != nil {
		return fail(err)
	}
	html, err := s.Fetcher.Fetch(ctx, task.url, s.Wait)
	if err != nil {
		return fail(err)
	}
	content, err := s.Articles.ExtractArticle(html, task.url)
	if err != nil {
		return fail(err)
	}

	article.Content = content.Doc
	article.ContentHTML = content.ContentHTML
	article.Images = s.resolveImages(ctx, content.Images, task.chapter, task.ordinal)
	article.Metadata = scrapbook.ComputeMetadata(content.Doc)
	return res
}

// resolveImages maps extracted image references through the asset
// cache. Entries are kept even when the download fails or no cache is
// configured; LocalPath just stays nil.
func (s *Scraper) resolveImages(ctx context.Context, refs []scrapbook.ImageRef, chapter, article int) []scrapbook.Image {
	images := make([]scrapbook.Image, 0, len(refs))
	for i, ref := range refs {
		img := scrapbook.Image{
			SourceURL: ref.URL,
			Alt:       ref.Alt,
			Title:     ref.Title,
			Caption:   ref.Caption,
		}
		if s.Cache != nil {
			if path, err := s.Cache.Resolve(ctx, ref.URL, chapter, article, i+1); err == nil && path != "" {
				img.LocalPath = &path
			}
		}
		images = append(images, img)
	}
	return images
}

// limiter resolves the session's pacing source once: an explicit
// Limiter wins, otherwise Delay builds one.
func (s *Scraper) limiter() scrapbook.DomainLimiter {
	s.pacerOnce.Do(func() {
		switch {
		case s.Limiter != nil:
			s.pacer = s.Limiter
		case s.Delay > 0:
			s.pacer = NewDomainLimiterForDelay(s.Delay)
		}
	})
	return s.pacer
}

func (s *Scraper) pace(ctx context.Context, rawURL string) error {
	limiter := s.limiter()
	if limiter == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil
	}
	return limiter.Wait(ctx, u.Host)
}

func (s *Scraper) fetchWithRetry(ctx context.Context, pageURL string) (string, error) {
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetch := func(ctx context.Context, u string) (string, error) {
		return s.Fetcher.Fetch(ctx, u, s.Wait)
	}
	return FetchWithRetryDelays(ctx, pageURL, fetch, nil, delays)
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
