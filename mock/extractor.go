package mock

import "github.com/mkrawiec/scrapbook"

var _ scrapbook.JobExtractor = (*JobExtractor)(nil)

// JobExtractor is a mock implementation of scrapbook.JobExtractor.
type JobExtractor struct {
	ExtractJobFn func(html string, pageURL string) (*scrapbook.JobPosting, error)
}

func (e *JobExtractor) ExtractJob(html string, pageURL string) (*scrapbook.JobPosting, error) {
	return e.ExtractJobFn(html, pageURL)
}

var _ scrapbook.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of scrapbook.ArticleExtractor.
type ArticleExtractor struct {
	ExtractArticleFn func(html string, pageURL string) (*scrapbook.ArticleContent, error)
}

func (e *ArticleExtractor) ExtractArticle(html string, pageURL string) (*scrapbook.ArticleContent, error) {
	return e.ExtractArticleFn(html, pageURL)
}

var _ scrapbook.Distiller = (*Distiller)(nil)

// Distiller is a mock implementation of scrapbook.Distiller.
type Distiller struct {
	DistillFn func(html string) (*scrapbook.Distilled, error)
}

func (d *Distiller) Distill(html string) (*scrapbook.Distilled, error) {
	return d.DistillFn(html)
}
