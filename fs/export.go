package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/mkrawiec/scrapbook"
)

// timestampLayout is the filename timestamp, e.g. 20250601_143000.
const timestampLayout = "20060102_150405"

var (
	unsafeChars = regexp.MustCompile(`[^\w\s-]`)
	spaceRuns   = regexp.MustCompile(`\s+`)
)

// Exporter writes scrape results to disk using the project's filename
// conventions: books and learning units are named after their title plus
// a timestamp, batch jobs by their 1-based position in the run.
type Exporter struct {
	// Now returns the time used in generated filenames.
	// Defaults to time.Now().UTC.
	Now func() time.Time
}

// SafeTitle makes a title usable as a filename stem: characters outside
// word characters, spaces and dashes are dropped, then spaces become
// underscores.
func SafeTitle(s string) string {
	s = unsafeChars.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, " ", "_")
}

// WriteJSON marshals v with two-space indentation and writes it to
// path, creating parent directories as needed.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ExportBook writes the book as <safe-title>_<timestamp>.json in dir
// and returns the written path.
func (e *Exporter) ExportBook(dir string, book *scrapbook.Book) (string, error) {
	name := fmt.Sprintf("%s_%s.json", SafeTitle(bookStem(book)), e.now().Format(timestampLayout))
	path := filepath.Join(dir, name)
	if err := WriteJSON(path, book); err != nil {
		return "", err
	}
	return path, nil
}

// UnitsExport is the envelope of a learning-units export: book identity,
// the flattened units, and aggregate statistics.
type UnitsExport struct {
	BookTitle       string                    `json:"bookTitle"`
	BookDescription string                    `json:"bookDescription"`
	ScrapedAt       time.Time                 `json:"scrapedAt"`
	LearningUnits   []*scrapbook.LearningUnit `json:"learningUnits"`
	Summary         scrapbook.UnitSummary     `json:"summary"`
}

// ExportUnits flattens the book into learning units and writes them as
// <safe-title>_ai_ready_<timestamp>.json. Returns the written path and
// the number of units exported.
func (e *Exporter) ExportUnits(dir string, book *scrapbook.Book) (string, int, error) {
	units := scrapbook.BuildLearningUnits(book)
	export := &UnitsExport{
		BookTitle:       book.Title,
		BookDescription: book.Description,
		ScrapedAt:       book.ScrapedAt,
		LearningUnits:   units,
		Summary:         scrapbook.SummarizeUnits(units),
	}

	name := fmt.Sprintf("%s_ai_ready_%s.json", SafeTitle(bookStem(book)), e.now().Format(timestampLayout))
	path := filepath.Join(dir, name)
	if err := WriteJSON(path, export); err != nil {
		return "", 0, err
	}
	return path, len(units), nil
}

// ExportBookMarkdown renders the book to a single markdown file,
// <safe-title>_<timestamp>.md, converting each article's content HTML
// through conv. Failed articles appear as a note so the rendition
// mirrors the JSON export instead of silently shrinking.
func (e *Exporter) ExportBookMarkdown(dir string, book *scrapbook.Book, conv scrapbook.Converter) (string, error) {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: " + book.URL + "\n")
	b.WriteString("title: " + book.Title + "\n")
	b.WriteString("scraped: " + book.ScrapedAt.Format("2006-01-02") + "\n")
	b.WriteString("---\n\n")
	b.WriteString("# " + book.Title + "\n")
	if book.Description != "" {
		b.WriteString("\n" + book.Description + "\n")
	}

	for _, ch := range book.Chapters {
		fmt.Fprintf(&b, "\n## Chapter %d: %s\n", ch.Number, ch.Title)
		for _, a := range ch.Articles {
			fmt.Fprintf(&b, "\n### %s\n\n", a.Title)
			if a.Failed() {
				fmt.Fprintf(&b, "> Skipped: %s\n", a.Err)
				continue
			}
			md, err := conv.Convert(a.ContentHTML)
			if err != nil {
				// Content without usable HTML still renders from its
				// structured blocks.
				md = scrapbook.RenderBlocks(a.Content.Blocks)
			}
			b.WriteString(strings.TrimSpace(md) + "\n")
		}
	}

	name := fmt.Sprintf("%s_%s.md", SafeTitle(bookStem(book)), e.now().Format(timestampLayout))
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// ExportJob writes a single posting as <title>_<timestamp>.json. The
// title keeps alphanumerics, spaces, dashes and underscores, capped at
// 50 characters; postings without a title fall back to "job".
func (e *Exporter) ExportJob(dir string, job *scrapbook.JobPosting) (string, error) {
	title := "job"
	if job.Title != nil && *job.Title != "" {
		title = cleanJobTitle(*job.Title)
	}
	name := fmt.Sprintf("%s_%s.json", title, e.now().Format(timestampLayout))
	path := filepath.Join(dir, name)
	if err := WriteJSON(path, job); err != nil {
		return "", err
	}
	return path, nil
}

// ExportBatchJob writes one batch result as
// job_<nnn>_<title>_<company>.json, where nnn is the 1-based position
// in the run. The company segment is dropped when unknown.
func (e *Exporter) ExportBatchJob(dir string, index int, job *scrapbook.JobPosting) (string, error) {
	title := fmt.Sprintf("job_%d", index)
	if job.Title != nil && *job.Title != "" {
		title = *job.Title
	}

	name := fmt.Sprintf("job_%03d_%s", index, sanitizeSegment(title, 30))
	if job.Company != nil {
		if company := sanitizeSegment(*job.Company, 20); company != "" {
			name += "_" + company
		}
	}

	path := filepath.Join(dir, name+".json")
	if err := WriteJSON(path, job); err != nil {
		return "", err
	}
	return path, nil
}

// ExportBatchError writes the error record of a failed batch entry as
// job_<nnn>_error.json.
func (e *Exporter) ExportBatchError(dir string, index int, rec *scrapbook.ErrorRecord) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("job_%03d_error.json", index))
	if err := WriteJSON(path, rec); err != nil {
		return "", err
	}
	return path, nil
}

// NewBatchDir creates a batch_<timestamp> directory under base for one
// batch run's per-job files.
func (e *Exporter) NewBatchDir(base string) (string, error) {
	dir := filepath.Join(base, "batch_"+e.now().Format(timestampLayout))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now().UTC()
}

func bookStem(book *scrapbook.Book) string {
	if book.Title == "" {
		return "book"
	}
	return book.Title
}

// sanitizeSegment lowercases a filename segment, drops characters
// outside word characters, spaces and dashes, collapses whitespace runs
// to underscores and truncates to maxLen runes.
func sanitizeSegment(s string, maxLen int) string {
	s = unsafeChars.ReplaceAllString(s, "")
	s = spaceRuns.ReplaceAllString(s, "_")
	if runes := []rune(s); len(runes) > maxLen {
		s = string(runes[:maxLen])
	}
	return strings.ToLower(s)
}

// cleanJobTitle keeps alphanumerics, spaces, dashes and underscores and
// caps the result at 50 runes.
func cleanJobTitle(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	if runes := []rune(out); len(runes) > 50 {
		out = string(runes[:50])
	}
	return out
}
