package fs_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mkrawiec/scrapbook"
	"github.com/mkrawiec/scrapbook/fs"
	"github.com/mkrawiec/scrapbook/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportTime = time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)

func fixedExporter() *fs.Exporter {
	return &fs.Exporter{Now: func() time.Time { return exportTime }}
}

func exportBookFixture() *scrapbook.Book {
	local := "out/images/ch1_art1_img1.png"
	book := &scrapbook.Book{
		Title:       "Interview Prep: Algorithms & Data",
		Description: "Notes for the technical screen.",
		URL:         "https://learn.example.com/books/prep",
		ScrapedAt:   exportTime,
		Chapters: []*scrapbook.Chapter{
			{
				Number: 1,
				Title:  "Foundations",
				Articles: []*scrapbook.Article{
					{
						Number: 1,
						Title:  "Big-O",
						URL:    "https://learn.example.com/books/prep/big-o",
						Content: scrapbook.Document{
							Blocks: []scrapbook.ContentBlock{
								{Kind: scrapbook.BlockHeading, Level: 1, Text: "Big-O"},
								{Kind: scrapbook.BlockParagraph, Text: "Growth rates matter."},
							},
							RawText: "Big-O Growth rates matter.",
						},
						ContentHTML: "<h1>Big-O</h1><p>Growth rates matter.</p>",
						Images: []scrapbook.Image{
							{SourceURL: "https://cdn.example.com/big-o.png", LocalPath: &local, Alt: "growth chart"},
						},
						Metadata: scrapbook.ComputeMetadata(scrapbook.Document{
							Blocks: []scrapbook.ContentBlock{
								{Kind: scrapbook.BlockParagraph, Text: "Growth rates matter."},
							},
						}),
					},
					{
						Number: 2,
						Title:  "Recursion",
						URL:    "https://learn.example.com/books/prep/recursion",
						Err:    "fetch: HTTP 500",
					},
				},
			},
		},
	}
	book.Totals = book.CountTotals()
	return book
}

func strPtr(s string) *string { return &s }

func TestSafeTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"spaces become underscores", "Interview Prep Notes", "Interview_Prep_Notes"},
		{"punctuation dropped", "Algorithms & Data: Part 1!", "Algorithms__Data_Part_1"},
		{"dashes kept", "week-3 review", "week-3_review"},
		{"surrounding space trimmed", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fs.SafeTitle(tt.title))
		})
	}
}

func TestExporter_ExportBook(t *testing.T) {
	t.Parallel()

	t.Run("names the file after title and timestamp", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path, err := fixedExporter().ExportBook(dir, exportBookFixture())

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "Interview_Prep_Algorithms__Data_20250601_143000.json"), path)
	})

	t.Run("round-trips the book through JSON", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path, err := fixedExporter().ExportBook(dir, exportBookFixture())
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var got scrapbook.Book
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "Interview Prep: Algorithms & Data", got.Title)
		require.Len(t, got.Chapters, 1)
		assert.Len(t, got.Chapters[0].Articles, 2)
		assert.Equal(t, "fetch: HTTP 500", got.Chapters[0].Articles[1].Err)
		assert.Equal(t, scrapbook.Totals{Chapters: 1, Articles: 2, Images: 1}, got.Totals)
	})

	t.Run("content HTML stays out of the export", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path, err := fixedExporter().ExportBook(dir, exportBookFixture())
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "<h1>Big-O</h1>")
	})

	t.Run("untitled book falls back to a generic stem", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		book := &scrapbook.Book{URL: "https://example.com", ScrapedAt: exportTime}

		path, err := fixedExporter().ExportBook(dir, book)

		require.NoError(t, err)
		assert.Equal(t, "book_20250601_143000.json", filepath.Base(path))
	})
}

func TestExporter_ExportUnits(t *testing.T) {
	t.Parallel()

	t.Run("writes the ai_ready envelope", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path, n, err := fixedExporter().ExportUnits(dir, exportBookFixture())

		require.NoError(t, err)
		assert.Equal(t, 1, n, "error-marked articles are not units")
		assert.Equal(t, "Interview_Prep_Algorithms__Data_ai_ready_20250601_143000.json", filepath.Base(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var got fs.UnitsExport
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "Interview Prep: Algorithms & Data", got.BookTitle)
		assert.Equal(t, "Notes for the technical screen.", got.BookDescription)
		require.Len(t, got.LearningUnits, 1)
		assert.Equal(t, "ch1_art1", got.LearningUnits[0].ID)
		assert.Equal(t, 1, got.Summary.Units)
		assert.Equal(t, 1, got.Summary.Chapters)
	})
}

func TestExporter_ExportBookMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("converts article HTML and keeps failures visible", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		conv := &mock.Converter{ConvertFn: func(html string) (string, error) {
			if html == "" {
				return "", scrapbook.Errorf(scrapbook.EINVALID, "empty HTML input")
			}
			return "# Big-O\n\nGrowth rates matter.", nil
		}}

		path, err := fixedExporter().ExportBookMarkdown(dir, exportBookFixture(), conv)

		require.NoError(t, err)
		assert.Equal(t, "Interview_Prep_Algorithms__Data_20250601_143000.md", filepath.Base(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		md := string(data)

		assert.True(t, strings.HasPrefix(md, "---\nsource: https://learn.example.com/books/prep\n"))
		assert.Contains(t, md, "scraped: 2025-06-01")
		assert.Contains(t, md, "## Chapter 1: Foundations")
		assert.Contains(t, md, "### Big-O")
		assert.Contains(t, md, "Growth rates matter.")
		assert.Contains(t, md, "### Recursion")
		assert.Contains(t, md, "> Skipped: fetch: HTTP 500")
	})

	t.Run("falls back to block rendering when conversion fails", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		conv := &mock.Converter{ConvertFn: func(html string) (string, error) {
			return "", scrapbook.Errorf(scrapbook.EINVALID, "no good")
		}}

		path, err := fixedExporter().ExportBookMarkdown(dir, exportBookFixture(), conv)

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "# Big-O")
	})
}

func TestExporter_ExportJob(t *testing.T) {
	t.Parallel()

	t.Run("names the file after the cleaned title", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		job := &scrapbook.JobPosting{
			Title:     strPtr("Senior Backend Engineer (Go/K8s)"),
			URL:       "https://example.com/jobs/1",
			ScrapedAt: exportTime,
		}

		path, err := fixedExporter().ExportJob(dir, job)

		require.NoError(t, err)
		assert.Equal(t, "Senior Backend Engineer GoK8s_20250601_143000.json", filepath.Base(path))

		var got scrapbook.JobPosting
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &got))
		require.NotNil(t, got.Title)
		assert.Equal(t, "Senior Backend Engineer (Go/K8s)", *got.Title)
	})

	t.Run("untitled posting falls back to job", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		job := &scrapbook.JobPosting{URL: "https://example.com/jobs/2", ScrapedAt: exportTime}

		path, err := fixedExporter().ExportJob(dir, job)

		require.NoError(t, err)
		assert.Equal(t, "job_20250601_143000.json", filepath.Base(path))
	})
}

func TestExporter_ExportBatchJob(t *testing.T) {
	t.Parallel()

	t.Run("includes position, title and company", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		job := &scrapbook.JobPosting{
			Title:     strPtr("Data Analyst"),
			Company:   strPtr("Acme Corp."),
			URL:       "https://example.com/jobs/3",
			ScrapedAt: exportTime,
		}

		path, err := fixedExporter().ExportBatchJob(dir, 7, job)

		require.NoError(t, err)
		assert.Equal(t, "job_007_data_analyst_acme_corp.json", filepath.Base(path))
	})

	t.Run("drops the company segment when unknown", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		job := &scrapbook.JobPosting{
			Title:     strPtr("Data Analyst"),
			URL:       "https://example.com/jobs/4",
			ScrapedAt: exportTime,
		}

		path, err := fixedExporter().ExportBatchJob(dir, 2, job)

		require.NoError(t, err)
		assert.Equal(t, "job_002_data_analyst.json", filepath.Base(path))
	})

	t.Run("truncates long titles", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		job := &scrapbook.JobPosting{
			Title:     strPtr("Extremely Senior Principal Staff Platform Reliability Engineer"),
			URL:       "https://example.com/jobs/5",
			ScrapedAt: exportTime,
		}

		path, err := fixedExporter().ExportBatchJob(dir, 1, job)

		require.NoError(t, err)
		base := strings.TrimSuffix(filepath.Base(path), ".json")
		segment := strings.TrimPrefix(base, "job_001_")
		assert.LessOrEqual(t, len(segment), 30)
	})
}

func TestExporter_ExportBatchError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rec := scrapbook.NewErrorRecord(
		scrapbook.Errorf(scrapbook.EFETCH, "HTTP 500 for https://example.com/jobs/9"),
		"https://example.com/jobs/9",
		exportTime,
	)

	path, err := fixedExporter().ExportBatchError(dir, 9, rec)

	require.NoError(t, err)
	assert.Equal(t, "job_009_error.json", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got scrapbook.ErrorRecord
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "https://example.com/jobs/9", got.URL)
	assert.Contains(t, got.Error, "Error processing page:")
}

func TestExporter_NewBatchDir(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	dir, err := fixedExporter().NewBatchDir(base)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "batch_20250601_143000"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
