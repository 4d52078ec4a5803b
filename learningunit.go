package scrapbook

import (
	"fmt"
	"strings"
)

// LearningUnit is the flattened, AI-consumption-ready view of one
// article: chapter identity merged in, content rendered to a single
// display string, structured blocks and study metadata carried
// alongside, and a back-reference to the source page.
type LearningUnit struct {
	ID            string          `json:"id"`
	Chapter       string          `json:"chapter"`
	ChapterNumber int             `json:"chapterNumber"`
	Title         string          `json:"title"`
	Content       string          `json:"content"`
	Blocks        []ContentBlock  `json:"blocks"`
	Images        []Image         `json:"images"`
	Metadata      ArticleMetadata `json:"metadata"`
	SourceURL     string          `json:"sourceUrl"`
}

// UnitSummary aggregates a set of learning units.
type UnitSummary struct {
	Units              int `json:"units"`
	Chapters           int `json:"chapters"`
	Images             int `json:"images"`
	Words              int `json:"words"`
	ReadingTimeMinutes int `json:"readingTimeMinutes"`
}

// BuildLearningUnits flattens a book into learning units, one per
// successfully extracted article. Error-marked articles carry no content
// or metadata and are skipped. Unit IDs follow the
// "ch<chapter>_art<article>" pattern.
func BuildLearningUnits(book *Book) []*LearningUnit {
	var units []*LearningUnit
	for _, ch := range book.Chapters {
		for _, a := range ch.Articles {
			if a.Failed() {
				continue
			}
			units = append(units, &LearningUnit{
				ID:            fmt.Sprintf("ch%d_art%d", ch.Number, a.Number),
				Chapter:       ch.Title,
				ChapterNumber: ch.Number,
				Title:         a.Title,
				Content:       RenderBlocks(a.Content.Blocks),
				Blocks:        a.Content.Blocks,
				Images:        a.Images,
				Metadata:      a.Metadata,
				SourceURL:     a.URL,
			})
		}
	}
	return units
}

// SummarizeUnits computes totals over the given units. Chapters counts
// the distinct chapter numbers represented.
func SummarizeUnits(units []*LearningUnit) UnitSummary {
	s := UnitSummary{Units: len(units)}
	chapters := make(map[int]bool)
	for _, u := range units {
		chapters[u.ChapterNumber] = true
		s.Images += len(u.Images)
		s.Words += u.Metadata.WordCount
		s.ReadingTimeMinutes += u.Metadata.ReadingTimeMinutes
	}
	s.Chapters = len(chapters)
	return s
}

// RenderBlocks renders structured blocks into a plain display string:
// headings get a '#' prefix per level, unordered list items a bullet,
// ordered items their ordinal, code is fenced, quotes get a '> ' prefix.
// Tables are omitted from the rendering; consumers that need them read
// the structured blocks directly.
func RenderBlocks(blocks []ContentBlock) string {
	var parts []string
	for _, b := range blocks {
		switch b.Kind {
		case BlockHeading:
			parts = append(parts, fmt.Sprintf("\n%s %s\n", strings.Repeat("#", b.Level), b.Text))
		case BlockParagraph:
			parts = append(parts, b.Text)
		case BlockList:
			for i, item := range b.Items {
				if b.Ordered {
					parts = append(parts, fmt.Sprintf("%d. %s", i+1, item))
				} else {
					parts = append(parts, fmt.Sprintf("• %s", item))
				}
			}
		case BlockCode:
			parts = append(parts, fmt.Sprintf("\n```\n%s\n```\n", b.Text))
		case BlockQuote:
			parts = append(parts, fmt.Sprintf("\n> %s\n", b.Text))
		}
	}
	return strings.Join(parts, "\n")
}
