package scrapbook

import "strings"

// Difficulty is a coarse reading-difficulty estimate derived from
// article length alone.
type Difficulty string

// Difficulty levels.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// WordsPerMinute is the assumed reading speed for time estimates.
const WordsPerMinute = 200

// Difficulty thresholds in words. Articles strictly under easyMaxWords
// are easy, strictly over hardMinWords are hard, everything else is
// medium (the boundary values included).
const (
	easyMaxWords = 300
	hardMinWords = 1000
)

// reviewIntervals is the fixed spaced-repetition schedule in days.
var reviewIntervals = []int{1, 3, 7, 14, 30, 60, 120}

// ArticleMetadata is the derived study metadata attached to every
// successfully extracted article.
type ArticleMetadata struct {
	WordCount          int        `json:"wordCount"`
	ReadingTimeMinutes int        `json:"readingTimeMinutes"`
	Difficulty         Difficulty `json:"difficulty"`
	ReviewIntervalDays []int      `json:"reviewIntervalDays"`
}

// ComputeMetadata derives metadata from a document's concatenated block
// text. It is a pure function of the content.
func ComputeMetadata(doc Document) ArticleMetadata {
	words := CountWords(doc.Text())
	return ArticleMetadata{
		WordCount:          words,
		ReadingTimeMinutes: ReadingTime(words),
		Difficulty:         EstimateDifficulty(words),
		ReviewIntervalDays: ReviewIntervals(),
	}
}

// CountWords returns the number of whitespace-delimited tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ReadingTime estimates reading time in whole minutes for the given word
// count, never less than one minute.
func ReadingTime(words int) int {
	minutes := words / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// EstimateDifficulty buckets an article by word count.
func EstimateDifficulty(words int) Difficulty {
	switch {
	case words < easyMaxWords:
		return DifficultyEasy
	case words > hardMinWords:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// ReviewIntervals returns the spaced-repetition schedule in days. The
// returned slice is a copy; callers may modify it freely.
func ReviewIntervals() []int {
	out := make([]int, len(reviewIntervals))
	copy(out, reviewIntervals)
	return out
}
