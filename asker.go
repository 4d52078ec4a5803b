package scrapbook

import "context"

// Asker sends a generation prompt to a language model and returns the
// response text. Prompts are built from scraped material: quiz questions
// from a book's learning units, or an application letter tailored to a
// stored job posting.
type Asker interface {
	Ask(ctx context.Context, prompt string) (string, error)
}
