package scrapbook

import "context"

// TokenCounter counts tokens in text for a specific model. Used to
// report prompt sizes before sending scraped material to a model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
