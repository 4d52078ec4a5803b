package mock

import (
	"context"

	"github.com/mkrawiec/scrapbook"
)

var _ scrapbook.Asker = (*Asker)(nil)

// Asker is a mock implementation of scrapbook.Asker.
type Asker struct {
	AskFn func(ctx context.Context, prompt string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, prompt string) (string, error) {
	return a.AskFn(ctx, prompt)
}

var _ scrapbook.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of scrapbook.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return c.CountTokensFn(ctx, text)
}
