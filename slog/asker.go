package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkrawiec/scrapbook"
)

// Ensure LoggingAsker implements scrapbook.Asker.
var _ scrapbook.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with debug logging. Prompt and answer
// sizes are logged, never their content.
type LoggingAsker struct {
	next   scrapbook.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next scrapbook.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the operation.
func (a *LoggingAsker) Ask(ctx context.Context, prompt string) (answer string, err error) {
	defer func(begin time.Time) {
		a.logger.Info("ask",
			"prompt_bytes", len(prompt),
			"answer_bytes", len(answer),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, prompt)
}
