package slog

import (
	"log/slog"
	"time"

	"github.com/mkrawiec/scrapbook"
)

// Ensure LoggingTocResolver implements scrapbook.TocResolver.
var _ scrapbook.TocResolver = (*LoggingTocResolver)(nil)

// LoggingTocResolver wraps a TocResolver with debug logging for TOC
// resolution, the step most sensitive to page structure.
type LoggingTocResolver struct {
	next   scrapbook.TocResolver
	logger *slog.Logger
}

// NewLoggingTocResolver creates a new LoggingTocResolver.
func NewLoggingTocResolver(next scrapbook.TocResolver, logger *slog.Logger) *LoggingTocResolver {
	return &LoggingTocResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the chapter and
// article counts it produced.
func (r *LoggingTocResolver) Resolve(html string, baseURL string) []*scrapbook.TocEntry {
	begin := time.Now()
	entries := r.next.Resolve(html, baseURL)
	articles := 0
	for _, e := range entries {
		articles += e.CountLeaves()
	}
	r.logger.Info("toc resolution",
		"url", baseURL,
		"chapters", len(entries),
		"articles", articles,
		"duration", time.Since(begin),
	)
	return entries
}
