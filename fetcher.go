package scrapbook

import (
	"context"
	"time"
)

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch navigates to the URL and returns the page HTML. The wait
	// hint asks browser-backed implementations to let scripts settle
	// after load before reading the DOM; static implementations ignore
	// it. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string, wait time.Duration) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter provides per-domain rate limiting. The crawl loop uses
// it as the politeness delay between successive article fetches.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
