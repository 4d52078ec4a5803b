package crawl

import (
	"context"
	"time"
)

// FetchFunc is the signature of a page fetch.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc receives retry notices.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff schedule for fetch retries:
// 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches a URL, retrying transient failures with the
// default backoff schedule.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger LogFunc) (string, error) {
	return FetchWithRetryDelays(ctx, url, fetch, logger, DefaultRetryDelays())
}

// FetchWithRetryDelays fetches a URL with one attempt per entry in
// delays plus the initial try, sleeping the corresponding delay between
// attempts. The context is honored both between and, assuming the fetch
// implementation cooperates, during attempts. Returns the last fetch
// error when every attempt fails.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		if attempt > 0 {
			if logger != nil {
				logger("retrying %s (attempt %d): %v", url, attempt+1, lastErr)
			}
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delays[attempt-1]):
			}
		}

		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", lastErr
}
