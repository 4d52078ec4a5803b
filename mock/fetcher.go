package mock

import (
	"context"
	"time"

	"github.com/mkrawiec/scrapbook"
)

var _ scrapbook.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of scrapbook.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string, wait time.Duration) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string, wait time.Duration) (string, error) {
	return f.FetchFn(ctx, url, wait)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ scrapbook.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of scrapbook.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
