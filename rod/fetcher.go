// Package rod provides a browser-backed implementation of
// scrapbook.Fetcher for pages that require JavaScript rendering, such
// as Zoho Learn books and script-heavy job boards.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/mkrawiec/scrapbook"
)

// Ensure Fetcher implements scrapbook.Fetcher at compile time.
var _ scrapbook.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. The underlying browser is recycled periodically so long
// batch runs don't accumulate Chrome's memory leak.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager  *BrowserManager
	timeout  time.Duration
	maxPages int64
	closed   atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each Fetch call. Zero (the default) means a
// fetch is limited only by the caller's context.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets the number of pages fetched before the browser is
// recycled. Defaults to DefaultMaxPages.
func WithMaxPages(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser and returns a Fetcher
// backed by it. Close must be called when the Fetcher is no longer
// needed.
//
// Returns ECONFIG if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{}
	for _, opt := range opts {
		opt(f)
	}

	var managerOpts []ManagerOption
	if f.maxPages > 0 {
		managerOpts = append(managerOpts, WithManagerMaxPages(f.maxPages))
	}

	manager, err := NewBrowserManager(managerOpts...)
	if err != nil {
		return nil, scrapbook.Errorf(scrapbook.ECONFIG, "starting browser: %s", err)
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML. A positive
// wait pauses after the load event so scripts can settle before the DOM
// is read.
func (f *Fetcher) Fetch(ctx context.Context, url string, wait time.Duration) (string, error) {
	if f.closed.Load() {
		return "", scrapbook.Errorf(scrapbook.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fetchErr(ctx, err, url, "opening page")
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", fetchErr(ctx, err, url, "navigating")
	}

	if err := page.WaitLoad(); err != nil {
		return "", fetchErr(ctx, err, url, "waiting for load")
	}

	if wait > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fetchErr(ctx, err, url, "reading DOM")
	}

	f.manager.IncrementPageCount()

	return html, nil
}

// Close releases browser resources. Close is safe to call multiple
// times; fetches after Close fail with EINVALID.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// fetchErr preserves context errors so callers can test for
// cancellation and deadlines, and classifies everything else as a fetch
// failure.
func fetchErr(ctx context.Context, err error, url, verb string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return scrapbook.Errorf(scrapbook.EFETCH, "%s %s: %s", verb, url, err)
}
