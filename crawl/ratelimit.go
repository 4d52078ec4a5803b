package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/mkrawiec/scrapbook"
	"golang.org/x/time/rate"
)

var _ scrapbook.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests per domain using token buckets. Each
// domain gets its own bucket with a burst of 1, so the first request to
// a domain passes immediately and later ones are spaced by the rate.
// Requests to different domains never wait on each other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a limiter allowing rps requests per second
// to each domain.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
	}
}

// NewDomainLimiterForDelay creates a limiter that spaces successive
// requests to each domain by at least the given delay. A non-positive
// delay yields a limiter that never waits.
func NewDomainLimiterForDelay(delay time.Duration) *DomainLimiter {
	if delay <= 0 {
		return &DomainLimiter{
			limiters: make(map[string]*rate.Limiter),
			limit:    rate.Inf,
		}
	}
	return NewDomainLimiter(float64(time.Second) / float64(delay))
}

// Wait blocks until the domain's bucket allows a request, or the
// context is canceled.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
