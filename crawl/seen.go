package crawl

import "github.com/mkrawiec/scrapbook/bloom"

const (
	// minSeenCapacity floors the seen-filter sizing so tiny batches
	// still get a usefully sized filter.
	minSeenCapacity = 64

	// seenFalsePositiveRate is the acceptable false positive rate for
	// input deduplication.
	seenFalsePositiveRate = 0.01
)

// SeenFilter remembers URLs already accepted in this session. Batch
// inputs assembled from exports and sitemaps routinely repeat URLs; the
// filter drops repeats without holding every URL in memory.
type SeenFilter struct {
	filter *bloom.Filter
}

// NewSeenFilter creates a filter sized for the expected number of URLs.
func NewSeenFilter(expected uint) *SeenFilter {
	if expected < minSeenCapacity {
		expected = minSeenCapacity
	}
	return &SeenFilter{filter: bloom.NewFilter(expected, seenFalsePositiveRate)}
}

// Seen reports whether url was seen before, marking it seen as a side
// effect. False positives are possible, so a genuinely new URL may
// occasionally be reported as seen; false negatives are not.
func (s *SeenFilter) Seen(url string) bool {
	return s.filter.TestAndAdd(url)
}
