// Package bloom flags repeated article links in an input list.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter remembers which links have been seen in a run.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n links with the given false
// positive rate. A false positive only costs a spurious duplicate warning.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a link as seen.
func (f *Filter) Add(link string) {
	f.f.AddString(link)
}

// Test reports whether the link may have been seen before.
func (f *Filter) Test(link string) bool {
	return f.f.TestString(link)
}

// Seen reports whether the link was probably seen before and records it.
func (f *Filter) Seen(link string) bool {
	return f.f.TestAndAddString(link)
}

// EstimatedCount returns the approximate number of distinct links seen.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
