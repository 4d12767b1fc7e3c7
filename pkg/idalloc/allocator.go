// Package idalloc hands out unique integer ids in ranges. An Allocator is
// shared; each Pool draws ranges from it and returns them when released.
package idalloc

import (
	"fmt"
	"math"
	"slices"
	"sync"
)

// DefaultRangeSize is the number of ids in each range an allocator carves.
const DefaultRangeSize = 10

// ID identifies a node.
type ID uint64

// Range is the half-open id interval [Start, End).
type Range struct {
	Start ID `json:"start"`
	End   ID `json:"end"`
}

// Len returns the number of ids in the range.
func (r Range) Len() int { return int(r.End - r.Start) }

// Contains reports whether id falls inside the range.
func (r Range) Contains(id ID) bool { return id >= r.Start && id < r.End }

func (r Range) String() string { return fmt.Sprintf("[%d,%d)", r.Start, r.End) }

// State is a persisted form of an allocator's counter and free list.
type State struct {
	Next      ID      `json:"next"`
	RangeSize int     `json:"range_size"`
	Freed     []Range `json:"freed,omitempty"`
}

// Allocator carves ranges of ids and recycles released ones.
// It is safe for concurrent use.
type Allocator struct {
	mu        sync.Mutex
	next      ID
	rangeSize ID
	limit     ID
	freed     []Range
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithRangeSize sets the number of ids per range. Values below one are
// ignored.
func WithRangeSize(n int) Option {
	return func(a *Allocator) {
		if n > 0 {
			a.rangeSize = ID(n)
		}
	}
}

// WithLimit caps the id space: no id at or above limit is handed out.
func WithLimit(limit ID) Option {
	return func(a *Allocator) {
		a.limit = limit
	}
}

// NewAllocator creates an allocator starting at id zero.
func NewAllocator(opts ...Option) *Allocator {
	a := &Allocator{
		rangeSize: DefaultRangeSize,
		limit:     math.MaxUint64,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RangeSize returns the size of each newly carved range.
func (a *Allocator) RangeSize() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return int(a.rangeSize)
}

// Next returns the most recently freed range, or a fresh one. It returns
// false once the id space is exhausted.
func (a *Allocator) Next() (Range, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n := len(a.freed); n > 0 {
		r := a.freed[n-1]
		a.freed = a.freed[:n-1]
		return r, true
	}

	if a.next > a.limit || a.limit-a.next < a.rangeSize {
		return Range{}, false
	}

	r := Range{Start: a.next, End: a.next + a.rangeSize}
	a.next = r.End
	return r, true
}

// Release returns ranges to the free list.
func (a *Allocator) Release(ranges ...Range) {
	if len(ranges) == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.freed = append(a.freed, ranges...)
}

// Snapshot captures the allocator state.
func (a *Allocator) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return State{
		Next:      a.next,
		RangeSize: int(a.rangeSize),
		Freed:     slices.Clone(a.freed),
	}
}

// Restore replaces the allocator state with s. The limit is kept.
func (a *Allocator) Restore(s State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next = s.Next
	if s.RangeSize > 0 {
		a.rangeSize = ID(s.RangeSize)
	}
	a.freed = slices.Clone(s.Freed)
}
