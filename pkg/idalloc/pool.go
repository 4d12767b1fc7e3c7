package idalloc

import "errors"

// ErrExhausted is the panic value of Pool.Next when the allocator has no
// ids left.
var ErrExhausted = errors.New("id allocator exhausted")

// Pool hands out ids one at a time from ranges drawn from an Allocator.
// A Pool is not safe for concurrent use.
type Pool struct {
	alloc     *Allocator
	next      ID
	available Range
	hasRange  bool
	used      []Range
}

// NewPool creates an empty pool that draws from alloc.
func NewPool(alloc *Allocator) *Pool {
	return &Pool{alloc: alloc}
}

// Allocator returns the allocator the pool draws from.
func (p *Pool) Allocator() *Allocator { return p.alloc }

// HasNextAvailable reports whether Next can return an id without drawing
// a new range. It says nothing about the allocator.
func (p *Pool) HasNextAvailable() bool {
	return p.hasRange && p.available.Contains(p.next)
}

// Next returns an unused id. It panics with ErrExhausted when a new range
// is needed and the allocator cannot provide one.
func (p *Pool) Next() ID {
	if !p.HasNextAvailable() {
		if p.hasRange {
			p.used = append(p.used, p.available)
			p.hasRange = false
		}
		if p.alloc == nil {
			panic(ErrExhausted)
		}
		r, ok := p.alloc.Next()
		if !ok {
			panic(ErrExhausted)
		}
		p.available, p.hasRange, p.next = r, true, r.Start
	}

	id := p.next
	p.next++
	return id
}

// Ranges returns every range the pool holds, used ones first.
func (p *Pool) Ranges() []Range {
	out := make([]Range, 0, len(p.used)+1)
	out = append(out, p.used...)
	if p.hasRange {
		out = append(out, p.available)
	}
	return out
}

// Release returns all of the pool's ranges to the allocator. Calling it
// again is a no-op.
func (p *Pool) Release() {
	ranges := p.Ranges()
	p.used, p.hasRange, p.available = nil, false, Range{}
	if p.alloc != nil {
		p.alloc.Release(ranges...)
	}
}

// MergePools combines pools into one that owns all their ranges. Ranges
// still available in the inputs are moved to the used pile, so their
// remaining ids are not handed out again until release. The inputs are
// left empty. The merged pool draws from the first input's allocator.
func MergePools(pools ...*Pool) *Pool {
	merged := &Pool{}
	for _, p := range pools {
		if p == nil {
			continue
		}
		if merged.alloc == nil {
			merged.alloc = p.alloc
		}
		merged.used = append(merged.used, p.Ranges()...)
		p.used, p.hasRange, p.available = nil, false, Range{}
	}
	return merged
}
