package idalloc_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/govimwiki/pkg/idalloc"
)

func TestAllocator_Next(t *testing.T) {
	t.Parallel()

	a := idalloc.NewAllocator()
	assert.Equal(t, idalloc.DefaultRangeSize, a.RangeSize())

	r, ok := a.Next()
	require.True(t, ok)
	assert.Equal(t, idalloc.Range{Start: 0, End: 10}, r)

	r, ok = a.Next()
	require.True(t, ok)
	assert.Equal(t, idalloc.Range{Start: 10, End: 20}, r)
}

func TestAllocator_ReusesLastFreed(t *testing.T) {
	t.Parallel()

	a := idalloc.NewAllocator(idalloc.WithRangeSize(3))
	a.Release(idalloc.Range{Start: 32, End: 35}, idalloc.Range{Start: 38, End: 41})

	r, ok := a.Next()
	require.True(t, ok)
	assert.Equal(t, idalloc.Range{Start: 38, End: 41}, r)

	r, _ = a.Next()
	assert.Equal(t, idalloc.Range{Start: 32, End: 35}, r)

	r, _ = a.Next()
	assert.Equal(t, idalloc.Range{Start: 0, End: 3}, r)
}

func TestAllocator_Limit(t *testing.T) {
	t.Parallel()

	a := idalloc.NewAllocator(idalloc.WithRangeSize(4), idalloc.WithLimit(10))

	_, ok := a.Next()
	require.True(t, ok)
	_, ok = a.Next()
	require.True(t, ok)
	_, ok = a.Next()
	assert.False(t, ok, "only two full ranges fit below the limit")

	a.Release(idalloc.Range{Start: 0, End: 4})
	r, ok := a.Next()
	require.True(t, ok)
	assert.Equal(t, idalloc.Range{Start: 0, End: 4}, r)
}

func TestAllocator_SnapshotRestore(t *testing.T) {
	t.Parallel()

	a := idalloc.NewAllocator(idalloc.WithRangeSize(5))
	a.Next()
	a.Release(idalloc.Range{Start: 100, End: 105})

	state := a.Snapshot()
	assert.Equal(t, idalloc.State{
		Next:      5,
		RangeSize: 5,
		Freed:     []idalloc.Range{{Start: 100, End: 105}},
	}, state)

	b := idalloc.NewAllocator()
	b.Restore(state)
	assert.Equal(t, 5, b.RangeSize())

	r, _ := b.Next()
	assert.Equal(t, idalloc.Range{Start: 100, End: 105}, r)
	r, _ = b.Next()
	assert.Equal(t, idalloc.Range{Start: 5, End: 10}, r)

	// The snapshot does not alias the allocator's free list.
	assert.Len(t, state.Freed, 1)
}

func TestAllocator_Concurrent(t *testing.T) {
	t.Parallel()

	a := idalloc.NewAllocator()
	const workers = 8
	const perWorker = 50

	var (
		mu   sync.Mutex
		seen = make(map[idalloc.ID]bool)
		wg   sync.WaitGroup
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := idalloc.NewPool(a)
			ids := make([]idalloc.ID, 0, perWorker)
			for range perWorker {
				ids = append(ids, p.Next())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range ids {
				assert.False(t, seen[id], "duplicate id %d", id)
				seen[id] = true
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*perWorker)
}

func TestPool_Next(t *testing.T) {
	t.Parallel()

	a := idalloc.NewAllocator(idalloc.WithRangeSize(2))
	p := idalloc.NewPool(a)
	assert.False(t, p.HasNextAvailable())

	assert.Equal(t, idalloc.ID(0), p.Next())
	assert.True(t, p.HasNextAvailable())
	assert.Equal(t, idalloc.ID(1), p.Next())
	assert.False(t, p.HasNextAvailable())
	assert.Equal(t, idalloc.ID(2), p.Next())

	assert.Equal(t, []idalloc.Range{{Start: 0, End: 2}, {Start: 2, End: 4}}, p.Ranges())
}

func TestPool_PanicsWhenExhausted(t *testing.T) {
	t.Parallel()

	a := idalloc.NewAllocator(idalloc.WithRangeSize(1), idalloc.WithLimit(1))
	p := idalloc.NewPool(a)
	p.Next()

	assert.PanicsWithValue(t, idalloc.ErrExhausted, func() { p.Next() })
}

func TestPool_Release(t *testing.T) {
	t.Parallel()

	a := idalloc.NewAllocator(idalloc.WithRangeSize(2))
	p := idalloc.NewPool(a)
	for range 3 {
		p.Next()
	}

	p.Release()
	assert.Equal(t, []idalloc.Range{{Start: 0, End: 2}, {Start: 2, End: 4}}, a.Snapshot().Freed)
	assert.Empty(t, p.Ranges())

	p.Release()
	assert.Len(t, a.Snapshot().Freed, 2, "release is idempotent")

	q := idalloc.NewPool(a)
	assert.Equal(t, idalloc.ID(2), q.Next(), "the last released range is reused first")
}

func TestMergePools(t *testing.T) {
	t.Parallel()

	a := idalloc.NewAllocator(idalloc.WithRangeSize(3))
	p1, p2 := idalloc.NewPool(a), idalloc.NewPool(a)
	p1.Next()
	p2.Next()

	merged := idalloc.MergePools(p1, nil, p2)
	assert.Equal(t, []idalloc.Range{{Start: 0, End: 3}, {Start: 3, End: 6}}, merged.Ranges())
	assert.False(t, merged.HasNextAvailable())
	assert.Empty(t, p1.Ranges())
	assert.Empty(t, p2.Ranges())
	assert.Same(t, a, merged.Allocator())

	assert.Equal(t, idalloc.ID(6), merged.Next())

	merged.Release()
	assert.Len(t, a.Snapshot().Freed, 3)
}
