package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/buddykit/heap"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestAllocator builds an allocator over a fresh heap matched to geo,
// with debug checks enabled. The heap is closed when the test ends.
func newTestAllocator(t testing.TB, geo Geometry) *Allocator {
	t.Helper()
	return newTestAllocatorWithOptions(t, &Options{Geometry: geo, DebugChecks: true})
}

// newTestAllocatorWithOptions builds an allocator over a fresh heap matched
// to the options' geometry. The heap is closed when the test ends.
func newTestAllocatorWithOptions(t testing.TB, opts *Options) *Allocator {
	t.Helper()

	geo := opts.Geometry
	if geo == (Geometry{}) {
		geo = DefaultGeometry
	}
	h, err := heap.New(int64(geo.MaxBlockSize()))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, h.Close())
	})

	a, err := New(h, opts)
	require.NoError(t, err)
	return a
}

// mustAllocate grants a block or fails the test.
func mustAllocate(t testing.TB, a *Allocator, n int) Allocation {
	t.Helper()
	block, err := a.Allocate(n)
	require.NoError(t, err)
	return block
}

// freeOffsets collects the free block offsets of one level in list order.
func freeOffsets(a *Allocator, level int) []int64 {
	var offs []int64
	a.free.walk(level, func(off int64) {
		offs = append(offs, off)
	})
	return offs
}

// totalFreeBlocks counts free blocks across all levels.
func totalFreeBlocks(a *Allocator) int {
	total := 0
	for lvl := range a.levels.numLevels() {
		total += a.free.count(lvl)
	}
	return total
}
