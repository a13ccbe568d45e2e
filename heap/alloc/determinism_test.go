package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAllocationDeterminism verifies that the same sequence of allocations
// produces identical offsets across independent allocators.
func TestAllocationDeterminism(t *testing.T) {
	sequence := []int{10, 40, 100, 512, 33, 4096, 64, 1000, 2048, 17}

	run := func() []int64 {
		a := newTestAllocator(t, GeometryGeneral)
		offsets := make([]int64, len(sequence))
		for i, n := range sequence {
			block, err := a.Allocate(n)
			require.NoError(t, err)
			offsets[i] = block.Offset()
		}
		return offsets
	}

	offsets1 := run()
	offsets2 := run()

	assert.Equal(t, offsets1, offsets2, "allocations must be deterministic")
}

// TestCoalesceDeterminism verifies that releasing the same blocks in
// different orders converges on the same final free lists.
func TestCoalesceDeterminism(t *testing.T) {
	sequence := []int{10, 10, 40, 100, 10, 300}

	run := func(releaseOrder []int) Stats {
		a := newTestAllocator(t, GeometryGeneral)
		blocks := make([]Allocation, len(sequence))
		for i, n := range sequence {
			blocks[i] = mustAllocate(t, a, n)
		}
		for _, idx := range releaseOrder {
			blocks[idx].Release()
		}
		return a.Stats()
	}

	stats1 := run([]int{0, 1, 2, 3, 4, 5})
	stats2 := run([]int{5, 3, 1, 4, 0, 2})
	stats3 := run([]int{2, 4, 0, 5, 1, 3})

	assert.Equal(t, stats1.FreeBlocks, stats2.FreeBlocks,
		"final free lists should not depend on release order")
	assert.Equal(t, stats1.FreeBlocks, stats3.FreeBlocks,
		"final free lists should not depend on release order")
	assert.Equal(t, stats1.FreeBytes, stats2.FreeBytes)
	assert.Equal(t, stats1.FreeBytes, stats3.FreeBytes)

	// Full release always converges on one top-level block per chunk.
	topLevel := GeometryGeneral.LevelCount - 1
	for lvl, n := range stats1.FreeBlocks {
		if lvl == topLevel {
			assert.Equal(t, 1, n, "one reassembled top block")
		} else {
			assert.Zero(t, n, "level %d should be empty after full release", lvl)
		}
	}
}

// TestReleaseOrderIndependence drains a fully carved chunk in forward and
// reverse order; both must reassemble the identical single top block.
func TestReleaseOrderIndependence(t *testing.T) {
	drain := func(reverse bool) Stats {
		a := newTestAllocator(t, GeometryGeneral)
		blocks := make([]Allocation, 128)
		for i := range blocks {
			blocks[i] = mustAllocate(t, a, 32)
		}
		if reverse {
			for i := len(blocks) - 1; i >= 0; i-- {
				blocks[i].Release()
			}
		} else {
			for i := range blocks {
				blocks[i].Release()
			}
		}
		return a.Stats()
	}

	forward := drain(false)
	backward := drain(true)

	assert.Equal(t, forward.FreeBlocks, backward.FreeBlocks)
	assert.Equal(t, int64(127), forward.Merges)
	assert.Equal(t, int64(127), backward.Merges)
}
