// Package alloc implements a buddy allocator over a growable heap region.
//
// # Overview
//
// The allocator serves variably sized requests by rounding each one up to a
// power-of-two block size and carving blocks out of the heap package's
// chunked region. Blocks split in halves on the way down and merge back with
// their "buddy", the neighbor at offset XOR size, on the way up, so freed
// memory continuously reassembles into the largest possible blocks.
//
// # Block Sizes
//
// A Geometry defines the ladder of grantable sizes. The default ladder has
// 8 levels:
//
//	Level 0:   32 B
//	Level 1:   64 B
//	Level 2:  128 B
//	Level 3:  256 B
//	Level 4:  512 B
//	Level 5:    1 KB
//	Level 6:    2 KB
//	Level 7:    4 KB  (top level, the heap growth unit)
//
// Requests above the top size are rejected with ErrSizeTooLarge. The granted
// size is always the smallest level size covering the request, and a block's
// offset is always a multiple of its size.
//
// # Allocation
//
// Allocate scans the free lists from the target level upward and takes the
// first free block it finds. A larger block is split in halves repeatedly,
// shelving the upper half on the free list of each level passed, until the
// target size remains. When no level has a free block the heap grows by
// exactly one top-level block first.
//
// # Coalescing
//
// Releasing a block looks up its buddy on the same level's free list. If the
// buddy is free the two recombine into the lower-addressed parent, and the
// search repeats one level up, so one release can cascade into a top-level
// block. If the buddy is in use the block just joins its level's free list.
//
// # Handles
//
// Allocate returns an Allocation handle that owns the block:
//
//	block, err := a.Allocate(100)
//	if err != nil {
//	    return err
//	}
//	defer block.Release()
//
//	copy(block.Bytes(), payload)
//
// Release empties the handle, so releasing twice through the same handle is
// safe. Copying a non-empty handle creates aliases whose independent
// releases corrupt the free lists; transfer ownership with MoveFrom instead.
//
// # Heap Growth
//
// The heap only ever grows by one top-level block at a time, and only when a
// request finds every candidate level empty. Grow pre-provisions a block
// explicitly. Memory is returned to the OS only when the underlying heap is
// closed.
//
// # Usage Example
//
//	h, err := heap.New(int64(alloc.DefaultGeometry.MaxBlockSize()))
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//
//	a, err := alloc.New(h, nil)
//	if err != nil {
//	    return err
//	}
//
//	block, err := a.Allocate(100)
//	if err != nil {
//	    return err
//	}
//	defer block.Release()
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally. The prometheus collectors are safe to scrape from other
// goroutines; Stats snapshots are for the owning goroutine.
//
// # Observability
//
// Options.Logger receives debug-level events on heap growth and on split and
// merge cascades. Options.Registerer receives buddykit_alloc_* counters and
// gauges. Stats returns plain counters and DumpFreeLists writes a free-list
// snapshot for troubleshooting.
//
// # Related Packages
//
//   - github.com/joshuapare/buddykit/heap: The growable chunked memory region
package alloc
