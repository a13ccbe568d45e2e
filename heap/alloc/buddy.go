package alloc

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/joshuapare/buddykit/heap"
	"github.com/joshuapare/buddykit/internal/pow2"
)

// Allocator is a buddy allocator serving power-of-two sized blocks out of a
// growable Heap. It owns all of its state; independent allocators never
// interact. It is not safe for concurrent use, see the package documentation.
type Allocator struct {
	h      *heap.Heap
	levels *levelTable
	free   *freeStore

	logger      log.Logger
	metrics     *allocMetrics
	stats       allocatorStats
	debugChecks bool

	// grow is swapped out by tests to inject growth failures.
	grow func() (int64, error)
}

// New builds an Allocator on top of h. A nil opts selects DefaultOptions;
// a zero Geometry in opts is replaced by DefaultGeometry. The heap's chunk
// size must equal the geometry's largest block size, so that every chunk is
// exactly one top-level block and buddy pairs never straddle chunks.
func New(h *heap.Heap, opts *Options) (*Allocator, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
		if o.Geometry == (Geometry{}) {
			o.Geometry = DefaultGeometry
		}
	}

	levels, err := newLevelTable(o.Geometry)
	if err != nil {
		return nil, err
	}
	if h.ChunkSize() != int64(levels.maxSize) {
		return nil, fmt.Errorf("%w: heap chunk %d bytes, largest block %d bytes",
			ErrChunkMismatch, h.ChunkSize(), levels.maxSize)
	}

	logger := o.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}

	a := &Allocator{
		h:           h,
		levels:      levels,
		free:        newFreeStore(h, o.Geometry.LevelCount),
		logger:      logger,
		metrics:     newAllocMetrics(o.Registerer, o.Geometry.Name),
		debugChecks: o.DebugChecks,
	}
	a.grow = a.growMaxBlock
	return a, nil
}

// Geometry returns the ladder this allocator serves from.
func (a *Allocator) Geometry() Geometry {
	return a.levels.geo
}

// Allocate grants a block of at least n bytes. The granted size is the
// smallest level size covering n, and the block's offset is a multiple of
// that size. When every level from the target upward is empty, the heap
// grows by exactly one top-level block before the request is served; a
// failed growth returns an error wrapping heap.ErrOutOfMemory and leaves the
// free lists untouched.
func (a *Allocator) Allocate(n int) (Allocation, error) {
	target, err := a.levels.levelFor(n)
	if err != nil {
		return Allocation{}, err
	}

	found, off, err := a.takeFrom(target)
	if err != nil {
		return Allocation{}, err
	}

	// Split down to the target, shelving the upper half at each level.
	if found > target {
		level.Debug(a.logger).Log("msg", "split cascade",
			"from_level", found, "to_level", target, "offset", off)
	}
	for lvl := found; lvl > target; lvl-- {
		half := int64(a.levels.size(lvl - 1))
		a.free.insert(lvl-1, off+half)
		a.stats.splits++
		a.metrics.splits.Inc()
	}

	granted := a.levels.size(target)
	a.stats.allocs++
	a.stats.inUseBytes += int64(granted)
	a.metrics.allocs.Inc()
	a.metrics.inUseBytes.Add(float64(granted))
	return Allocation{a: a, off: off, size: granted}, nil
}

// takeFrom removes and returns the first free block at or above the target
// level, growing the heap when every candidate level is empty.
func (a *Allocator) takeFrom(target int) (int, int64, error) {
	for lvl := target; lvl < a.levels.numLevels(); lvl++ {
		if !a.free.isEmpty(lvl) {
			return lvl, a.free.takeHead(lvl), nil
		}
	}
	off, err := a.grow()
	if err != nil {
		return 0, 0, err
	}
	return a.levels.numLevels() - 1, off, nil
}

// growMaxBlock maps one fresh top-level block and returns its base offset.
// The free lists are not touched until the block is in hand, so a refused
// growth leaves the allocator exactly as it was.
func (a *Allocator) growMaxBlock() (int64, error) {
	base, err := a.h.Grow()
	if err != nil {
		a.metrics.growFailures.Inc()
		return 0, fmt.Errorf("growing by %d bytes: %w", a.levels.maxSize, err)
	}
	a.stats.grows++
	a.stats.grownBytes += int64(a.levels.maxSize)
	a.metrics.grows.Inc()
	a.metrics.grownBytes.Add(float64(a.levels.maxSize))
	level.Debug(a.logger).Log("msg", "heap grown",
		"bytes", a.levels.maxSize, "base", base)
	return base, nil
}

// Grow maps one additional top-level block and places it on the top free
// list. Use it to pre-provision memory ahead of a latency-sensitive phase.
func (a *Allocator) Grow() error {
	off, err := a.grow()
	if err != nil {
		return err
	}
	a.free.insert(a.levels.numLevels()-1, off)
	return nil
}

// release returns a block to the free store, merging it with its buddy at
// each level until a buddy is missing or the block has reached the top size.
// Reached only through Allocation handles, with size an exact level size.
func (a *Allocator) release(off int64, size int) {
	lvl := a.levels.levelOf(size)
	if a.debugChecks {
		a.checkRelease(lvl, off, size)
	}

	blockSize := int64(size)
	topSize := int64(a.levels.maxSize)
	merges := 0
	for blockSize != topSize {
		buddy := off ^ blockSize
		if !a.free.removeIfPresent(lvl, buddy) {
			break
		}
		off &^= blockSize
		blockSize <<= 1
		lvl++
		merges++
	}
	a.free.insert(lvl, off)

	a.stats.releases++
	a.stats.merges += int64(merges)
	a.stats.inUseBytes -= int64(size)
	a.metrics.releases.Inc()
	a.metrics.inUseBytes.Sub(float64(size))
	if merges > 0 {
		a.metrics.merges.Add(float64(merges))
		level.Debug(a.logger).Log("msg", "merge cascade",
			"merges", merges, "final_level", lvl, "offset", off)
	}
}

// checkRelease panics on the two detectable release preconditions: block
// offsets are always multiples of their size, and a live block is never on
// its free list.
func (a *Allocator) checkRelease(lvl int, off int64, size int) {
	if !pow2.IsAligned(off, int64(size)) {
		panic(fmt.Sprintf("alloc: release of misaligned offset %d for %d-byte block", off, size))
	}
	if a.free.contains(lvl, off) {
		panic(fmt.Sprintf("alloc: double release of %d-byte block at offset %d", size, off))
	}
}
