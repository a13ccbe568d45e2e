package alloc

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// allocatorStats accumulates operation counters. Plain ints: the allocator
// is single-threaded and so are its counters.
type allocatorStats struct {
	allocs     int64
	releases   int64
	grows      int64
	grownBytes int64
	splits     int64
	merges     int64
	inUseBytes int64
}

// Stats is a point-in-time snapshot of allocator activity.
type Stats struct {
	Allocs     int64 // blocks granted
	Releases   int64 // blocks returned
	Grows      int64 // heap growths performed
	GrownBytes int64 // total bytes mapped from the heap
	Splits     int64 // block splits performed
	Merges     int64 // buddy merges performed
	InUseBytes int64 // bytes currently granted
	FreeBytes  int64 // bytes currently on free lists
	FreeBlocks []int // free block count per level
}

// Stats returns a snapshot of the allocator's counters and free lists.
// InUseBytes plus FreeBytes always equals GrownBytes.
func (a *Allocator) Stats() Stats {
	s := Stats{
		Allocs:     a.stats.allocs,
		Releases:   a.stats.releases,
		Grows:      a.stats.grows,
		GrownBytes: a.stats.grownBytes,
		Splits:     a.stats.splits,
		Merges:     a.stats.merges,
		InUseBytes: a.stats.inUseBytes,
		FreeBlocks: make([]int, a.levels.numLevels()),
	}
	for i := range s.FreeBlocks {
		c := a.free.count(i)
		s.FreeBlocks[i] = c
		s.FreeBytes += int64(c) * int64(a.levels.size(i))
	}
	return s
}

// String renders the snapshot in human units.
func (s Stats) String() string {
	return fmt.Sprintf("allocs=%d releases=%d grows=%d grown=%s in-use=%s free=%s splits=%d merges=%d",
		s.Allocs, s.Releases, s.Grows,
		humanize.IBytes(uint64(s.GrownBytes)),
		humanize.IBytes(uint64(s.InUseBytes)),
		humanize.IBytes(uint64(s.FreeBytes)),
		s.Splits, s.Merges)
}
