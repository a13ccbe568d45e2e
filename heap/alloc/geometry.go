package alloc

import (
	"fmt"

	"github.com/joshuapare/buddykit/internal/pow2"
)

// linkSize is the number of bytes at the start of every free block that hold
// the offset of the next free block on its level list.
const linkSize = 8

// maxLevelCount bounds the ladder height so the reverse-lookup table stays
// small. Sixteen levels span a 32768x size range.
const maxLevelCount = 16

// Geometry defines the block size ladder the allocator serves from.
// Level i grants blocks of MinBlockSize << i bytes, for i in [0, LevelCount).
type Geometry struct {
	// Name for this geometry (used in metrics labels and dumps)
	Name string

	// MinBlockSize is the smallest grantable block size in bytes.
	// Must be a power of two and at least 8 (the free-list link word).
	MinBlockSize int

	// LevelCount is the number of block size levels (1 to 16).
	LevelCount int
}

// Predefined geometries.
var (
	// GeometryGeneral: 8 levels from 32B to 4KB, the reference ladder.
	// Good fit for mixed small-object workloads.
	GeometryGeneral = Geometry{
		Name:         "general",
		MinBlockSize: 32,
		LevelCount:   8,
	}

	// GeometryCompact: 8 levels from 16B to 2KB.
	// Tighter packing for workloads dominated by tiny objects.
	GeometryCompact = Geometry{
		Name:         "compact",
		MinBlockSize: 16,
		LevelCount:   8,
	}

	// GeometryPages: 9 levels from 4KB to 1MB.
	// Page-granular blocks for buffer pools and I/O staging.
	GeometryPages = Geometry{
		Name:         "pages",
		MinBlockSize: 4096,
		LevelCount:   9,
	}

	// Default geometry (used if none specified).
	DefaultGeometry = GeometryGeneral
)

// MaxBlockSize returns the largest grantable block size. Pair it with
// heap.New: the heap's chunk size must equal this value.
func (g Geometry) MaxBlockSize() int {
	return g.MinBlockSize << (g.LevelCount - 1)
}

// levelTable holds the computed size ladder and the reverse size-to-level
// lookup for a Geometry.
type levelTable struct {
	geo      Geometry
	minShift int
	sizes    []int   // block size per level
	rev      []uint8 // target level for a request of i+1 min-size units
	maxSize  int
}

// newLevelTable validates geo and computes its ladder.
func newLevelTable(geo Geometry) (*levelTable, error) {
	if geo.MinBlockSize < linkSize || !pow2.IsPowerOfTwo(int64(geo.MinBlockSize)) {
		return nil, fmt.Errorf("%w: min block size %d must be a power of two >= %d",
			ErrBadGeometry, geo.MinBlockSize, linkSize)
	}
	if geo.LevelCount < 1 || geo.LevelCount > maxLevelCount {
		return nil, fmt.Errorf("%w: level count %d out of range [1, %d]",
			ErrBadGeometry, geo.LevelCount, maxLevelCount)
	}

	t := &levelTable{
		geo:      geo,
		minShift: pow2.Log2(int64(geo.MinBlockSize)),
		sizes:    make([]int, geo.LevelCount),
	}
	for i := range t.sizes {
		t.sizes[i] = geo.MinBlockSize << i
	}
	t.maxSize = t.sizes[geo.LevelCount-1]

	// Requests above maxSize/2 round to the top level without consulting the
	// table, so rev only covers up to maxSize/2 in min-size units.
	units := 1
	if geo.LevelCount > 1 {
		units = 1 << (geo.LevelCount - 2)
	}
	t.rev = make([]uint8, units)
	lvl := 0
	for u := range t.rev {
		if (u+1)*geo.MinBlockSize > t.sizes[lvl] {
			lvl++
		}
		t.rev[u] = uint8(lvl)
	}
	return t, nil
}

// numLevels returns the height of the ladder.
func (t *levelTable) numLevels() int {
	return len(t.sizes)
}

// size returns the block size of a level.
func (t *levelTable) size(level int) int {
	return t.sizes[level]
}

// levelFor returns the smallest level whose block size covers a request of
// n bytes.
func (t *levelTable) levelFor(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d bytes", ErrInvalidSize, n)
	}
	if n > t.maxSize {
		return 0, fmt.Errorf("%w: %d bytes, largest block is %d",
			ErrSizeTooLarge, n, t.maxSize)
	}
	units := (n + t.geo.MinBlockSize - 1) >> t.minShift
	if units > len(t.rev) {
		return len(t.sizes) - 1, nil
	}
	return int(t.rev[units-1]), nil
}

// levelOf returns the level whose block size is exactly size. The release
// path uses it to recover a granted block's level; it is not a rounding
// operation.
func (t *levelTable) levelOf(size int) int {
	return pow2.Log2(int64(size)) - t.minShift
}

// String returns the geometry name.
func (t *levelTable) String() string {
	return t.geo.Name
}
