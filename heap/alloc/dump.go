package alloc

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// DumpFreeLists writes a human-readable snapshot of the free lists to w: one
// line per level with the block size, the free count, and the offsets in
// list order, then a totals line.
func (a *Allocator) DumpFreeLists(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "geometry %s: %d levels, %s to %s blocks\n",
		a.levels.geo.Name, a.levels.numLevels(),
		humanize.IBytes(uint64(a.levels.size(0))),
		humanize.IBytes(uint64(a.levels.maxSize)))
	for lvl := range a.levels.numLevels() {
		offs := make([]int64, 0, a.free.count(lvl))
		a.free.walk(lvl, func(off int64) {
			offs = append(offs, off)
		})
		fmt.Fprintf(&b, "level %d (%s): %d free %v\n",
			lvl, humanize.IBytes(uint64(a.levels.size(lvl))), len(offs), offs)
	}
	st := a.Stats()
	fmt.Fprintf(&b, "free %s of %s mapped, %s in use\n",
		humanize.IBytes(uint64(st.FreeBytes)),
		humanize.IBytes(uint64(st.GrownBytes)),
		humanize.IBytes(uint64(st.InUseBytes)))
	_, err := io.WriteString(w, b.String())
	return err
}
