package alloc

// Allocation is the owning handle for one granted block. The zero value is
// an empty handle. Exactly one live handle owns a given block: copying a
// non-empty Allocation creates aliases, and releasing more than one of them
// corrupts the free lists. Transfer ownership with MoveFrom instead.
type Allocation struct {
	a    *Allocator
	off  int64
	size int
}

// Valid reports whether the handle currently owns a block.
func (al *Allocation) Valid() bool {
	return al.a != nil
}

// Offset returns the owned block's offset in the heap. Meaningful only while
// Valid reports true; offset zero is a real block address.
func (al *Allocation) Offset() int64 {
	return al.off
}

// Size returns the granted size in bytes, zero for an empty handle. The
// granted size is always an exact level size, never the requested byte
// count.
func (al *Allocation) Size() int {
	return al.size
}

// Bytes returns the granted window, len equal to Size. The window stays
// valid until the block is released; its initial content is unspecified,
// reused blocks carry stale bytes. Returns nil for an empty handle.
func (al *Allocation) Bytes() []byte {
	if al.a == nil {
		return nil
	}
	return al.a.h.Slice(al.off, int64(al.size))
}

// Release returns the owned block to the allocator and empties the handle.
// Releasing an empty handle is a no-op, so a released handle can be released
// again safely.
func (al *Allocation) Release() {
	if al.a == nil {
		return
	}
	al.a.release(al.off, al.size)
	*al = Allocation{}
}

// MoveFrom transfers ownership out of src, first releasing any block the
// receiver currently owns. src is empty afterward. Moving a handle into
// itself is a no-op.
func (al *Allocation) MoveFrom(src *Allocation) {
	if al == src {
		return
	}
	al.Release()
	*al = *src
	*src = Allocation{}
}
