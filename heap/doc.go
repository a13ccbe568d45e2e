// Package heap manages the growable memory region the buddy allocator carves
// blocks from.
//
// # Overview
//
// A Heap is a monotonically growing sequence of fixed-size chunks obtained
// from the operating system (anonymous mmap on unix, Go-managed memory
// elsewhere). Chunks are addressed through a single virtual offset space:
// chunk k covers offsets [k*chunkSize, (k+1)*chunkSize). A mapped chunk never
// moves and is never returned to the OS before Close, so byte windows handed
// out by Slice stay valid for the life of the heap.
//
// # Growth
//
// Grow is the only way memory enters a Heap. It maps exactly one chunk and
// returns the offset of its first byte; when the OS refuses the mapping the
// error wraps ErrOutOfMemory. There is no partial growth and no shrinkage.
//
// # Usage
//
//	h, err := heap.New(4096)
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//
//	base, err := h.Grow()       // offset of the new chunk
//	buf := h.Slice(base, 64)    // live window into mapped memory
//
// # Thread Safety
//
// Heap instances are not thread-safe. Callers must synchronize access
// externally.
package heap
