package heap

import (
	"fmt"

	"github.com/joshuapare/buddykit/internal/pow2"
)

// Heap is the process heap region, backed by anonymous mmap (unix) or a byte
// slice (others). Offsets are virtual: chunk k covers
// [k*chunkSize, (k+1)*chunkSize).
type Heap struct {
	chunkSize  int64
	chunkShift int
	chunkMask  int64
	chunks     [][]byte
	closed     bool
}

// New returns an empty heap that grows in chunks of chunkSize bytes.
// chunkSize must be a positive power of two so chunk-relative arithmetic
// stays exact.
func New(chunkSize int64) (*Heap, error) {
	if !pow2.IsPowerOfTwo(chunkSize) {
		return nil, fmt.Errorf("heap: chunk size %d is not a positive power of two", chunkSize)
	}
	return &Heap{
		chunkSize:  chunkSize,
		chunkShift: pow2.Log2(chunkSize),
		chunkMask:  chunkSize - 1,
	}, nil
}

// Grow obtains one more chunk from the operating system and returns the
// offset of its first byte. The new bytes are zeroed. A refused mapping
// returns an error wrapping ErrOutOfMemory; nothing is mutated in that case.
func (h *Heap) Grow() (int64, error) {
	if h.closed {
		return 0, ErrClosed
	}
	b, err := mapChunk(int(h.chunkSize))
	if err != nil {
		return 0, fmt.Errorf("heap: grow by %d bytes: %w: %v", h.chunkSize, ErrOutOfMemory, err)
	}
	base := int64(len(h.chunks)) << h.chunkShift
	h.chunks = append(h.chunks, b)
	return base, nil
}

// Slice returns the live window [off, off+n). The window must lie within a
// single chunk; out-of-range arguments panic the same way slicing does.
// The returned slice aliases mapped memory and stays valid until Close.
func (h *Heap) Slice(off, n int64) []byte {
	c := h.chunks[off>>h.chunkShift]
	rest := off & h.chunkMask
	return c[rest : rest+n : rest+n]
}

// Size returns the total number of mapped bytes.
func (h *Heap) Size() int64 {
	return int64(len(h.chunks)) << h.chunkShift
}

// ChunkSize returns the growth granularity in bytes.
func (h *Heap) ChunkSize() int64 {
	return h.chunkSize
}

// NumChunks returns how many chunks have been mapped.
func (h *Heap) NumChunks() int {
	return len(h.chunks)
}

// Close releases every chunk back to the operating system. All windows
// previously returned by Slice become invalid. Closing twice is a no-op.
func (h *Heap) Close() error {
	if h.closed {
		return nil
	}
	var err error
	for _, c := range h.chunks {
		if e := unmapChunk(c); e != nil && err == nil {
			err = e
		}
	}
	h.chunks = nil
	h.closed = true
	return err
}
