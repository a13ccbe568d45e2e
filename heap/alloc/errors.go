package alloc

import "errors"

var (
	// ErrInvalidSize indicates an allocation request for zero or negative bytes.
	ErrInvalidSize = errors.New("alloc: invalid allocation size")

	// ErrSizeTooLarge indicates a request larger than the geometry's top block
	// size. Oversized requests are rejected, never clamped.
	ErrSizeTooLarge = errors.New("alloc: size exceeds largest block")

	// ErrChunkMismatch indicates the heap's chunk size does not equal the
	// geometry's largest block size. Buddy address arithmetic requires every
	// chunk to be exactly one top-level block.
	ErrChunkMismatch = errors.New("alloc: heap chunk size does not match geometry")

	// ErrBadGeometry indicates a Geometry that violates its constraints.
	ErrBadGeometry = errors.New("alloc: bad geometry")
)
