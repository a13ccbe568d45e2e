package pow2

import "math/bits"

// Power-of-two arithmetic for the buddy allocator.
// Every block size the allocator grants is a power of two, and every block
// offset is a multiple of its own size; these helpers keep that arithmetic in
// one place.

// IsPowerOfTwo reports whether n is a positive power of two.
//
// Example:
//
//	IsPowerOfTwo(32) = true
//	IsPowerOfTwo(48) = false
//	IsPowerOfTwo(0)  = false
func IsPowerOfTwo(n int64) bool {
	return n > 0 && n&(n-1) == 0
}

// IsAligned reports whether off is a multiple of size.
// size must be a positive power of two.
//
// Example:
//
//	IsAligned(64, 32) = true
//	IsAligned(96, 64) = false
func IsAligned(off, size int64) bool {
	return off&(size-1) == 0
}

// Log2 returns the base-two logarithm of n.
// n must be a positive power of two; for other inputs the result is the
// position of the highest set bit.
//
// Example:
//
//	Log2(32)   = 5
//	Log2(4096) = 12
func Log2(n int64) int {
	return bits.Len64(uint64(n)) - 1
}
