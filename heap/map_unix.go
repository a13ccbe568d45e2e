//go:build unix

package heap

import "golang.org/x/sys/unix"

// mapChunk obtains n bytes of zeroed, page-backed memory from the OS.
func mapChunk(n int) ([]byte, error) {
	return unix.Mmap(
		-1,
		0,
		n,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON,
	)
}

// unmapChunk returns a chunk obtained from mapChunk to the OS.
func unmapChunk(b []byte) error {
	return unix.Munmap(b)
}
