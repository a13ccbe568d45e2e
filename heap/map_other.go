//go:build !unix

package heap

// mapChunk falls back to Go-managed memory on platforms without anonymous
// mmap support.
func mapChunk(n int) ([]byte, error) {
	return make([]byte, n), nil
}

func unmapChunk(b []byte) error {
	return nil
}
