package heap

import "errors"

var (
	// ErrOutOfMemory indicates the operating system refused to supply another
	// chunk. Errors returned by Grow wrap this sentinel.
	ErrOutOfMemory = errors.New("heap: out of memory")

	// ErrClosed indicates an operation on a heap whose chunks have been
	// released via Close.
	ErrClosed = errors.New("heap: closed")
)
