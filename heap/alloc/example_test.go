package alloc_test

import (
	"fmt"
	"os"

	"github.com/joshuapare/buddykit/heap"
	"github.com/joshuapare/buddykit/heap/alloc"
)

func Example() {
	h, err := heap.New(int64(alloc.DefaultGeometry.MaxBlockSize()))
	if err != nil {
		panic(err)
	}
	defer h.Close()

	a, err := alloc.New(h, nil)
	if err != nil {
		panic(err)
	}

	block, err := a.Allocate(100)
	if err != nil {
		panic(err)
	}
	defer block.Release()

	copy(block.Bytes(), "hello")
	fmt.Println(block.Offset(), block.Size())
	// Output: 0 128
}

func ExampleAllocator_DumpFreeLists() {
	h, err := heap.New(int64(alloc.DefaultGeometry.MaxBlockSize()))
	if err != nil {
		panic(err)
	}
	defer h.Close()

	a, err := alloc.New(h, nil)
	if err != nil {
		panic(err)
	}

	block, err := a.Allocate(10)
	if err != nil {
		panic(err)
	}
	defer block.Release()

	if err := a.DumpFreeLists(os.Stdout); err != nil {
		panic(err)
	}
	// Output:
	// geometry general: 8 levels, 32 B to 4.0 KiB blocks
	// level 0 (32 B): 1 free [32]
	// level 1 (64 B): 1 free [64]
	// level 2 (128 B): 1 free [128]
	// level 3 (256 B): 1 free [256]
	// level 4 (512 B): 1 free [512]
	// level 5 (1.0 KiB): 1 free [1024]
	// level 6 (2.0 KiB): 1 free [2048]
	// level 7 (4.0 KiB): 0 free []
	// free 4.0 KiB of 4.0 KiB mapped, 32 B in use
}

func ExampleAllocation_MoveFrom() {
	h, err := heap.New(int64(alloc.DefaultGeometry.MaxBlockSize()))
	if err != nil {
		panic(err)
	}
	defer h.Close()

	a, err := alloc.New(h, nil)
	if err != nil {
		panic(err)
	}

	src, err := a.Allocate(10)
	if err != nil {
		panic(err)
	}

	var dst alloc.Allocation
	dst.MoveFrom(&src)
	defer dst.Release()

	fmt.Println(src.Valid(), dst.Valid())
	// Output: false true
}
