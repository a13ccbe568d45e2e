package alloc

import (
	"encoding/binary"

	"github.com/joshuapare/buddykit/heap"
)

// nilRef terminates a free list. It encodes as all-ones, which no block
// offset can be; offset zero is a valid block.
const nilRef int64 = -1

// freeStore tracks the free blocks of every level as singly linked lists
// threaded through the free blocks themselves: the first linkSize bytes of a
// free block hold the offset of the next free block on the same level. A
// block is on at most one list at a time, and only the operations below move
// blocks in and out.
type freeStore struct {
	h      *heap.Heap
	heads  []int64
	counts []int
}

// newFreeStore builds an empty store with one list per level.
func newFreeStore(h *heap.Heap, levels int) *freeStore {
	s := &freeStore{
		h:      h,
		heads:  make([]int64, levels),
		counts: make([]int, levels),
	}
	for i := range s.heads {
		s.heads[i] = nilRef
	}
	return s
}

func (s *freeStore) readLink(off int64) int64 {
	return int64(binary.LittleEndian.Uint64(s.h.Slice(off, linkSize)))
}

func (s *freeStore) writeLink(off, next int64) {
	binary.LittleEndian.PutUint64(s.h.Slice(off, linkSize), uint64(next))
}

// isEmpty reports whether a level has no free blocks.
func (s *freeStore) isEmpty(level int) bool {
	return s.heads[level] == nilRef
}

// insert pushes a block as the new head of its level list. Only the block's
// link word is written.
func (s *freeStore) insert(level int, off int64) {
	s.writeLink(off, s.heads[level])
	s.heads[level] = off
	s.counts[level]++
}

// takeHead pops and returns the head block of a level list. The level must
// not be empty.
func (s *freeStore) takeHead(level int) int64 {
	off := s.heads[level]
	s.heads[level] = s.readLink(off)
	s.counts[level]--
	return off
}

// removeIfPresent unlinks one specific block from its level list and reports
// whether it was found. The scan is linear in the list length.
func (s *freeStore) removeIfPresent(level int, off int64) bool {
	cur := s.heads[level]
	if cur == nilRef {
		return false
	}
	if cur == off {
		s.heads[level] = s.readLink(cur)
		s.counts[level]--
		return true
	}
	for {
		next := s.readLink(cur)
		if next == nilRef {
			return false
		}
		if next == off {
			s.writeLink(cur, s.readLink(next))
			s.counts[level]--
			return true
		}
		cur = next
	}
}

// count returns the number of free blocks on a level.
func (s *freeStore) count(level int) int {
	return s.counts[level]
}

// contains reports whether a specific block is on a level list.
func (s *freeStore) contains(level int, off int64) bool {
	for cur := s.heads[level]; cur != nilRef; cur = s.readLink(cur) {
		if cur == off {
			return true
		}
	}
	return false
}

// walk calls fn for every free block on a level, in list order.
func (s *freeStore) walk(level int, fn func(off int64)) {
	for cur := s.heads[level]; cur != nilRef; cur = s.readLink(cur) {
		fn(cur)
	}
}
