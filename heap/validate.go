package heap

import (
	"unsafe"

	"github.com/memkit/inblock"
	"github.com/pkg/errors"
)

// Validate performs internal consistency checks on the heap: strict address ordering of
// the free list, link symmetry, exhaustive coalescing, payload alignment, and capacity
// conservation across the whole region. When the implementation is functioning correctly
// it should not be possible for this method to return an error, but it may assist in
// diagnosing issues. The physical walk makes it O(blocks), so it has no place on a hot
// path; debug builds run it around every operation.
func (h *Heap) Validate() error {
	if h.data == nil {
		return errors.New("the heap is not bound to a region")
	}

	if uintptr(unsafe.Pointer(&h.data[0]))%WordSize != 0 {
		return errors.Errorf("the bound region's base address %p is not word-aligned", &h.data[0])
	}

	if len(h.data) <= HeaderSize {
		return errors.Errorf("the bound region is %d bytes, which cannot hold a block header", len(h.data))
	}

	// Check integrity of the free list
	var freeCount, freeSize int
	prev := NoBlock
	for it := h.listHead; it != NoBlock; it = h.nextFree(it) {
		if it < 0 || it+HeaderSize > len(h.data) {
			return errors.Errorf("free block offset %d is outside the arena", it)
		}

		if h.prevFree(it) != prev {
			return errors.Errorf("free block at offset %d does not link back to its list predecessor", it)
		}

		if prev != NoBlock && it <= prev {
			return errors.Errorf("free list is not strictly address ordered: offset %d follows offset %d", it, prev)
		}

		size := h.blockSize(it)
		if size < 0 || it+HeaderSize+size > len(h.data) {
			return errors.Errorf("free block at offset %d with size %d extends past the end of the arena", it, size)
		}

		if prev != NoBlock && prev+HeaderSize+h.blockSize(prev) == it {
			return errors.Errorf("free blocks at offsets %d and %d are physically adjacent but were never merged", prev, it)
		}

		freeCount++
		freeSize += size
		prev = it
	}

	if freeCount != h.blocksFreeCount {
		return errors.Errorf("the heap tracks %d free blocks, but the free list holds %d", h.blocksFreeCount, freeCount)
	}

	if freeSize != h.blocksFreeSize {
		return errors.Errorf("the heap tracks %d free payload bytes, but the free blocks only added up to %d", h.blocksFreeSize, freeSize)
	}

	// Walk the region block by block and reconcile it against the free list
	var offset, allocCount int
	nextFree := h.listHead
	for offset < len(h.data) {
		if inblock.AlignDown(offset, WordSize) != offset {
			return errors.Errorf("block at offset %d is not word-aligned", offset)
		}

		size := h.blockSize(offset)
		if size < 0 || offset+HeaderSize+size > len(h.data) {
			return errors.Errorf("block at offset %d has corrupt size %d", offset, size)
		}

		if offset == nextFree {
			nextFree = h.nextFree(offset)
		} else {
			allocCount++
		}

		offset += HeaderSize + size
	}

	if offset != len(h.data) {
		return errors.Errorf("the blocks added up to %d bytes, but the arena is %d bytes", offset, len(h.data))
	}

	if nextFree != NoBlock {
		return errors.Errorf("free block at offset %d was never reached by the physical walk", nextFree)
	}

	if allocCount != h.allocCount {
		return errors.Errorf("the allocation count of the heap is %d, but the taken blocks only added up to %d", h.allocCount, allocCount)
	}

	return nil
}
