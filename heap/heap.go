package heap

import (
	"encoding/binary"
	"unsafe"

	"github.com/memkit/inblock"
	"github.com/pkg/errors"
)

const (
	// WordSize is the alignment unit for the arena. Every payload offset handed out by a
	// Heap is a multiple of WordSize.
	WordSize = 8
	// HeaderSize is the number of bytes of metadata at the start of every block, free or
	// allocated: one word for the payload size and one word for each free-list link. It is
	// already a multiple of WordSize, so payloads start word-aligned.
	HeaderSize = 3 * WordSize
	// Padding is the number of extra bytes reserved per allocation on targets where a
	// pointer is wider than the word unit. Go pointers are exactly one word wide on the
	// architectures this package supports, so nothing is reserved.
	Padding = 0
)

// NoBlock is the offset value that marks a missing free-list neighbor or an empty list.
const NoBlock = -1

// nilLink is the on-arena encoding of NoBlock. Offset 0 is a valid block, so the
// all-ones pattern marks a nil link instead.
const nilLink = ^uint64(0)

// Heap manages a single caller-owned contiguous memory region in place. It never calls
// into another allocator and never grows or shrinks the region; every allocation is
// carved from the region itself, with block metadata stored inline at the front of each
// block.
//
// Free blocks form an intrusive doubly linked list kept sorted by ascending block offset.
// The links are byte offsets into the region rather than raw pointers, so the arena state
// survives the backing slice being moved around by the caller wholesale.
//
// A Heap is not safe for concurrent use. Callers that share a Heap between goroutines
// must provide their own mutual exclusion.
type Heap struct {
	data     []byte
	listHead int

	allocCount      int
	blocksFreeCount int
	blocksFreeSize  int

	callbacks AllocationCallbacks
}

var _ inblock.Validatable = &Heap{}

// NewRegion allocates a word-aligned byte slice suitable for passing to Bind. The Heap
// itself never allocates; this is a convenience for callers that do not already own a
// region.
func NewRegion(size int) []byte {
	words := make([]uint64, (size+WordSize-1)/WordSize)
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), size)
}

// Bind installs the heap over the provided region, replacing whatever state the heap held
// before. The entire region becomes a single free block. The caller keeps ownership of
// the region and must keep it alive for as long as the heap is in use.
//
// The region's base address must be word-aligned and its length must exceed HeaderSize.
// Violations are not checked here and are undefined behavior; build with
// `-tags debug_inblock` to have them caught by validation instead.
func (h *Heap) Bind(buf []byte) {
	inblock.DebugCheckPow2(WordSize, "WordSize")

	h.data = buf
	h.listHead = 0
	h.setBlockSize(0, len(buf)-HeaderSize)
	h.setNextFree(0, NoBlock)
	h.setPrevFree(0, NoBlock)

	h.allocCount = 0
	h.blocksFreeCount = 1
	h.blocksFreeSize = len(buf) - HeaderSize

	inblock.DebugValidate(h)
}

// Size returns the total number of bytes in the bound region.
func (h *Heap) Size() int {
	return len(h.data)
}

// SumFreeSize returns the number of payload bytes available across all free blocks. A
// single allocation of this size will not necessarily succeed, because the bytes may be
// fragmented across blocks.
func (h *Heap) SumFreeSize() int {
	return h.blocksFreeSize
}

// AllocationCount returns the number of live allocations, which should generally be the
// number of successful Alloc calls minus the number of Free calls.
func (h *Heap) AllocationCount() int {
	return h.allocCount
}

// FreeRegionsCount returns the number of blocks in the free list. Adjacent free blocks
// are always merged, so this is also the number of distinct free regions.
func (h *Heap) FreeRegionsCount() int {
	return h.blocksFreeCount
}

// IsEmpty will return true if the heap has no live allocations
func (h *Heap) IsEmpty() bool {
	return h.allocCount == 0
}

// SetCallbacks installs optional hooks invoked after every successful Alloc and Free.
// Pass nil to remove them.
func (h *Heap) SetCallbacks(callbacks AllocationCallbacks) {
	h.callbacks = callbacks
}

// Alloc reserves size payload bytes from the best-fitting free block and returns the
// payload's byte offset into the region. size must be positive and a multiple of
// WordSize; the typed adapter in the allocator package computes it from an element count.
//
// If no free block qualifies, Alloc returns an error wrapping inblock.OutOfMemoryError
// and the heap is left exactly as it was.
func (h *Heap) Alloc(size int) (int, error) {
	inblock.DebugValidate(h)

	size += inblock.DebugMargin

	block := h.findBestFit(size)
	if block == NoBlock {
		return 0, errors.Wrapf(inblock.OutOfMemoryError, "no free block can hold %d payload bytes", size)
	}

	stamped := h.removeAndSplit(block, size)
	h.setBlockSize(block, stamped)
	h.setNextFree(block, NoBlock)
	h.setPrevFree(block, NoBlock)
	h.allocCount++

	payload := block + HeaderSize
	inblock.WriteMagicValue(h.data, payload+stamped-inblock.DebugMargin)
	inblock.DebugValidate(h)

	if h.callbacks != nil {
		h.callbacks.Allocate(payload, stamped-inblock.DebugMargin)
	}

	return payload, nil
}

// Free returns the payload at the provided offset to the free list and merges it with any
// physically adjacent free neighbor. The offset must have been returned by this heap's
// Alloc and must not have been freed already; neither is detected, matching the zero
// bookkeeping goal of an in-place allocator.
func (h *Heap) Free(payload int) {
	inblock.DebugValidate(h)

	block := payload - HeaderSize
	size := h.blockSize(block)

	h.insertFreeBlock(block)
	h.mergeAdjacentBlocks(block)
	h.allocCount--

	inblock.DebugValidate(h)

	if h.callbacks != nil {
		h.callbacks.Free(payload, size-inblock.DebugMargin)
	}
}

// PayloadPointer converts a payload offset into a pointer to the payload's first byte.
func (h *Heap) PayloadPointer(payload int) unsafe.Pointer {
	return unsafe.Pointer(&h.data[payload])
}

// OffsetOf converts a pointer into the bound region back into a byte offset. The pointer
// must point into the region.
func (h *Heap) OffsetOf(ptr unsafe.Pointer) int {
	return int(uintptr(ptr) - uintptr(unsafe.Pointer(&h.data[0])))
}

func (h *Heap) blockSize(block int) int {
	return int(binary.LittleEndian.Uint64(h.data[block:]))
}

func (h *Heap) setBlockSize(block, size int) {
	binary.LittleEndian.PutUint64(h.data[block:], uint64(size))
}

func (h *Heap) nextFree(block int) int {
	link := binary.LittleEndian.Uint64(h.data[block+WordSize:])
	if link == nilLink {
		return NoBlock
	}
	return int(link)
}

func (h *Heap) setNextFree(block, next int) {
	if next == NoBlock {
		binary.LittleEndian.PutUint64(h.data[block+WordSize:], nilLink)
		return
	}
	binary.LittleEndian.PutUint64(h.data[block+WordSize:], uint64(next))
}

func (h *Heap) prevFree(block int) int {
	link := binary.LittleEndian.Uint64(h.data[block+2*WordSize:])
	if link == nilLink {
		return NoBlock
	}
	return int(link)
}

func (h *Heap) setPrevFree(block, prev int) {
	if prev == NoBlock {
		binary.LittleEndian.PutUint64(h.data[block+2*WordSize:], nilLink)
		return
	}
	binary.LittleEndian.PutUint64(h.data[block+2*WordSize:], uint64(prev))
}
