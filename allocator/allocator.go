// Package allocator provides the typed adapter between generic containers and a
// heap.Heap. An Allocator is a stateless-per-type handle: it holds nothing but a
// reference to its heap, so it is trivially copyable, and two allocators cooperate on
// the same storage exactly when they reference the same heap.
package allocator

import (
	"unsafe"

	"github.com/memkit/inblock"
	"github.com/memkit/inblock/heap"
)

// Allocator hands out payloads of element type T from a single bound heap. The zero
// value is not usable; construct with New.
type Allocator[T any] struct {
	heap *heap.Heap
}

func New[T any](h *heap.Heap) Allocator[T] {
	return Allocator[T]{heap: h}
}

// Heap returns the heap this allocator draws from.
func (a Allocator[T]) Heap() *heap.Heap {
	return a.heap
}

// Allocate reserves space for n elements of T and returns it as a slice of length n over
// the arena's own bytes. The byte size is rounded up to the heap's word boundary, so the
// returned memory is always word-aligned. Fails with an error wrapping
// inblock.OutOfMemoryError when no free block qualifies; the heap is unchanged in that
// case.
//
// The returned slice is a view into caller-owned memory: it must not be grown with
// append, and must be handed back to Deallocate rather than left for the garbage
// collector.
func (a Allocator[T]) Allocate(n int) ([]T, error) {
	var zero T
	alignedSize := inblock.AlignUp(n*int(unsafe.Sizeof(zero))+heap.Padding, heap.WordSize)

	payload, err := a.heap.Alloc(alignedSize)
	if err != nil {
		return nil, err
	}

	return unsafe.Slice((*T)(a.heap.PayloadPointer(payload)), n), nil
}

// Deallocate releases a slice previously returned by Allocate on an allocator bound to
// the same heap. n must be the element count originally requested. Passing a foreign
// slice or deallocating twice is undefined behavior, exactly as with the underlying
// heap.
func (a Allocator[T]) Deallocate(s []T, n int) {
	a.heap.Free(a.heap.OffsetOf(unsafe.Pointer(unsafe.SliceData(s))))
}

// Equal reports whether the two allocators share a heap. Containers use this to decide
// whether storage allocated through one may be released through the other.
func (a Allocator[T]) Equal(other Allocator[T]) bool {
	return a.heap == other.heap
}

// Rebind converts an allocator to a different element type over the same heap, so a
// container can allocate bookkeeping nodes of a second type without reallocating.
func Rebind[U, T any](a Allocator[T]) Allocator[U] {
	return New[U](a.Heap())
}
