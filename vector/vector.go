// Package vector provides a minimal resizable container backed by an arena allocator.
// It exists to exercise the allocator contract from the consuming side; it is
// deliberately small and is not a general-purpose slice replacement.
package vector

import "github.com/memkit/inblock/allocator"

// Vector is a growable sequence of T whose storage lives inside the allocator's heap.
// Growth is geometric: when full, the vector allocates a doubled payload, copies, and
// releases the old one. Unlike a built-in slice, a Vector that grows out of arena
// capacity reports it as an error instead of panicking.
type Vector[T any] struct {
	alloc allocator.Allocator[T]
	data  []T
	size  int
}

func New[T any](alloc allocator.Allocator[T]) *Vector[T] {
	return &Vector[T]{alloc: alloc}
}

// Allocator returns the allocator backing this vector.
func (v *Vector[T]) Allocator() allocator.Allocator[T] {
	return v.alloc
}

func (v *Vector[T]) Len() int {
	return v.size
}

func (v *Vector[T]) Cap() int {
	return len(v.data)
}

func (v *Vector[T]) At(index int) T {
	if index >= v.size {
		panic("vector index out of range")
	}
	return v.data[index]
}

func (v *Vector[T]) Set(index int, item T) {
	if index >= v.size {
		panic("vector index out of range")
	}
	v.data[index] = item
}

// Push appends item, growing the storage if necessary. On an out-of-memory error the
// vector is left unchanged.
func (v *Vector[T]) Push(item T) error {
	if v.size == len(v.data) {
		err := v.grow()
		if err != nil {
			return err
		}
	}

	v.data[v.size] = item
	v.size++
	return nil
}

// Pop removes and returns the last element.
func (v *Vector[T]) Pop() T {
	if v.size == 0 {
		panic("pop from an empty vector")
	}

	v.size--
	return v.data[v.size]
}

// Release returns the vector's storage to the arena and resets it to empty. The vector
// may be reused afterward.
func (v *Vector[T]) Release() {
	if v.data != nil {
		v.alloc.Deallocate(v.data, len(v.data))
		v.data = nil
	}
	v.size = 0
}

func (v *Vector[T]) grow() error {
	newCap := 2 * len(v.data)
	if newCap == 0 {
		newCap = 4
	}

	newData, err := v.alloc.Allocate(newCap)
	if err != nil {
		return err
	}

	copy(newData, v.data[:v.size])
	if v.data != nil {
		v.alloc.Deallocate(v.data, len(v.data))
	}

	v.data = newData
	return nil
}
