package inblock

import "github.com/pkg/errors"

// OutOfMemoryError is the error returned from heap.Heap.Alloc when no free block
// has a payload large enough to service the request
var OutOfMemoryError error = errors.New("out of memory")

// PowerOfTwoError is the error returned from CheckPow2 or other methods if the number being tested is not a power of two
var PowerOfTwoError error = errors.New("number must be a power of two")
