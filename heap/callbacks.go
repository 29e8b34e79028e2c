package heap

// AllocationCallbacks receives a notification after every successful Alloc and Free on a
// Heap. offset is the payload offset and size the payload's usable bytes. The heap calls
// these synchronously on its own goroutine, so implementations must be cheap.
type AllocationCallbacks interface {
	Allocate(offset, size int)
	Free(offset, size int)
}

type AllocateCallback func(
	heap *Heap,
	offset int,
	size int,
	userData interface{},
)

type FreeCallback func(
	heap *Heap,
	offset int,
	size int,
	userData interface{},
)

// CallbackOptions adapts plain functions to the AllocationCallbacks interface via
// Heap.SetCallbackOptions. Any of the fields may be nil.
type CallbackOptions struct {
	Allocate AllocateCallback
	Free     FreeCallback
	UserData interface{}
}

type optionCallbacks struct {
	Callbacks *CallbackOptions
	Heap      *Heap
}

func (c *optionCallbacks) Allocate(offset, size int) {
	if c.Callbacks != nil && c.Callbacks.Allocate != nil {
		c.Callbacks.Allocate(c.Heap, offset, size, c.Callbacks.UserData)
	}
}

func (c *optionCallbacks) Free(offset, size int) {
	if c.Callbacks != nil && c.Callbacks.Free != nil {
		c.Callbacks.Free(c.Heap, offset, size, c.Callbacks.UserData)
	}
}

// SetCallbackOptions installs function-valued hooks. Pass nil to remove them.
func (h *Heap) SetCallbackOptions(options *CallbackOptions) {
	if options == nil {
		h.callbacks = nil
		return
	}

	h.callbacks = &optionCallbacks{
		Callbacks: options,
		Heap:      h,
	}
}
