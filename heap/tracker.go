package heap

import "github.com/dolthub/swiss"

// Tracker is an AllocationCallbacks implementation that maintains a table of live
// payloads, keyed by offset. The heap itself keeps no per-allocation state, so this is
// the opt-in way to enumerate outstanding allocations or audit for leaks and overlap.
// Install it with Heap.SetCallbacks.
type Tracker struct {
	live *swiss.Map[int, int]

	liveBytes        int
	peakBytes        int
	totalAllocations int
}

var _ AllocationCallbacks = &Tracker{}

func NewTracker() *Tracker {
	return &Tracker{
		live: swiss.NewMap[int, int](42),
	}
}

func (t *Tracker) Allocate(offset, size int) {
	t.live.Put(offset, size)
	t.liveBytes += size
	t.totalAllocations++

	if t.liveBytes > t.peakBytes {
		t.peakBytes = t.liveBytes
	}
}

func (t *Tracker) Free(offset, size int) {
	t.live.Delete(offset)
	t.liveBytes -= size
}

// LiveCount returns the number of payloads that have been allocated but not yet freed.
func (t *Tracker) LiveCount() int {
	return t.live.Count()
}

// LiveBytes returns the total payload bytes currently outstanding.
func (t *Tracker) LiveBytes() int {
	return t.liveBytes
}

// PeakBytes returns the largest value LiveBytes has ever reached.
func (t *Tracker) PeakBytes() int {
	return t.peakBytes
}

// TotalAllocations returns the number of successful allocations observed.
func (t *Tracker) TotalAllocations() int {
	return t.totalAllocations
}

// VisitLive calls visit for every live payload until it returns true to stop early.
// Iteration order is arbitrary.
func (t *Tracker) VisitLive(visit func(offset, size int) (stop bool)) {
	t.live.Iter(func(offset, size int) (stop bool) {
		return visit(offset, size)
	})
}
