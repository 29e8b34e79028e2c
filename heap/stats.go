package heap

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/memkit/inblock"
	"github.com/pkg/errors"
	"golang.org/x/exp/slog"
)

// VisitAllRegions will call the provided callback once for each allocated and free block
// in the region, in ascending address order. offset is the block's payload offset and
// size its payload capacity. An allocated block's size field stays valid for its whole
// lifetime, so the walk simply hops header to header, checking each block against the
// address-ordered free list as it goes.
func (h *Heap) VisitAllRegions(handleRegion func(offset, size int, free bool) error) error {
	nextFree := h.listHead

	for block := 0; block < len(h.data); {
		size := h.blockSize(block)

		free := block == nextFree
		if free {
			nextFree = h.nextFree(block)
		}

		err := handleRegion(block+HeaderSize, size, free)
		if err != nil {
			return err
		}

		block += HeaderSize + size
	}

	return nil
}

// AddDetailedStatistics sums this heap's allocation statistics into the statistics
// currently present in the provided inblock.DetailedStatistics object.
func (h *Heap) AddDetailedStatistics(stats *inblock.DetailedStatistics) {
	stats.Statistics.HeapCount++
	stats.Statistics.HeapBytes += h.Size()

	_ = h.VisitAllRegions(
		func(offset, size int, free bool) error {
			if free {
				stats.AddUnusedRange(size)
			} else {
				stats.AddAllocation(size)
			}

			return nil
		})
}

// AddStatistics sums this heap's allocation statistics into the statistics currently
// present in the provided inblock.Statistics object.
func (h *Heap) AddStatistics(stats *inblock.Statistics) {
	stats.HeapCount++
	stats.AllocationCount += h.allocCount
	stats.HeapBytes += h.Size()
	stats.AllocationBytes += h.Size() - HeaderSize*(h.allocCount+h.blocksFreeCount) - h.blocksFreeSize
}

// HeapJsonData populates a json object with summary information about this heap
func (h *Heap) HeapJsonData(json jwriter.ObjectState) {
	var unusedRangeCount, usedBytes, allocCount int

	_ = h.VisitAllRegions(
		func(offset, size int, free bool) error {
			if free {
				unusedRangeCount++
			} else {
				usedBytes += size
				allocCount++
			}

			return nil
		})

	json.Name("TotalBytes").Int(h.Size())
	json.Name("UnusedBytes").Int(h.Size() - usedBytes)
	json.Name("Allocations").Int(allocCount)
	json.Name("UnusedRanges").Int(unusedRangeCount)
}

// BuildStatsString renders the heap's summary and a region-by-region map as a JSON
// string, for diagnostics.
func (h *Heap) BuildStatsString() string {
	writer := jwriter.NewWriter()

	obj := writer.Object()
	h.HeapJsonData(obj)

	arrayState := obj.Name("Regions").Array()
	_ = h.VisitAllRegions(
		func(offset, size int, free bool) error {
			regionObj := arrayState.Object()
			regionObj.Name("Offset").Int(offset)
			regionObj.Name("Size").Int(size)
			regionObj.Name("Free").Bool(free)
			regionObj.End()

			return nil
		})
	arrayState.End()
	obj.End()

	return string(writer.Bytes())
}

// DebugLogAllAllocations walks the live allocations and hands each to the provided log
// func, for tracking down leaked payloads.
func (h *Heap) DebugLogAllAllocations(logger *slog.Logger, logFunc func(log *slog.Logger, offset int, size int)) {
	_ = h.VisitAllRegions(
		func(offset, size int, free bool) error {
			if !free {
				logFunc(logger, offset, size)
			}

			return nil
		})
}

// CheckCorruption will return nil if anti-corruption memory markers are intact after
// every live payload in the heap.
//
// Bear in mind that anti-corruption memory markers are only written when the package is
// built with the build flag `debug_inblock`. This method will not return an error when
// that flag is not present, but it is expensive regardless of build flags and so should
// only be run when inblock.DebugMargin is not 0.
func (h *Heap) CheckCorruption() error {
	return h.VisitAllRegions(
		func(offset, size int, free bool) error {
			if !free && !inblock.ValidateMagicValue(h.data, offset+size-inblock.DebugMargin) {
				return errors.Errorf("memory corruption detected after the allocation at offset %d", offset)
			}

			return nil
		})
}
