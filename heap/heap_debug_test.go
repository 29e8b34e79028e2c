//go:build debug_inblock

package heap_test

import (
	"testing"
	"unsafe"

	"github.com/memkit/inblock"
	"github.com/memkit/inblock/heap"
	"github.com/stretchr/testify/require"
)

func TestCheckCorruptionDetectsOverrun(t *testing.T) {
	var h heap.Heap
	h.Bind(heap.NewRegion(512))

	payload, err := h.Alloc(64)
	require.NoError(t, err)
	require.NoError(t, h.CheckCorruption())

	// Scribble one byte past the payload's end, into the canary margin
	view := unsafe.Slice((*byte)(h.PayloadPointer(payload)), 64+inblock.DebugMargin)
	view[64] ^= 0xFF

	require.Error(t, h.CheckCorruption())
}
