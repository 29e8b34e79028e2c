//go:build debug_inblock

package inblock_test

import (
	"testing"

	"github.com/memkit/inblock"
	"github.com/stretchr/testify/require"
)

func TestDebugCheckPow2(t *testing.T) {
	require.NotPanics(t, func() {
		inblock.DebugCheckPow2(8, "WordSize")
	})
	require.Panics(t, func() {
		inblock.DebugCheckPow2(12, "WordSize")
	})
}

func TestMagicValueRoundTrip(t *testing.T) {
	data := make([]byte, 64)

	inblock.WriteMagicValue(data, 16)
	require.True(t, inblock.ValidateMagicValue(data, 16))

	// Any byte of the margin being overwritten must be noticed
	data[16+inblock.DebugMargin-1] ^= 0xFF
	require.False(t, inblock.ValidateMagicValue(data, 16))
}

type alwaysBroken struct{}

func (alwaysBroken) Validate() error {
	return inblock.PowerOfTwoError
}

func TestDebugValidatePanics(t *testing.T) {
	require.Panics(t, func() {
		inblock.DebugValidate(alwaysBroken{})
	})
}
