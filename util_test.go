package inblock_test

import (
	"testing"

	"github.com/memkit/inblock"
	"github.com/stretchr/testify/require"
)

func TestAlignUp(t *testing.T) {
	require.Equal(t, 0, inblock.AlignUp(0, 8))
	require.Equal(t, 8, inblock.AlignUp(1, 8))
	require.Equal(t, 8, inblock.AlignUp(8, 8))
	require.Equal(t, 16, inblock.AlignUp(9, 8))
	require.Equal(t, 24, inblock.AlignUp(17, 8))
	require.Equal(t, 256, inblock.AlignUp(255, 2))
}

func TestAlignDown(t *testing.T) {
	require.Equal(t, 0, inblock.AlignDown(0, 8))
	require.Equal(t, 0, inblock.AlignDown(7, 8))
	require.Equal(t, 8, inblock.AlignDown(8, 8))
	require.Equal(t, 8, inblock.AlignDown(15, 8))
	require.Equal(t, 254, inblock.AlignDown(255, 2))
}

func TestCheckPow2(t *testing.T) {
	require.NoError(t, inblock.CheckPow2(1, "size"))
	require.NoError(t, inblock.CheckPow2(2, "size"))
	require.NoError(t, inblock.CheckPow2(64, "size"))

	err := inblock.CheckPow2(3, "size")
	require.ErrorIs(t, err, inblock.PowerOfTwoError)
	require.ErrorContains(t, err, "size is 3")

	require.ErrorIs(t, inblock.CheckPow2(12, "alignment"), inblock.PowerOfTwoError)
}
