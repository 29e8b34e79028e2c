package vector_test

import (
	"math/rand"
	"testing"

	"github.com/memkit/inblock"
	"github.com/memkit/inblock/allocator"
	"github.com/memkit/inblock/heap"
	"github.com/memkit/inblock/vector"
	"github.com/stretchr/testify/require"
)

func TestPushAndIndex(t *testing.T) {
	var h heap.Heap
	h.Bind(heap.NewRegion(1 << 12))

	v := vector.New(allocator.New[int32](&h))

	for i := 0; i < 100; i++ {
		require.NoError(t, v.Push(int32(i)))
	}

	require.Equal(t, 100, v.Len())
	require.GreaterOrEqual(t, v.Cap(), 100)
	for i := 0; i < 100; i++ {
		require.Equal(t, int32(i), v.At(i))
	}

	v.Set(42, -1)
	require.Equal(t, int32(-1), v.At(42))

	// Growth releases the outgrown storage, so only the live payload remains
	require.Equal(t, 1, h.AllocationCount())
	require.NoError(t, h.Validate())
}

func TestPopAndRelease(t *testing.T) {
	var h heap.Heap
	h.Bind(heap.NewRegion(512))

	v := vector.New(allocator.New[int64](&h))
	for i := 0; i < 8; i++ {
		require.NoError(t, v.Push(int64(i)))
	}

	require.Equal(t, int64(7), v.Pop())
	require.Equal(t, int64(6), v.Pop())
	require.Equal(t, 6, v.Len())

	v.Release()
	require.Equal(t, 0, v.Len())
	require.Equal(t, 0, v.Cap())
	require.True(t, h.IsEmpty())
	require.NoError(t, h.Validate())

	// A released vector is reusable
	require.NoError(t, v.Push(5))
	require.Equal(t, int64(5), v.At(0))
	v.Release()
	require.True(t, h.IsEmpty())
}

func TestPushOutOfMemory(t *testing.T) {
	var h heap.Heap
	h.Bind(heap.NewRegion(256))

	v := vector.New(allocator.New[int64](&h))

	var err error
	for err == nil {
		err = v.Push(int64(v.Len()))
	}
	require.ErrorIs(t, err, inblock.OutOfMemoryError)

	// The failed push leaves the vector and its contents intact
	length := v.Len()
	require.Greater(t, length, 0)
	for i := 0; i < length; i++ {
		require.Equal(t, int64(i), v.At(i))
	}
	require.NoError(t, h.Validate())

	v.Release()
	require.True(t, h.IsEmpty())
}

const matrixSize = 16

type arenaMatrix []*vector.Vector[int32]

func newArenaMatrix(t require.TestingT, alloc allocator.Allocator[int32], rng *rand.Rand) arenaMatrix {
	rows := make(arenaMatrix, matrixSize)
	for i := range rows {
		rows[i] = vector.New(alloc)
		for j := 0; j < matrixSize; j++ {
			require.NoError(t, rows[i].Push(rng.Int31n(3)))
		}
	}
	return rows
}

func multiplyArena(t require.TestingT, alloc allocator.Allocator[int32], a, b arenaMatrix) arenaMatrix {
	result := make(arenaMatrix, matrixSize)
	for i := range result {
		result[i] = vector.New(alloc)
		for j := 0; j < matrixSize; j++ {
			var sum int32
			for k := 0; k < matrixSize; k++ {
				sum += a[i].At(k) * b[k].At(j)
			}
			require.NoError(t, result[i].Push(sum))
		}
	}
	return result
}

func releaseMatrix(m arenaMatrix) {
	for _, row := range m {
		row.Release()
	}
}

func multiplyNative(a, b [][]int32) [][]int32 {
	result := make([][]int32, matrixSize)
	for i := range result {
		result[i] = make([]int32, matrixSize)
		for j := 0; j < matrixSize; j++ {
			var sum int32
			for k := 0; k < matrixSize; k++ {
				sum += a[i][k] * b[k][j]
			}
			result[i][j] = sum
		}
	}
	return result
}

func TestMatrixMultiply(t *testing.T) {
	var h heap.Heap
	h.Bind(heap.NewRegion(1 << 16))

	alloc := allocator.New[int32](&h)
	rng := rand.New(rand.NewSource(0x1337))

	a := newArenaMatrix(t, alloc, rng)
	b := newArenaMatrix(t, alloc, rng)
	product := multiplyArena(t, alloc, a, b)
	require.NoError(t, h.Validate())

	nativeA := make([][]int32, matrixSize)
	nativeB := make([][]int32, matrixSize)
	for i := 0; i < matrixSize; i++ {
		nativeA[i] = make([]int32, matrixSize)
		nativeB[i] = make([]int32, matrixSize)
		for j := 0; j < matrixSize; j++ {
			nativeA[i][j] = a[i].At(j)
			nativeB[i][j] = b[i].At(j)
		}
	}
	expected := multiplyNative(nativeA, nativeB)

	for i := 0; i < matrixSize; i++ {
		for j := 0; j < matrixSize; j++ {
			require.Equal(t, expected[i][j], product[i].At(j), "mismatch at %d,%d", i, j)
		}
	}

	releaseMatrix(product)
	releaseMatrix(b)
	releaseMatrix(a)
	require.True(t, h.IsEmpty())
}

func BenchmarkMatrixMultiplyArena(b *testing.B) {
	var h heap.Heap
	h.Bind(heap.NewRegion(1 << 20))

	alloc := allocator.New[int32](&h)
	rng := rand.New(rand.NewSource(0x1337))

	left := newArenaMatrix(b, alloc, rng)
	right := newArenaMatrix(b, alloc, rng)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		releaseMatrix(multiplyArena(b, alloc, left, right))
	}
}

func BenchmarkMatrixMultiplyNative(b *testing.B) {
	rng := rand.New(rand.NewSource(0x1337))

	makeNative := func() [][]int32 {
		m := make([][]int32, matrixSize)
		for i := range m {
			m[i] = make([]int32, matrixSize)
			for j := range m[i] {
				m[i][j] = rng.Int31n(3)
			}
		}
		return m
	}
	left := makeNative()
	right := makeNative()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = multiplyNative(left, right)
	}
}
