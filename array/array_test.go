package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillIndexSum sets every element to a deterministic function of its
// index tuple.
func fillIndexSum(a *Array[int]) {
	ForEachIndex(a.Shape(), func(idx []int) {
		v, m := 0, 1
		for _, i := range idx {
			v += i * m
			m *= 100
		}
		a.Set(v, idx...)
	})
}

func TestNewAllocatesFlatExtent(t *testing.T) {
	a := New[float64](DenseShape(10, 5))
	assert.Equal(t, 50, len(a.Data()))
	assert.Equal(t, 50, a.Size())
	assert.Equal(t, 2, a.Rank())
	assert.Equal(t, 0.0, a.At(3, 3), "elements start as zero values")
}

func TestNewEmptyHasNilBuffer(t *testing.T) {
	a := New[int](DenseShape(0, 4))
	assert.Nil(t, a.Data())
	assert.True(t, a.Empty())
	a.ForEachValue(func(*int) { t.Fatal("no elements to visit") })
}

func TestNewScalar(t *testing.T) {
	a := NewOf(NewShape(), 3)
	assert.Equal(t, 1, a.Size())
	assert.Equal(t, 1, len(a.Data()))
	assert.Equal(t, 3, a.At())
}

func TestNewOf(t *testing.T) {
	a := NewOf(DenseShape(3, 3), 1.5)
	a.ForEachValue(func(p *float64) { assert.Equal(t, 1.5, *p) })
}

func TestNegativeMinBaseOffset(t *testing.T) {
	// Indexing with negative mins still lands inside the buffer.
	a := New[int](NewShape(NewDim(-1, 11, 1)))
	require.Equal(t, 11, len(a.Data()))
	for i := -1; i <= 9; i++ {
		a.Set(i, i)
	}
	assert.Equal(t, -1, a.Data()[0])
	assert.Equal(t, 9, a.Data()[10])
}

func TestNegativeStrideBaseOffset(t *testing.T) {
	a := New[int](NewShape(NewDim(0, 10, -1)))
	require.Equal(t, 10, len(a.Data()))
	a.Set(42, 0)
	assert.Equal(t, 42, a.Data()[9], "index 0 is at the top of the buffer")
}

func TestCloneIsDeep(t *testing.T) {
	a := New[int](DenseShape(4, 3))
	fillIndexSum(a)

	c := a.Clone()
	assert.True(t, Equal(a.Ref(), c.Ref()))

	c.Set(-1, 0, 0)
	assert.NotEqual(t, a.At(0, 0), c.At(0, 0))
}

func TestReshapePreservesIntersection(t *testing.T) {
	a := New[int](NewShape(NewDim(-1, 11, 1)))
	for i := -1; i <= 9; i++ {
		a.Set(i, i)
	}

	a.Reshape(NewShape(NewDim(-3, 12, 1)))
	require.Equal(t, 12, a.Size())

	// Values survive on the intersection -1..8.
	for i := -1; i <= 8; i++ {
		assert.Equal(t, i, a.At(i), "index %d", i)
	}
	// New positions are zero values.
	assert.Equal(t, 0, a.At(-3))
	assert.Equal(t, 0, a.At(-2))
}

func TestReshapeGrowAndShrink(t *testing.T) {
	a := New[int](DenseShape(4, 4))
	fillIndexSum(a)

	a.Reshape(DenseShape(2, 6))
	require.Equal(t, []int{2, 6}, a.Shape().Extents())
	for i := 0; i < 2; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, i+100*j, a.At(i, j))
		}
	}
	assert.Equal(t, 0, a.At(0, 5))

	assert.Panics(t, func() { a.Reshape(DenseShape(4)) }, "rank change")
}

func TestAssign(t *testing.T) {
	a := New[int](DenseShape(2, 2))
	a.Assign(DenseShape(3, 3), 7)
	assert.Equal(t, 9, a.Size())
	a.ForEachValue(func(p *int) { assert.Equal(t, 7, *p) })
}

func TestClear(t *testing.T) {
	a := NewOf(DenseShape(4, 4), 1)
	a.Clear()
	assert.True(t, a.Empty())
	assert.Equal(t, 2, a.Rank(), "rank survives Clear")
	assert.Nil(t, a.Data())
}

func TestSetShape(t *testing.T) {
	a := New[int](DenseShape(12))
	for i := 0; i < 12; i++ {
		a.Set(i, i)
	}

	// Reinterpret the flat buffer as 4x3 without touching elements.
	a.SetShape(DenseShape(4, 3), 0)
	assert.Equal(t, 5, a.At(1, 1))

	// A shape that escapes the buffer panics.
	assert.Panics(t, func() { a.SetShape(DenseShape(4, 4), 0) })
	assert.Panics(t, func() { a.SetShape(DenseShape(4, 3), 1) })
	assert.Panics(t, func() { a.SetShape(ShapeOfRank(2), 0) }, "unresolved shape")
}

func TestSwap(t *testing.T) {
	a := NewOf(DenseShape(2), 1)
	b := NewOf(DenseShape(3), 2)
	Swap(a, b)
	assert.Equal(t, 3, a.Size())
	assert.Equal(t, 2, a.At(0))
	assert.Equal(t, 2, b.Size())
	assert.Equal(t, 1, b.At(0))
}

func TestMakeMove(t *testing.T) {
	a := New[int](DenseShape(3, 2))
	fillIndexSum(a)
	want := a.Clone()

	m := MakeMove(a)
	assert.True(t, Equal(want.Ref(), m.Ref()))
	assert.True(t, a.Empty(), "source is left empty but valid")
	assert.Equal(t, 2, a.Rank())
}

// countingAllocator records allocation sizes, to observe allocator
// selection on clone.
type countingAllocator[T any] struct {
	sizes *[]int
}

func (c countingAllocator[T]) Allocate(n int) []T {
	*c.sizes = append(*c.sizes, n)
	return make([]T, n)
}

func (c countingAllocator[T]) Deallocate([]T) {}

func (c countingAllocator[T]) SelectOnClone() Allocator[T] { return c }

func TestAllocatorPropagatesToClone(t *testing.T) {
	var sizes []int
	alloc := countingAllocator[int]{sizes: &sizes}

	a := NewIn[int](DenseShape(5), alloc)
	require.Equal(t, []int{5}, sizes)

	_ = a.Clone()
	assert.Equal(t, []int{5, 5}, sizes, "clone allocates through SelectOnClone")
}
