package array

import (
	"fmt"

	"github.com/pkg/errors"
)

// Array owns a contiguous allocation sized to its shape's flat extent.
// The buffer index of the element at index tuple idx is
// base + shape.FlatOffset(idx...), with base chosen as -FlatMin so that
// indexing always lands at a non-negative buffer position regardless of
// negative strides.
//
// An array owns exactly one allocation for its lifetime; only Reshape,
// Assign and Clear replace it. Views and element pointers borrow from the
// array and are invalidated by those operations, by Swap, and by the
// array being dropped.
type Array[T any] struct {
	alloc Allocator[T]
	buf   []T
	base  int
	shape Shape
}

// New allocates an array with the given shape on the heap allocator.
// Unresolved strides are resolved first; elements start as zero values.
func New[T any](s Shape) *Array[T] {
	return NewIn[T](s, HeapAllocator[T]{})
}

// NewOf allocates an array with the given shape and every element set to
// value.
func NewOf[T any](s Shape, value T) *Array[T] {
	a := New[T](s)
	Fill(a.Ref(), value)
	return a
}

// NewIn allocates an array with the given shape using the given
// allocator.
func NewIn[T any](s Shape, alloc Allocator[T]) *Array[T] {
	rs := s.Resolve()
	a := &Array[T]{alloc: alloc, shape: rs}
	if n := rs.FlatExtent(); n > 0 {
		a.buf = alloc.Allocate(n)
		a.base = -rs.FlatMin()
	}
	return a
}

// Shape returns the array's shape.
func (a *Array[T]) Shape() Shape { return a.shape }

// Rank returns the number of dimensions.
func (a *Array[T]) Rank() int { return a.shape.Rank() }

// Size returns the number of elements.
func (a *Array[T]) Size() int { return a.shape.Size() }

// Empty reports whether the array holds no elements.
func (a *Array[T]) Empty() bool { return a.shape.Empty() }

// Data returns the underlying buffer, FlatExtent elements long (nil when
// empty).
func (a *Array[T]) Data() []T { return a.buf }

// Ref returns a view of the whole array.
func (a *Array[T]) Ref() ArrayRef[T] {
	return ArrayRef[T]{data: a.buf, base: a.base, shape: a.shape}
}

// At returns the element at the given index tuple. Out-of-range indices
// panic.
func (a *Array[T]) At(idx ...int) T { return a.Ref().At(idx...) }

// Set assigns the element at the given index tuple. Out-of-range indices
// panic.
func (a *Array[T]) Set(value T, idx ...int) { a.Ref().Set(value, idx...) }

// Ptr returns a pointer to the element at the given index tuple.
func (a *Array[T]) Ptr(idx ...int) *T { return a.Ref().Ptr(idx...) }

// Select slices and crops the array, returning a borrowing view.
func (a *Array[T]) Select(sels ...Selector) ArrayRef[T] {
	return a.Ref().Select(sels...)
}

// ForEachValue calls fn once per element with a pointer to it, in an
// unspecified order.
func (a *Array[T]) ForEachValue(fn func(p *T)) { a.Ref().ForEachValue(fn) }

// Clone returns a deep copy of the array. The clone's allocator is chosen
// by the source allocator's SelectOnClone hook.
func (a *Array[T]) Clone() *Array[T] {
	c := NewIn[T](a.shape, a.alloc.SelectOnClone())
	copyValues(a.Ref(), c.Ref())
	return c
}

// Reshape resizes the array to the resolved newShape, moving the elements
// of the per-dimension intersection of the old and new shapes into the
// new allocation. Elements outside the intersection start as zero values.
// Existing views and pointers are invalidated.
func (a *Array[T]) Reshape(newShape Shape) {
	n := NewIn[T](newShape, a.alloc)
	if a.shape.Rank() != n.shape.Rank() {
		panic(errors.Errorf("array: cannot reshape rank-%d array to rank %d", a.shape.Rank(), n.shape.Rank()))
	}
	inter := a.shape.Clamp(n.shape)
	if !inter.Empty() {
		copyValues(a.Select(spansOf(inter)...), n.Select(spansOf(inter)...))
	}
	a.replaceWith(n)
}

// Assign reshapes the array to the resolved shape and sets every element
// to value. No old elements survive.
func (a *Array[T]) Assign(s Shape, value T) {
	rs := s.Resolve()
	if !a.shape.Equal(rs) {
		a.replaceWith(NewIn[T](rs, a.alloc))
	}
	Fill(a.Ref(), value)
}

// Clear releases the allocation and resets the shape to the empty default
// of the same rank.
func (a *Array[T]) Clear() {
	a.replaceWith(NewIn[T](emptyShapeOfRank(a.shape.Rank()), a.alloc))
}

// SetShape reinterprets the current buffer as newShape, moving the base
// by offset elements. No elements are constructed, destroyed or moved.
// newShape must be resolved and its whole index space must map inside the
// current buffer; violations panic.
func (a *Array[T]) SetShape(newShape Shape, offset int) {
	if !newShape.IsResolved() {
		panic(errors.Errorf("array: SetShape requires a resolved shape, got %s", newShape))
	}
	base := a.base + offset
	if !newShape.Empty() {
		lo := base + newShape.FlatMin()
		hi := base + newShape.FlatMax()
		if lo < 0 || hi >= len(a.buf) {
			panic(errors.Errorf("array: shape %s at offset %d spans buffer positions [%d, %d], buffer has %d",
				newShape, offset, lo, hi, len(a.buf)))
		}
	}
	a.base = base
	a.shape = newShape.Clone()
}

// Swap exchanges the contents of two arrays, including their allocators.
func (a *Array[T]) Swap(b *Array[T]) {
	*a, *b = *b, *a
}

// String describes the array without printing elements.
func (a *Array[T]) String() string {
	return fmt.Sprintf("array%s", a.shape)
}

// replaceWith adopts n's allocation and shape, releasing the old buffer.
func (a *Array[T]) replaceWith(n *Array[T]) {
	if a.buf != nil {
		a.alloc.Deallocate(a.buf)
	}
	a.buf = n.buf
	a.base = n.base
	a.shape = n.shape
}

// emptyShapeOfRank is the default shape an all-dynamic array resets to:
// every dimension [0, 0) with stride unresolved.
func emptyShapeOfRank(rank int) Shape {
	dims := make([]Dim, rank)
	for i := range dims {
		dims[i] = Dim{Interval{min: 0, extent: 0}, unresolvedStride}
	}
	return Shape{dims: dims}
}

// spansOf turns a shape's intervals into crop selectors, one per
// dimension.
func spansOf(s Shape) []Selector {
	sels := make([]Selector, s.Rank())
	for i := range sels {
		sels[i] = SpanOf(s.Dim(i).Interval)
	}
	return sels
}
