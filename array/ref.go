package array

import (
	"fmt"

	"github.com/pkg/errors"
)

// ArrayRef is a non-owning view: a buffer, a base index, and a shape.
// The element at index tuple idx is data[base + shape.FlatOffset(idx...)].
//
// Refs are small value types; copying a ref never copies elements. A ref
// borrows its buffer from the owning Array (or caller-provided slice) and
// is invalidated by Reshape, Assign, Clear, Swap and destruction of the
// owner.
type ArrayRef[T any] struct {
	data  []T
	base  int
	shape Shape
}

// NewRef wraps a caller-provided buffer in a view with the given shape,
// resolving any unresolved strides. data[0] is the lowest-addressed
// element, so the base index is -FlatMin. The buffer must hold at least
// FlatExtent elements; a too-small buffer is a programming error.
func NewRef[T any](data []T, s Shape) ArrayRef[T] {
	rs := s.Resolve()
	if n := rs.FlatExtent(); n > len(data) {
		panic(errors.Errorf("array: shape %s needs %d elements, buffer has %d", rs, n, len(data)))
	}
	base := 0
	if !rs.Empty() {
		base = -rs.FlatMin()
	}
	return ArrayRef[T]{data: data, base: base, shape: rs}
}

// Shape returns the view's shape.
func (r ArrayRef[T]) Shape() Shape { return r.shape }

// Rank returns the number of dimensions.
func (r ArrayRef[T]) Rank() int { return r.shape.Rank() }

// Size returns the number of elements addressed by the view.
func (r ArrayRef[T]) Size() int { return r.shape.Size() }

// Empty reports whether the view addresses no elements.
func (r ArrayRef[T]) Empty() bool { return r.shape.Empty() }

// Data returns the underlying buffer. Elements of the view appear at
// base + FlatOffset positions; for a freshly constructed dense view this
// is the elements in memory order.
func (r ArrayRef[T]) Data() []T { return r.data }

// At returns the element at the given index tuple. Out-of-range indices
// panic.
func (r ArrayRef[T]) At(idx ...int) T {
	return *r.Ptr(idx...)
}

// Set assigns the element at the given index tuple. Out-of-range indices
// panic.
func (r ArrayRef[T]) Set(value T, idx ...int) {
	*r.Ptr(idx...) = value
}

// Ptr returns a pointer to the element at the given index tuple.
// Out-of-range indices panic.
func (r ArrayRef[T]) Ptr(idx ...int) *T {
	if !r.shape.IsInRange(idx...) {
		panic(errors.Errorf("array: index %v out of range of shape %s", idx, r.shape))
	}
	return &r.data[r.base+r.shape.FlatOffset(idx...)]
}

// Select slices and crops the view: one selector per dimension, Fix
// dropping a dimension, Span restricting one, All keeping one. The result
// aliases the same buffer, with the base adjusted so that indexing the new
// view with its own (absolute) indices addresses the same elements.
func (r ArrayRef[T]) Select(sels ...Selector) ArrayRef[T] {
	ns := r.shape.Select(sels...)
	return ArrayRef[T]{
		data:  r.data,
		base:  r.base + r.shape.selectOffset(sels...),
		shape: ns,
	}
}

// Reorder returns a view with dimensions reordered (and possibly
// dropped); the base is unchanged because per-dimension offsets are
// order-independent.
func (r ArrayRef[T]) Reorder(order ...int) ArrayRef[T] {
	return ArrayRef[T]{data: r.data, base: r.base, shape: r.shape.Reorder(order...)}
}

// Transpose returns a view with dimensions permuted by perm.
func (r ArrayRef[T]) Transpose(perm ...int) ArrayRef[T] {
	return ArrayRef[T]{data: r.data, base: r.base, shape: r.shape.Transpose(perm...)}
}

// ForEachValue calls fn once per element with a pointer to it, in an
// unspecified order. The traversal runs over the optimized shape: sorted
// by stride, contiguous dimensions fused, unit-stride inner loop.
func (r ArrayRef[T]) ForEachValue(fn func(p *T)) {
	opt := optimize(r.shape)
	eachOffset(opt.dims, opt.Rank()-1, 0, func(off int) bool {
		fn(&r.data[r.base+off])
		return true
	})
}

// String describes the view without printing elements.
func (r ArrayRef[T]) String() string {
	return fmt.Sprintf("array_ref%s", r.shape)
}
