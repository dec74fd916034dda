package array

import (
	"iter"
	"slices"

	"github.com/pkg/errors"
)

// ForEachIndex calls fn once per index tuple of s, in order: dimension
// Rank-1 is the outermost loop and dimension 0 the innermost. The index
// slice is reused across calls; fn must not retain or modify it.
//
// A rank-0 shape invokes fn exactly once with an empty slice; an empty
// shape invokes it zero times.
func ForEachIndex(s Shape, fn func(idx []int)) {
	idx := make([]int, s.Rank())
	eachIndex(s.dims, naturalOrder(s.Rank()), idx, s.Rank()-1, func(idx []int) bool {
		fn(idx)
		return true
	})
}

// ForAllIndices is ForEachIndex with the index tuple unpacked into
// variadic arguments.
func ForAllIndices(s Shape, fn func(idx ...int)) {
	ForEachIndex(s, func(idx []int) { fn(idx...) })
}

// ForEachIndexInOrder traverses with an explicit loop permutation:
// order[0] is the innermost dimension. The natural in-order traversal is
// order 0, 1, ..., Rank-1.
func ForEachIndexInOrder(s Shape, order []int, fn func(idx []int)) {
	if len(order) != s.Rank() {
		panic(errors.Errorf("array: loop order has %d entries for rank %d", len(order), s.Rank()))
	}
	seen := make([]bool, len(order))
	for _, i := range order {
		if i < 0 || i >= len(order) || seen[i] {
			panic(errors.Errorf("array: invalid loop order %v", order))
		}
		seen[i] = true
	}
	idx := make([]int, s.Rank())
	eachIndex(s.dims, order, idx, s.Rank()-1, func(idx []int) bool {
		fn(idx)
		return true
	})
}

// Indices returns the in-order index tuples of s as a range-over-func
// sequence. The yielded slice is reused between iterations.
func Indices(s Shape) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		idx := make([]int, s.Rank())
		eachIndex(s.dims, naturalOrder(s.Rank()), idx, s.Rank()-1, yield)
	}
}

func naturalOrder(rank int) []int {
	order := make([]int, rank)
	for i := range order {
		order[i] = i
	}
	return order
}

// eachIndex runs the loop nest for position pos of order (pos len-1 is
// outermost). Returns false if the visitor stopped the traversal.
func eachIndex(dims []Dim, order []int, idx []int, pos int, yield func([]int) bool) bool {
	if pos < 0 {
		return yield(idx)
	}
	d := dims[order[pos]]
	for i := d.min; i <= d.Max(); i++ {
		idx[order[pos]] = i
		if !eachIndex(dims, order, idx, pos-1, yield) {
			return false
		}
	}
	return true
}

// optimize rewrites a resolved shape for fast value traversal: dimensions
// are sorted by |stride| ascending, adjacent dimensions with no gap
// between them (inner.stride*inner.extent == outer.stride) are fused, and
// the result is padded back to the original rank with extent-1 dimensions.
//
// The optimized shape visits exactly the same multiset of flat offsets as
// the original, in a different order. Callers may only use it where
// iteration order is unobservable.
func optimize(s Shape) Shape {
	dims := slices.Clone(s.dims)
	slices.SortStableFunc(dims, func(a, b Dim) int {
		return absInt(a.stride) - absInt(b.stride)
	})

	out := dims[:0]
	for _, d := range dims {
		if n := len(out); n > 0 && canFuse(out[n-1], d) {
			out[n-1] = fuse(out[n-1], d)
			continue
		}
		out = append(out, d)
	}
	for len(out) < s.Rank() {
		out = append(out, Dim{Interval{min: 0, extent: 1}, 0})
	}
	return Shape{dims: out}
}

// canFuse reports whether the outer dimension continues exactly where one
// full pass of the inner dimension ends.
func canFuse(inner, outer Dim) bool {
	return inner.extent > 0 && inner.stride*inner.extent == outer.stride
}

// fuse merges a fusable pair into one dimension covering both.
func fuse(inner, outer Dim) Dim {
	return Dim{
		Interval{
			min:    inner.min + outer.min*inner.extent,
			extent: inner.extent * outer.extent,
		},
		inner.stride,
	}
}

// eachOffset runs the value loop nest over relative flat offsets,
// innermost dimension last, with a post-increment fast path when the inner
// stride is 1. Returns false if the visitor stopped the traversal.
func eachOffset(dims []Dim, pos, off int, yield func(off int) bool) bool {
	if pos < 0 {
		return yield(off)
	}
	d := dims[pos]
	if pos == 0 && d.stride == 1 {
		for i := 0; i < d.extent; i++ {
			if !yield(off + i) {
				return false
			}
		}
		return true
	}
	o := off
	for i := 0; i < d.extent; i++ {
		if pos == 0 {
			if !yield(o) {
				return false
			}
		} else if !eachOffset(dims, pos-1, o, yield) {
			return false
		}
		o += d.stride
	}
	return true
}

// pairDim is one dimension of a paired traversal: a shared extent with a
// stride on each side.
type pairDim struct {
	extent int
	s0, s1 int
}

// optimizePair builds the fused loop nest for traversing two shapes of
// equal rank in index-space correspondence. Dimensions are ordered by the
// first shape's |stride| and fused only where both sides are gap-free at
// the same position. The extents come from the first shape; the caller
// guarantees the second shape covers its index range.
func optimizePair(a, b Shape) []pairDim {
	order := naturalOrder(a.Rank())
	slices.SortStableFunc(order, func(i, j int) int {
		return absInt(a.dims[i].stride) - absInt(a.dims[j].stride)
	})

	var out []pairDim
	for _, i := range order {
		d := pairDim{extent: a.dims[i].extent, s0: a.dims[i].stride, s1: b.dims[i].stride}
		if n := len(out); n > 0 {
			in := out[n-1]
			if in.extent > 0 && in.s0*in.extent == d.s0 && in.s1*in.extent == d.s1 {
				out[n-1] = pairDim{extent: in.extent * d.extent, s0: in.s0, s1: in.s1}
				continue
			}
		}
		out = append(out, d)
	}
	return out
}

// eachOffsetPair runs a fused loop nest over two offset streams in
// lockstep. Returns false if the visitor stopped the traversal.
func eachOffsetPair(dims []pairDim, pos, o0, o1 int, yield func(o0, o1 int) bool) bool {
	if pos < 0 {
		return yield(o0, o1)
	}
	d := dims[pos]
	if pos == 0 && d.s0 == 1 && d.s1 == 1 {
		for i := 0; i < d.extent; i++ {
			if !yield(o0+i, o1+i) {
				return false
			}
		}
		return true
	}
	a, b := o0, o1
	for i := 0; i < d.extent; i++ {
		if pos == 0 {
			if !yield(a, b) {
				return false
			}
		} else if !eachOffsetPair(dims, pos-1, a, b, yield) {
			return false
		}
		a += d.s0
		b += d.s1
	}
	return true
}
