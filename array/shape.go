package array

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Shape is an ordered tuple of dimensions describing an N-dimensional
// index space. The number of dimensions is the rank; rank 0 is a scalar
// shape with exactly one (empty) index tuple.
//
// Dimension 0 is innermost: a dense shape gives it stride 1 and traversal
// varies it fastest. Shapes are value types; the dimension slice is cloned
// on construction and on Clone, never shared with caller-owned slices.
type Shape struct {
	dims []Dim
}

// NewShape returns a shape over the given dimensions, innermost first.
func NewShape(dims ...Dim) Shape {
	return Shape{dims: slices.Clone(dims)}
}

// ShapeOfRank returns a shape of the given rank with every dimension
// defaulted: min 0, extent 1, stride unresolved.
func ShapeOfRank(rank int) Shape {
	dims := make([]Dim, rank)
	for i := range dims {
		dims[i] = NewDim()
	}
	return Shape{dims: dims}
}

// DenseShape returns a resolved shape with the given extents, mins of 0,
// and dimension 0 dense: dim k has stride extents[0]*...*extents[k-1].
func DenseShape(extents ...int) Shape {
	dims := make([]Dim, len(extents))
	for i, e := range extents {
		if i == 0 {
			dims[i] = DenseDim(e)
		} else {
			dims[i] = NewDim(e)
		}
	}
	return Shape{dims: dims}.Resolve()
}

// MakeDense returns a shape with the same mins and extents as s, dimension
// 0 dense and the remaining strides resolved around it.
func MakeDense(s Shape) Shape {
	dims := make([]Dim, s.Rank())
	for i, d := range s.dims {
		stride := unresolvedStride
		if i == 0 {
			stride = 1
		}
		dims[i] = Dim{d.Interval, stride}
	}
	return Shape{dims: dims}.Resolve()
}

// MakeCompact returns a shape with the same mins and extents as s and all
// strides re-resolved from scratch, producing a layout with no gaps.
func MakeCompact(s Shape) Shape {
	dims := make([]Dim, s.Rank())
	for i, d := range s.dims {
		dims[i] = Dim{d.Interval, unresolvedStride}
	}
	return Shape{dims: dims}.Resolve()
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int { return len(s.dims) }

// Dim returns the i-th dimension.
func (s Shape) Dim(i int) Dim { return s.dims[i] }

// Dims returns a copy of the dimensions.
func (s Shape) Dims() []Dim { return slices.Clone(s.dims) }

// Mins returns the per-dimension mins.
func (s Shape) Mins() []int {
	out := make([]int, len(s.dims))
	for i, d := range s.dims {
		out[i] = d.min
	}
	return out
}

// Extents returns the per-dimension extents.
func (s Shape) Extents() []int {
	out := make([]int, len(s.dims))
	for i, d := range s.dims {
		out[i] = d.extent
	}
	return out
}

// Strides returns the per-dimension strides.
func (s Shape) Strides() []int {
	out := make([]int, len(s.dims))
	for i, d := range s.dims {
		out[i] = d.stride
	}
	return out
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	return Shape{dims: slices.Clone(s.dims)}
}

// Size returns the number of index tuples in the shape: the product of the
// extents, with negative extents treated as empty. A rank-0 shape has
// size 1.
func (s Shape) Size() int {
	n := 1
	for _, d := range s.dims {
		n *= maxInt(d.extent, 0)
	}
	return n
}

// Empty reports whether the shape contains no index tuples.
func (s Shape) Empty() bool { return s.Size() == 0 }

// FlatMin returns the lowest flat offset reachable by any in-range index
// tuple. The shape must be resolved and non-empty.
func (s Shape) FlatMin() int {
	min := 0
	for _, d := range s.dims {
		lo, _ := d.flatRange()
		min += lo
	}
	return min
}

// FlatMax returns the highest flat offset reachable by any in-range index
// tuple. The shape must be resolved and non-empty.
func (s Shape) FlatMax() int {
	max := 0
	for _, d := range s.dims {
		_, hi := d.flatRange()
		max += hi
	}
	return max
}

// FlatExtent returns the number of flat offsets spanned between FlatMin
// and FlatMax inclusive, or 0 for an empty shape. This is the buffer size
// an owning array allocates.
func (s Shape) FlatExtent() int {
	if s.Empty() {
		return 0
	}
	return maxInt(s.FlatMax()-s.FlatMin()+1, 0)
}

// IsCompact reports whether there are no unaddressable gaps between the
// first and last addressable elements: FlatExtent <= Size.
func (s Shape) IsCompact() bool { return s.FlatExtent() <= s.Size() }

// IsOneToOne reports whether two distinct index tuples never collide on
// the same flat offset. This is the approximation FlatExtent >= Size,
// which is necessary but not sufficient; a precise check would require
// solving an integer linear problem.
func (s Shape) IsOneToOne() bool { return s.FlatExtent() >= s.Size() }

// IsResolved reports whether every dimension has a concrete stride.
func (s Shape) IsResolved() bool {
	for _, d := range s.dims {
		if !d.IsResolved() {
			return false
		}
	}
	return true
}

// IsInRange reports whether each index lies within its dimension's
// [Min, Max]. The number of indices must equal the rank.
func (s Shape) IsInRange(idx ...int) bool {
	if len(idx) != len(s.dims) {
		return false
	}
	for i, d := range s.dims {
		if !d.Contains(idx[i]) {
			return false
		}
	}
	return true
}

// FlatOffset returns the flat offset of an index tuple: the sum of the
// per-dimension offsets (idx[k] - min[k]) * stride[k]. Indices are not
// bounds-checked; use an ArrayRef or Array accessor for checked access.
func (s Shape) FlatOffset(idx ...int) int {
	if len(idx) != len(s.dims) {
		panic(errors.Errorf("array: expected %d indices, got %d", len(s.dims), len(idx)))
	}
	off := 0
	for i, d := range s.dims {
		off += d.FlatOffset(idx[i])
	}
	return off
}

// Equal reports whether the shapes have the same rank and identical mins,
// extents and strides.
func (s Shape) Equal(o Shape) bool {
	return slices.Equal(s.dims, o.dims)
}

// SameRange reports whether the shapes have the same rank, mins and
// extents, ignoring strides.
func (s Shape) SameRange(o Shape) bool {
	if len(s.dims) != len(o.dims) {
		return false
	}
	for i, d := range s.dims {
		if d.Interval != o.dims[i].Interval {
			return false
		}
	}
	return true
}

// IsCompatibleWith reports whether a shape of this rank can be constructed
// from o. With fully dynamic dimensions every per-field constraint is
// satisfiable at runtime, so compatibility reduces to equal rank.
func (s Shape) IsCompatibleWith(o Shape) bool {
	return len(s.dims) == len(o.dims)
}

// WithRank returns a shape widened to the given rank by appending
// dimensions with min 0 and extent 1. rank must be at least the current
// rank.
func (s Shape) WithRank(rank int) Shape {
	if rank < len(s.dims) {
		panic(errors.Errorf("array: cannot widen rank-%d shape to rank %d", len(s.dims), rank))
	}
	dims := make([]Dim, rank)
	copy(dims, s.dims)
	for i := len(s.dims); i < rank; i++ {
		dims[i] = Dim{Interval{min: 0, extent: 1}, 0}
	}
	return Shape{dims: dims}
}

// Clamp intersects the mins and extents of s with those of o, keeping the
// strides of s. The ranks must match. The result may be empty.
func (s Shape) Clamp(o Shape) Shape {
	if len(s.dims) != len(o.dims) {
		panic(errors.Errorf("array: cannot clamp rank-%d shape against rank %d", len(s.dims), len(o.dims)))
	}
	dims := make([]Dim, len(s.dims))
	for i, d := range s.dims {
		dims[i] = Dim{d.Interval.Intersect(o.dims[i].Interval), d.stride}
	}
	return Shape{dims: dims}
}

// Reorder returns a shape whose k-th dimension is the i[k]-th dimension of
// s. The result's rank is len(order), which may be less than the rank of
// s (dropping the unlisted dimensions).
func (s Shape) Reorder(order ...int) Shape {
	dims := make([]Dim, len(order))
	for k, i := range order {
		if i < 0 || i >= len(s.dims) {
			panic(errors.Errorf("array: reorder index %d out of range for rank %d", i, len(s.dims)))
		}
		dims[k] = s.dims[i]
	}
	return Shape{dims: dims}
}

// Transpose returns the shape permuted by perm, which must be a
// permutation of 0..Rank-1.
func (s Shape) Transpose(perm ...int) Shape {
	if len(perm) != len(s.dims) {
		panic(errors.Errorf("array: transpose permutation has %d entries for rank %d", len(perm), len(s.dims)))
	}
	seen := make([]bool, len(perm))
	for _, i := range perm {
		if i < 0 || i >= len(perm) || seen[i] {
			panic(errors.Errorf("array: invalid transpose permutation %v", perm))
		}
		seen[i] = true
	}
	return s.Reorder(perm...)
}

// String returns the shape as a brace-enclosed list of dimensions.
func (s Shape) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, d := range s.dims {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.String())
	}
	b.WriteString("}")
	return b.String()
}

// A Selector picks what Select does with one dimension: keep it unchanged
// (All), restrict it to a sub-interval (Span, SpanOf), or fix an index and
// drop the dimension from the result (Fix).
type Selector struct {
	kind  selectorKind
	index int
	iv    Interval
}

type selectorKind int

const (
	selKeep selectorKind = iota
	selFix
	selSpan
)

// All keeps a dimension unchanged in Select.
var All = Selector{kind: selKeep}

// Fix slices a dimension: the index is fixed to i and the dimension is
// dropped from the result.
func Fix(i int) Selector {
	return Selector{kind: selFix, index: i}
}

// Span crops a dimension to [min, min+extent), keeping it in the result.
func Span(min, extent int) Selector {
	return Selector{kind: selSpan, iv: NewInterval(min, extent)}
}

// SpanOf crops a dimension to the given interval, keeping it in the
// result.
func SpanOf(iv Interval) Selector {
	return Selector{kind: selSpan, iv: iv}
}

// Select applies one selector per dimension, producing a shape whose rank
// is the original rank minus the number of Fix selectors. Cropped and kept
// dimensions inherit their strides and keep absolute indices: cropping
// [2, 5) leaves indices 2..4 valid, it does not rebase them to 0.
//
// Fixed indices and crop intervals must lie within their dimension.
func (s Shape) Select(sels ...Selector) Shape {
	if len(sels) != len(s.dims) {
		panic(errors.Errorf("array: Select needs one selector per dimension: rank %d, got %d", len(s.dims), len(sels)))
	}
	var dims []Dim
	for i, sel := range sels {
		d := s.dims[i]
		switch sel.kind {
		case selKeep:
			dims = append(dims, d)
		case selFix:
			if !d.Contains(sel.index) {
				panic(errors.Errorf("array: Fix(%d) out of range of dimension %d %s", sel.index, i, d.Interval))
			}
		case selSpan:
			if !d.ContainsInterval(sel.iv) {
				panic(errors.Errorf("array: Span%s out of range of dimension %d %s", sel.iv, i, d.Interval))
			}
			dims = append(dims, Dim{sel.iv, d.stride})
		}
	}
	return Shape{dims: dims}
}

// selectOffset returns the flat offset within s of the index tuple formed
// by each selector's anchor: the fixed index for Fix, the crop min for
// Span, and the dimension min for All. This is the base-pointer adjustment
// a view applies so the selected view indexes the same elements.
func (s Shape) selectOffset(sels ...Selector) int {
	off := 0
	for i, sel := range sels {
		d := s.dims[i]
		switch sel.kind {
		case selFix:
			off += d.FlatOffset(sel.index)
		case selSpan:
			if !sel.iv.Empty() {
				off += d.FlatOffset(sel.iv.min)
			}
		}
	}
	return off
}
