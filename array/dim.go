package array

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// unresolvedStride marks a stride that has not been assigned yet. The value
// is conspicuous on sight in a debugger and is never a legal stride; the
// resolver replaces it before any addressing happens.
const unresolvedStride = math.MinInt / 2

// Dim is an Interval plus a stride. It maps an index i within the interval
// to the flat offset (i - Min) * Stride.
//
// Stride 1 is a dense dimension; stride 0 is a broadcast dimension (every
// index maps to the same offset); negative strides are legal and reverse
// the direction of the dimension in memory.
type Dim struct {
	Interval
	stride int
}

// NewDim builds a dimension from up to three values:
//
//	NewDim()                    // min 0, extent 1, stride unresolved
//	NewDim(extent)              // min 0, stride unresolved
//	NewDim(min, extent)         // stride unresolved
//	NewDim(min, extent, stride)
func NewDim(args ...int) Dim {
	switch len(args) {
	case 0:
		return Dim{Interval{min: 0, extent: 1}, unresolvedStride}
	case 1:
		return Dim{Interval{min: 0, extent: args[0]}, unresolvedStride}
	case 2:
		return Dim{Interval{min: args[0], extent: args[1]}, unresolvedStride}
	case 3:
		return Dim{Interval{min: args[0], extent: args[1]}, args[2]}
	default:
		panic(errors.Errorf("array: NewDim takes at most 3 arguments, got %d", len(args)))
	}
}

// DenseDim returns a dimension with min 0 and stride 1.
func DenseDim(extent int) Dim {
	return Dim{Interval{min: 0, extent: extent}, 1}
}

// BroadcastDim returns a dimension with stride 0: every index maps to the
// same flat offset. The optional argument is the extent (default 1).
func BroadcastDim(extent ...int) Dim {
	e := 1
	if len(extent) > 0 {
		e = extent[0]
	}
	return Dim{Interval{min: 0, extent: e}, 0}
}

// DimOf returns a dimension over the given interval with the given stride.
func DimOf(iv Interval, stride int) Dim {
	return Dim{iv, stride}
}

// Stride returns the dimension's stride. The result is meaningful only
// when IsResolved reports true.
func (d Dim) Stride() int { return d.stride }

// SetStride sets the dimension's stride.
func (d *Dim) SetStride(stride int) { d.stride = stride }

// IsResolved reports whether the stride has a concrete value.
func (d Dim) IsResolved() bool { return d.stride != unresolvedStride }

// FlatOffset returns (i - Min) * Stride. The dimension must be resolved.
func (d Dim) FlatOffset(i int) int {
	return (i - d.min) * d.stride
}

// span is the total extent of memory covered by the dimension,
// |stride| * extent, with negative extents treated as empty.
func (d Dim) span() int {
	e := maxInt(d.extent, 0)
	return absInt(d.stride) * e
}

// flatRange returns the lowest and highest flat offsets reachable within
// the dimension, accounting for the sign of the stride. Meaningless for
// empty dimensions.
func (d Dim) flatRange() (lo, hi int) {
	r := d.stride * (d.extent - 1)
	if r < 0 {
		return r, 0
	}
	return 0, r
}

// String returns the dimension as dim(min, extent, stride), omitting an
// unresolved stride.
func (d Dim) String() string {
	if !d.IsResolved() {
		return fmt.Sprintf("dim(%d, %d)", d.min, d.extent)
	}
	return fmt.Sprintf("dim(%d, %d, %d)", d.min, d.extent, d.stride)
}
