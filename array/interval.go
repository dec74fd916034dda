package array

import (
	"fmt"
	"iter"

	"github.com/pkg/errors"
)

// Interval is the half-open index range [Min, Min+Extent).
//
// The zero value is the empty interval [0, 0). Constructors apply the
// library defaults instead: an unspecified min is 0 and an unspecified
// extent is 1.
type Interval struct {
	min    int
	extent int
}

// NewInterval returns the interval [min, min+extent).
func NewInterval(min, extent int) Interval {
	return Interval{min: min, extent: extent}
}

// Point returns the single-index interval [i, i+1).
func Point(i int) Interval {
	return Interval{min: i, extent: 1}
}

// Range returns the half-open interval [begin, end).
func Range(begin, end int) Interval {
	return Interval{min: begin, extent: end - begin}
}

// Min returns the first index of the interval.
func (iv Interval) Min() int { return iv.min }

// Extent returns the number of indices in the interval.
func (iv Interval) Extent() int { return iv.extent }

// Max returns the last index of the interval, Min+Extent-1.
// For an empty interval this is less than Min.
func (iv Interval) Max() int { return iv.min + iv.extent - 1 }

// SetMin sets the first index of the interval.
func (iv *Interval) SetMin(min int) { iv.min = min }

// SetExtent sets the number of indices in the interval.
func (iv *Interval) SetExtent(extent int) { iv.extent = extent }

// SetMax sets the last index of the interval by adjusting the extent.
func (iv *Interval) SetMax(max int) { iv.extent = max - iv.min + 1 }

// Empty reports whether the interval contains no indices.
func (iv Interval) Empty() bool { return iv.extent <= 0 }

// Contains reports whether i is within [Min, Max].
func (iv Interval) Contains(i int) bool {
	return iv.min <= i && i <= iv.Max()
}

// ContainsInterval reports whether every index of o is within iv.
// An empty o is contained in anything.
func (iv Interval) ContainsInterval(o Interval) bool {
	if o.Empty() {
		return true
	}
	return iv.min <= o.min && o.Max() <= iv.Max()
}

// Intersect returns the largest interval contained in both iv and o.
// The result may be empty.
func (iv Interval) Intersect(o Interval) Interval {
	min := maxInt(iv.min, o.min)
	max := minInt(iv.Max(), o.Max())
	return Interval{min: min, extent: max - min + 1}
}

// Each iterates over the indices of the interval in increasing order.
func (iv Interval) Each() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := iv.min; i <= iv.Max(); i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// Split divides the interval into consecutive sub-intervals of length n.
// When n does not divide the extent, the last sub-interval is clipped so
// its Max equals the outer Max.
func (iv Interval) Split(n int) iter.Seq[Interval] {
	if n <= 0 {
		panic(errors.Errorf("array: split factor must be positive, got %d", n))
	}
	return func(yield func(Interval) bool) {
		for min := iv.min; min <= iv.Max(); min += n {
			extent := n
			if min+extent-1 > iv.Max() {
				extent = iv.Max() - min + 1
			}
			if !yield(Interval{min: min, extent: extent}) {
				return
			}
		}
	}
}

// SplitFixed divides the interval into sub-intervals of length exactly n.
// When n does not divide the extent, the last sub-interval is shifted (not
// shrunk) so its Max equals the outer Max, overlapping the previous one.
// Callers that need the fixed length for inner-loop specialization accept
// the overlap and write idempotent bodies. Requires Extent >= n.
func (iv Interval) SplitFixed(n int) iter.Seq[Interval] {
	if n <= 0 {
		panic(errors.Errorf("array: split factor must be positive, got %d", n))
	}
	if iv.extent < n {
		panic(errors.Errorf("array: cannot split extent %d into pieces of %d", iv.extent, n))
	}
	return func(yield func(Interval) bool) {
		for min := iv.min; ; min += n {
			if min+n-1 >= iv.Max() {
				yield(Interval{min: iv.Max() - n + 1, extent: n})
				return
			}
			if !yield(Interval{min: min, extent: n}) {
				return
			}
		}
	}
}

// String returns the interval in half-open notation.
func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d)", iv.min, iv.min+iv.extent)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
