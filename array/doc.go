// Package array provides multi-dimensional arrays with fully parameterized
// shapes: each dimension carries an independent min, extent and stride, so
// the same machinery describes dense matrices, planar and interleaved
// images, broadcasts (stride 0) and reversed axes (negative strides).
//
// # Overview
//
// The building blocks, from the bottom up:
//   - Interval: a half-open index range [min, min+extent)
//   - Dim: an Interval plus a stride mapping indices to flat offsets
//   - Shape: an ordered tuple of Dims mapping index tuples to flat offsets
//   - ArrayRef[T]: a non-owning view over a buffer with a Shape
//   - Array[T]: a container owning exactly one allocation sized to its Shape
//
// Dimension 0 is the innermost dimension: in a dense shape it has stride 1,
// and traversal visits it fastest.
//
// # Basic Usage
//
//	import "github.com/dsharlet/array-sub000/array"
//
//	func main() {
//	    a := array.New[float32](array.DenseShape(10, 5))
//	    a.Set(3.5, 2, 4)
//	    v := a.At(2, 4)
//
//	    // Rows 2..4 of column 3, as a rank-1 view.
//	    col := a.Select(array.Span(2, 3), array.Fix(3))
//	    col.ForEachValue(func(p *float32) { *p *= 2 })
//	}
//
// # Stride resolution
//
// Strides may be left unresolved when a shape is declared. Containers and
// views resolve them on construction: each unresolved dimension receives the
// smallest stride whose span does not intersect any other dimension. Leaving
// every stride unresolved yields the natural dense layout; fixing one (for
// example "channels have stride 1") makes the resolver interleave the rest
// around it.
//
//	// 4x5 RGB, channels innermost in memory:
//	s := array.NewShape(array.NewDim(5), array.NewDim(4), array.DenseDim(3))
//	s = s.Resolve() // row stride 3, column stride 15
//
// # Traversal
//
// ForEachIndex visits index tuples in order (dimension R-1 outermost).
// ForEachValue visits every element exactly once but in no particular
// order: the shape is first optimized by sorting dimensions by stride,
// fusing contiguous dimensions and special-casing a unit-stride inner loop,
// so dense traversal runs as a single flat loop regardless of how the
// dimensions were declared.
//
// # Concurrency
//
// The library schedules nothing and locks nothing. An Array exclusively
// owns its buffer; concurrent mutation requires external synchronization.
// Distinct read-only views of the same array may be used concurrently.
package array
