package array

import "github.com/pkg/errors"

// Copy assigns every element of dst from the source element at the same
// index tuple. The ranks must match and dst's index range must lie inside
// src's; otherwise ErrShapeMismatch or ErrOutOfRange is returned. An
// empty destination is a no-op regardless of the source range.
//
// The traversal is fused and ordered by stride on both sides, so a
// dense-to-dense copy degenerates to a single flat loop.
func Copy[T any](src, dst ArrayRef[T]) error {
	if err := checkCopyRange(src.shape, dst.shape); err != nil {
		return err
	}
	copyValues(src, dst)
	return nil
}

// Move is Copy for callers that are done with the source: element values
// transfer to dst and the source contents are unspecified afterwards. Go
// values have no destructive move, so for plain value types this is an
// ordinary copy; use MakeMove to transfer a whole allocation.
func Move[T any](src, dst ArrayRef[T]) error {
	return Copy(src, dst)
}

// Fill sets every element of dst to value.
func Fill[T any](dst ArrayRef[T], value T) {
	dst.ForEachValue(func(p *T) { *p = value })
}

// Generate sets every element of dst to the result of fn, called once per
// element in an unspecified order.
func Generate[T any](dst ArrayRef[T], fn func() T) {
	dst.ForEachValue(func(p *T) { *p = fn() })
}

// Equal reports whether a and b have the same mins and extents and equal
// elements at every index tuple. It short-circuits on the first mismatch.
func Equal[T comparable](a, b ArrayRef[T]) bool {
	if !a.shape.SameRange(b.shape) {
		return false
	}
	eq := true
	forEachPair(a, b, func(x, y *T) bool {
		if *x != *y {
			eq = false
		}
		return eq
	})
	return eq
}

// Swap exchanges the contents of two arrays.
func Swap[T any](a, b *Array[T]) {
	a.Swap(b)
}

// MakeCopy allocates a new array with src's shape and copies the elements
// into it.
func MakeCopy[T any](src ArrayRef[T]) *Array[T] {
	a := New[T](src.shape)
	copyValues(src, a.Ref())
	return a
}

// MakeDenseCopy copies src into a new array with the same mins and
// extents and the innermost dimension dense.
func MakeDenseCopy[T any](src ArrayRef[T]) *Array[T] {
	a := New[T](MakeDense(src.shape))
	copyValues(src, a.Ref())
	return a
}

// MakeCompactCopy copies src into a new array with the same mins and
// extents and a compact layout (all strides re-resolved).
func MakeCompactCopy[T any](src ArrayRef[T]) *Array[T] {
	a := New[T](MakeCompact(src.shape))
	copyValues(src, a.Ref())
	return a
}

// MakeMove transfers src's allocation into a new array, leaving src empty
// but valid.
func MakeMove[T any](src *Array[T]) *Array[T] {
	n := &Array[T]{alloc: src.alloc, buf: src.buf, base: src.base, shape: src.shape}
	src.buf = nil
	src.base = 0
	src.shape = emptyShapeOfRank(src.shape.Rank()).Resolve()
	return n
}

// checkCopyRange validates the copy precondition: equal ranks and the
// destination range contained per dimension in the source. An empty
// destination always passes.
func checkCopyRange(src, dst Shape) error {
	if dst.Rank() != src.Rank() {
		return errors.Wrapf(ErrShapeMismatch, "copy: source rank %d, destination rank %d", src.Rank(), dst.Rank())
	}
	if dst.Empty() {
		return nil
	}
	for k := range dst.dims {
		if !src.dims[k].ContainsInterval(dst.dims[k].Interval) {
			return errors.Wrapf(ErrOutOfRange, "copy: destination dimension %d %s outside source %s",
				k, dst.dims[k].Interval, src.dims[k].Interval)
		}
	}
	return nil
}

// copyValues runs the paired traversal without range checking; callers
// guarantee dst's index range lies inside src's.
func copyValues[T any](src, dst ArrayRef[T]) {
	forEachPair(dst, src, func(d, s *T) bool {
		*d = *s
		return true
	})
}

// forEachPair pairs every element of a with the b element at the same
// index tuple, iterating a's index space. Neither order nor fusion is
// observable to fn; returning false stops the traversal.
func forEachPair[T, U any](a ArrayRef[T], b ArrayRef[U], fn func(pa *T, pb *U) bool) {
	if a.Empty() {
		return
	}
	pds := optimizePair(a.shape, b.shape)
	// b's starting offset is its flat offset of a's min tuple; a starts
	// at its own min tuple, flat offset 0.
	ob := b.base
	for k := range a.shape.dims {
		ob += b.shape.dims[k].FlatOffset(a.shape.dims[k].min)
	}
	eachOffsetPair(pds, len(pds)-1, a.base, ob, func(oa, obi int) bool {
		return fn(&a.data[oa], &b.data[obi])
	})
}
