package array

import (
	"unsafe"

	"github.com/pkg/errors"
)

// Reinterpret returns a view of the same buffer with the elements read as
// U instead of T. The element sizes must match; a mismatch is a
// programming error and panics. The shape is unchanged.
//
//	bits := array.Reinterpret[uint32](floats.Ref())
func Reinterpret[U, T any](r ArrayRef[T]) ArrayRef[U] {
	var t T
	var u U
	if unsafe.Sizeof(t) != unsafe.Sizeof(u) {
		panic(errors.Errorf("array: cannot reinterpret %T (%d bytes) as %T (%d bytes)",
			t, unsafe.Sizeof(t), u, unsafe.Sizeof(u)))
	}
	if len(r.data) == 0 {
		return ArrayRef[U]{data: nil, base: r.base, shape: r.shape.Clone()}
	}
	data := unsafe.Slice((*U)(unsafe.Pointer(&r.data[0])), len(r.data))
	return ArrayRef[U]{data: data, base: r.base, shape: r.shape.Clone()}
}

// ReinterpretShape returns a view of the same buffer under a different
// shape, with the base moved by offset elements. The new shape must be
// resolved and its whole index space must map inside the buffer;
// violations are programming errors and panic.
func ReinterpretShape[T any](r ArrayRef[T], s Shape, offset int) ArrayRef[T] {
	if !s.IsResolved() {
		panic(errors.Errorf("array: ReinterpretShape requires a resolved shape, got %s", s))
	}
	base := r.base + offset
	if !s.Empty() {
		lo := base + s.FlatMin()
		hi := base + s.FlatMax()
		if lo < 0 || hi >= len(r.data) {
			panic(errors.Errorf("array: shape %s at offset %d spans buffer positions [%d, %d], buffer has %d",
				s, offset, lo, hi, len(r.data)))
		}
	}
	return ArrayRef[T]{data: r.data, base: base, shape: s.Clone()}
}
