package array

// Allocator supplies and reclaims element buffers for Array. Go's garbage
// collector stands in for element construction and destruction: a freshly
// allocated buffer holds zero values, and dropping the last reference
// reclaims it. The C++-style propagation predicates collapse for the same
// reason; the one surviving hook is SelectOnClone, consulted when an array
// is cloned.
type Allocator[T any] interface {
	// Allocate returns a zeroed buffer of n elements.
	Allocate(n int) []T
	// Deallocate releases a buffer previously returned by Allocate.
	// Implementations backed by the heap may make this a no-op.
	Deallocate(buf []T)
	// SelectOnClone returns the allocator a clone of the container
	// should use.
	SelectOnClone() Allocator[T]
}

// HeapAllocator is the default allocator: make-backed, with Deallocate
// left to the garbage collector.
type HeapAllocator[T any] struct{}

// Allocate returns make([]T, n).
func (HeapAllocator[T]) Allocate(n int) []T { return make([]T, n) }

// Deallocate is a no-op; the garbage collector reclaims the buffer.
func (HeapAllocator[T]) Deallocate([]T) {}

// SelectOnClone returns the allocator itself.
func (h HeapAllocator[T]) SelectOnClone() Allocator[T] { return h }
