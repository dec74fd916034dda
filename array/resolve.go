package array

// Resolve returns a copy of the shape in which every unresolved stride has
// been assigned a concrete value. Dimensions whose strides were supplied
// by the caller are never rewritten.
//
// Dimensions are resolved from innermost (dimension 0) to outermost. Each
// unresolved dimension receives the smallest candidate stride that does
// not intersect any already-resolved dimension, where the candidates are 1
// and the span |stride|*extent of every resolved dimension. With nothing
// fixed this yields the natural dense layout; with one dimension pinned
// (say, channels at stride 1) the rest interleave around it.
func (s Shape) Resolve() Shape {
	r := s.Clone()
	for i := range r.dims {
		if r.dims[i].IsResolved() {
			continue
		}
		r.dims[i].stride = resolveStride(r.dims, i)
	}
	return r
}

// resolveStride picks a stride for dims[i] that does not intersect any
// resolved dimension.
func resolveStride(dims []Dim, i int) int {
	extent := maxInt(dims[i].extent, 0)

	candidates := []int{1}
	for j, d := range dims {
		if j != i && d.IsResolved() {
			candidates = append(candidates, d.span())
		}
	}

	best := -1
	for _, c := range candidates {
		if c < 1 {
			// A span of 0 comes from an empty or broadcast dimension;
			// stride 0 would alias every index.
			continue
		}
		ok := true
		for j, d := range dims {
			if j == i || !d.IsResolved() {
				continue
			}
			if !nonIntersecting(d, c, extent) {
				ok = false
				break
			}
		}
		if ok && (best < 0 || c < best) {
			best = c
		}
	}
	// The largest span is always non-intersecting, so a candidate exists.
	return best
}

// nonIntersecting reports whether a dimension with stride s and extent e
// stays clear of the resolved dimension d: either d fits entirely inside
// one step of s, or d's step lands outside the full span e*s.
func nonIntersecting(d Dim, s, e int) bool {
	return d.span() <= s || absInt(d.stride) >= e*s
}
