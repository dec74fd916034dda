package array

import "github.com/pkg/errors"

// Sentinel errors for user-visible failures. Programming bugs (static
// precondition violations, unchecked accessor misuse) panic instead; see
// the package documentation.
var (
	// ErrOutOfRange reports a copy or move whose destination index range
	// is not contained in the source.
	ErrOutOfRange = errors.New("array: index range out of bounds")

	// ErrShapeMismatch reports operands whose ranks do not line up.
	ErrShapeMismatch = errors.New("array: shape mismatch")
)
