package core

import (
	"errors"
	"fmt"
)

// ErrPrecondition marks programming or configuration errors: mismatched grid
// sizes, too few points, non-monotonic curves, out-of-range cell ids.
var ErrPrecondition = errors.New("precondition violated")

// Preconditionf returns an error wrapping ErrPrecondition.
func Preconditionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}
