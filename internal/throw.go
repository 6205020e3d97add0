package internal

import "github.com/pkg/errors"

// Threading errors up and down all the recursive operations during
// trapezoidization and triangulation would add a ton of complexity to the code.
// Instead, we use panics, and the public API recovers to convert to an error.

var (
	// An arena ran out of slots. The input is either not simple or is larger
	// than the configured capacity factor allows for.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// A structural invariant of the trapezoid graph or query structure broke.
	ErrInvariant = errors.New("invariant violated")
	// The geometry could not be decomposed, usually because the polygon is not
	// simple.
	ErrDegenerate = errors.New("degenerate polygon")
	ErrInvalidInput = errors.New("invalid input")
)

type TriangulateError struct {
	error
}

func (e TriangulateError) Unwrap() error { return e.error }

func (e TriangulateError) Cause() error { return e.error }

// Panic with a TriangulateError wrapping one of the sentinel kinds.
func throw(kind error, format string, args ...interface{}) {
	panic(TriangulateError{errors.Wrapf(kind, format, args...)})
}

func HandleTriangulatePanicRecover(r interface{}) error {
	if r != nil {
		if triangulateError, ok := r.(TriangulateError); ok {
			return triangulateError.error
		}
		panic(r)
	}
	return nil
}
