package interval

import (
	"errors"
	"fmt"
)

// Errors returned or raised by tree operations.
var (
	// ErrPositionOutOfRange is returned by Find and Update when the
	// requested position lies outside the tree. Recoverable: the caller
	// supplied a bad position.
	ErrPositionOutOfRange = errors.New("position out of range")

	// ErrViolatedInvariant is the panic value wrapper for structural
	// precondition failures (rotating without the required child, a span
	// length reaching zero mid-surgery). These indicate a corrupted tree
	// or misuse of the single-writer contract and are fatal: the tree's
	// invariants can no longer be trusted.
	ErrViolatedInvariant = errors.New("violated interval tree invariant")
)

// violated panics with an ErrViolatedInvariant-wrapped error.
func violated(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrViolatedInvariant, fmt.Sprintf(format, args...)))
}
