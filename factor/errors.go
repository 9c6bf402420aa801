// SPDX-License-Identifier: MIT
// Package factor: sentinel error set.
// All exported operations return these sentinels (optionally wrapped with
// context via fmt.Errorf("...: %w")); callers match them with errors.Is.

package factor

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when dims and cardinalities disagree in length,
	// a cardinality is non-positive, or a dimension id is repeated.
	ErrBadShape = errors.New("factor: invalid shape")

	// ErrDimensionMismatch indicates incompatible operands, e.g. a value slice
	// whose length differs from the factor's table size, or two factors that
	// disagree on the cardinality of a shared dimension.
	ErrDimensionMismatch = errors.New("factor: dimension mismatch")

	// ErrOutOfRange indicates a flat index or coordinate outside valid bounds.
	ErrOutOfRange = errors.New("factor: index out of range")

	// ErrUnknownDimension indicates that a dimension id referenced by an
	// operation is not spanned by the factor.
	ErrUnknownDimension = errors.New("factor: unknown dimension")

	// ErrZeroSum is returned by Normalize when the table carries no mass.
	ErrZeroSum = errors.New("factor: table sums to zero")
)

// factorErrorf wraps err with the name of the failing operation.
func factorErrorf(op string, err error) error {
	return fmt.Errorf("factor.%s: %w", op, err)
}
