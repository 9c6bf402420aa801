package bayesnet

import (
	"errors"
	"fmt"
)

// Sentinel errors for network construction and validation.
var (
	// ErrEmptyName indicates an empty node name.
	ErrEmptyName = errors.New("bayesnet: node name is empty")

	// ErrDuplicateNode indicates a node name already present in the network.
	ErrDuplicateNode = errors.New("bayesnet: duplicate node name")

	// ErrNoOutcomes indicates a node declared without outcomes.
	ErrNoOutcomes = errors.New("bayesnet: node has no outcomes")

	// ErrDuplicateOutcome indicates a repeated outcome label.
	ErrDuplicateOutcome = errors.New("bayesnet: duplicate outcome")

	// ErrUnknownOutcome indicates an outcome label or index not declared by the node.
	ErrUnknownOutcome = errors.New("bayesnet: unknown outcome")

	// ErrNodeNotFound indicates a lookup of a name or id that is not in the network.
	ErrNodeNotFound = errors.New("bayesnet: node not found")

	// ErrForeignParent indicates a parent that belongs to another network (or is nil).
	ErrForeignParent = errors.New("bayesnet: parent is not a member of this network")

	// ErrCycleDetected indicates that parent edges form a directed cycle.
	ErrCycleDetected = errors.New("bayesnet: cycle detected")

	// ErrDimensionMismatch indicates a probability array whose length differs
	// from the product of the cardinalities of [node]+parents.
	ErrDimensionMismatch = errors.New("bayesnet: CPT dimension mismatch")

	// ErrMissingCPT indicates a node whose probabilities were never set.
	ErrMissingCPT = errors.New("bayesnet: CPT not set")
)

func nodeErrorf(name string, err error) error {
	return fmt.Errorf("bayesnet: node %q: %w", name, err)
}
