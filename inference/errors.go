package inference

import "errors"

var (
	// ErrNoNetwork indicates an operation before SetNetwork.
	ErrNoNetwork = errors.New("inference: no network set")

	// ErrUnknownNode indicates a node that is not a member of the inferer's network.
	ErrUnknownNode = errors.New("inference: node not in network")

	// ErrOutcomeRange indicates an evidence outcome index outside the node's outcomes.
	ErrOutcomeRange = errors.New("inference: outcome out of range")

	// ErrZeroProbability indicates evidence with zero total probability: the
	// posterior is undefined.
	ErrZeroProbability = errors.New("inference: evidence has zero probability")
)
