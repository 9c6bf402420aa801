package decompose

import "errors"

var (
	// ErrDecompositionFailed indicates that no exact basis small enough exists.
	ErrDecompositionFailed = errors.New("decompose: no basis small enough for an exact decomposition")

	// ErrNoParents indicates a root node; there is nothing to factor.
	ErrNoParents = errors.New("decompose: node has no parents")

	// ErrNodeNotInNetwork indicates a node that does not belong to the network.
	ErrNodeNotInNetwork = errors.New("decompose: node not in network")

	// ErrNameTaken indicates that the latent node name is already used.
	ErrNameTaken = errors.New("decompose: latent node name already taken")
)
