package decompose

import (
	"fmt"

	"github.com/katalvlaran/bayes/bayesnet"
	"github.com/katalvlaran/bayes/flyweight"
)

// LatentDeterministic is the exact strategy: the basis is the set of
// distinct CPT rows.
type LatentDeterministic struct{}

// Decompose implements Decomposition.
//
// Stage 1 (Basis): intern every row; rows sharing a canonical array share a
// basis entry, in order of first appearance.
// Stage 2 (Check): fail with ErrDecompositionFailed unless m·P + K·m < K·P.
// Stage 3 (Rewrite): insert the latent node and rewire.
// Complexity: O(K·P) expected.
func (LatentDeterministic) Decompose(net *bayesnet.Network, node *bayesnet.Node) error {
	r, err := prepare(net, node)
	if err != nil {
		return err
	}

	store := net.Flyweight()
	if store == nil {
		store = flyweight.New()
	}
	index := make(map[*float64]int, r.configs)
	var basis [][]float64
	assign := make([]int, r.configs)
	for j, row := range r.data {
		canon := store.Intern(row)
		b, ok := index[&canon[0]]
		if !ok {
			b = len(basis)
			index[&canon[0]] = b
			basis = append(basis, canon)
		}
		assign[j] = b
	}

	if !r.fits(len(basis)) {
		return fmt.Errorf("%w: %s has %d distinct rows out of %d",
			ErrDecompositionFailed, node.Name(), len(basis), r.configs)
	}
	_, err = rewrite(net, node, basis, assign)
	return err
}
