package inference

import (
	"github.com/katalvlaran/bayes/bayesnet"
)

// Inferer computes posterior marginals of a discrete Bayesian network.
//
// Implementations are not safe for concurrent use unless documented; they
// serialize their own propagation but callers must not interleave evidence
// updates from several goroutines and expect a consistent view.
type Inferer interface {
	// SetNetwork binds the inferer to net, dropping evidence and caches.
	SetNetwork(net *bayesnet.Network) error
	// SetEvidence replaces the evidence set (node → outcome index).
	SetEvidence(evidence map[*bayesnet.Node]int) error
	// AddEvidence observes one node, replacing an earlier observation of it.
	AddEvidence(node *bayesnet.Node, outcome int) error
	// RemoveEvidence forgets the observation of node, if any.
	RemoveEvidence(node *bayesnet.Node)
	// ClearEvidence forgets all observations.
	ClearEvidence()
	// Evidence returns a copy of the current evidence.
	Evidence() map[*bayesnet.Node]int
	// Beliefs returns the normalized posterior marginal of node.
	Beliefs(node *bayesnet.Node) ([]float64, error)
}
