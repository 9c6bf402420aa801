package inference

import (
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/bayes/bayesnet"
)

// ComputeFunc fills beliefs[id] (pre-sized to each node's cardinality) with
// normalized marginals for the given evidence snapshot.
type ComputeFunc func(evidence map[*bayesnet.Node]int, beliefs [][]float64) error

// Base holds the state every engine shares: the bound network, the evidence
// set and the belief cache guarded by a single validity flag. Engines embed
// it and implement Beliefs on top of Cached.
//
// The mutex serializes evidence updates and propagation on one instance.
type Base struct {
	mu       sync.Mutex
	net      *bayesnet.Network
	evidence map[*bayesnet.Node]int
	beliefs  [][]float64
	valid    bool
	version  uint64 // network version the cache was computed for
}

// Bind attaches net after validating it, dropping evidence and caches.
func (b *Base) Bind(net *bayesnet.Network) error {
	if net == nil {
		return ErrNoNetwork
	}
	if err := net.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.net = net
	b.evidence = make(map[*bayesnet.Node]int)
	b.beliefs = nil
	b.valid = false
	return nil
}

// Network returns the bound network (nil before Bind).
func (b *Base) Network() *bayesnet.Network {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.net
}

// checkLocked validates that node can be observed at outcome.
func (b *Base) checkLocked(node *bayesnet.Node, outcome int) error {
	if b.net == nil {
		return ErrNoNetwork
	}
	if !b.net.Contains(node) {
		return fmt.Errorf("%w: %v", ErrUnknownNode, node)
	}
	if outcome < 0 || outcome >= node.OutcomeCount() {
		return fmt.Errorf("%w: %s=%d", ErrOutcomeRange, node.Name(), outcome)
	}
	return nil
}

// SetEvidence replaces the evidence set. Nothing changes if any entry is invalid.
func (b *Base) SetEvidence(evidence map[*bayesnet.Node]int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for node, o := range evidence {
		if err := b.checkLocked(node, o); err != nil {
			return err
		}
	}
	b.evidence = make(map[*bayesnet.Node]int, len(evidence))
	for node, o := range evidence {
		b.evidence[node] = o
	}
	b.valid = false
	return nil
}

// AddEvidence observes node at outcome.
func (b *Base) AddEvidence(node *bayesnet.Node, outcome int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkLocked(node, outcome); err != nil {
		return err
	}
	if prev, ok := b.evidence[node]; ok && prev == outcome {
		return nil
	}
	b.evidence[node] = outcome
	b.valid = false
	return nil
}

// RemoveEvidence forgets the observation of node.
func (b *Base) RemoveEvidence(node *bayesnet.Node) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.evidence[node]; ok {
		delete(b.evidence, node)
		b.valid = false
	}
}

// ClearEvidence forgets all observations.
func (b *Base) ClearEvidence() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.evidence) > 0 {
		b.evidence = make(map[*bayesnet.Node]int)
		b.valid = false
	}
}

// Evidence returns a copy of the evidence set.
func (b *Base) Evidence() map[*bayesnet.Node]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[*bayesnet.Node]int, len(b.evidence))
	for node, o := range b.evidence {
		out[node] = o
	}
	return out
}

// Invalidate drops the belief cache.
func (b *Base) Invalidate() {
	b.mu.Lock()
	b.valid = false
	b.mu.Unlock()
}

// Valid reports whether the belief cache matches the current evidence and
// network version.
func (b *Base) Valid() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.valid && b.net != nil && b.version == b.net.Version()
}

// Cached returns a copy of node's belief, running compute first when the
// cache is invalid (evidence changed or the network mutated).
func (b *Base) Cached(node *bayesnet.Node, compute ComputeFunc) ([]float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.net == nil {
		return nil, ErrNoNetwork
	}
	if !b.net.Contains(node) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNode, node)
	}

	if !b.valid || b.version != b.net.Version() || len(b.beliefs) != b.net.Len() {
		cards := b.net.Cardinalities()
		beliefs := make([][]float64, len(cards))
		for i, c := range cards {
			beliefs[i] = make([]float64, c)
		}
		if err := compute(b.evidence, beliefs); err != nil {
			b.valid = false
			return nil, err
		}
		b.beliefs = beliefs
		b.version = b.net.Version()
		b.valid = true
	}

	return append([]float64(nil), b.beliefs[node.ID()]...), nil
}

// Normalize scales values in place to sum to 1. It returns
// ErrZeroProbability when the total is zero or not finite.
func Normalize(values []float64) error {
	var sum float64
	for _, v := range values {
		sum += v
	}
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return ErrZeroProbability
	}
	for i := range values {
		values[i] /= sum
	}
	return nil
}
