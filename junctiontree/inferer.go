package junctiontree

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/katalvlaran/bayes/bayesnet"
	"github.com/katalvlaran/bayes/inference"
)

// engineName labels telemetry and logs.
const engineName = "junctiontree"

// State is the lifecycle state of an Inferer.
type State int

const (
	// Unbuilt: no network compiled.
	Unbuilt State = iota
	// Compiled: tables prepared, beliefs stale.
	Compiled
	// Propagated: beliefs reflect the current evidence.
	Propagated
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Unbuilt:
		return "unbuilt"
	case Compiled:
		return "compiled"
	case Propagated:
		return "propagated"
	default:
		return "unknown"
	}
}

// Inferer is the exact junction-tree engine. It implements inference.Inferer.
//
// The network is compiled on SetNetwork and recompiled transparently when the
// network's version changes. Beliefs trigger a propagation only when evidence
// or the network changed since the last one.
type Inferer struct {
	inference.Base

	opts     options
	net      *bayesnet.Network
	tree     *tree
	compiled uint64 // network version of tree
	log      logrus.FieldLogger
}

var _ inference.Inferer = (*Inferer)(nil)

// New returns an Inferer with no network bound.
func New(opts ...Option) *Inferer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Inferer{opts: o, log: o.logger.WithField("engine", engineName)}
}

// SetNetwork validates and compiles net, dropping evidence and beliefs.
func (i *Inferer) SetNetwork(net *bayesnet.Network) error {
	if err := i.Bind(net); err != nil {
		return err
	}
	i.net = net
	return i.compile()
}

// compile (re)builds the junction tree for the current network version.
func (i *Inferer) compile() (err error) {
	ctx, span := inference.StartSpan(context.Background(), engineName, "Compile",
		attribute.Int("bayes.nodes", i.net.Len()))
	start := time.Now()
	defer func() {
		inference.RecordCompile(ctx, engineName, time.Since(start), err)
		inference.EndSpan(span, err)
	}()

	t, err := compile(i.net, i.opts.precision)
	if err != nil {
		i.tree = nil
		return err
	}
	i.tree = t
	i.compiled = i.net.Version()

	s := t.stats()
	span.SetAttributes(
		attribute.Int("bayes.cliques", s.Cliques),
		attribute.Int("bayes.max_clique_size", s.MaxCliqueSize),
	)
	i.log.WithFields(logrus.Fields{
		"network":         i.net.Name(),
		"nodes":           i.net.Len(),
		"cliques":         s.Cliques,
		"max_clique_vars": s.MaxCliqueVars,
		"max_clique_size": s.MaxCliqueSize,
		"total_size":      s.TotalSize,
		"precision":       i.opts.precision.String(),
	}).Debug("compiled junction tree")
	return nil
}

// Beliefs returns the normalized posterior marginal of node, propagating
// first if evidence or the network changed.
func (i *Inferer) Beliefs(node *bayesnet.Node) ([]float64, error) {
	return i.Cached(node, i.propagate)
}

// propagate is the inference.ComputeFunc of the engine.
func (i *Inferer) propagate(evidence map[*bayesnet.Node]int, beliefs [][]float64) (err error) {
	if i.tree == nil || i.compiled != i.net.Version() {
		if err = i.net.Validate(); err != nil {
			return err
		}
		if err = i.compile(); err != nil {
			return err
		}
	}

	ctx, span := inference.StartSpan(context.Background(), engineName, "Propagate",
		attribute.Int("bayes.evidence", len(evidence)))
	start := time.Now()
	defer func() {
		inference.RecordPropagation(ctx, engineName, time.Since(start), err)
		inference.EndSpan(span, err)
	}()

	p := &propagator{t: i.tree, concurrency: i.opts.concurrency, smoothing: i.opts.smoothing}
	return p.run(evidence, beliefs)
}

// State reports the lifecycle state.
func (i *Inferer) State() State {
	switch {
	case i.tree == nil:
		return Unbuilt
	case i.Valid() && i.compiled == i.net.Version():
		return Propagated
	default:
		return Compiled
	}
}

// Stats returns table statistics of the compiled tree.
func (i *Inferer) Stats() (Stats, error) {
	if i.tree == nil {
		return Stats{}, ErrNotCompiled
	}
	return i.tree.stats(), nil
}
