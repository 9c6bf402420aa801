package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/bayes/bayesnet"
	"github.com/katalvlaran/bayes/decompose"
	"github.com/katalvlaran/bayes/inference"
)

// DefaultMinTableSize is the CPT size from which Transformed decomposes.
const DefaultMinTableSize = 64

// TransformOption configures a Transformed inferer.
type TransformOption func(*Transformed)

// WithMinTableSize decomposes only nodes whose CPT has at least n cells.
func WithMinTableSize(n int) TransformOption {
	if n < 0 {
		panic("engine: WithMinTableSize: n must be >= 0")
	}
	return func(t *Transformed) { t.minSize = n }
}

// WithFallback retries nodes the main strategy rejects with s.
func WithFallback(s decompose.Decomposition) TransformOption {
	return func(t *Transformed) { t.fallback = s }
}

// WithTransformLogger sets the logger for decomposition decisions.
func WithTransformLogger(l logrus.FieldLogger) TransformOption {
	return func(t *Transformed) {
		if l != nil {
			t.log = l
		}
	}
}

// Transformed decorates an engine: it runs it on a decomposed copy of the
// caller's network and translates nodes by name in both directions, so
// evidence and beliefs always refer to the caller's nodes.
//
// The caller's network is never modified. When it mutates, the copy is
// rebuilt before the next Beliefs call and the evidence carried over.
type Transformed struct {
	inner    inference.Inferer
	strategy decompose.Decomposition
	fallback decompose.Decomposition
	minSize  int
	log      logrus.FieldLogger

	mu      sync.Mutex
	orig    *bayesnet.Network
	work    *bayesnet.Network
	version uint64 // orig version work was built from
	latent  []string
}

var _ inference.Inferer = (*Transformed)(nil)

// NewTransformed wraps inner with strategy.
func NewTransformed(inner inference.Inferer, strategy decompose.Decomposition, opts ...TransformOption) *Transformed {
	t := &Transformed{
		inner:    inner,
		strategy: strategy,
		minSize:  DefaultMinTableSize,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.WithField("engine", "transformed")
	return t
}

// SetNetwork validates net, decomposes a private copy and binds the inner
// engine to it.
func (t *Transformed) SetNetwork(net *bayesnet.Network) error {
	if net == nil {
		return inference.ErrNoNetwork
	}
	if err := net.Validate(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.rebuildLocked(net); err != nil {
		return err
	}
	t.orig = net
	return nil
}

// rebuildLocked clones net, decomposes the clone and binds the inner engine.
func (t *Transformed) rebuildLocked(net *bayesnet.Network) error {
	work, err := net.Clone()
	if err != nil {
		return err
	}

	var latent []string
	for _, node := range work.Nodes() {
		if len(node.Parents()) == 0 || node.CPT().Len() < t.minSize {
			continue
		}
		fields := logrus.Fields{"node": node.Name(), "cells": node.CPT().Len()}
		err = t.strategy.Decompose(work, node)
		if err != nil && t.fallback != nil && errors.Is(err, decompose.ErrDecompositionFailed) {
			t.log.WithFields(fields).WithError(err).Warn("exact decomposition failed, using fallback")
			err = t.fallback.Decompose(work, node)
		}
		if err != nil {
			t.log.WithFields(fields).WithError(err).Warn("node left as is")
			continue
		}
		latent = append(latent, node.Name()+decompose.LatentSuffix)
		t.log.WithFields(fields).WithField("cells_after", node.CPT().Len()).Debug("decomposed")
	}

	if err = t.inner.SetNetwork(work); err != nil {
		return err
	}
	t.work, t.version, t.latent = work, net.Version(), latent
	return nil
}

// Network returns the caller's network and the decomposed copy.
func (t *Transformed) Network() (orig, work *bayesnet.Network) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.orig, t.work
}

// Decomposed returns the names of the latent nodes of the working copy.
func (t *Transformed) Decomposed() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.latent...)
}

// toWorkLocked maps a caller node onto the working copy.
func (t *Transformed) toWorkLocked(node *bayesnet.Node) (*bayesnet.Node, error) {
	if t.orig == nil {
		return nil, inference.ErrNoNetwork
	}
	if !t.orig.Contains(node) {
		return nil, fmt.Errorf("%w: %v", inference.ErrUnknownNode, node)
	}
	w, err := t.work.Node(node.Name())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", inference.ErrUnknownNode, node)
	}
	return w, nil
}

// syncLocked rebuilds the working copy when the caller's network changed,
// carrying the evidence over.
func (t *Transformed) syncLocked() error {
	if t.orig == nil || t.orig.Version() == t.version {
		return nil
	}
	if err := t.orig.Validate(); err != nil {
		return err
	}
	evidence := make(map[string]int)
	for n, o := range t.inner.Evidence() {
		evidence[n.Name()] = o
	}
	if err := t.rebuildLocked(t.orig); err != nil {
		return err
	}
	mapped := make(map[*bayesnet.Node]int, len(evidence))
	for name, o := range evidence {
		if w, err := t.work.Node(name); err == nil {
			mapped[w] = o
		}
	}
	return t.inner.SetEvidence(mapped)
}

// SetEvidence implements inference.Inferer.
func (t *Transformed) SetEvidence(evidence map[*bayesnet.Node]int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.syncLocked(); err != nil {
		return err
	}
	mapped := make(map[*bayesnet.Node]int, len(evidence))
	for n, o := range evidence {
		w, err := t.toWorkLocked(n)
		if err != nil {
			return err
		}
		mapped[w] = o
	}
	return t.inner.SetEvidence(mapped)
}

// AddEvidence implements inference.Inferer.
func (t *Transformed) AddEvidence(node *bayesnet.Node, outcome int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.syncLocked(); err != nil {
		return err
	}
	w, err := t.toWorkLocked(node)
	if err != nil {
		return err
	}
	return t.inner.AddEvidence(w, outcome)
}

// RemoveEvidence implements inference.Inferer.
func (t *Transformed) RemoveEvidence(node *bayesnet.Node) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if w, err := t.toWorkLocked(node); err == nil {
		t.inner.RemoveEvidence(w)
	}
}

// ClearEvidence implements inference.Inferer.
func (t *Transformed) ClearEvidence() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inner.ClearEvidence()
}

// Evidence returns the evidence keyed by the caller's nodes.
func (t *Transformed) Evidence() map[*bayesnet.Node]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[*bayesnet.Node]int)
	if t.orig == nil {
		return out
	}
	for n, o := range t.inner.Evidence() {
		if orig, err := t.orig.Node(n.Name()); err == nil {
			out[orig] = o
		}
	}
	return out
}

// Beliefs returns the posterior of a caller node computed on the working
// copy.
func (t *Transformed) Beliefs(node *bayesnet.Node) ([]float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.syncLocked(); err != nil {
		return nil, err
	}
	w, err := t.toWorkLocked(node)
	if err != nil {
		return nil, err
	}
	return t.inner.Beliefs(w)
}
