package junctiontree

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/bayes/bayesnet"
	"github.com/katalvlaran/bayes/factor"
	"github.com/katalvlaran/bayes/inference"
)

// propagator runs one Hugin propagation over a compiled tree.
type propagator struct {
	t           *tree
	concurrency int
	smoothing   float64
}

// run resets the potentials, folds the evidence in, performs collect and
// distribute, and writes normalized marginals into beliefs.
func (p *propagator) run(evidence map[*bayesnet.Node]int, beliefs [][]float64) error {
	t := p.t
	for i := range t.cliques {
		if err := t.cliques[i].potential.CopyValues(t.cliques[i].initial); err != nil {
			return err
		}
	}
	for i := range t.edges {
		t.edges[i].sep.Fill(1)
	}

	for node, outcome := range evidence {
		if err := p.observe(node.ID(), outcome); err != nil {
			return err
		}
	}

	if len(t.cliques) > 0 {
		if err := p.collect(t.root); err != nil {
			return err
		}
		if err := p.distribute(t.root); err != nil {
			return err
		}
	}

	for v := range beliefs {
		m := t.margin[v]
		if err := m.SumPrepared(t.cliques[t.home[v]].potential, t.query[v]); err != nil {
			return err
		}
		vals := m.Float64s()
		if err := inference.Normalize(vals); err != nil {
			return err
		}
		copy(beliefs[v], vals)
	}
	return nil
}

// observe multiplies the home clique of v by the indicator of outcome.
func (p *propagator) observe(v, outcome int) error {
	t := p.t
	m := t.margin[v]
	m.Fill(p.smoothing)
	if err := m.Set(outcome, 1); err != nil {
		return fmt.Errorf("junctiontree: observe %d=%d: %w", v, outcome, err)
	}
	return t.cliques[t.home[v]].potential.MultiplyPrepared(m, t.query[v])
}

// collect gathers messages from the subtree below c into c: each child
// subtree is collected first, then the child's message is absorbed.
func (p *propagator) collect(c int) error {
	kids := p.t.children[c]
	err := p.each(kids, func(e int) error {
		ed := &p.t.edges[e]
		if err := p.collect(ed.child); err != nil {
			return err
		}
		return p.marginal(ed, p.t.cliques[ed.child].potential, ed.childPos)
	})
	if err != nil {
		return err
	}
	// Absorption writes into c, so it stays sequential.
	for _, e := range kids {
		ed := &p.t.edges[e]
		if err = p.absorb(ed, p.t.cliques[c].potential, ed.parentPos); err != nil {
			return err
		}
	}
	return nil
}

// distribute sends c's evidence-consistent marginals down to every child and
// recurses. Children only read c, so they may run in parallel.
func (p *propagator) distribute(c int) error {
	return p.each(p.t.children[c], func(e int) error {
		ed := &p.t.edges[e]
		if err := p.marginal(ed, p.t.cliques[c].potential, ed.parentPos); err != nil {
			return err
		}
		if err := p.absorb(ed, p.t.cliques[ed.child].potential, ed.childPos); err != nil {
			return err
		}
		return p.distribute(ed.child)
	})
}

// marginal stores the normalized marginal of src over the separator in
// ed.message.
func (p *propagator) marginal(ed *edge, src *factor.Factor, positions []int) error {
	if err := ed.message.SumPrepared(src, positions); err != nil {
		return err
	}
	if _, err := ed.message.Normalize(); err != nil {
		if errors.Is(err, factor.ErrZeroSum) {
			return inference.ErrZeroProbability
		}
		return err
	}
	return nil
}

// absorb multiplies dst by message/sep and makes message the new separator.
func (p *propagator) absorb(ed *edge, dst *factor.Factor, positions []int) error {
	if err := ed.ratio.Divide(ed.message, ed.sep); err != nil {
		return err
	}
	if err := dst.MultiplyPrepared(ed.ratio, positions); err != nil {
		return err
	}
	return ed.sep.CopyValues(ed.message)
}

// each runs fn for every edge index, in parallel when configured.
func (p *propagator) each(edges []int, fn func(e int) error) error {
	if p.concurrency <= 1 || len(edges) < 2 {
		for _, e := range edges {
			if err := fn(e); err != nil {
				return err
			}
		}
		return nil
	}
	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for _, e := range edges {
		e := e
		g.Go(func() error { return fn(e) })
	}
	return g.Wait()
}
