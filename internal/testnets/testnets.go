// Package testnets builds small reference networks and computes exact
// posteriors by enumeration. It backs the tests of the inference packages.
package testnets

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/bayes/bayesnet"
)

// Diamond is the four-node network a→b, a→c, b→c, c→d.
type Diamond struct {
	Net        *bayesnet.Network
	A, B, C, D *bayesnet.Node
}

// NewDiamond builds the diamond with literal CPTs (layout: node slowest).
//
//	P(a=t)=0.2
//	P(b=t|a)   = 0.1 (a=t), 0.5 (a=f)
//	P(c=t|a,b) = 0.9 (t,t), 0.6 (t,f), 0.3 (f,t), 0.05 (f,f)
//	P(d=t|c)   = 0.7 (c=t), 0.2 (c=f)
func NewDiamond(opts ...bayesnet.NetworkOption) (*Diamond, error) {
	net := bayesnet.NewNetwork(append([]bayesnet.NetworkOption{bayesnet.WithName("diamond")}, opts...)...)
	d := &Diamond{Net: net}
	var err error
	if d.A, err = net.AddNode("a", "t", "f"); err != nil {
		return nil, err
	}
	if d.B, err = net.AddNode("b", "t", "f"); err != nil {
		return nil, err
	}
	if d.C, err = net.AddNode("c", "t", "f"); err != nil {
		return nil, err
	}
	if d.D, err = net.AddNode("d", "t", "f"); err != nil {
		return nil, err
	}
	steps := []func() error{
		func() error { return d.A.SetProbabilities(0.2, 0.8) },
		func() error { return d.B.SetParents(d.A) },
		func() error { return d.B.SetProbabilities(0.1, 0.5, 0.9, 0.5) },
		func() error { return d.C.SetParents(d.A, d.B) },
		func() error { return d.C.SetProbabilities(0.9, 0.6, 0.3, 0.05, 0.1, 0.4, 0.7, 0.95) },
		func() error { return d.D.SetParents(d.C) },
		func() error { return d.D.SetProbabilities(0.7, 0.2, 0.3, 0.8) },
	}
	for _, step := range steps {
		if err = step(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Enumerate returns the exact posterior marginal of every node (indexed by
// id) given evidence, by summing the full joint. Exponential; tests only.
func Enumerate(net *bayesnet.Network, evidence map[*bayesnet.Node]int) ([][]float64, error) {
	nodes := net.Nodes()
	cards := net.Cardinalities()
	beliefs := make([][]float64, len(nodes))
	for i := range beliefs {
		beliefs[i] = make([]float64, cards[i])
	}

	assign := make([]int, len(nodes))
	var total float64
	var walk func(i int) error
	walk = func(i int) error {
		if i == len(nodes) {
			p := 1.0
			for _, n := range nodes {
				parents := n.Parents()
				po := make([]int, len(parents))
				for k, par := range parents {
					po[k] = assign[par.ID()]
				}
				v, err := n.Probability(assign[n.ID()], po)
				if err != nil {
					return err
				}
				p *= v
			}
			total += p
			for k := range nodes {
				beliefs[k][assign[k]] += p
			}
			return nil
		}
		for o := 0; o < cards[i]; o++ {
			if obs, ok := evidence[nodes[i]]; ok && obs != o {
				continue
			}
			assign[i] = o
			if err := walk(i + 1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(0); err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, fmt.Errorf("testnets: evidence has zero probability")
	}
	for _, b := range beliefs {
		for o := range b {
			b[o] /= total
		}
	}
	return beliefs, nil
}

// Random builds a DAG with n nodes where each node draws up to maxParents
// parents among earlier nodes and has 2..maxOutcomes outcomes. CPT rows are
// random distributions. Deterministic for a given seed.
func Random(seed int64, n, maxParents, maxOutcomes int, opts ...bayesnet.NetworkOption) (*bayesnet.Network, error) {
	rng := rand.New(rand.NewSource(seed))
	net := bayesnet.NewNetwork(opts...)
	nodes := make([]*bayesnet.Node, n)
	for i := 0; i < n; i++ {
		k := 2 + rng.Intn(maxOutcomes-1)
		outcomes := make([]string, k)
		for o := range outcomes {
			outcomes[o] = fmt.Sprintf("o%d", o)
		}
		node, err := net.AddNode(fmt.Sprintf("n%d", i), outcomes...)
		if err != nil {
			return nil, err
		}
		nodes[i] = node

		var parents []*bayesnet.Node
		if i > 0 {
			perm := rng.Perm(i)
			np := rng.Intn(maxParents + 1)
			if np > i {
				np = i
			}
			for _, p := range perm[:np] {
				parents = append(parents, nodes[p])
			}
		}
		if err = node.SetParents(parents...); err != nil {
			return nil, err
		}
		if err = node.SetProbabilities(RandomCPT(rng, k, node.ParentConfigurations())...); err != nil {
			return nil, err
		}
	}
	return net, nil
}

// RandomCPT returns a CPT in factor layout (outcome slowest) whose
// distribution per parent combination sums to 1.
func RandomCPT(rng *rand.Rand, outcomes, configs int) []float64 {
	probs := make([]float64, outcomes*configs)
	for j := 0; j < configs; j++ {
		var sum float64
		for x := 0; x < outcomes; x++ {
			v := 0.05 + rng.Float64()
			probs[x*configs+j] = v
			sum += v
		}
		for x := 0; x < outcomes; x++ {
			probs[x*configs+j] /= sum
		}
	}
	return probs
}

// Patterned is p1, p2 → x → y where x (three outcomes) has nine CPT rows
// drawn from a few patterns.
type Patterned struct {
	Net          *bayesnet.Network
	P1, P2, X, Y *bayesnet.Node
}

// NewPatterned builds Patterned. Row (a, b) of x is patterns[(a+b) %
// len(patterns)]; with noise > 0 every row is perturbed by up to noise per
// cell and renormalized, so no two rows stay equal.
func NewPatterned(patterns [][]float64, noise float64, opts ...bayesnet.NetworkOption) (*Patterned, error) {
	rng := rand.New(rand.NewSource(17))
	f := &Patterned{Net: bayesnet.NewNetwork(opts...)}
	three := []string{"lo", "mid", "hi"}
	var err error
	if f.P1, err = f.Net.AddNode("p1", three...); err != nil {
		return nil, err
	}
	if f.P2, err = f.Net.AddNode("p2", three...); err != nil {
		return nil, err
	}
	if f.X, err = f.Net.AddNode("x", three...); err != nil {
		return nil, err
	}
	if f.Y, err = f.Net.AddNode("y", "t", "f"); err != nil {
		return nil, err
	}
	if err = f.P1.SetProbabilities(0.2, 0.3, 0.5); err != nil {
		return nil, err
	}
	if err = f.P2.SetProbabilities(0.6, 0.3, 0.1); err != nil {
		return nil, err
	}
	if err = f.X.SetParents(f.P1, f.P2); err != nil {
		return nil, err
	}
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			row := append([]float64(nil), patterns[(a+b)%len(patterns)]...)
			if noise > 0 {
				var sum float64
				for i := range row {
					row[i] += noise * rng.Float64()
					sum += row[i]
				}
				for i := range row {
					row[i] /= sum
				}
			}
			if err = f.X.SetDistribution([]int{a, b}, row...); err != nil {
				return nil, err
			}
		}
	}
	if err = f.Y.SetParents(f.X); err != nil {
		return nil, err
	}
	if err = f.Y.SetProbabilities(0.9, 0.4, 0.05, 0.1, 0.6, 0.95); err != nil {
		return nil, err
	}
	return f, nil
}
