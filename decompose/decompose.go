package decompose

import (
	"fmt"

	"github.com/katalvlaran/bayes/bayesnet"
)

// LatentSuffix is appended to a node's name to name its latent parent.
const LatentSuffix = "_latent"

// Decomposition rewrites node inside net.
type Decomposition interface {
	Decompose(net *bayesnet.Network, node *bayesnet.Node) error
}

// rows is a CPT viewed per parent combination.
type rows struct {
	outcomes int         // K
	configs  int         // P
	data     [][]float64 // data[j][x] = P(X=x | parents=j)
}

// prepare checks the preconditions shared by all strategies and extracts
// the CPT rows of node.
func prepare(net *bayesnet.Network, node *bayesnet.Node) (*rows, error) {
	if net == nil || node == nil || !net.Contains(node) {
		return nil, ErrNodeNotInNetwork
	}
	if len(node.Parents()) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoParents, node.Name())
	}
	if _, err := net.Node(node.Name() + LatentSuffix); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrNameTaken, node.Name()+LatentSuffix)
	}

	probs := node.Probabilities()
	r := &rows{
		outcomes: node.OutcomeCount(),
		configs:  node.ParentConfigurations(),
	}
	r.data = make([][]float64, r.configs)
	for j := range r.data {
		row := make([]float64, r.outcomes)
		for x := range row {
			row[x] = probs[x*r.configs+j]
		}
		r.data[j] = row
	}
	return r, nil
}

// fits reports whether a basis of m rows yields smaller tables.
func (r *rows) fits(m int) bool {
	return m*r.configs+r.outcomes*m < r.outcomes*r.configs
}

// largestBasis is the biggest m for which fits holds, at least 1.
func (r *rows) largestBasis() int {
	k, p := r.outcomes, r.configs
	m := (k*p - 1) / (p + k)
	if m < 1 {
		return 1
	}
	return m
}

// rewrite inserts the latent node and rewires node through it. assign[j] is
// the basis index of row j.
func rewrite(net *bayesnet.Network, node *bayesnet.Node, basis [][]float64, assign []int) (*bayesnet.Node, error) {
	m := len(basis)
	k := node.OutcomeCount()
	p := len(assign)

	labels := make([]string, m)
	for i := range labels {
		labels[i] = fmt.Sprintf("b%d", i)
	}
	latent, err := net.AddNode(node.Name()+LatentSuffix, labels...)
	if err != nil {
		return nil, err
	}
	if err = latent.SetParents(node.Parents()...); err != nil {
		return nil, err
	}
	det := make([]float64, m*p)
	for j, b := range assign {
		det[b*p+j] = 1
	}
	if err = latent.SetProbabilities(det...); err != nil {
		return nil, err
	}

	if err = node.SetParents(latent); err != nil {
		return nil, err
	}
	cpt := make([]float64, k*m)
	for b, row := range basis {
		for x, v := range row {
			cpt[x*m+b] = v
		}
	}
	if err = node.SetProbabilities(cpt...); err != nil {
		return nil, err
	}
	return latent, nil
}
