package bayesnet

import (
	"github.com/katalvlaran/bayes/factor"
)

// Node is a discrete random variable of a Network.
type Node struct {
	net          *Network
	id           int
	name         string
	outcomes     []string
	outcomeIndex map[string]int
	parents      []*Node
	children     []*Node
	cpt          *factor.Factor // dims [id, parent ids...]
	defined      bool           // probabilities were assigned at least once
}

// ID returns the node's dense id.
func (n *Node) ID() int { return n.id }

// Name returns the node's unique name.
func (n *Node) Name() string { return n.name }

// Network returns the owning network.
func (n *Node) Network() *Network { return n.net }

// Outcomes returns a copy of the outcome labels.
func (n *Node) Outcomes() []string { return append([]string(nil), n.outcomes...) }

// OutcomeCount returns the cardinality.
func (n *Node) OutcomeCount() int { return len(n.outcomes) }

// Outcome returns the label of outcome i.
func (n *Node) Outcome(i int) (string, error) {
	if i < 0 || i >= len(n.outcomes) {
		return "", nodeErrorf(n.name, ErrUnknownOutcome)
	}
	return n.outcomes[i], nil
}

// OutcomeIndex returns the index of the outcome label.
func (n *Node) OutcomeIndex(outcome string) (int, error) {
	i, ok := n.outcomeIndex[outcome]
	if !ok {
		return -1, nodeErrorf(n.name, ErrUnknownOutcome)
	}
	return i, nil
}

// Parents returns a copy of the ordered parent list.
func (n *Node) Parents() []*Node { return append([]*Node(nil), n.parents...) }

// Children returns a copy of the child list in the order children were attached.
func (n *Node) Children() []*Node { return append([]*Node(nil), n.children...) }

// CPT returns the node's conditional probability table. The factor is owned
// by the node: inference engines copy it, they never write to it.
func (n *Node) CPT() *factor.Factor { return n.cpt }

// Defined reports whether probabilities were assigned.
func (n *Node) Defined() bool { return n.defined }

// Family returns the dimension ids of the CPT: [node, parents...].
func (n *Node) Family() []int { return n.cpt.Dims() }

// SetParents replaces the parent list and resets the CPT to a uniform
// distribution per parent combination. All parents must belong to the same
// network; repeated parents are rejected.
func (n *Node) SetParents(parents ...*Node) error {
	seen := make(map[*Node]struct{}, len(parents))
	for _, p := range parents {
		if p == nil || p.net != n.net {
			return nodeErrorf(n.name, ErrForeignParent)
		}
		if _, dup := seen[p]; dup {
			return nodeErrorf(n.name, ErrForeignParent)
		}
		seen[p] = struct{}{}
	}

	cpt, err := n.uniformCPT(parents)
	if err != nil {
		return err
	}

	for _, old := range n.parents {
		old.removeChild(n)
	}
	n.parents = append([]*Node(nil), parents...)
	for _, p := range n.parents {
		p.children = append(p.children, n)
	}
	n.cpt = cpt
	n.defined = false
	n.net.touch()
	return nil
}

func (n *Node) removeChild(c *Node) {
	for i, x := range n.children {
		if x == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// uniformCPT builds a CPT over n and parents with uniform rows. A table too
// large to address fails with factor.ErrBadShape.
func (n *Node) uniformCPT(parents []*Node) (*factor.Factor, error) {
	dims := make([]int, 0, len(parents)+1)
	cards := make([]int, 0, len(parents)+1)
	dims = append(dims, n.id)
	cards = append(cards, len(n.outcomes))
	for _, p := range parents {
		dims = append(dims, p.id)
		cards = append(cards, len(p.outcomes))
	}
	cpt, err := factor.New(dims, cards)
	if err != nil {
		return nil, nodeErrorf(n.name, err)
	}
	cpt.Fill(1 / float64(len(n.outcomes)))
	return cpt, nil
}

// SetProbabilities assigns the whole CPT in factor layout (node slowest,
// then parents in order). When the network carries a flyweight store the
// array is interned and shared.
func (n *Node) SetProbabilities(probs ...float64) error {
	if len(probs) != n.cpt.Len() {
		return nodeErrorf(n.name, ErrDimensionMismatch)
	}
	var err error
	if n.net.fly != nil {
		err = n.cpt.Share(n.net.fly.Intern(probs))
	} else {
		err = n.cpt.SetValues(probs)
	}
	if err != nil {
		return nodeErrorf(n.name, err)
	}
	n.defined = true
	n.net.touch()
	return nil
}

// Probabilities returns a copy of the CPT values in factor layout.
func (n *Node) Probabilities() []float64 { return n.cpt.Float64s() }

// ParentConfigurations returns the number of parent outcome combinations.
func (n *Node) ParentConfigurations() int {
	return n.cpt.Len() / len(n.outcomes)
}

// parentOffset flattens parent outcomes into the parent-combination index.
func (n *Node) parentOffset(parentOutcomes []int) (int, error) {
	if len(parentOutcomes) != len(n.parents) {
		return 0, nodeErrorf(n.name, ErrDimensionMismatch)
	}
	off := 0
	for i, o := range parentOutcomes {
		card := len(n.parents[i].outcomes)
		if o < 0 || o >= card {
			return 0, nodeErrorf(n.parents[i].name, ErrUnknownOutcome)
		}
		off = off*card + o
	}
	return off, nil
}

// SetDistribution writes the distribution of the node for one parent
// combination (outcome indexes in parent order).
func (n *Node) SetDistribution(parentOutcomes []int, probs ...float64) error {
	if len(probs) != len(n.outcomes) {
		return nodeErrorf(n.name, ErrDimensionMismatch)
	}
	off, err := n.parentOffset(parentOutcomes)
	if err != nil {
		return err
	}
	stride := n.ParentConfigurations()
	for x, p := range probs {
		if err = n.cpt.Set(x*stride+off, p); err != nil {
			return nodeErrorf(n.name, err)
		}
	}
	n.defined = true
	n.net.touch()
	return nil
}

// Distribution returns the node's distribution for one parent combination.
func (n *Node) Distribution(parentOutcomes []int) ([]float64, error) {
	off, err := n.parentOffset(parentOutcomes)
	if err != nil {
		return nil, err
	}
	stride := n.ParentConfigurations()
	out := make([]float64, len(n.outcomes))
	vals := n.cpt.Values()
	for x := range out {
		out[x] = vals.At(x*stride + off)
	}
	return out, nil
}

// Probability returns P(node=outcome | parents=parentOutcomes).
func (n *Node) Probability(outcome int, parentOutcomes []int) (float64, error) {
	if outcome < 0 || outcome >= len(n.outcomes) {
		return 0, nodeErrorf(n.name, ErrUnknownOutcome)
	}
	off, err := n.parentOffset(parentOutcomes)
	if err != nil {
		return 0, err
	}
	return n.cpt.Values().At(outcome*n.ParentConfigurations() + off), nil
}

// String returns the node name.
func (n *Node) String() string { return n.name }
