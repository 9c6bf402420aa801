package bayesnet

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bayes/factor"
	"github.com/katalvlaran/bayes/flyweight"
)

// NetworkOption configures a Network before creation.
type NetworkOption func(*Network)

// WithName sets a descriptive network name.
func WithName(name string) NetworkOption {
	return func(n *Network) { n.name = name }
}

// WithFlyweight interns every CPT assigned through SetProbabilities in s,
// so equal tables across nodes (and across networks sharing s) share memory.
func WithFlyweight(s *flyweight.Store) NetworkOption {
	return func(n *Network) { n.fly = s }
}

// Network is an insertion-ordered DAG of discrete nodes.
type Network struct {
	name    string
	nodes   []*Node          // index == id
	byName  map[string]*Node // name → node
	fly     *flyweight.Store // optional CPT interning
	version uint64           // bumped on every mutation
}

// NewNetwork creates an empty network.
// Complexity: O(1).
func NewNetwork(opts ...NetworkOption) *Network {
	n := &Network{byName: make(map[string]*Node)}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Name returns the network name.
func (n *Network) Name() string { return n.name }

// Flyweight returns the interning store, or nil.
func (n *Network) Flyweight() *flyweight.Store { return n.fly }

// Version returns a counter that changes on every structural or numeric
// mutation of the network or its nodes.
func (n *Network) Version() uint64 { return n.version }

func (n *Network) touch() { n.version++ }

// Len returns the number of nodes.
func (n *Network) Len() int { return len(n.nodes) }

// Nodes returns the nodes in id order.
func (n *Network) Nodes() []*Node { return append([]*Node(nil), n.nodes...) }

// AddNode appends a parentless node with the given outcomes; its CPT starts
// uniform and undefined until probabilities are assigned.
//
// Errors: ErrEmptyName, ErrDuplicateNode, ErrNoOutcomes, ErrDuplicateOutcome.
func (n *Network) AddNode(name string, outcomes ...string) (*Node, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, dup := n.byName[name]; dup {
		return nil, nodeErrorf(name, ErrDuplicateNode)
	}
	if len(outcomes) == 0 {
		return nil, nodeErrorf(name, ErrNoOutcomes)
	}
	idx := make(map[string]int, len(outcomes))
	for i, o := range outcomes {
		if _, dup := idx[o]; dup {
			return nil, nodeErrorf(name, ErrDuplicateOutcome)
		}
		idx[o] = i
	}

	node := &Node{
		net:          n,
		id:           len(n.nodes),
		name:         name,
		outcomes:     append([]string(nil), outcomes...),
		outcomeIndex: idx,
	}
	cpt, err := node.uniformCPT(nil)
	if err != nil {
		return nil, err
	}
	node.cpt = cpt
	n.nodes = append(n.nodes, node)
	n.byName[name] = node
	n.touch()
	return node, nil
}

// Node returns the node with the given name.
func (n *Network) Node(name string) (*Node, error) {
	node, ok := n.byName[name]
	if !ok {
		return nil, fmt.Errorf("bayesnet: %q: %w", name, ErrNodeNotFound)
	}
	return node, nil
}

// NodeByID returns the node with the given id.
func (n *Network) NodeByID(id int) (*Node, error) {
	if id < 0 || id >= len(n.nodes) {
		return nil, fmt.Errorf("bayesnet: id %d: %w", id, ErrNodeNotFound)
	}
	return n.nodes[id], nil
}

// Contains reports whether node is a member of n.
func (n *Network) Contains(node *Node) bool {
	return node != nil && node.net == n && node.id < len(n.nodes) && n.nodes[node.id] == node
}

// Cardinalities returns the outcome count of every node, indexed by id.
func (n *Network) Cardinalities() []int {
	out := make([]int, len(n.nodes))
	for i, node := range n.nodes {
		out[i] = len(node.outcomes)
	}
	return out
}

// Validate checks that the network is usable for inference:
// every CPT is defined with the expected size, every parent is a member,
// and parent edges are acyclic.
//
// Complexity: O(V + E + total CPT size).
func (n *Network) Validate() error {
	cards := n.Cardinalities()
	for _, node := range n.nodes {
		if !node.defined {
			return nodeErrorf(node.name, ErrMissingCPT)
		}
		size := cards[node.id]
		for _, p := range node.parents {
			if !n.Contains(p) {
				return nodeErrorf(node.name, ErrForeignParent)
			}
			if size > math.MaxInt/cards[p.id] {
				return nodeErrorf(node.name, ErrDimensionMismatch)
			}
			size *= cards[p.id]
		}
		if node.cpt.Len() != size || len(node.cpt.Dims()) != len(node.parents)+1 {
			return nodeErrorf(node.name, ErrDimensionMismatch)
		}
	}
	_, err := n.TopologicalOrder()
	return err
}

// Clone returns a deep copy of the network: same names, ids, outcomes,
// parents and probabilities, sharing only the flyweight store (and interned
// CPT arrays, which are immutable).
func (n *Network) Clone() (*Network, error) {
	c := NewNetwork(WithName(n.name), WithFlyweight(n.fly))
	for _, node := range n.nodes {
		if _, err := c.AddNode(node.name, node.outcomes...); err != nil {
			return nil, err
		}
	}
	for _, node := range n.nodes {
		cn := c.nodes[node.id]
		parents := make([]*Node, len(node.parents))
		for i, p := range node.parents {
			parents[i] = c.nodes[p.id]
		}
		if err := cn.SetParents(parents...); err != nil {
			return nil, err
		}
		if shared, ok := node.cpt.Values().(factor.Float64Store); ok && node.cpt.Shared() {
			if err := cn.cpt.Share(shared); err != nil {
				return nil, err
			}
		} else if err := cn.cpt.SetValues(node.cpt.Float64s()); err != nil {
			return nil, err
		}
		cn.defined = node.defined
	}
	c.version = n.version
	return c, nil
}
