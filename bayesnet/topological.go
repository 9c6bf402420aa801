package bayesnet

// Visitation states of the depth-first walk.
const (
	white = iota // not visited yet
	gray         // on the current path
	black        // fully processed
)

// topoSorter holds the state of a parents-first depth-first walk.
type topoSorter struct {
	state []int
	order []*Node
}

// TopologicalOrder returns the nodes ordered so that every parent precedes
// its children. Ties follow id order, which keeps the result deterministic.
// Returns ErrCycleDetected (wrapped with the offending node) on a cycle.
//
// Complexity: O(V + E) time, O(V) memory.
func (n *Network) TopologicalOrder() ([]*Node, error) {
	t := &topoSorter{
		state: make([]int, len(n.nodes)),
		order: make([]*Node, 0, len(n.nodes)),
	}
	for _, node := range n.nodes {
		if t.state[node.id] == white {
			if err := t.visit(node); err != nil {
				return nil, err
			}
		}
	}
	// Post-order over parent edges already lists parents first.
	return t.order, nil
}

// visit walks the parents of node before emitting node itself.
func (t *topoSorter) visit(node *Node) error {
	switch t.state[node.id] {
	case gray:
		return nodeErrorf(node.name, ErrCycleDetected)
	case black:
		return nil
	}
	t.state[node.id] = gray
	for _, p := range node.parents {
		if err := t.visit(p); err != nil {
			return err
		}
	}
	t.state[node.id] = black
	t.order = append(t.order, node)
	return nil
}
