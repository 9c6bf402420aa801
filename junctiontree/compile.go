package junctiontree

import (
	"fmt"

	"github.com/katalvlaran/bayes/bayesnet"
	"github.com/katalvlaran/bayes/factor"
)

// clique is a node of the junction tree.
type clique struct {
	vars      []int          // ascending variable ids
	initial   *factor.Factor // product of assigned CPTs, evidence-free
	potential *factor.Factor // working table, rebuilt every propagation
}

// edge links parent and child cliques (indexes into tree.cliques).
type edge struct {
	parent, child int
	sep           *factor.Factor // separator table from the last message
	message       *factor.Factor // scratch: new separator marginal
	ratio         *factor.Factor // scratch: message / sep
	parentPos     []int          // Project(parent potential, sep)
	childPos      []int          // Project(child potential, sep)
}

// tree is the compiled, arena-style junction tree.
type tree struct {
	cliques  []clique
	edges    []edge
	children [][]int // clique → indexes of edges to its children
	root     int

	home   []int            // variable → home clique
	query  [][]int          // variable → Project(home potential, marginal)
	margin []*factor.Factor // variable → scratch single-variable table
}

// Stats summarizes a compiled tree.
type Stats struct {
	Cliques       int // number of cliques
	MaxCliqueVars int // variables in the widest clique
	MaxCliqueSize int // cells in the largest clique table
	TotalSize     int // cells over all clique and separator tables
}

// compile builds the junction tree of a validated network.
//
// Stage 1 (Structure): moralize, triangulate, join cliques.
// Stage 2 (Potentials): multiply every CPT into the smallest clique that
// holds its family; unassigned cliques keep all-ones tables.
// Stage 3 (Tables): root the tree at clique 0, create separators and all
// projection tables, choose home cliques and query tables.
func compile(net *bayesnet.Network, precision factor.Precision) (*tree, error) {
	cards := net.Cardinalities()
	sets := triangulate(moralize(net), cards)
	t := &tree{
		cliques:  make([]clique, len(sets)),
		children: make([][]int, len(sets)),
		home:     make([]int, len(cards)),
		query:    make([][]int, len(cards)),
		margin:   make([]*factor.Factor, len(cards)),
	}

	for i, vars := range sets {
		f, err := newTable(vars, cards, precision)
		if err != nil {
			return nil, err
		}
		t.cliques[i] = clique{vars: vars, initial: f}
	}

	for _, n := range net.Nodes() {
		c := t.smallestContaining(n.Family())
		if c < 0 {
			return nil, fmt.Errorf("junctiontree: family of %q not covered by any clique", n.Name())
		}
		positions, err := factor.Project(t.cliques[c].initial, n.CPT())
		if err != nil {
			return nil, fmt.Errorf("junctiontree: node %q: %w", n.Name(), err)
		}
		if err = t.cliques[c].initial.MultiplyPrepared(n.CPT(), positions); err != nil {
			return nil, err
		}
	}
	for i := range t.cliques {
		t.cliques[i].potential = t.cliques[i].initial.Clone()
	}

	if err := t.link(spanningTree(sets, cards), cards, precision); err != nil {
		return nil, err
	}

	for v := range cards {
		c := t.smallestContaining([]int{v})
		if c < 0 {
			return nil, fmt.Errorf("junctiontree: variable %d not covered by any clique", v)
		}
		m, err := factor.New([]int{v}, []int{cards[v]}, factor.WithPrecision(precision))
		if err != nil {
			return nil, err
		}
		positions, err := factor.Project(t.cliques[c].potential, m)
		if err != nil {
			return nil, err
		}
		t.home[v], t.query[v], t.margin[v] = c, positions, m
	}

	return t, nil
}

// newTable allocates an all-ones table over vars.
func newTable(vars, cards []int, precision factor.Precision) (*factor.Factor, error) {
	cs := make([]int, len(vars))
	for i, v := range vars {
		cs[i] = cards[v]
	}
	return factor.New(vars, cs, factor.WithPrecision(precision))
}

// smallestContaining returns the clique with the smallest table that holds
// every variable of vars, or -1.
func (t *tree) smallestContaining(vars []int) int {
	best := -1
	for i := range t.cliques {
		ok := true
		for _, v := range vars {
			if t.cliques[i].initial.DimIndex(v) < 0 {
				ok = false
				break
			}
		}
		if ok && (best < 0 || t.cliques[i].initial.Len() < t.cliques[best].initial.Len()) {
			best = i
		}
	}
	return best
}

// link orients the spanning tree away from the root (clique 0) and prepares
// separators and projection tables for every edge.
func (t *tree) link(cands []candidate, cards []int, precision factor.Precision) error {
	adj := make([][]candidate, len(t.cliques))
	for _, c := range cands {
		adj[c.a] = append(adj[c.a], c)
		adj[c.b] = append(adj[c.b], c)
	}

	t.root = 0
	visited := make([]bool, len(t.cliques))
	if len(t.cliques) == 0 {
		return nil
	}
	visited[t.root] = true
	queue := []int{t.root}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, c := range adj[p] {
			child := c.b
			if child == p {
				child = c.a
			}
			if visited[child] {
				continue
			}
			visited[child] = true
			queue = append(queue, child)
			if err := t.addEdge(p, child, c.sep, cards, precision); err != nil {
				return err
			}
		}
	}
	return nil
}

// addEdge appends the prepared edge parent → child over sep.
func (t *tree) addEdge(parent, child int, sep, cards []int, precision factor.Precision) error {
	tables := make([]*factor.Factor, 3)
	for i := range tables {
		f, err := newTable(sep, cards, precision)
		if err != nil {
			return err
		}
		tables[i] = f
	}
	parentPos, err := factor.Project(t.cliques[parent].potential, tables[0])
	if err != nil {
		return err
	}
	childPos, err := factor.Project(t.cliques[child].potential, tables[0])
	if err != nil {
		return err
	}
	t.children[parent] = append(t.children[parent], len(t.edges))
	t.edges = append(t.edges, edge{
		parent:    parent,
		child:     child,
		sep:       tables[0],
		message:   tables[1],
		ratio:     tables[2],
		parentPos: parentPos,
		childPos:  childPos,
	})
	return nil
}

// stats computes table statistics of the tree.
func (t *tree) stats() Stats {
	var s Stats
	s.Cliques = len(t.cliques)
	for _, c := range t.cliques {
		if len(c.vars) > s.MaxCliqueVars {
			s.MaxCliqueVars = len(c.vars)
		}
		if n := c.potential.Len(); n > s.MaxCliqueSize {
			s.MaxCliqueSize = n
		}
		s.TotalSize += c.potential.Len()
	}
	for _, e := range t.edges {
		s.TotalSize += e.sep.Len()
	}
	return s
}
