package junctiontree

import (
	"sort"

	"github.com/katalvlaran/bayes/bayesnet"
)

// moralGraph is an undirected graph over variable ids.
type moralGraph struct {
	adj []map[int]struct{}
}

// moralize links every node with its parents and marries the parents.
// Complexity: O(V + Σ|parents|²).
func moralize(net *bayesnet.Network) *moralGraph {
	g := &moralGraph{adj: make([]map[int]struct{}, net.Len())}
	for i := range g.adj {
		g.adj[i] = make(map[int]struct{})
	}
	for _, n := range net.Nodes() {
		family := n.Family()
		for i := 0; i < len(family); i++ {
			for j := i + 1; j < len(family); j++ {
				g.link(family[i], family[j])
			}
		}
	}
	return g
}

func (g *moralGraph) link(u, v int) {
	if u == v {
		return
	}
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
}

func (g *moralGraph) adjacent(u, v int) bool {
	_, ok := g.adj[u][v]
	return ok
}

// triangulate eliminates variables in min-fill order and returns the maximal
// elimination cliques, each as an ascending list of variable ids.
//
// Stage 1 (Select): pick the remaining variable whose elimination adds the
// fewest fill edges; ties go to the smallest clique table, then lowest id.
// Stage 2 (Eliminate): record {v} ∪ neighbours, connect the neighbours
// pairwise, remove v.
// Stage 3 (Finalize): drop cliques contained in another clique.
//
// Complexity: O(V² · d²) with d the largest neighbourhood.
func triangulate(g *moralGraph, cards []int) [][]int {
	n := len(g.adj)
	eliminated := make([]bool, n)
	var cliques [][]int

	for step := 0; step < n; step++ {
		best, bestFill, bestWeight := -1, 0, 0.0
		for v := 0; v < n; v++ {
			if eliminated[v] {
				continue
			}
			nb := g.live(v, eliminated)
			fill := 0
			for i := 0; i < len(nb); i++ {
				for j := i + 1; j < len(nb); j++ {
					if !g.adjacent(nb[i], nb[j]) {
						fill++
					}
				}
			}
			weight := float64(cards[v])
			for _, u := range nb {
				weight *= float64(cards[u])
			}
			if best < 0 || fill < bestFill || (fill == bestFill && weight < bestWeight) {
				best, bestFill, bestWeight = v, fill, weight
			}
		}

		nb := g.live(best, eliminated)
		for i := 0; i < len(nb); i++ {
			for j := i + 1; j < len(nb); j++ {
				g.link(nb[i], nb[j])
			}
		}
		clique := append(nb, best)
		sort.Ints(clique)
		cliques = append(cliques, clique)
		eliminated[best] = true
	}

	return maximal(cliques)
}

// live returns the not-yet-eliminated neighbours of v in ascending order.
func (g *moralGraph) live(v int, eliminated []bool) []int {
	out := make([]int, 0, len(g.adj[v]))
	for u := range g.adj[v] {
		if !eliminated[u] {
			out = append(out, u)
		}
	}
	sort.Ints(out)
	return out
}

// maximal removes cliques that are subsets of another clique, keeping the
// first occurrence among equal ones. Order of survivors is preserved.
func maximal(cliques [][]int) [][]int {
	out := make([][]int, 0, len(cliques))
	for i, c := range cliques {
		covered := false
		for j, d := range cliques {
			if i == j || len(d) < len(c) {
				continue
			}
			if subset(c, d) && (len(d) > len(c) || j < i) {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, c)
		}
	}
	return out
}

// subset reports whether sorted a ⊆ sorted b.
func subset(a, b []int) bool {
	j := 0
	for _, x := range a {
		for j < len(b) && b[j] < x {
			j++
		}
		if j == len(b) || b[j] != x {
			return false
		}
		j++
	}
	return true
}

// intersect returns the sorted intersection of sorted a and b.
func intersect(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}
