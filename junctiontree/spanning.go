package junctiontree

import "sort"

// candidate is a potential junction-tree edge between cliques a and b.
type candidate struct {
	a, b    int
	weight  int     // |intersection|
	sepSize float64 // product of separator cardinalities (tie-break)
	sep     []int   // sorted separator variables
}

// spanningTree joins the cliques with a maximum-weight spanning tree over
// |intersection| using Kruskal with union-find (path compression, union by
// rank). Zero-weight candidates are kept so disconnected components end up
// linked through empty separators.
//
// Steps:
//  1. Enumerate all clique pairs with their separators.
//  2. Sort by weight descending, then separator table size ascending, then
//     by (a, b) for determinism.
//  3. Accept a candidate when its endpoints are in different components.
//
// Complexity: O(k² log k + k²·w) for k cliques of width w.
func spanningTree(cliques [][]int, cards []int) []candidate {
	k := len(cliques)
	if k < 2 {
		return nil
	}

	cands := make([]candidate, 0, k*(k-1)/2)
	for a := 0; a < k; a++ {
		for b := a + 1; b < k; b++ {
			sep := intersect(cliques[a], cliques[b])
			size := 1.0
			for _, v := range sep {
				size *= float64(cards[v])
			}
			cands = append(cands, candidate{a: a, b: b, weight: len(sep), sepSize: size, sep: sep})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].weight != cands[j].weight {
			return cands[i].weight > cands[j].weight
		}
		return cands[i].sepSize < cands[j].sepSize
	})

	parent := make([]int, k)
	rank := make([]int, k)
	for i := range parent {
		parent[i] = i
	}
	find := func(u int) int {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}
		return u
	}
	union := func(u, v int) {
		ru, rv := find(u), find(v)
		if ru == rv {
			return
		}
		if rank[ru] < rank[rv] {
			parent[ru] = rv
		} else {
			parent[rv] = ru
			if rank[ru] == rank[rv] {
				rank[ru]++
			}
		}
	}

	tree := make([]candidate, 0, k-1)
	for _, c := range cands {
		if find(c.a) != find(c.b) {
			union(c.a, c.b)
			tree = append(tree, c)
			if len(tree) == k-1 {
				break
			}
		}
	}
	return tree
}
