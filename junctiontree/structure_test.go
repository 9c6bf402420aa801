package junctiontree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bayes/factor"
	"github.com/katalvlaran/bayes/internal/testnets"
)

func TestSubsetAndIntersect(t *testing.T) {
	assert.True(t, subset([]int{1, 3}, []int{0, 1, 2, 3}))
	assert.True(t, subset(nil, []int{4}))
	assert.False(t, subset([]int{1, 5}, []int{0, 1, 2, 3}))
	assert.Equal(t, []int{2, 3}, intersect([]int{1, 2, 3}, []int{2, 3, 4}))
	assert.Empty(t, intersect([]int{1}, []int{2}))
}

func TestMaximal(t *testing.T) {
	in := [][]int{{2, 3}, {0, 1, 2}, {1, 2}, {2, 3}}
	assert.Equal(t, [][]int{{2, 3}, {0, 1, 2}}, maximal(in))
}

func TestTriangulate_Cycle(t *testing.T) {
	// 4-cycle 0-1-2-3-0 needs one chord; cliques become two triangles.
	g := &moralGraph{adj: make([]map[int]struct{}, 4)}
	for i := range g.adj {
		g.adj[i] = map[int]struct{}{}
	}
	g.link(0, 1)
	g.link(1, 2)
	g.link(2, 3)
	g.link(3, 0)

	cliques := triangulate(g, []int{2, 2, 2, 2})
	require.Len(t, cliques, 2)
	for _, c := range cliques {
		assert.Len(t, c, 3)
	}
}

// TestSpanningTree_RunningIntersection checks that every variable shared by
// two cliques appears in every clique on the path between them.
func TestSpanningTree_RunningIntersection(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		net, err := testnets.Random(seed, 16, 3, 3)
		require.NoError(t, err)
		cards := net.Cardinalities()
		cliques := triangulate(moralize(net), cards)
		edges := spanningTree(cliques, cards)
		require.Len(t, edges, len(cliques)-1)

		adj := make([][]int, len(cliques))
		for _, e := range edges {
			adj[e.a] = append(adj[e.a], e.b)
			adj[e.b] = append(adj[e.b], e.a)
		}
		for v := range cards {
			// cliques holding v must form a connected subtree
			var holders []int
			for i, c := range cliques {
				if subset([]int{v}, c) {
					holders = append(holders, i)
				}
			}
			require.NotEmpty(t, holders)
			seen := map[int]bool{holders[0]: true}
			stack := []int{holders[0]}
			for len(stack) > 0 {
				c := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for _, n := range adj[c] {
					if !seen[n] && subset([]int{v}, cliques[n]) {
						seen[n] = true
						stack = append(stack, n)
					}
				}
			}
			assert.Len(t, seen, len(holders), "seed %d variable %d", seed, v)
		}
	}
}

func TestCompile_FamiliesCovered(t *testing.T) {
	d, err := testnets.NewDiamond()
	require.NoError(t, err)
	tr, err := compile(d.Net, factor.Float64)
	require.NoError(t, err)
	for _, n := range d.Net.Nodes() {
		assert.GreaterOrEqual(t, tr.smallestContaining(n.Family()), 0)
	}
	assert.Len(t, tr.edges, len(tr.cliques)-1)
}
