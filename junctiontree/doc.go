// Package junctiontree implements exact inference on discrete Bayesian
// networks with the junction-tree (clique-tree) algorithm.
//
// Compilation (once per network version):
//
//  1. Moralize: connect every node with its parents and all parents pairwise.
//  2. Triangulate: eliminate nodes in min-fill order (ties: smallest clique
//     table, then lowest id); the maximal elimination cliques are the
//     maximal cliques of the chordal graph.
//  3. Join: a maximum-weight spanning tree over the cliques, weighted by the
//     size of their intersection, has the running-intersection property.
//     Components of a disconnected network are linked through empty
//     separators.
//  4. Prepare: each CPT is multiplied into the smallest clique containing its
//     family; every edge caches its separator and the projection tables of
//     both endpoints; every variable gets a home clique and a query table.
//
// Propagation (Hugin scheme, whenever beliefs are stale):
//
//	reset potentials → fold evidence into home cliques →
//	collect (leaves → root) → distribute (root → leaves) → read beliefs
//
// Messages are normalized; a message or belief without mass means the
// evidence is impossible and surfaces as inference.ErrZeroProbability.
//
// Cliques and separators live in index-addressed slices (arena style); edges
// refer to cliques by index. With WithConcurrency(n>1) sibling subtrees are
// processed in parallel; a clique still sends its message only after all of
// its children have been absorbed.
//
// Complexity:
//   - Compile: O(V² + E) for moralization and elimination, plus the total
//     clique table size for preparation.
//   - Propagate: O(total clique table size + total separator size).
package junctiontree
