// Package bayesnet describes discrete Bayesian networks: a DAG of Nodes, each
// with a finite list of outcomes, an ordered parent list and a conditional
// probability table (CPT).
//
// Ids are dense integers assigned in insertion order starting at 0; inference
// engines use them directly as array indexes and as factor dimension ids.
//
// CPT layout. A node's CPT is a *factor.Factor over
//
//	[node, parent1, parent2, ...]
//
// in row-major order with the node itself varying slowest. For a node X with
// parents A (2 outcomes) and B (3 outcomes):
//
//	index(x, a, b) = x*6 + a*3 + b
//
// so the distribution of X for a fixed parent combination is strided. Each
// such distribution is expected to sum to 1; this is not enforced.
// SetDistribution writes one parent combination at a time for callers that
// think in rows.
//
// Mutation. Every structural or numeric change bumps Network.Version, which
// the inference engines compare against the version they compiled. Validate
// reports the structural errors (cycles, CPT size mismatches, missing CPTs)
// that make a network unusable for inference.
//
// Networks are not safe for concurrent mutation.
package bayesnet
