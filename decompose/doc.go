// Package decompose rewrites a node with a large CPT into a product of
// smaller factors by inserting a hidden ("latent") parent.
//
// For a node X with K outcomes and P parent combinations, the CPT is viewed
// as P rows, each a distribution over X. If the rows take only m distinct
// values (the basis), X can be rewritten as
//
//	parents → L (m outcomes, deterministic: L = index of the row's basis entry)
//	L       → X (CPT made of the m basis rows)
//
// which holds m·P + K·m cells instead of K·P. Summing L out reproduces the
// original CPT, so all beliefs except those of L itself are unchanged.
//
// LatentDeterministic requires exact row equality and fails with
// ErrDecompositionFailed when the rewrite would not shrink the tables.
// Smoothed clusters rows within a tolerance and always succeeds, trading
// exactness for size.
//
// Both strategies mutate the network in place. Precondition failures
// (ErrNoParents, ErrNodeNotInNetwork, ErrNameTaken) and
// ErrDecompositionFailed are reported before anything is written; an error
// from the rewrite itself may leave the latent node in the network.
package decompose
