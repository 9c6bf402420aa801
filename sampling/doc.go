// Package sampling implements approximate inference by likelihood weighting.
//
// Each sample walks the network in topological order. Unobserved nodes draw
// an outcome from their CPT row selected by the already sampled parents;
// observed nodes keep their evidence outcome and multiply the sample weight
// by the probability of that outcome. Beliefs are the weighted outcome counts
// normalized per node.
//
// Accuracy depends only on the sample budget (WithSampleCount). The random
// stream is explicit and seeded per Inferer (WithSeed), so results are
// reproducible. WithWorkers(n) splits the budget into n deterministic
// substreams processed in parallel; the result depends on seed and n, not on
// scheduling.
//
// Unlike the exact engine, sampling never fails on hard structure; it only
// reports inference.ErrZeroProbability when every sample had zero weight.
package sampling
