// Package bayes is an inference toolkit for discrete Bayesian networks.
//
// A network is a DAG of discrete variables, each with a conditional
// probability table (CPT) over its parents. Given evidence (observed
// outcomes) the engines compute posterior marginals ("beliefs") of every
// variable.
//
// Packages:
//
//	factor/         flat multi-dimensional tables, float64/float32 stores,
//	                prepared projection tables for fast marginalize/multiply
//	flyweight/      interning of identical probability arrays (xxhash)
//	bayesnet/       networks, nodes, outcomes, CPTs, topological order
//	inference/      the Inferer contract, evidence + belief cache, telemetry
//	junctiontree/   exact engine: moralize, triangulate, join, Hugin passes
//	sampling/       approximate engine: seeded likelihood weighting
//	decompose/      rewrite large CPTs through a latent parent
//	engine/         pick an engine from a Config (YAML + env), decorator
//	                running an engine on a decomposed copy
//
// Typical use:
//
//	net := bayesnet.NewNetwork()
//	rain, _ := net.AddNode("rain", "yes", "no")
//	wet, _ := net.AddNode("wet", "yes", "no")
//	_ = rain.SetProbabilities(0.2, 0.8)
//	_ = wet.SetParents(rain)
//	_ = wet.SetProbabilities(0.9, 0.1, 0.1, 0.9)
//
//	inf := junctiontree.New()
//	_ = inf.SetNetwork(net)
//	_ = inf.AddEvidence(wet, 0)
//	p, _ := inf.Beliefs(rain) // [0.6923 0.3077]
//
// CPT layout: the node's own outcome is the slowest dimension, parents follow
// in declaration order, so P(X=x | parents=j) sits at x·P + j with P the
// number of parent combinations. Node.SetDistribution writes one row at a
// time for callers who think in rows.
package bayes
