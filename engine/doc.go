// Package engine selects an inference engine at construction time.
//
// The set of engines is closed: Kind names the exact junction tree or the
// likelihood-weighting sampler, and New builds the requested one from a
// Config. When the configuration names a decomposition strategy, the engine
// is wrapped in a Transformed decorator that rewrites large CPTs on a private
// copy of the network before handing it to the engine.
//
// Config can be assembled in code, starting from DefaultConfig, or loaded
// with LoadConfig from a YAML file and BAYES_* environment variables.
package engine
