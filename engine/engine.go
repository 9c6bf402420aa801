package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/bayes/decompose"
	"github.com/katalvlaran/bayes/factor"
	"github.com/katalvlaran/bayes/inference"
	"github.com/katalvlaran/bayes/junctiontree"
	"github.com/katalvlaran/bayes/sampling"
)

// New validates cfg and builds the selected engine, wrapped in Transformed
// when a decomposition strategy is configured.
func New(cfg Config) (inference.Inferer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger()

	base, err := newBase(cfg, log)
	if err != nil {
		return nil, err
	}

	d := cfg.Decomposition
	if d.Strategy == StrategyNone {
		return base, nil
	}
	smoothed := decompose.Smoothed{Tolerance: d.Tolerance, MaxBasis: d.MaxBasis}
	opts := []TransformOption{
		WithMinTableSize(d.MinTableSize),
		WithTransformLogger(log),
	}
	var strategy decompose.Decomposition = smoothed
	if d.Strategy == StrategyLatent {
		strategy = decompose.LatentDeterministic{}
		if d.Fallback {
			opts = append(opts, WithFallback(smoothed))
		}
	}
	return NewTransformed(base, strategy, opts...), nil
}

// newBase builds the undecorated engine of cfg.Kind.
func newBase(cfg Config, log logrus.FieldLogger) (inference.Inferer, error) {
	switch cfg.Kind {
	case JunctionTree:
		p, err := factor.ParsePrecision(cfg.JunctionTree.Precision)
		if err != nil {
			return nil, err
		}
		opts := []junctiontree.Option{
			junctiontree.WithPrecision(p),
			junctiontree.WithConcurrency(cfg.JunctionTree.Concurrency),
			junctiontree.WithLogger(log),
		}
		if cfg.JunctionTree.EvidenceSmoothing > 0 {
			opts = append(opts, junctiontree.WithEvidenceSmoothing(cfg.JunctionTree.EvidenceSmoothing))
		}
		return junctiontree.New(opts...), nil
	case Sampling:
		return sampling.New(
			sampling.WithSampleCount(cfg.Sampling.Samples),
			sampling.WithSeed(cfg.Sampling.Seed),
			sampling.WithWorkers(cfg.Sampling.Workers),
			sampling.WithLogger(log),
		), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}
