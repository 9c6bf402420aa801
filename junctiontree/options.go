// Package junctiontree: functional configuration of the exact engine.
// This file defines:
//   - Option (functional options over an unexported options struct),
//   - documented defaults,
//   - WithX constructors that panic on nonsensical values (programmer error).
//
// Design goals:
//   - Deterministic behavior: concurrency never changes the beliefs beyond
//     floating-point summation order.
//   - No dead switches: each option changes behavior and is covered by tests.
package junctiontree

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/bayes/factor"
)

const (
	panicPrecisionInvalid   = "junctiontree: WithPrecision: unknown precision"
	panicConcurrencyInvalid = "junctiontree: WithConcurrency: n must be >= 1"
	panicSmoothingInvalid   = "junctiontree: WithEvidenceSmoothing: eps must be finite and in [0, 1)"
)

// Option configures an Inferer.
type Option func(*options)

type options struct {
	precision   factor.Precision
	concurrency int     // 1 = sequential passes
	smoothing   float64 // indicator weight of non-observed outcomes
	logger      logrus.FieldLogger
}

func defaultOptions() options {
	return options{
		precision:   factor.Float64,
		concurrency: 1,
		logger:      logrus.StandardLogger(),
	}
}

// WithPrecision selects the numeric width of clique and separator tables.
func WithPrecision(p factor.Precision) Option {
	if p != factor.Float64 && p != factor.Float32 {
		panic(panicPrecisionInvalid)
	}
	return func(o *options) { o.precision = p }
}

// WithConcurrency processes up to n sibling subtrees in parallel during
// collect and distribute. n must be >= 1.
func WithConcurrency(n int) Option {
	if n < 1 {
		panic(panicConcurrencyInvalid)
	}
	return func(o *options) { o.concurrency = n }
}

// WithEvidenceSmoothing multiplies non-observed outcomes of evidence nodes by
// eps instead of 0. Beliefs of observed nodes are then no longer one-hot, but
// evidence that the model deems impossible still yields a posterior.
func WithEvidenceSmoothing(eps float64) Option {
	if math.IsNaN(eps) || eps < 0 || eps >= 1 {
		panic(panicSmoothingInvalid)
	}
	return func(o *options) { o.smoothing = eps }
}

// WithLogger sets the logger for compile statistics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
