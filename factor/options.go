// SPDX-License-Identifier: MIT

// Package factor: functional configuration for Factor construction.

package factor

const panicPrecisionInvalid = "factor: WithPrecision: unknown precision"

// DefaultPrecision is the numeric width used when no option is given.
const DefaultPrecision = Float64

// Option mutates factor construction options.
type Option func(*options)

type options struct {
	precision Precision
}

func defaultOptions() options {
	return options{precision: DefaultPrecision}
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPrecision selects the backing Store width.
// Panics on values other than Float64 and Float32.
func WithPrecision(p Precision) Option {
	if p != Float64 && p != Float32 {
		panic(panicPrecisionInvalid)
	}
	return func(o *options) { o.precision = p }
}
