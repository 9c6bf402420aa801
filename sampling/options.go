package sampling

import "github.com/sirupsen/logrus"

const (
	// DefaultSampleCount is the sample budget when WithSampleCount is not given.
	DefaultSampleCount = 10000

	panicSampleCountInvalid = "sampling: WithSampleCount: n must be >= 1"
	panicWorkersInvalid     = "sampling: WithWorkers: n must be >= 1"
)

// Option configures an Inferer.
type Option func(*options)

type options struct {
	samples int
	seed    int64
	workers int
	logger  logrus.FieldLogger
}

func defaultOptions() options {
	return options{
		samples: DefaultSampleCount,
		workers: 1,
		logger:  logrus.StandardLogger(),
	}
}

// WithSampleCount sets the number of weighted samples per propagation.
func WithSampleCount(n int) Option {
	if n < 1 {
		panic(panicSampleCountInvalid)
	}
	return func(o *options) { o.samples = n }
}

// WithSeed fixes the random stream. Seed 0 selects a built-in default.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithWorkers splits the sample budget over n parallel substreams.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger for run summaries.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
