package sampling

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/bayes/bayesnet"
	"github.com/katalvlaran/bayes/inference"
)

const engineName = "sampling"

// Stats summarizes the last sampling run.
type Stats struct {
	Samples     int     // samples drawn
	Accepted    int     // samples with non-zero weight
	TotalWeight float64 // sum of weights
	// EffectiveSampleSize is (Σw)²/Σw²; equals Samples when no evidence is set.
	EffectiveSampleSize float64
}

// Inferer is the likelihood-weighting engine. It implements inference.Inferer.
type Inferer struct {
	inference.Base

	opts options
	net  *bayesnet.Network
	plan *plan
	log  logrus.FieldLogger

	statsMu sync.Mutex
	last    Stats
}

var _ inference.Inferer = (*Inferer)(nil)

// New returns an Inferer with no network bound.
func New(opts ...Option) *Inferer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Inferer{opts: o, log: o.logger.WithField("engine", engineName)}
}

// SetNetwork validates net and prepares the sampling order.
func (i *Inferer) SetNetwork(net *bayesnet.Network) error {
	if err := i.Bind(net); err != nil {
		return err
	}
	i.net = net
	p, err := newPlan(net)
	if err != nil {
		return err
	}
	i.plan = p
	return nil
}

// Beliefs returns the estimated posterior marginal of node.
func (i *Inferer) Beliefs(node *bayesnet.Node) ([]float64, error) {
	return i.Cached(node, i.estimate)
}

// LastRun returns statistics of the most recent sampling run.
func (i *Inferer) LastRun() Stats {
	i.statsMu.Lock()
	defer i.statsMu.Unlock()
	return i.last
}

// estimate is the inference.ComputeFunc of the engine.
func (i *Inferer) estimate(evidence map[*bayesnet.Node]int, beliefs [][]float64) (err error) {
	if i.plan == nil || i.plan.version != i.net.Version() {
		if err = i.net.Validate(); err != nil {
			return err
		}
		if i.plan, err = newPlan(i.net); err != nil {
			return err
		}
	}

	ctx, span := inference.StartSpan(context.Background(), engineName, "Propagate",
		attribute.Int("bayes.evidence", len(evidence)),
		attribute.Int("bayes.samples", i.opts.samples),
	)
	start := time.Now()
	defer func() {
		inference.RecordPropagation(ctx, engineName, time.Since(start), err)
		inference.EndSpan(span, err)
	}()

	observed := make([]int, i.net.Len())
	for v := range observed {
		observed[v] = -1
	}
	for n, o := range evidence {
		observed[n.ID()] = o
	}

	workers := i.opts.workers
	if workers > i.opts.samples {
		workers = i.opts.samples
	}
	streams := workerStreams(i.opts.seed, workers)
	parts := make([]*tally, workers)

	var g errgroup.Group
	for w := range parts {
		w := w
		n := i.opts.samples / workers
		if w < i.opts.samples%workers {
			n++
		}
		parts[w] = newTally(i.net.Cardinalities())
		g.Go(func() error {
			i.plan.draw(streams[w], n, observed, parts[w])
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return err
	}

	// merge in worker order so the result does not depend on scheduling
	total := parts[0]
	for _, t := range parts[1:] {
		total.merge(t)
	}

	stats := Stats{
		Samples:     i.opts.samples,
		Accepted:    total.accepted,
		TotalWeight: total.weight,
	}
	if total.weightSq > 0 {
		stats.EffectiveSampleSize = total.weight * total.weight / total.weightSq
	}
	i.statsMu.Lock()
	i.last = stats
	i.statsMu.Unlock()

	i.log.WithFields(logrus.Fields{
		"network":  i.net.Name(),
		"samples":  stats.Samples,
		"accepted": stats.Accepted,
		"ess":      stats.EffectiveSampleSize,
		"workers":  workers,
	}).Debug("likelihood weighting finished")

	if total.weight == 0 {
		return inference.ErrZeroProbability
	}
	for v := range beliefs {
		copy(beliefs[v], total.counts[v])
		if err = inference.Normalize(beliefs[v]); err != nil {
			return err
		}
	}
	return nil
}

// step is one node of the sampling order with its CPT flattened.
type step struct {
	id      int
	card    int
	configs int       // parent combinations; row stride of probs
	parents []int     // parent ids
	strides []int     // column stride per parent
	probs   []float64 // probs[x*configs + j]
}

// plan is the network prepared for sampling.
type plan struct {
	steps   []step
	version uint64
}

func newPlan(net *bayesnet.Network) (*plan, error) {
	order, err := net.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	p := &plan{steps: make([]step, len(order)), version: net.Version()}
	for k, n := range order {
		strides := n.CPT().Strides()
		parents := n.Parents()
		s := step{
			id:      n.ID(),
			card:    n.OutcomeCount(),
			configs: n.ParentConfigurations(),
			parents: make([]int, len(parents)),
			strides: strides[1:],
			probs:   n.Probabilities(),
		}
		for i, par := range parents {
			s.parents[i] = par.ID()
		}
		p.steps[k] = s
	}
	return p, nil
}

// tally accumulates weighted outcome counts.
type tally struct {
	counts   [][]float64
	weight   float64
	weightSq float64
	accepted int
}

func newTally(cards []int) *tally {
	t := &tally{counts: make([][]float64, len(cards))}
	for v, c := range cards {
		t.counts[v] = make([]float64, c)
	}
	return t
}

func (t *tally) merge(o *tally) {
	for v := range t.counts {
		for x := range t.counts[v] {
			t.counts[v][x] += o.counts[v][x]
		}
	}
	t.weight += o.weight
	t.weightSq += o.weightSq
	t.accepted += o.accepted
}

// draw adds n weighted samples to t. observed[v] is the evidence outcome of
// v or -1.
func (p *plan) draw(rng *rand.Rand, n int, observed []int, t *tally) {
	assign := make([]int, len(observed))
	for s := 0; s < n; s++ {
		w := 1.0
		for k := range p.steps {
			st := &p.steps[k]
			j := 0
			for i, par := range st.parents {
				j += assign[par] * st.strides[i]
			}
			if x := observed[st.id]; x >= 0 {
				assign[st.id] = x
				w *= st.probs[x*st.configs+j]
				if w == 0 {
					break
				}
				continue
			}
			assign[st.id] = st.pick(rng.Float64(), j)
		}
		if w == 0 {
			continue
		}
		t.accepted++
		t.weight += w
		t.weightSq += w * w
		for v, x := range assign {
			t.counts[v][x] += w
		}
	}
}

// pick returns the outcome whose cumulative probability in column j first
// exceeds u. Rounding slack falls to the last outcome with mass.
func (st *step) pick(u float64, j int) int {
	var acc float64
	last := 0
	for x := 0; x < st.card; x++ {
		p := st.probs[x*st.configs+j]
		if p <= 0 {
			continue
		}
		acc += p
		last = x
		if u < acc {
			return x
		}
	}
	return last
}
