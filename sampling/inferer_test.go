package sampling_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bayes/bayesnet"
	"github.com/katalvlaran/bayes/inference"
	"github.com/katalvlaran/bayes/internal/testnets"
	"github.com/katalvlaran/bayes/sampling"
)

func beliefs(t *testing.T, inf inference.Inferer, net *bayesnet.Network) [][]float64 {
	t.Helper()
	out := make([][]float64, net.Len())
	for _, n := range net.Nodes() {
		b, err := inf.Beliefs(n)
		require.NoError(t, err)
		out[n.ID()] = b
	}
	return out
}

// maxErr returns the largest absolute difference between two belief sets.
func maxErr(a, b [][]float64) float64 {
	var m float64
	for v := range a {
		for x := range a[v] {
			m = math.Max(m, math.Abs(a[v][x]-b[v][x]))
		}
	}
	return m
}

func TestInferer_DiamondPriors(t *testing.T) {
	d, err := testnets.NewDiamond()
	require.NoError(t, err)
	inf := sampling.New(sampling.WithSampleCount(20000), sampling.WithSeed(3))
	require.NoError(t, inf.SetNetwork(d.Net))

	want, err := testnets.Enumerate(d.Net, nil)
	require.NoError(t, err)
	assert.Less(t, maxErr(want, beliefs(t, inf, d.Net)), 0.02)

	s := inf.LastRun()
	assert.Equal(t, 20000, s.Samples)
	assert.Equal(t, 20000, s.Accepted)
	assert.InDelta(t, 20000, s.EffectiveSampleSize, 1e-6)
}

func TestInferer_DiamondEvidence(t *testing.T) {
	d, err := testnets.NewDiamond()
	require.NoError(t, err)
	inf := sampling.New(sampling.WithSampleCount(20000))
	require.NoError(t, inf.SetNetwork(d.Net))
	require.NoError(t, inf.AddEvidence(d.D, 0))

	got := beliefs(t, inf, d.Net)
	assert.Equal(t, []float64{1, 0}, got[d.D.ID()])
	assert.InDelta(t, 0.309309, got[d.A.ID()][0], 0.02)
	assert.InDelta(t, 0.459459, got[d.B.ID()][0], 0.02)
	assert.InDelta(t, 0.559159, got[d.C.ID()][0], 0.02)
	for _, b := range got {
		assert.InDelta(t, 1, b[0]+b[1], 1e-12)
	}
	assert.Less(t, inf.LastRun().EffectiveSampleSize, 20000.0)
}

func TestInferer_Convergence(t *testing.T) {
	d, err := testnets.NewDiamond()
	require.NoError(t, err)
	evidence := map[*bayesnet.Node]int{d.D: 0}
	want, err := testnets.Enumerate(d.Net, evidence)
	require.NoError(t, err)

	errs := make([]float64, 0, 2)
	for _, n := range []int{200, 20000} {
		inf := sampling.New(sampling.WithSampleCount(n), sampling.WithSeed(42))
		require.NoError(t, inf.SetNetwork(d.Net))
		require.NoError(t, inf.SetEvidence(evidence))
		errs = append(errs, maxErr(want, beliefs(t, inf, d.Net)))
	}
	assert.Less(t, errs[1], errs[0])
	assert.Less(t, errs[1], 0.02)
}

func TestInferer_Deterministic(t *testing.T) {
	net, err := testnets.Random(4, 12, 3, 3)
	require.NoError(t, err)
	evidence := map[*bayesnet.Node]int{net.Nodes()[11]: 0}

	run := func(opts ...sampling.Option) [][]float64 {
		inf := sampling.New(append([]sampling.Option{sampling.WithSampleCount(3000)}, opts...)...)
		require.NoError(t, inf.SetNetwork(net))
		require.NoError(t, inf.SetEvidence(evidence))
		return beliefs(t, inf, net)
	}

	assert.Equal(t, run(sampling.WithSeed(9)), run(sampling.WithSeed(9)))
	assert.NotEqual(t, run(sampling.WithSeed(9)), run(sampling.WithSeed(10)))
	// seed 0 is the fixed default
	assert.Equal(t, run(), run(sampling.WithSeed(0)))

	parallel := run(sampling.WithSeed(9), sampling.WithWorkers(4))
	assert.Equal(t, parallel, run(sampling.WithSeed(9), sampling.WithWorkers(4)))
}

func TestInferer_WorkersAccurate(t *testing.T) {
	net, err := testnets.Random(8, 8, 2, 3)
	require.NoError(t, err)
	want, err := testnets.Enumerate(net, nil)
	require.NoError(t, err)

	inf := sampling.New(sampling.WithSampleCount(40000), sampling.WithWorkers(3))
	require.NoError(t, inf.SetNetwork(net))
	assert.Less(t, maxErr(want, beliefs(t, inf, net)), 0.02)
	assert.Equal(t, 40000, inf.LastRun().Samples)
}

func TestInferer_ZeroWeight(t *testing.T) {
	net := bayesnet.NewNetwork()
	a, err := net.AddNode("a", "t", "f")
	require.NoError(t, err)
	b, err := net.AddNode("b", "t", "f")
	require.NoError(t, err)
	require.NoError(t, a.SetProbabilities(0.5, 0.5))
	require.NoError(t, b.SetParents(a))
	require.NoError(t, b.SetProbabilities(1, 0, 0, 1))

	inf := sampling.New(sampling.WithSampleCount(500))
	require.NoError(t, inf.SetNetwork(net))
	require.NoError(t, inf.SetEvidence(map[*bayesnet.Node]int{a: 0, b: 1}))
	_, err = inf.Beliefs(a)
	assert.ErrorIs(t, err, inference.ErrZeroProbability)
	assert.Zero(t, inf.LastRun().Accepted)

	inf.RemoveEvidence(a)
	got, err := inf.Beliefs(a)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, got)
}

func TestInferer_FollowsMutation(t *testing.T) {
	d, err := testnets.NewDiamond()
	require.NoError(t, err)
	inf := sampling.New(sampling.WithSampleCount(5000))
	require.NoError(t, inf.SetNetwork(d.Net))
	_, err = inf.Beliefs(d.A)
	require.NoError(t, err)

	require.NoError(t, d.A.SetProbabilities(1, 0))
	got, err := inf.Beliefs(d.A)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, got)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { sampling.WithSampleCount(0) })
	assert.Panics(t, func() { sampling.WithWorkers(0) })
	assert.NotPanics(t, func() { sampling.WithLogger(nil) })
}
