package decompose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bayes/bayesnet"
	"github.com/katalvlaran/bayes/decompose"
	"github.com/katalvlaran/bayes/flyweight"
	"github.com/katalvlaran/bayes/internal/testnets"
	"github.com/katalvlaran/bayes/junctiontree"
)

type fixture struct {
	net          *bayesnet.Network
	p1, p2, x, y *bayesnet.Node
}

func newFixture(t *testing.T, patterns [][]float64, noise float64, opts ...bayesnet.NetworkOption) *fixture {
	t.Helper()
	p, err := testnets.NewPatterned(patterns, noise, opts...)
	require.NoError(t, err)
	return &fixture{net: p.Net, p1: p.P1, p2: p.P2, x: p.X, y: p.Y}
}

var twoPatterns = [][]float64{{0.7, 0.2, 0.1}, {0.1, 0.3, 0.6}}

// posteriors returns the beliefs of every node of names under evidence
// given by name.
func posteriors(t *testing.T, net *bayesnet.Network, names []string, evidence map[string]int) [][]float64 {
	t.Helper()
	inf := junctiontree.New()
	require.NoError(t, inf.SetNetwork(net))
	for name, o := range evidence {
		n, err := net.Node(name)
		require.NoError(t, err)
		require.NoError(t, inf.AddEvidence(n, o))
	}
	out := make([][]float64, len(names))
	for i, name := range names {
		n, err := net.Node(name)
		require.NoError(t, err)
		out[i], err = inf.Beliefs(n)
		require.NoError(t, err)
	}
	return out
}

func TestLatentDeterministic_Structure(t *testing.T) {
	f := newFixture(t, twoPatterns, 0)
	require.NoError(t, decompose.LatentDeterministic{}.Decompose(f.net, f.x))

	latent, err := f.net.Node("x" + decompose.LatentSuffix)
	require.NoError(t, err)
	assert.Equal(t, []string{"b0", "b1"}, latent.Outcomes())
	assert.Equal(t, []*bayesnet.Node{f.p1, f.p2}, latent.Parents())
	assert.Equal(t, []*bayesnet.Node{latent}, f.x.Parents())
	assert.NoError(t, f.net.Validate())

	// latent CPT is deterministic
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			d, err := latent.Distribution([]int{a, b})
			require.NoError(t, err)
			assert.Equal(t, []float64{1, 0}, sorted01(d))
		}
	}
}

// sorted01 maps a one-hot row to [1 0] regardless of position.
func sorted01(row []float64) []float64 {
	var ones, zeros int
	for _, v := range row {
		switch v {
		case 1:
			ones++
		case 0:
			zeros++
		}
	}
	if ones == 1 && zeros == len(row)-1 {
		return []float64{1, 0}
	}
	return row
}

func TestLatentDeterministic_Fidelity(t *testing.T) {
	names := []string{"p1", "p2", "x", "y"}
	for _, evidence := range []map[string]int{
		nil,
		{"y": 0},
		{"p1": 2, "y": 1},
		{"x": 1},
	} {
		before := newFixture(t, twoPatterns, 0)
		want := posteriors(t, before.net, names, evidence)

		after := newFixture(t, twoPatterns, 0)
		require.NoError(t, decompose.LatentDeterministic{}.Decompose(after.net, after.x))
		got := posteriors(t, after.net, names, evidence)

		for i := range names {
			assert.InDeltaSlice(t, want[i], got[i], 1e-9, "%s given %v", names[i], evidence)
		}
	}
}

func TestLatentDeterministic_SharedFlyweight(t *testing.T) {
	store := flyweight.New()
	f := newFixture(t, twoPatterns, 0, bayesnet.WithFlyweight(store))
	require.NoError(t, decompose.LatentDeterministic{}.Decompose(f.net, f.x))
	assert.True(t, store.Contains(twoPatterns[0]))
	assert.True(t, store.Contains(twoPatterns[1]))
}

func TestLatentDeterministic_Fails(t *testing.T) {
	// all rows distinct: nothing to gain
	f := newFixture(t, twoPatterns, 0.05)
	size := f.net.Len()
	err := decompose.LatentDeterministic{}.Decompose(f.net, f.x)
	assert.ErrorIs(t, err, decompose.ErrDecompositionFailed)
	assert.Equal(t, size, f.net.Len())
	assert.Equal(t, []*bayesnet.Node{f.p1, f.p2}, f.x.Parents())
}

func TestPreconditions(t *testing.T) {
	strategies := []decompose.Decomposition{
		decompose.LatentDeterministic{},
		decompose.Smoothed{Tolerance: 0.01},
	}
	for _, s := range strategies {
		f := newFixture(t, twoPatterns, 0)
		assert.ErrorIs(t, s.Decompose(f.net, f.p1), decompose.ErrNoParents)

		d, err := testnets.NewDiamond()
		require.NoError(t, err)
		assert.ErrorIs(t, s.Decompose(f.net, d.C), decompose.ErrNodeNotInNetwork)
		assert.ErrorIs(t, s.Decompose(f.net, nil), decompose.ErrNodeNotInNetwork)
		// precondition failures write nothing
		assert.Equal(t, 4, f.net.Len())

		_, err = f.net.AddNode("x"+decompose.LatentSuffix, "a", "b")
		require.NoError(t, err)
		version := f.net.Version()
		assert.ErrorIs(t, s.Decompose(f.net, f.x), decompose.ErrNameTaken)
		assert.Equal(t, 5, f.net.Len())
		assert.Equal(t, version, f.net.Version())
		assert.Equal(t, []*bayesnet.Node{f.p1, f.p2}, f.x.Parents())
	}
}

func TestSmoothed_Fidelity(t *testing.T) {
	const noise, tol = 0.002, 0.01
	names := []string{"p1", "p2", "y"}
	evidence := map[string]int{"y": 0}

	before := newFixture(t, twoPatterns, noise)
	want := posteriors(t, before.net, names, evidence)

	after := newFixture(t, twoPatterns, noise)
	require.NoError(t, decompose.Smoothed{Tolerance: tol}.Decompose(after.net, after.x))
	latent, err := after.net.Node("x" + decompose.LatentSuffix)
	require.NoError(t, err)
	assert.Equal(t, 2, latent.OutcomeCount())

	got := posteriors(t, after.net, names, evidence)
	for i := range names {
		assert.InDeltaSlice(t, want[i], got[i], tol, names[i])
	}
}

func TestSmoothed_AlwaysSucceeds(t *testing.T) {
	// rows are unrelated; tolerance must grow until the basis fits
	f := newFixture(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, 0.3)
	require.NoError(t, decompose.Smoothed{Tolerance: 1e-6, MaxBasis: 2}.Decompose(f.net, f.x))
	latent, err := f.net.Node("x" + decompose.LatentSuffix)
	require.NoError(t, err)
	assert.LessOrEqual(t, latent.OutcomeCount(), 2)
	require.NoError(t, f.net.Validate())

	// rewritten rows are still distributions
	for k := 0; k < latent.OutcomeCount(); k++ {
		row, err := f.x.Distribution([]int{k})
		require.NoError(t, err)
		var sum float64
		for _, v := range row {
			sum += v
		}
		assert.InDelta(t, 1, sum, 1e-12)
	}
}
