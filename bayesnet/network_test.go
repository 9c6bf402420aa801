package bayesnet_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bayes/bayesnet"
	"github.com/katalvlaran/bayes/factor"
	"github.com/katalvlaran/bayes/flyweight"
	"github.com/katalvlaran/bayes/internal/testnets"
)

func TestAddNode_Errors(t *testing.T) {
	net := bayesnet.NewNetwork()
	_, err := net.AddNode("", "t")
	assert.ErrorIs(t, err, bayesnet.ErrEmptyName)

	_, err = net.AddNode("x")
	assert.ErrorIs(t, err, bayesnet.ErrNoOutcomes)

	_, err = net.AddNode("x", "t", "t")
	assert.ErrorIs(t, err, bayesnet.ErrDuplicateOutcome)

	_, err = net.AddNode("x", "t", "f")
	require.NoError(t, err)
	_, err = net.AddNode("x", "t", "f")
	assert.ErrorIs(t, err, bayesnet.ErrDuplicateNode)
}

func TestAddNode_DenseIDs(t *testing.T) {
	d, err := testnets.NewDiamond()
	require.NoError(t, err)
	for i, n := range d.Net.Nodes() {
		assert.Equal(t, i, n.ID())
		got, err := d.Net.NodeByID(i)
		require.NoError(t, err)
		assert.Same(t, n, got)
	}
	_, err = d.Net.NodeByID(4)
	assert.ErrorIs(t, err, bayesnet.ErrNodeNotFound)
	_, err = d.Net.Node("zz")
	assert.ErrorIs(t, err, bayesnet.ErrNodeNotFound)
}

func TestOutcomes(t *testing.T) {
	net := bayesnet.NewNetwork()
	n, err := net.AddNode("weather", "sun", "rain", "snow")
	require.NoError(t, err)
	assert.Equal(t, 3, n.OutcomeCount())
	i, err := n.OutcomeIndex("rain")
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	_, err = n.OutcomeIndex("hail")
	assert.ErrorIs(t, err, bayesnet.ErrUnknownOutcome)
	o, err := n.Outcome(2)
	require.NoError(t, err)
	assert.Equal(t, "snow", o)
	_, err = n.Outcome(3)
	assert.ErrorIs(t, err, bayesnet.ErrUnknownOutcome)
}

func TestSetParents_ResetsCPTAndChildren(t *testing.T) {
	d, err := testnets.NewDiamond()
	require.NoError(t, err)

	assert.Equal(t, []int{2, 0, 1}, d.C.Family())
	assert.ElementsMatch(t, []*bayesnet.Node{d.B, d.C}, d.A.Children())

	require.NoError(t, d.C.SetParents(d.B))
	assert.False(t, d.C.Defined())
	assert.Equal(t, []*bayesnet.Node{d.B}, d.A.Children())
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0.5, 0.5}, d.C.Probabilities(), 1e-12)
	assert.ErrorIs(t, d.Net.Validate(), bayesnet.ErrMissingCPT)
}

func TestSetParents_Foreign(t *testing.T) {
	a := bayesnet.NewNetwork()
	b := bayesnet.NewNetwork()
	x, _ := a.AddNode("x", "t", "f")
	y, _ := b.AddNode("y", "t", "f")
	assert.ErrorIs(t, x.SetParents(y), bayesnet.ErrForeignParent)
	assert.ErrorIs(t, x.SetParents(nil), bayesnet.ErrForeignParent)
}

func TestSetParents_TableTooLarge(t *testing.T) {
	net := bayesnet.NewNetwork()
	child, err := net.AddNode("child", "t", "f")
	require.NoError(t, err)
	parents := make([]*bayesnet.Node, 64)
	for i := range parents {
		parents[i], err = net.AddNode(fmt.Sprintf("p%d", i), "t", "f")
		require.NoError(t, err)
	}
	version := net.Version()

	err = child.SetParents(parents...)
	assert.ErrorIs(t, err, factor.ErrBadShape)
	// nothing changed
	assert.Empty(t, child.Parents())
	assert.Empty(t, parents[0].Children())
	assert.Equal(t, 2, child.CPT().Len())
	assert.Equal(t, version, net.Version())
}

func TestSetProbabilities_Mismatch(t *testing.T) {
	d, err := testnets.NewDiamond()
	require.NoError(t, err)
	assert.ErrorIs(t, d.C.SetProbabilities(0.5, 0.5), bayesnet.ErrDimensionMismatch)
}

func TestDistribution_StridedRows(t *testing.T) {
	d, err := testnets.NewDiamond()
	require.NoError(t, err)

	row, err := d.C.Distribution([]int{0, 1})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.6, 0.4}, row, 1e-12)

	require.NoError(t, d.C.SetDistribution([]int{1, 1}, 0.25, 0.75))
	p, err := d.C.Probability(1, []int{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.75, p)

	_, err = d.C.Distribution([]int{0})
	assert.ErrorIs(t, err, bayesnet.ErrDimensionMismatch)
	_, err = d.C.Distribution([]int{0, 2})
	assert.ErrorIs(t, err, bayesnet.ErrUnknownOutcome)
	assert.ErrorIs(t, d.C.SetDistribution([]int{0, 0}, 1), bayesnet.ErrDimensionMismatch)
}

func TestVersion_BumpsOnMutation(t *testing.T) {
	d, err := testnets.NewDiamond()
	require.NoError(t, err)
	v := d.Net.Version()
	require.NoError(t, d.D.SetProbabilities(0.6, 0.1, 0.4, 0.9))
	assert.Greater(t, d.Net.Version(), v)
}

func TestValidate_Cycle(t *testing.T) {
	d, err := testnets.NewDiamond()
	require.NoError(t, err)
	require.NoError(t, d.Net.Validate())

	require.NoError(t, d.A.SetParents(d.D))
	require.NoError(t, d.A.SetProbabilities(0.5, 0.5, 0.5, 0.5))
	assert.ErrorIs(t, d.Net.Validate(), bayesnet.ErrCycleDetected)
	_, err = d.Net.TopologicalOrder()
	assert.ErrorIs(t, err, bayesnet.ErrCycleDetected)
}

func TestTopologicalOrder_ParentsFirst(t *testing.T) {
	net, err := testnets.Random(7, 25, 3, 3)
	require.NoError(t, err)
	order, err := net.TopologicalOrder()
	require.NoError(t, err)
	require.Len(t, order, net.Len())

	pos := make(map[*bayesnet.Node]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	for _, n := range order {
		for _, p := range n.Parents() {
			assert.Less(t, pos[p], pos[n], "%s must follow its parent %s", n, p)
		}
	}
}

func TestClone_Independent(t *testing.T) {
	d, err := testnets.NewDiamond()
	require.NoError(t, err)
	c, err := d.Net.Clone()
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	cc, err := c.Node("c")
	require.NoError(t, err)
	assert.Equal(t, d.C.Probabilities(), cc.Probabilities())
	assert.Equal(t, []string{"a", "b"}, []string{cc.Parents()[0].Name(), cc.Parents()[1].Name()})

	require.NoError(t, cc.SetDistribution([]int{0, 0}, 0.5, 0.5))
	row, _ := d.C.Distribution([]int{0, 0})
	assert.InDeltaSlice(t, []float64{0.9, 0.1}, row, 1e-12)
}

func TestFlyweight_SharesEqualCPTs(t *testing.T) {
	store := flyweight.New()
	net := bayesnet.NewNetwork(bayesnet.WithFlyweight(store))
	x, _ := net.AddNode("x", "t", "f")
	y, _ := net.AddNode("y", "t", "f")
	require.NoError(t, x.SetProbabilities(0.3, 0.7))
	require.NoError(t, y.SetProbabilities(0.3, 0.7))

	assert.True(t, x.CPT().Shared())
	assert.Equal(t, 1, store.Len())

	// Writing through one node must not leak into the other.
	require.NoError(t, x.SetDistribution(nil, 0.9, 0.1))
	assert.Equal(t, []float64{0.3, 0.7}, y.Probabilities())
	assert.True(t, store.Contains([]float64{0.3, 0.7}))

	c, err := net.Clone()
	require.NoError(t, err)
	cy, _ := c.Node("y")
	assert.True(t, cy.CPT().Shared())
	assert.Same(t, store, c.Flyweight())
}
