package decompose

import (
	"math"

	"github.com/katalvlaran/bayes/bayesnet"
)

// DefaultTolerance is the starting tolerance of Smoothed when none is set.
const DefaultTolerance = 1e-3

// Smoothed is the approximate strategy: rows within Tolerance (L∞) of a
// cluster leader share one basis entry, the renormalized cluster mean.
//
// The tolerance doubles until the basis is small enough to shrink the tables
// and has at most MaxBasis entries (when MaxBasis > 0). Each row of the
// rewritten CPT then differs from the original by at most twice the final
// tolerance.
type Smoothed struct {
	Tolerance float64
	MaxBasis  int
}

// Decompose implements Decomposition. It fails only on the preconditions
// (no parents, foreign node, latent name taken).
func (s Smoothed) Decompose(net *bayesnet.Network, node *bayesnet.Node) error {
	r, err := prepare(net, node)
	if err != nil {
		return err
	}

	limit := r.largestBasis()
	if s.MaxBasis > 0 && s.MaxBasis < limit {
		limit = s.MaxBasis
	}
	tol := s.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}

	var leaders, assign []int
	for {
		leaders, assign = cluster(r.data, tol)
		// at tol >= 1 every pair of distributions is within range: one cluster
		if len(leaders) <= limit || tol >= 1 {
			break
		}
		tol *= 2
	}

	basis := make([][]float64, len(leaders))
	counts := make([]int, len(leaders))
	for b := range basis {
		basis[b] = make([]float64, r.outcomes)
	}
	for j, b := range assign {
		for x, v := range r.data[j] {
			basis[b][x] += v
		}
		counts[b]++
	}
	for b, row := range basis {
		var sum float64
		for x := range row {
			row[x] /= float64(counts[b])
			sum += row[x]
		}
		if sum > 0 {
			for x := range row {
				row[x] /= sum
			}
		}
	}

	_, err = rewrite(net, node, basis, assign)
	return err
}

// cluster assigns every row to the first leader within tol (L∞); rows
// matching no leader start a new cluster. Returns leader row indexes and the
// cluster of every row.
func cluster(data [][]float64, tol float64) (leaders, assign []int) {
	assign = make([]int, len(data))
	for j, row := range data {
		found := -1
		for b, l := range leaders {
			if maxAbsDiff(row, data[l]) <= tol {
				found = b
				break
			}
		}
		if found < 0 {
			found = len(leaders)
			leaders = append(leaders, j)
		}
		assign[j] = found
	}
	return leaders, assign
}

func maxAbsDiff(a, b []float64) float64 {
	var m float64
	for i := range a {
		m = math.Max(m, math.Abs(a[i]-b[i]))
	}
	return m
}
