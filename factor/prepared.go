// SPDX-License-Identifier: MIT

// Package factor: prepared (table-driven) factor combination.
// Project computes the index correspondence between a factor and a factor
// over a subset of its dimensions once; the prepared operations then combine
// the two with a single pass and no index arithmetic.

package factor

import "math"

// Project returns positions such that positions[i] is the flat index in small
// of the cell that big's flat index i projects onto.
//
// Every dimension of small must be spanned by big with the same cardinality;
// otherwise ErrUnknownDimension or ErrDimensionMismatch is returned.
//
// Stage 1 (Validate): locate each small dimension in big.
// Stage 2 (Execute): per dimension, walk big's flat indices in ascending
// order and accumulate coordinate*stride using the division/modulo caches.
// Complexity: O(len(big) · |dims(small)|) time, O(len(big)) memory.
func Project(big, small *Factor) ([]int, error) {
	pos := make([]int, len(small.dims))
	for k, d := range small.dims {
		p := big.DimIndex(d)
		if p < 0 {
			return nil, factorErrorf("Project", ErrUnknownDimension)
		}
		if big.cards[p] != small.cards[k] {
			return nil, factorErrorf("Project", ErrDimensionMismatch)
		}
		pos[k] = p
	}

	n := big.Len()
	positions := make([]int, n)
	for k, p := range pos {
		stride := small.strides[k]
		div := NewDivisionCache(big.strides[p])
		mod := NewModuloCache(big.cards[p])
		for i := 0; i < n; i++ {
			positions[i] += mod.Apply(div.Apply(i)) * stride
		}
	}

	return positions, nil
}

// SumPrepared overwrites f with the marginal of src onto f's dimensions,
// using positions = Project(src, f).
// Complexity: O(len(src)).
func (f *Factor) SumPrepared(src *Factor, positions []int) error {
	if len(positions) != src.Len() {
		return factorErrorf("SumPrepared", ErrDimensionMismatch)
	}
	f.own()
	f.values.Fill(0)
	for i, p := range positions {
		f.values.AddAssign(p, src.values, i)
	}
	return nil
}

// MultiplyPrepared multiplies every cell i of f by src's cell positions[i],
// using positions = Project(f, src).
// Complexity: O(len(f)).
func (f *Factor) MultiplyPrepared(src *Factor, positions []int) error {
	if len(positions) != f.Len() {
		return factorErrorf("MultiplyPrepared", ErrDimensionMismatch)
	}
	f.own()
	for i, p := range positions {
		f.values.MulAssign(i, src.values, p)
	}
	return nil
}

// Divide overwrites f with num/den cell by cell. Cells where den is zero are
// set to zero: a zero separator entry can only face a zero numerator during
// propagation, and 0/0 is defined as 0 there.
func (f *Factor) Divide(num, den *Factor) error {
	n := f.Len()
	if num.Len() != n || den.Len() != n {
		return factorErrorf("Divide", ErrDimensionMismatch)
	}
	f.own()
	for i := 0; i < n; i++ {
		d := den.values.At(i)
		if d == 0 {
			f.values.Set(i, 0)
			continue
		}
		f.values.Set(i, num.values.At(i)/d)
	}
	return nil
}

// Multiply returns the product of a and b as a new factor over a's dims
// followed by b's dims not already in a. The result uses a's precision.
// Complexity: O(len(result) · (|dims(a)|+|dims(b)|)).
func Multiply(a, b *Factor) (*Factor, error) {
	dims := append([]int(nil), a.dims...)
	cards := append([]int(nil), a.cards...)
	for k, d := range b.dims {
		p := a.DimIndex(d)
		if p >= 0 {
			if a.cards[p] != b.cards[k] {
				return nil, factorErrorf("Multiply", ErrDimensionMismatch)
			}
			continue
		}
		dims = append(dims, d)
		cards = append(cards, b.cards[k])
	}

	out, err := New(dims, cards, WithPrecision(a.Precision()))
	if err != nil {
		return nil, err
	}
	for _, src := range []*Factor{a, b} {
		positions, err := Project(out, src)
		if err != nil {
			return nil, err
		}
		if err = out.MultiplyPrepared(src, positions); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Marginalize sums f onto the dimensions listed in keep (in that order).
func Marginalize(f *Factor, keep []int) (*Factor, error) {
	cards := make([]int, len(keep))
	for k, d := range keep {
		p := f.DimIndex(d)
		if p < 0 {
			return nil, factorErrorf("Marginalize", ErrUnknownDimension)
		}
		cards[k] = f.cards[p]
	}
	out, err := New(keep, cards, WithPrecision(f.Precision()))
	if err != nil {
		return nil, err
	}
	positions, err := Project(f, out)
	if err != nil {
		return nil, err
	}
	if err = out.SumPrepared(f, positions); err != nil {
		return nil, err
	}
	return out, nil
}

// MaxAbsDiff returns the largest absolute cell difference between two
// equally sized factors, or +Inf when sizes differ.
func MaxAbsDiff(a, b *Factor) float64 {
	if a.Len() != b.Len() {
		return math.Inf(1)
	}
	var m float64
	for i := 0; i < a.Len(); i++ {
		d := math.Abs(a.values.At(i) - b.values.At(i))
		if d > m {
			m = d
		}
	}
	return m
}
