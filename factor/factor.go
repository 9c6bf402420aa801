// SPDX-License-Identifier: MIT

package factor

import (
	"fmt"
	"math"
)

// Factor is a flattened table over an ordered set of discrete dimensions.
//
// dims holds the variable ids spanned by the factor, cards their outcome
// counts, strides the row-major step of each dimension (the first dimension
// has the largest stride). A factor with no dimensions is a scalar of length 1.
type Factor struct {
	dims    []int // variable ids, in table order
	cards   []int // cardinality per dimension
	strides []int // row-major strides, strides[len-1] == 1
	values  Store // len == product(cards)
	shared  bool  // values alias an interned array; copy before writing
}

// New creates a factor over dims with the given cardinalities, filled with 1.
//
// Stage 1 (Validate): equal lengths, positive cardinalities, unique dims,
// table size representable as int.
// Stage 2 (Prepare): compute strides and table size.
// Stage 3 (Finalize): allocate the Store at the configured precision.
// Complexity: O(len) time and memory.
func New(dims, cards []int, opts ...Option) (*Factor, error) {
	o := gatherOptions(opts)
	if len(dims) != len(cards) {
		return nil, factorErrorf("New", ErrBadShape)
	}
	seen := make(map[int]struct{}, len(dims))
	size := 1
	for i, c := range cards {
		if c <= 0 || size > math.MaxInt/c {
			return nil, factorErrorf("New", ErrBadShape)
		}
		size *= c
		if _, dup := seen[dims[i]]; dup {
			return nil, factorErrorf("New", ErrBadShape)
		}
		seen[dims[i]] = struct{}{}
	}

	f := &Factor{
		dims:  append([]int(nil), dims...),
		cards: append([]int(nil), cards...),
	}
	f.computeStrides()
	f.values = NewStore(o.precision, size)
	f.values.Fill(1)

	return f, nil
}

// computeStrides fills f.strides and returns the table size.
func (f *Factor) computeStrides() int {
	f.strides = make([]int, len(f.cards))
	size := 1
	for i := len(f.cards) - 1; i >= 0; i-- {
		f.strides[i] = size
		size *= f.cards[i]
	}
	return size
}

// Dims returns a copy of the dimension ids.
func (f *Factor) Dims() []int { return append([]int(nil), f.dims...) }

// Cardinalities returns a copy of the per-dimension cardinalities.
func (f *Factor) Cardinalities() []int { return append([]int(nil), f.cards...) }

// Strides returns a copy of the row-major strides.
func (f *Factor) Strides() []int { return append([]int(nil), f.strides...) }

// Len returns the table size.
func (f *Factor) Len() int { return f.values.Len() }

// Precision reports the numeric width of the backing store.
func (f *Factor) Precision() Precision { return f.values.Precision() }

// Shared reports whether the values alias an interned array.
func (f *Factor) Shared() bool { return f.shared }

// Values exposes the backing store. Callers must not write to it when
// Shared reports true.
func (f *Factor) Values() Store { return f.values }

// Float64s returns a copy of the table as float64.
func (f *Factor) Float64s() []float64 { return f.values.Float64s() }

// DimIndex returns the position of dimension id in the factor, or -1.
func (f *Factor) DimIndex(id int) int {
	for i, d := range f.dims {
		if d == id {
			return i
		}
	}
	return -1
}

// At returns the value at flat index i.
func (f *Factor) At(i int) (float64, error) {
	if i < 0 || i >= f.values.Len() {
		return 0, factorErrorf("At", ErrOutOfRange)
	}
	return f.values.At(i), nil
}

// Set writes v at flat index i.
func (f *Factor) Set(i int, v float64) error {
	if i < 0 || i >= f.values.Len() {
		return factorErrorf("Set", ErrOutOfRange)
	}
	f.own()
	f.values.Set(i, v)
	return nil
}

// SetValues replaces the whole table with a copy of values.
func (f *Factor) SetValues(values []float64) error {
	if len(values) != f.values.Len() {
		return factorErrorf("SetValues", ErrDimensionMismatch)
	}
	f.values = storeFrom(f.values.Precision(), values)
	f.shared = false
	return nil
}

// Share adopts canonical as the factor's table without copying. canonical
// must be treated as immutable by everybody holding it; the factor copies it
// on its first mutation. Float32 factors cannot alias a float64 array and
// fall back to SetValues.
func (f *Factor) Share(canonical []float64) error {
	if len(canonical) != f.values.Len() {
		return factorErrorf("Share", ErrDimensionMismatch)
	}
	if f.values.Precision() != Float64 {
		return f.SetValues(canonical)
	}
	f.values = Float64Store(canonical)
	f.shared = true
	return nil
}

// own replaces a shared store by a private copy.
func (f *Factor) own() {
	if f.shared {
		f.values = f.values.Clone()
		f.shared = false
	}
}

// Fill writes v to every cell.
func (f *Factor) Fill(v float64) {
	f.own()
	f.values.Fill(v)
}

// CopyValues overwrites the table with src's table; shapes must match.
func (f *Factor) CopyValues(src *Factor) error {
	if src.values.Len() != f.values.Len() {
		return factorErrorf("CopyValues", ErrDimensionMismatch)
	}
	f.own()
	f.values.CopyFrom(src.values)
	return nil
}

// MultiplyAssign multiplies cell i by other's cell j.
func (f *Factor) MultiplyAssign(i int, other *Factor, j int) {
	f.own()
	f.values.MulAssign(i, other.values, j)
}

// AddAssign adds other's cell j to cell i.
func (f *Factor) AddAssign(i int, other *Factor, j int) {
	f.own()
	f.values.AddAssign(i, other.values, j)
}

// Clone returns a deep copy with the same precision. The copy never shares
// storage with f.
func (f *Factor) Clone() *Factor {
	return &Factor{
		dims:    append([]int(nil), f.dims...),
		cards:   append([]int(nil), f.cards...),
		strides: append([]int(nil), f.strides...),
		values:  f.values.Clone(),
	}
}

// Index flattens per-dimension coordinates into a flat index.
func (f *Factor) Index(coords []int) (int, error) {
	if len(coords) != len(f.dims) {
		return 0, factorErrorf("Index", ErrDimensionMismatch)
	}
	idx := 0
	for i, c := range coords {
		if c < 0 || c >= f.cards[i] {
			return 0, factorErrorf("Index", ErrOutOfRange)
		}
		idx += c * f.strides[i]
	}
	return idx, nil
}

// Coords unflattens a flat index into per-dimension coordinates.
func (f *Factor) Coords(idx int) ([]int, error) {
	if idx < 0 || idx >= f.values.Len() {
		return nil, factorErrorf("Coords", ErrOutOfRange)
	}
	coords := make([]int, len(f.dims))
	for i := range f.dims {
		coords[i] = (idx / f.strides[i]) % f.cards[i]
	}
	return coords, nil
}

// Sum returns the total of all cells.
func (f *Factor) Sum() float64 {
	var s float64
	n := f.values.Len()
	for i := 0; i < n; i++ {
		s += f.values.At(i)
	}
	return s
}

// Normalize scales the table to sum to 1 and returns the previous sum.
// Returns ErrZeroSum when the sum is zero or not finite.
func (f *Factor) Normalize() (float64, error) {
	s := f.Sum()
	if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return s, factorErrorf("Normalize", ErrZeroSum)
	}
	if s == 1 {
		return s, nil
	}
	f.own()
	inv := 1 / s
	n := f.values.Len()
	for i := 0; i < n; i++ {
		f.values.MulAt(i, inv)
	}
	return s, nil
}

// String implements fmt.Stringer for debugging.
func (f *Factor) String() string {
	return fmt.Sprintf("Factor(dims=%v cards=%v %s %v)", f.dims, f.cards, f.values.Precision(), f.values.Float64s())
}
