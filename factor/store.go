// SPDX-License-Identifier: MIT

// Package factor: numeric backing stores.
// Store hides the element width so propagation code is written once and runs
// at either precision. Arithmetic on a Store is always performed in float64
// and rounded back on write for Float32Store.

package factor

import "fmt"

// Precision selects the numeric width of a Store.
type Precision int

const (
	// Float64 stores values as float64 (default).
	Float64 Precision = iota
	// Float32 stores values as float32, halving memory at the cost of
	// rounding error that accumulates over long propagation chains.
	Float32
)

// String implements fmt.Stringer.
func (p Precision) String() string {
	switch p {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// ParsePrecision maps "float64"/"double" and "float32"/"single" onto a Precision.
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "", "float64", "double":
		return Float64, nil
	case "float32", "single", "float":
		return Float32, nil
	default:
		return Float64, fmt.Errorf("factor: unknown precision %q", s)
	}
}

// Store is a flat array of probabilities of a fixed length.
//
// Indexes are not bounds-checked beyond the runtime's slice checks; callers
// (Factor and the prepared operations) guarantee valid indexes.
type Store interface {
	// Len returns the number of elements.
	Len() int
	// At returns element i as float64.
	At(i int) float64
	// Set writes v to element i.
	Set(i int, v float64)
	// Fill writes v to every element.
	Fill(v float64)
	// MulAt multiplies element i by v.
	MulAt(i int, v float64)
	// AddAt adds v to element i.
	AddAt(i int, v float64)
	// MulAssign multiplies element i by other[j].
	MulAssign(i int, other Store, j int)
	// AddAssign adds other[j] to element i.
	AddAssign(i int, other Store, j int)
	// CopyFrom overwrites all elements with those of other (same length).
	CopyFrom(other Store)
	// Clone returns an independent copy with the same precision.
	Clone() Store
	// Float64s returns a fresh float64 copy of the elements.
	Float64s() []float64
	// Precision reports the backing width.
	Precision() Precision
}

// NewStore allocates a zeroed Store of length n with precision p.
// Complexity: O(n).
func NewStore(p Precision, n int) Store {
	if p == Float32 {
		return make(Float32Store, n)
	}
	return make(Float64Store, n)
}

// storeFrom builds a Store of precision p holding a copy of values.
func storeFrom(p Precision, values []float64) Store {
	s := NewStore(p, len(values))
	for i, v := range values {
		s.Set(i, v)
	}
	return s
}

// Float64Store is a double-precision Store.
type Float64Store []float64

func (s Float64Store) Len() int             { return len(s) }
func (s Float64Store) At(i int) float64     { return s[i] }
func (s Float64Store) Set(i int, v float64) { s[i] = v }
func (s Float64Store) MulAt(i int, v float64) {
	s[i] *= v
}
func (s Float64Store) AddAt(i int, v float64) {
	s[i] += v
}
func (s Float64Store) Precision() Precision { return Float64 }

// Fill writes v to every element.
func (s Float64Store) Fill(v float64) {
	for i := range s {
		s[i] = v
	}
}

// MulAssign multiplies s[i] by other[j], taking the fast path when other is
// a Float64Store as well.
func (s Float64Store) MulAssign(i int, other Store, j int) {
	if o, ok := other.(Float64Store); ok {
		s[i] *= o[j]
		return
	}
	s[i] *= other.At(j)
}

// AddAssign adds other[j] to s[i].
func (s Float64Store) AddAssign(i int, other Store, j int) {
	if o, ok := other.(Float64Store); ok {
		s[i] += o[j]
		return
	}
	s[i] += other.At(j)
}

// CopyFrom overwrites s with other; lengths must match.
func (s Float64Store) CopyFrom(other Store) {
	if o, ok := other.(Float64Store); ok {
		copy(s, o)
		return
	}
	for i := range s {
		s[i] = other.At(i)
	}
}

// Clone returns an independent copy.
func (s Float64Store) Clone() Store {
	c := make(Float64Store, len(s))
	copy(c, s)
	return c
}

// Float64s returns a copy of the elements.
func (s Float64Store) Float64s() []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}

// Float32Store is a single-precision Store.
type Float32Store []float32

func (s Float32Store) Len() int             { return len(s) }
func (s Float32Store) At(i int) float64     { return float64(s[i]) }
func (s Float32Store) Set(i int, v float64) { s[i] = float32(v) }
func (s Float32Store) MulAt(i int, v float64) {
	s[i] = float32(float64(s[i]) * v)
}
func (s Float32Store) AddAt(i int, v float64) {
	s[i] = float32(float64(s[i]) + v)
}
func (s Float32Store) Precision() Precision { return Float32 }

// Fill writes v to every element.
func (s Float32Store) Fill(v float64) {
	f := float32(v)
	for i := range s {
		s[i] = f
	}
}

// MulAssign multiplies s[i] by other[j].
func (s Float32Store) MulAssign(i int, other Store, j int) {
	if o, ok := other.(Float32Store); ok {
		s[i] *= o[j]
		return
	}
	s[i] = float32(float64(s[i]) * other.At(j))
}

// AddAssign adds other[j] to s[i].
func (s Float32Store) AddAssign(i int, other Store, j int) {
	if o, ok := other.(Float32Store); ok {
		s[i] += o[j]
		return
	}
	s[i] = float32(float64(s[i]) + other.At(j))
}

// CopyFrom overwrites s with other; lengths must match.
func (s Float32Store) CopyFrom(other Store) {
	if o, ok := other.(Float32Store); ok {
		copy(s, o)
		return
	}
	for i := range s {
		s[i] = float32(other.At(i))
	}
}

// Clone returns an independent copy.
func (s Float32Store) Clone() Store {
	c := make(Float32Store, len(s))
	copy(c, s)
	return c
}

// Float64s returns the elements widened to float64.
func (s Float32Store) Float64s() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}
