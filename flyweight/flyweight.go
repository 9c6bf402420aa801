package flyweight

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Store is a concurrent interning table for []float64 values.
type Store struct {
	mu      sync.RWMutex
	buckets map[uint64][][]float64 // digest → canonical arrays with that digest
	count   int
}

// New returns an empty Store.
func New() *Store {
	return &Store{buckets: make(map[uint64][][]float64)}
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the process-wide Store shared by networks that do not
// bring their own.
func Default() *Store {
	defaultOnce.Do(func() { defaultStore = New() })
	return defaultStore
}

// Intern returns the canonical array equal to values. If none exists yet a
// private copy of values becomes canonical, so the caller may keep using its
// own slice afterwards.
//
// Complexity: O(n) hashing plus O(n) per colliding candidate.
func (s *Store) Intern(values []float64) []float64 {
	h := digest(values)

	s.mu.RLock()
	if c := find(s.buckets[h], values); c != nil {
		s.mu.RUnlock()
		return c
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another writer may have inserted it between the two locks.
	if c := find(s.buckets[h], values); c != nil {
		return c
	}
	c := append(make([]float64, 0, len(values)), values...)
	s.buckets[h] = append(s.buckets[h], c)
	s.count++
	return c
}

// Contains reports whether an array equal to values has been interned.
func (s *Store) Contains(values []float64) bool {
	h := digest(values)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s.buckets[h], values) != nil
}

// Len returns the number of distinct arrays held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Same reports whether a and b share the same backing array, i.e. whether
// they resolved to one canonical instance.
func Same(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

// digest hashes the bit patterns of values. -0 is folded onto +0 so that
// equal arrays always hash equally.
func digest(values []float64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, v := range values {
		if v == 0 {
			v = 0
		}
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

func find(bucket [][]float64, values []float64) []float64 {
	for _, c := range bucket {
		if equal(c, values) {
			return c
		}
	}
	return nil
}

func equal(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] && math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			return false
		}
	}
	return true
}
