package flyweight_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/bayes/flyweight"
)

func TestIntern_EqualArraysShareInstance(t *testing.T) {
	s := flyweight.New()
	a := s.Intern([]float64{0.1, 0.9})
	b := s.Intern([]float64{0.1, 0.9})
	assert.True(t, flyweight.Same(a, b))
	assert.Equal(t, 1, s.Len())

	c := s.Intern([]float64{0.9, 0.1})
	assert.False(t, flyweight.Same(a, c))
	assert.Equal(t, 2, s.Len())
}

func TestIntern_CopiesInput(t *testing.T) {
	s := flyweight.New()
	in := []float64{0.5, 0.5}
	c := s.Intern(in)
	in[0] = 42
	assert.Equal(t, []float64{0.5, 0.5}, c, "caller's slice must not alias the canonical array")
	assert.True(t, s.Contains([]float64{0.5, 0.5}))
	assert.False(t, s.Contains(in))
}

func TestIntern_SignedZeroAndNaN(t *testing.T) {
	s := flyweight.New()
	a := s.Intern([]float64{0, 1})
	b := s.Intern([]float64{math.Copysign(0, -1), 1})
	assert.True(t, flyweight.Same(a, b))

	n1 := s.Intern([]float64{math.NaN()})
	n2 := s.Intern([]float64{math.NaN()})
	assert.True(t, flyweight.Same(n1, n2))
}

func TestIntern_DifferentLengths(t *testing.T) {
	s := flyweight.New()
	a := s.Intern([]float64{1})
	b := s.Intern([]float64{1, 1})
	assert.False(t, flyweight.Same(a, b))
	assert.True(t, flyweight.Same(s.Intern(nil), []float64{}))
}

func TestIntern_Concurrent(t *testing.T) {
	s := flyweight.New()
	var wg sync.WaitGroup
	results := make([][]float64, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Intern([]float64{0.25, 0.75})
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.True(t, flyweight.Same(results[0], r))
	}
	assert.Equal(t, 1, s.Len())
}

func TestDefault_Singleton(t *testing.T) {
	assert.Same(t, flyweight.Default(), flyweight.Default())
}
