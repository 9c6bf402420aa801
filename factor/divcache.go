// SPDX-License-Identifier: MIT

// Package factor: amortized division and modulo.
// Unflattening a flat index into per-dimension coordinates applies the same
// divisor to an ascending run of indices. The caches remember the last
// quotient together with the half-open block [blockStart, blockStart+divisor)
// in which it holds, answering repeated queries inside the block without an
// integer division. Out-of-order access costs one division, never more.

package factor

const panicDivisorInvalid = "factor: divisor must be > 0"

// DivisionCache computes x / divisor for non-negative x.
type DivisionCache struct {
	divisor    int
	quotient   int
	blockStart int
	blockEnd   int // exclusive
}

// NewDivisionCache returns a cache for the given divisor.
// Panics if divisor <= 0 (programmer error).
func NewDivisionCache(divisor int) *DivisionCache {
	if divisor <= 0 {
		panic(panicDivisorInvalid)
	}
	return &DivisionCache{divisor: divisor, blockStart: 0, blockEnd: divisor}
}

// Divisor returns the configured divisor.
func (c *DivisionCache) Divisor() int { return c.divisor }

// Apply returns x / divisor.
// Complexity: O(1); no division while x stays in the cached block.
func (c *DivisionCache) Apply(x int) int {
	if c.divisor == 1 {
		return x
	}
	if x >= c.blockStart && x < c.blockEnd {
		return c.quotient
	}
	q := x / c.divisor
	c.quotient = q
	c.blockStart = q * c.divisor
	c.blockEnd = c.blockStart + c.divisor
	return q
}

// ModuloCache computes x % divisor for non-negative x as
// x - divisor*(x/divisor), reusing a DivisionCache.
type ModuloCache struct {
	div DivisionCache
}

// NewModuloCache returns a cache for the given divisor.
// Panics if divisor <= 0 (programmer error).
func NewModuloCache(divisor int) *ModuloCache {
	return &ModuloCache{div: *NewDivisionCache(divisor)}
}

// Apply returns x % divisor.
func (c *ModuloCache) Apply(x int) int {
	if c.div.divisor == 1 {
		return 0
	}
	return x - c.div.divisor*c.div.Apply(x)
}
