// Package flyweight canonicalizes value arrays so that structurally equal
// arrays share one instance.
//
// Large networks repeat the same conditional distribution at many parent
// combinations, and decomposition produces many identical deterministic
// rows. Interning them through a Store collapses the duplicates:
//
//	s := flyweight.New()
//	a := s.Intern([]float64{0.1, 0.9})
//	b := s.Intern([]float64{0.1, 0.9}) // same backing array as a
//
// Arrays returned by Intern are shared by every caller that interned an equal
// array and live as long as the Store. They MUST NOT be written to.
//
// Keys are the xxhash digest of the IEEE-754 bits; collisions are resolved by
// element-wise comparison (0 and -0 are equal, NaN equals a NaN with the same
// bits).
//
// Concurrency:
//   - A Store is safe for concurrent use; lookups take a read lock and only a
//     miss upgrades to the write lock.
//   - Interned arrays are read-only, so readers never synchronize on them.
//
// Complexity:
//   - Intern, Contains: O(n) for hashing plus O(n) per colliding candidate.
package flyweight
