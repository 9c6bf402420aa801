// SPDX-License-Identifier: MIT

// Package factor provides flattened multi-dimensional probability tables
// over discrete variables and the table-driven arithmetic used by the
// inference engines.
//
// A Factor spans an ordered list of dimension ids (variable ids) with matching
// cardinalities. Values live in a row-major flat Store where the first listed
// dimension varies slowest:
//
//	dims  = [a, b]          cards = [2, 3]
//	index = a*3 + b         len   = 6
//
// Storage is abstracted behind Store so the same algorithms run with
// float64 (Float64Store) or float32 (Float32Store) backing, selected once via
// WithPrecision.
//
// Combining two factors requires aligning their indices. Project computes,
// once, the table that maps every flat index of a large factor onto the flat
// index of a smaller factor whose dims are a subset; SumPrepared,
// MultiplyPrepared and DividePrepared then run as plain loops over that
// table. DivisionCache and ModuloCache make the table construction cheap by
// avoiding integer division while flat indices are visited in ascending order.
//
// Sharing: a Factor may adopt an interned (canonical) value array through
// Share. Shared arrays are never written; the first mutation copies them
// into a private Store.
//
// Complexity: element access is O(1); Project is O(len(big)·|dims(small)|);
// prepared operations are O(len(big)).
package factor
