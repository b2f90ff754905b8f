// Package testutil provides testing utilities for pyramap.
//
// This package is intended for use in tests and the benchmark harness.
// It provides a seeded, thread-safe random source and the member-set
// generation the measurement protocol is built on.
//
// # Seeded Randomness
//
//	rng := testutil.NewRNG(seed)
//	x := rng.Uint64n(universe)  // uniform [0, universe)
//	rng.Reset()                 // replay the same sequence
//
// # Member Sets
//
//	members, err := rng.UniqueMembers(1_000_000, 10_000)
//	// sorted, distinct, reproducible per seed
package testutil
