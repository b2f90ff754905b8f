package benchmark_test

import (
	"slices"
	"testing"

	"github.com/hupe1980/pyramap"
	"github.com/hupe1980/pyramap/testutil"
)

// ============================================================================
// Benchmark Configuration
// ============================================================================

// Standard workloads used across benchmarks for consistency.
const (
	universeSmall = 1_000      // Single summary level at 64-bit slots
	universeMid   = 1_000_000  // Four levels at 64-bit slots
	universeHuge  = 25_000_000 // Deep climbs on sparse sets

	countSparse = 10
	countMid    = 10_000
	countDense  = 500_000
)

// Seed for deterministic benchmarks - enables reproducible comparisons.
const benchSeed = 42

// pyramidVariants are the hierarchical implementations under test.
var pyramidVariants = []string{"p64", "p64-fixed", "p64-naive", "p64-iter", "p32", "p8"}

// referenceVariants are the flat and third-party baselines.
var referenceVariants = []string{"naive", "scan", "bitset", "roaring"}

// benchVariants is every implementation the comparison sweeps cover.
var benchVariants = slices.Concat(pyramidVariants, referenceVariants)

// ============================================================================
// Benchmark Helpers
// ============================================================================

// buildBitmap constructs a registered variant, failing the benchmark on
// error.
func buildBitmap(b *testing.B, name string, universe uint64) pyramap.Bitmap {
	b.Helper()

	bm, err := pyramap.NewVariant(name, universe)
	if err != nil {
		b.Fatalf("failed to build %s: %v", name, err)
	}
	return bm
}

// loadMembers draws a deterministic member set for a workload.
func loadMembers(b *testing.B, universe uint64, count int) []uint64 {
	b.Helper()

	rng := testutil.NewRNG(benchSeed)
	members, err := rng.UniqueMembers(universe, count)
	if err != nil {
		b.Fatalf("failed to draw members: %v", err)
	}
	return members
}

// makeProbes pre-generates query positions outside timed regions.
func makeProbes(universe uint64, n int) []uint64 {
	rng := testutil.NewRNG(benchSeed + 1) // Different seed from data
	probes := make([]uint64, n)
	for i := range probes {
		probes[i] = rng.Uint64n(universe)
	}
	return probes
}

// populate sets every member.
func populate(bm pyramap.Bitmap, members []uint64) {
	for _, m := range members {
		bm.Set(m)
	}
}

// checkWalk visits every member in ascending order, verifying each
// successor against the expected set.
func checkWalk(b *testing.B, bm pyramap.Bitmap, members []uint64) {
	b.Helper()

	last := uint64(0)
	for _, m := range members {
		got, ok := bm.NextSet(last)
		if !ok || got != m {
			b.Fatalf("NextSet(%d) = (%d, %v), want (%d, true)", last, got, ok, m)
		}
		last = got + 1
	}
	if got, ok := bm.NextSet(last); ok {
		b.Fatalf("NextSet(%d) = (%d, true), want none", last, got)
	}
}
