// Package pyramap provides hierarchical pyramid bitmaps for Go.
//
// A pyramid bitmap is a bit-set over a dense universe of up to 2^32
// identifiers with O(1) membership test and fast successor queries
// ("smallest member >= b"). Summary levels stacked over the literal
// bitmap let a query skip empty regions at coarse granularity, so
// successor search stays fast even on huge, sparse universes.
//
// # Quick Start
//
//	bm, err := pyramap.New(1_000_000)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer bm.Release()
//
//	bm.Set(42)
//	bm.Set(99_999)
//
//	next, ok := bm.NextSet(43) // 99_999, true
//
// Variants tuned for different set shapes are selected with options or
// by registry name:
//
//	bm, _ := pyramap.New(n, pyramap.WithSearchStrategy(pyramap.SearchDescendFirst))
//	bm, _ := pyramap.NewVariant("p8", n)
//
// # Iteration
//
//	for member := range pyramap.All(bm) {
//		fmt.Println(member)
//	}
//
// # Choosing a Variant
//
//   - p64 (default): 64-bit slots, level count sized to the universe.
//   - p64-fixed: always allocates the six levels a 2^32 universe needs,
//     making the layout independent of universe size.
//   - p64-naive: descend-first search; fewer probes on huge sparse sets,
//     more at medium density.
//   - p64-iter: the default search expressed as a loop, no recursion.
//   - p32, p8: narrower slots, more levels.
//   - naive, scan: flat reference implementations without summaries.
//   - roaring, bitset: third-party baselines behind the same contract.
//
// Every variant satisfies the same five-operation contract and is
// interchangeable in consistency tests and benchmarks; see the bench
// package for the measurement harness.
package pyramap
