// Package pyramid implements the hierarchical "pyramid" bit-set with
// successor search.
//
// # Design Philosophy
//
// Pyramid answers "what is the smallest member >= b" over a dense universe
// of up to 2^32 identifiers without scanning zero regions. Level 0 is the
// literal bitmap; every level above summarizes the one below with one bit
// per word ("this word is non-zero"). A successor query first probes the
// level-0 word containing b (the dense-region fast path), and only on a
// miss consults coarser levels to skip whole empty regions, descending
// again where a summary bit promises content.
//
// Key properties:
//   - O(1) fast path for dense regions (one word probe, one TrailingZeros)
//   - Misses cost O(levels * word_bits) instead of O(universe)
//   - One contiguous allocation for all levels (level slices are windows
//     into a single backing array)
//   - Monotonic construction: Set only, no clear
//   - Zero allocations after construction; no I/O, no locks
//
// # Architecture
//
// Memory layout for a 1,000,000-bit universe with 64-bit slots:
//
//	┌───────────────────────────────────────────────────────────────┐
//	│  Level 0: 15625 words   bit i   = member i                    │
//	│  Level 1:   245 words   bit j   = level-0 word j is non-zero  │
//	│  Level 2:     4 words   bit j   = level-1 word j is non-zero  │
//	│  Level 3:     1 word    bit j   = level-2 word j is non-zero  │
//	└───────────────────────────────────────────────────────────────┘
//
// The search walks this shape in both directions: ascend when a masked
// slot runs out of candidates, descend when a coarse bit points at a
// non-zero word below. Each ascend strictly advances the cursor, so the
// walk terminates after at most a handful of level changes.
//
// # Variants
//
// One generic implementation covers the whole variant family:
//   - Word width: uint64 (default), uint32, or uint8 slots
//   - Level policy: dynamic (derived from the universe) or fixed (sized
//     for the 2^32 ceiling, 6 levels at 64-bit slots)
//   - Search strategy: recursive ascend-first (default), recursive
//     descend-first, or a single loop with explicit backtracking
//
// All combinations return bit-identical results; they differ only in how
// much memory they touch per operation.
//
// # When to Use
//
// Use Pyramid for:
//   - Ascending enumeration of members (free-slot scans, sweep cursors)
//   - Dense-to-medium universes where successor queries dominate
//   - Workloads that set bits once and query many times
//
// Prefer a flat bitmap when the universe is at most a few words, and a
// compressed set (e.g. Roaring) when members must be unioned, persisted,
// or the universe is far larger than 2^32.
//
// # Example Usage
//
//	p, err := pyramid.New[uint64](1_000_000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Release()
//
//	p.Set(42)
//	p.Set(50_000)
//
//	next, ok := p.NextSet(43) // 50_000, true
//
//	// Enumerate all members in ascending order:
//	for b, ok := p.NextSet(0); ok; b, ok = p.NextSet(b + 1) {
//	    process(b)
//	}
package pyramid
