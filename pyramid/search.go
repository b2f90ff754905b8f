package pyramid

import (
	"math/bits"

	"github.com/hupe1980/pyramap/bitmap"
)

// NextSet returns the smallest member >= b, or false when none exists
// (including when b >= Len()).
//
// The level-0 word containing b is probed first; dense regions resolve
// there in O(1) without touching any summary level. Only on a miss does
// the search consult coarser levels, skipping empty regions wholesale.
func (p *Pyramid[W]) NextSet(b uint64) (uint64, bool) {
	if b >= p.universe {
		return 0, false
	}

	// Fast path: mask off bits below b within its word.
	if w := p.levels[0][b>>p.shift] >> (b & p.mask); w != 0 {
		return b + tz(w), true
	}

	// Miss. Resume from the next word boundary.
	b = (b>>p.shift + 1) << p.shift
	if len(p.levels) == 1 {
		return 0, false
	}

	switch p.search {
	case bitmap.SearchDescendFirst:
		return p.searchFrom(b, len(p.levels)-1)
	case bitmap.SearchIterative:
		return p.searchLoop(b)
	default:
		return p.searchFrom(b, 1)
	}
}

// searchFrom resumes the successor search for cursor b at the given
// level.
//
// At level k each bit covers 2^(k*shift) universe positions. A non-zero
// masked slot yields the start of the nearest candidate region; the
// search descends there (clamped to b, so bits below the cursor stay
// masked). An empty masked slot means no candidates remain under the
// current slot; the search ascends with the cursor advanced past it,
// which keeps the walk strictly moving forward.
func (p *Pyramid[W]) searchFrom(b uint64, level int) (uint64, bool) {
	if b >= p.universe {
		return 0, false
	}

	gran := uint(level) * p.shift
	idx := b >> gran
	if w := p.levels[level][idx>>p.shift] >> (idx & p.mask); w != 0 {
		m := (idx + tz(w)) << gran
		if level == 0 {
			return m, true
		}
		if m > b {
			b = m
		}
		return p.searchFrom(b, level-1)
	}

	if level == len(p.levels)-1 {
		return 0, false
	}
	return p.searchFrom((idx>>p.shift+1)<<(gran+p.shift), level+1)
}

// searchLoop is searchFrom expressed as a single loop. The loop variable
// descends on every pass; backtracking adds two so the post-decrement
// nets one level up.
func (p *Pyramid[W]) searchLoop(b uint64) (uint64, bool) {
	top := len(p.levels) - 1

	for level := 1; ; level-- {
		if b >= p.universe {
			return 0, false
		}

		gran := uint(level) * p.shift
		idx := b >> gran
		if w := p.levels[level][idx>>p.shift] >> (idx & p.mask); w != 0 {
			m := (idx + tz(w)) << gran
			if level == 0 {
				return m, true
			}
			if m > b {
				b = m
			}
			continue
		}

		if level == top {
			return 0, false
		}
		b = (idx>>p.shift + 1) << (gran + p.shift)
		level += 2
	}
}

// tz is TrailingZeros over any slot width. Zero-extension preserves the
// count for non-zero words.
func tz[W Word](w W) uint64 {
	return uint64(bits.TrailingZeros64(uint64(w)))
}
