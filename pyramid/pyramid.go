package pyramid

import (
	"fmt"
	"math/bits"
	"unsafe"

	"github.com/hupe1980/pyramap/bitmap"
)

// Compile-time checks to ensure every instantiation satisfies the contract.
var (
	_ bitmap.Bitmap = (*Pyramid[uint8])(nil)
	_ bitmap.Bitmap = (*Pyramid[uint32])(nil)
	_ bitmap.Bitmap = (*Pyramid[uint64])(nil)
)

// maxLevels is the deepest pyramid any configuration produces: 11 levels
// cover a 2^32 universe with 8-bit slots.
const maxLevels = 11

// Word is the set of supported slot widths.
type Word interface {
	~uint8 | ~uint32 | ~uint64
}

// Options contains configuration options for a pyramid.
type Options struct {
	// Levels selects between a level count derived from the universe
	// size and one sized for the full 2^32 universe.
	Levels bitmap.LevelPolicy

	// Search selects the successor-search control flow.
	Search bitmap.SearchStrategy
}

// DefaultOptions contains the default configuration options: dynamic
// level count and recursive ascend-first search.
var DefaultOptions = Options{
	Levels: bitmap.LevelsDynamic,
	Search: bitmap.SearchRecursive,
}

// Pyramid is a hierarchical bit-set over [0, universe).
//
// levels[0] is the literal bitmap; bit j of levels[k] is set iff word j
// of levels[k-1] is non-zero. All levels are windows into one backing
// array, finest first.
type Pyramid[W Word] struct {
	universe uint64
	shift    uint   // log2 of bits per slot
	mask     uint64 // bits per slot - 1
	store    []W    // single backing allocation for all levels
	levels   [][]W
	search   bitmap.SearchStrategy
}

// New creates an empty pyramid sized for the given universe.
//
// The whole structure is one zeroed allocation; construction is the only
// point a pyramid allocates or fails.
func New[W Word](universe uint64, optFns ...func(o *Options)) (*Pyramid[W], error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if universe == 0 || universe > bitmap.MaxUniverse {
		return nil, fmt.Errorf("pyramid: universe %d: %w", universe, bitmap.ErrInvalidUniverse)
	}

	var w W
	wordBits := uint(unsafe.Sizeof(w)) * 8
	shift := uint(bits.TrailingZeros(wordBits))

	counts := levelCounts(universe, shift, opts.Levels)
	total := 0
	for _, n := range counts {
		total += n
	}

	store := make([]W, total)
	levels := make([][]W, len(counts))
	off := 0
	for k, n := range counts {
		levels[k] = store[off : off+n : off+n]
		off += n
	}

	return &Pyramid[W]{
		universe: universe,
		shift:    shift,
		mask:     uint64(wordBits) - 1,
		store:    store,
		levels:   levels,
		search:   opts.Search,
	}, nil
}

// levelCounts returns the slot count per level, finest first.
func levelCounts(universe uint64, shift uint, policy bitmap.LevelPolicy) []int {
	counts := make([]int, 0, maxLevels)

	slots := ceilShift(universe, shift)
	counts = append(counts, int(slots))

	if policy == bitmap.LevelsFixed {
		fixed := int((32 + shift - 1) / shift)
		for len(counts) < fixed {
			slots = ceilShift(slots, shift)
			counts = append(counts, int(slots))
		}
		return counts
	}

	for slots > 1 {
		slots = ceilShift(slots, shift)
		counts = append(counts, int(slots))
	}
	return counts
}

// ceilShift is ceil(n / 2^shift).
func ceilShift(n uint64, shift uint) uint64 {
	return (n + (1 << shift) - 1) >> shift
}

// Len returns the universe size the pyramid was created with.
func (p *Pyramid[W]) Len() uint64 {
	return p.universe
}

// Set marks bit b as a member, updating the summary bit on every level.
// Idempotent. Precondition: b < Len().
func (p *Pyramid[W]) Set(b uint64) {
	p.levels[0][b>>p.shift] |= W(1) << (b & p.mask)
	for k := 1; k < len(p.levels); k++ {
		b >>= p.shift
		p.levels[k][b>>p.shift] |= W(1) << (b & p.mask)
	}
}

// Test reports whether bit b is a member. Reads level 0 only.
// Precondition: b < Len().
func (p *Pyramid[W]) Test(b uint64) bool {
	return p.levels[0][b>>p.shift]&(W(1)<<(b&p.mask)) != 0
}

// Release drops the backing storage. The pyramid must not be used
// afterwards; Set, Test and NextSet panic on released storage.
func (p *Pyramid[W]) Release() {
	p.store = nil
	p.levels = nil
}
