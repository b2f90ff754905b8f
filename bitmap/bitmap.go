// Package bitmap defines the contract shared by all hierarchical bit-set
// variants, the parameters that select between them, and a registry that
// names them for benchmark drivers and cross-variant tests.
package bitmap

import (
	"errors"
	"iter"
)

// MaxUniverse is the largest universe size a bit-set can be created with.
const MaxUniverse uint64 = 1 << 32

var (
	// ErrInvalidUniverse is returned by constructors when the requested
	// universe size is zero or exceeds MaxUniverse.
	ErrInvalidUniverse = errors.New("universe size out of range")

	// ErrUnknownVariant is returned by New when no variant is registered
	// under the requested name.
	ErrUnknownVariant = errors.New("unknown variant")
)

// Bitmap is a fixed-universe set of integers with successor search.
//
// A Bitmap is created empty for a universe [0, Len()) and grows only
// through Set; there is no clear or remove. Implementations are not safe
// for concurrent use; the owner must serialize access.
//
// Bit positions at or above Len() are a precondition violation: the
// hot-path methods index storage directly and rely on Go's bounds
// checks rather than validating arguments.
type Bitmap interface {
	// Len returns the universe size the bitmap was created with.
	Len() uint64

	// Set marks bit b as a member. Idempotent. Precondition: b < Len().
	Set(b uint64)

	// Test reports whether bit b is a member. Precondition: b < Len().
	Test(b uint64) bool

	// NextSet returns the smallest member >= b. The second result is
	// false when no such member exists, including when b >= Len().
	NextSet(b uint64) (uint64, bool)

	// Release drops the backing storage. The bitmap must not be used
	// afterwards.
	Release()
}

// WordWidth selects the slot width of a pyramid variant.
type WordWidth uint8

// Supported slot widths. Wider slots mean fewer levels and faster misses
// at the cost of more memory traffic per Set.
const (
	Word64 WordWidth = iota
	Word32
	Word8
)

// String returns a string representation of the WordWidth.
func (w WordWidth) String() string {
	switch w {
	case Word64:
		return "Word64"
	case Word32:
		return "Word32"
	case Word8:
		return "Word8"
	default:
		return "Unknown"
	}
}

// LevelPolicy selects how many summary levels a pyramid allocates.
type LevelPolicy uint8

const (
	// LevelsDynamic derives the level count from the universe size,
	// stopping once a level fits in one slot. Small universes touch
	// fewer levels per operation.
	LevelsDynamic LevelPolicy = iota

	// LevelsFixed always allocates the level count needed for the full
	// 2^32 universe (6 levels at 64-bit slots).
	LevelsFixed
)

// String returns a string representation of the LevelPolicy.
func (p LevelPolicy) String() string {
	switch p {
	case LevelsDynamic:
		return "LevelsDynamic"
	case LevelsFixed:
		return "LevelsFixed"
	default:
		return "Unknown"
	}
}

// SearchStrategy selects the control flow of the successor search.
type SearchStrategy uint8

const (
	// SearchRecursive resumes one level above a fast-path miss and
	// recurses between levels. Best all-around default.
	SearchRecursive SearchStrategy = iota

	// SearchDescendFirst jumps to the topmost level after a fast-path
	// miss and descends. Fewer slots touched on extremely sparse, large
	// universes; extra levels touched at medium density.
	SearchDescendFirst

	// SearchIterative is the recursive strategy expressed as a single
	// loop with explicit level backtracking.
	SearchIterative
)

// String returns a string representation of the SearchStrategy.
func (s SearchStrategy) String() string {
	switch s {
	case SearchRecursive:
		return "SearchRecursive"
	case SearchDescendFirst:
		return "SearchDescendFirst"
	case SearchIterative:
		return "SearchIterative"
	default:
		return "Unknown"
	}
}

// All returns an iterator over the members of b in ascending order.
//
// It is sugar over the NextSet walk every variant supports and allocates
// nothing beyond the iterator itself.
func All(b Bitmap) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
			if !yield(i) {
				return
			}
		}
	}
}
