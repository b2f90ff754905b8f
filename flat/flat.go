// Package flat provides the linear reference bit-sets the pyramid
// variants are measured against: Naive walks bit by bit, Scan skips
// whole zero words. Both share the pyramid contract and serve as
// correctness baselines in cross-variant tests.
package flat

import (
	"fmt"
	"math/bits"

	"github.com/hupe1980/pyramap/bitmap"
)

// Compile-time checks to ensure both variants satisfy the contract.
var (
	_ bitmap.Bitmap = (*Naive)(nil)
	_ bitmap.Bitmap = (*Scan)(nil)
)

const (
	wordShift = 6
	wordMask  = 63
)

// bits64 is the shared single-level storage: one uint64 word array.
type bits64 struct {
	universe uint64
	words    []uint64
}

func newBits64(universe uint64) (bits64, error) {
	if universe == 0 || universe > bitmap.MaxUniverse {
		return bits64{}, fmt.Errorf("flat: universe %d: %w", universe, bitmap.ErrInvalidUniverse)
	}
	return bits64{
		universe: universe,
		words:    make([]uint64, (universe+wordMask)>>wordShift),
	}, nil
}

// Len returns the universe size the bitmap was created with.
func (f *bits64) Len() uint64 {
	return f.universe
}

// Set marks bit b as a member. Idempotent. Precondition: b < Len().
func (f *bits64) Set(b uint64) {
	f.words[b>>wordShift] |= 1 << (b & wordMask)
}

// Test reports whether bit b is a member. Precondition: b < Len().
func (f *bits64) Test(b uint64) bool {
	return f.words[b>>wordShift]&(1<<(b&wordMask)) != 0
}

// Release drops the backing storage.
func (f *bits64) Release() {
	f.words = nil
}

// Naive is the simplest possible reference: successor search tests one
// bit at a time. O(universe) per query; its only job is being obviously
// correct.
type Naive struct {
	bits64
}

// NewNaive creates an empty Naive bitmap sized for the given universe.
func NewNaive(universe uint64) (*Naive, error) {
	b, err := newBits64(universe)
	if err != nil {
		return nil, err
	}
	return &Naive{bits64: b}, nil
}

// NextSet returns the smallest member >= b by probing every bit in turn.
func (f *Naive) NextSet(b uint64) (uint64, bool) {
	for ; b < f.universe; b++ {
		if f.words[b>>wordShift]&(1<<(b&wordMask)) != 0 {
			return b, true
		}
	}
	return 0, false
}

// Scan is the word-skipping flat reference: successor search masks the
// first word and then skips zero words whole. O(universe/64) per query,
// with the same O(1) dense fast path the pyramid has.
type Scan struct {
	bits64
}

// NewScan creates an empty Scan bitmap sized for the given universe.
func NewScan(universe uint64) (*Scan, error) {
	b, err := newBits64(universe)
	if err != nil {
		return nil, err
	}
	return &Scan{bits64: b}, nil
}

// NextSet returns the smallest member >= b, skipping zero words.
func (f *Scan) NextSet(b uint64) (uint64, bool) {
	if b >= f.universe {
		return 0, false
	}

	i := b >> wordShift
	if w := f.words[i] >> (b & wordMask); w != 0 {
		return b + uint64(bits.TrailingZeros64(w)), true
	}

	for i++; i < uint64(len(f.words)); i++ {
		if w := f.words[i]; w != 0 {
			return i<<wordShift + uint64(bits.TrailingZeros64(w)), true
		}
	}
	return 0, false
}

func init() {
	bitmap.Register("naive", func(universe uint64) (bitmap.Bitmap, error) {
		return NewNaive(universe)
	})
	bitmap.Register("scan", func(universe uint64) (bitmap.Bitmap, error) {
		return NewScan(universe)
	})
}
