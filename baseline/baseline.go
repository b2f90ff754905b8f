// Package baseline adapts third-party bitmap libraries to the variant
// contract. The adapters serve as correctness oracles in cross-variant
// tests and as external baselines in comparison benchmarks; they are not
// tuned for the successor-search workload.
package baseline

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/pyramap/bitmap"
)

// Compile-time checks to ensure the adapters satisfy the contract.
var (
	_ bitmap.Bitmap = (*Roaring)(nil)
	_ bitmap.Bitmap = (*Bitset)(nil)
)

// Roaring wraps the official Roaring Bitmap implementation.
//
// Roaring compresses per 2^16 chunk and answers successor queries
// through a fresh iterator, so NextSet allocates; that cost is part of
// what the comparison benchmarks measure.
type Roaring struct {
	universe uint64
	rb       *roaring.Bitmap
}

// NewRoaring creates an empty Roaring adapter sized for the given
// universe.
func NewRoaring(universe uint64) (*Roaring, error) {
	if universe == 0 || universe > bitmap.MaxUniverse {
		return nil, fmt.Errorf("baseline: universe %d: %w", universe, bitmap.ErrInvalidUniverse)
	}
	return &Roaring{
		universe: universe,
		rb:       roaring.New(),
	}, nil
}

// Len returns the universe size the adapter was created with.
func (r *Roaring) Len() uint64 {
	return r.universe
}

// Set marks bit b as a member. Precondition: b < Len().
func (r *Roaring) Set(b uint64) {
	r.rb.Add(uint32(b))
}

// Test reports whether bit b is a member.
func (r *Roaring) Test(b uint64) bool {
	return r.rb.Contains(uint32(b))
}

// NextSet returns the smallest member >= b.
func (r *Roaring) NextSet(b uint64) (uint64, bool) {
	if b >= r.universe {
		return 0, false
	}
	it := r.rb.Iterator()
	it.AdvanceIfNeeded(uint32(b))
	if !it.HasNext() {
		return 0, false
	}
	return uint64(it.Next()), true
}

// Release drops the wrapped bitmap.
func (r *Roaring) Release() {
	r.rb = nil
}

// Bitset wraps bits-and-blooms/bitset, the de facto standard flat bitmap
// for Go. Its NextSet is a word-skipping scan comparable to the Scan
// reference, with no summary levels.
type Bitset struct {
	universe uint64
	bs       *bitset.BitSet
}

// NewBitset creates an empty Bitset adapter sized for the given
// universe.
func NewBitset(universe uint64) (*Bitset, error) {
	if universe == 0 || universe > bitmap.MaxUniverse {
		return nil, fmt.Errorf("baseline: universe %d: %w", universe, bitmap.ErrInvalidUniverse)
	}
	return &Bitset{
		universe: universe,
		bs:       bitset.New(uint(universe)),
	}, nil
}

// Len returns the universe size the adapter was created with.
func (s *Bitset) Len() uint64 {
	return s.universe
}

// Set marks bit b as a member. Precondition: b < Len().
func (s *Bitset) Set(b uint64) {
	s.bs.Set(uint(b))
}

// Test reports whether bit b is a member.
func (s *Bitset) Test(b uint64) bool {
	return s.bs.Test(uint(b))
}

// NextSet returns the smallest member >= b.
func (s *Bitset) NextSet(b uint64) (uint64, bool) {
	if b >= s.universe {
		return 0, false
	}
	n, ok := s.bs.NextSet(uint(b))
	return uint64(n), ok
}

// Release drops the wrapped bitset.
func (s *Bitset) Release() {
	s.bs = nil
}

func init() {
	bitmap.Register("roaring", func(universe uint64) (bitmap.Bitmap, error) {
		return NewRoaring(universe)
	})
	bitmap.Register("bitset", func(universe uint64) (bitmap.Bitmap, error) {
		return NewBitset(universe)
	})
}
