package testutil

import (
	"fmt"
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/pyramap/flat"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Uint64n returns a pseudo-random number in [0,n). n must fit in an
// int64, which every valid universe size does.
func (r *RNG) Uint64n(n uint64) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint64(r.rand.Int63n(int64(n)))
}

// UniqueMembers draws count distinct values in [0, universe) and returns
// them sorted ascending.
//
// Duplicate draws are rejected through a flat bitmap, so the sequence of
// values consumed from the generator is reproducible for a given seed.
// Locks once per call.
func (r *RNG) UniqueMembers(universe uint64, count int) ([]uint64, error) {
	if count < 0 || uint64(count) > universe {
		return nil, fmt.Errorf("testutil: cannot draw %d distinct members from universe %d", count, universe)
	}

	dedupe, err := flat.NewNaive(universe)
	if err != nil {
		return nil, err
	}
	defer dedupe.Release()

	r.mu.Lock()
	defer r.mu.Unlock()

	members := make([]uint64, count)
	for i := range count {
		var x uint64
		for {
			x = uint64(r.rand.Int63n(int64(universe)))
			if !dedupe.Test(x) {
				break
			}
		}
		dedupe.Set(x)
		members[i] = x
	}

	slices.Sort(members)
	return members, nil
}
