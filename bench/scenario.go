package bench

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/hupe1980/pyramap/testutil"
)

// DefaultSeed seeds member-set generation when no seed is given.
const DefaultSeed int64 = 4711

// targetOps keeps the total work per timing sample roughly constant
// across universe sizes.
const targetOps = 100_000_000

// Scenario describes one benchmark workload: how many members are drawn
// from how large a universe.
type Scenario struct {
	Name     string
	Universe uint64
	Count    int
}

// DefaultScenarios is the standard workload table, spanning small dense
// universes to huge sparse ones.
var DefaultScenarios = []Scenario{
	{Name: "small-sparse", Universe: 1_000, Count: 10},
	{Name: "mid-sparse", Universe: 1_000_000, Count: 100},
	{Name: "mid-mid", Universe: 1_000_000, Count: 10_000},
	{Name: "mid-dense", Universe: 1_000_000, Count: 500_000},
	{Name: "large-sparse", Universe: 10_000_000, Count: 10},
	{Name: "huge-sparse", Universe: 25_000_000, Count: 10},
}

// QuickScenarios is a reduced table for fast local runs.
var QuickScenarios = []Scenario{
	{Name: "small-sparse", Universe: 1_000, Count: 10},
	{Name: "mid-sparse", Universe: 1_000_000, Count: 100},
	{Name: "mid-mid", Universe: 1_000_000, Count: 10_000},
}

// SelectScenarios resolves names against a scenario table, preserving
// the requested order.
func SelectScenarios(table []Scenario, names []string) ([]Scenario, error) {
	selected := make([]Scenario, 0, len(names))

	for _, name := range names {
		found := false
		for _, s := range table {
			if s.Name == name {
				selected = append(selected, s)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("bench: unknown scenario %q", name)
		}
	}

	return selected, nil
}

// ScenarioNames returns the scenario names in table order.
func ScenarioNames(table []Scenario) []string {
	names := make([]string, len(table))
	for i, s := range table {
		names[i] = s.Name
	}
	return names
}

// Reps returns the inner repetition count for one timing sample.
func (s Scenario) Reps() int {
	if r := targetOps / int(s.Universe); r > 1 {
		return r
	}
	return 1
}

// Members draws the scenario's member set: Count distinct values in
// [0, Universe), sorted ascending. Deterministic for a given seed.
func (s Scenario) Members(seed int64) ([]uint64, error) {
	rng := testutil.NewRNG(scenarioSeed(s.Name, seed))

	members, err := rng.UniqueMembers(s.Universe, s.Count)
	if err != nil {
		return nil, fmt.Errorf("bench: generate %s: %w", s.Name, err)
	}

	return members, nil
}

// scenarioSeed derives a per-scenario seed, so concurrent generation is
// order-independent yet reproducible.
func scenarioSeed(name string, base int64) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return base + int64(h.Sum64()&0x7fffffff)
}

// generateBudget bounds the memory held by concurrent generation, in
// bytes. The dedupe bitmap at one bit per universe member dominates.
const generateBudget = 1 << 28

// GenerateAll draws the member sets for all scenarios in parallel and
// returns them keyed by scenario name. Concurrency is bounded by a
// weighted semaphore on universe size rather than a flat goroutine cap,
// so several small scenarios can run while one huge universe generates.
func GenerateAll(ctx context.Context, scenarios []Scenario, seed int64) (map[string][]uint64, error) {
	sem := semaphore.NewWeighted(generateBudget)

	var mu sync.Mutex
	sets := make(map[string][]uint64, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	for _, s := range scenarios {
		weight := min(int64(s.Universe/8)+1, generateBudget)

		g.Go(func() error {
			if err := sem.Acquire(ctx, weight); err != nil {
				return err
			}
			defer sem.Release(weight)

			members, err := s.Members(seed)
			if err != nil {
				return err
			}

			mu.Lock()
			sets[s.Name] = members
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return sets, nil
}
