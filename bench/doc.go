// Package bench implements the measurement harness for pyramap bitmaps.
//
// The harness runs every selected variant against a table of scenarios
// using a fixed two-phase protocol and records per-repetition timing
// samples in a format ministat can consume directly.
//
// # Protocol
//
// For each (variant, scenario) pair one bitmap is allocated, then two
// phases are timed:
//
//	populate: Set over the scenario's sorted member array
//	check:    NextSet walk verifying every member in ascending order,
//	          ending with a probe past the last member that must find
//	          no successor
//
// Both phases repeat max(1, 100_000_000/universe) times per timing
// sample, so small and large universes do comparable work per sample.
// With a stat directory configured, 100 samples are taken per phase and
// written to <statdir>/<variant>-<scenario>-<phase>, one seconds value
// per line.
//
// # Scenarios
//
// A scenario is a (universe, member count) workload. Member sets are
// drawn uniformly without replacement and sorted ascending; generation
// is deterministic per seed and can be persisted as compressed fixture
// files so large universes are generated once.
//
// # Usage
//
//	runner := bench.NewRunner(func(o *bench.RunnerOptions) {
//		o.StatDir = "stats"
//	})
//
//	for _, name := range bitmap.Names() {
//		if err := runner.Smoke(name); err != nil {
//			log.Fatal(err)
//		}
//	}
//
//	sets, _ := bench.GenerateAll(ctx, bench.DefaultScenarios, bench.DefaultSeed)
//	results, err := runner.Run(ctx, bitmap.Names(), bench.DefaultScenarios, sets)
package bench
