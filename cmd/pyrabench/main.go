// Command pyrabench benchmarks the registered bitmap variants against
// the scenario table and optionally writes per-sample stat files in
// ministat format.
//
// Usage:
//
//	pyrabench -variants p64,scan -scenarios mid-dense -statdir stats
//	pyrabench -smoke-only
//	pyrabench -quick -fixtures testdata/fixtures -compression zstd
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hupe1980/pyramap/bench"
	"github.com/hupe1980/pyramap/bitmap"

	// Register every variant.
	_ "github.com/hupe1980/pyramap"
)

var (
	variantNames    = flag.String("variants", "", "comma-separated variant names (default: all registered)")
	scenarioNames   = flag.String("scenarios", "", "comma-separated scenario names (default: all)")
	statDir         = flag.String("statdir", "", "directory for per-sample stat files (ministat input)")
	reps            = flag.Int("reps", 0, "timing samples per phase (0 = 1, or 100 with -statdir)")
	seed            = flag.Int64("seed", bench.DefaultSeed, "member-set generation seed")
	fixtureDir      = flag.String("fixtures", "", "directory for member-set fixture files (default: generate in memory)")
	compressionName = flag.String("compression", "none", "fixture compression: none, lz4 or zstd")
	logLevel        = flag.String("log", "info", "log level: debug, info, warn or error")
	jsonLogs        = flag.Bool("json", false, "JSON log output")
	quick           = flag.Bool("quick", false, "run the reduced scenario table")
	smokeOnly       = flag.Bool("smoke-only", false, "verify variants against the probe table and exit")
)

func main() {
	flag.Parse()

	logger := newLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		cancel()
	}()

	if err := run(ctx, logger); err != nil {
		logger.Error("pyrabench failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *bench.Logger) error {
	table := bench.DefaultScenarios
	if *quick {
		table = bench.QuickScenarios
	}

	scenarios := table
	if *scenarioNames != "" {
		var err error
		scenarios, err = bench.SelectScenarios(table, splitList(*scenarioNames))
		if err != nil {
			return fmt.Errorf("%w (have %s)", err, strings.Join(bench.ScenarioNames(table), ", "))
		}
	}

	variants := bitmap.Names()
	if *variantNames != "" {
		variants = splitList(*variantNames)
		for _, name := range variants {
			if !bitmap.Registered(name) {
				return fmt.Errorf("unknown variant %q (have %s)", name, strings.Join(bitmap.Names(), ", "))
			}
		}
	}

	metrics := &bench.BasicMetricsCollector{}
	runner := bench.NewRunner(func(o *bench.RunnerOptions) {
		o.StatDir = *statDir
		o.OuterReps = *reps
		o.Logger = logger
		o.Metrics = metrics
	})

	var smokeErr error
	for _, name := range variants {
		err := runner.Smoke(name)
		logger.LogSmoke(ctx, name, err)
		if err != nil && smokeErr == nil {
			smokeErr = err
		}
	}
	if smokeErr != nil {
		return smokeErr
	}
	fmt.Printf("smoke ok: %s\n", strings.Join(variants, ", "))

	if *smokeOnly {
		return nil
	}

	sets, err := loadSets(ctx, logger, scenarios, metrics)
	if err != nil {
		return err
	}

	results, err := runner.Run(ctx, variants, scenarios, sets)
	if err != nil {
		return err
	}

	printResults(results)

	if *statDir != "" {
		fmt.Printf("stat files written to %s\n", *statDir)
	}

	return nil
}

// loadSets obtains the member set for every scenario, either through
// the fixture store or by parallel in-memory generation.
func loadSets(ctx context.Context, logger *bench.Logger, scenarios []bench.Scenario, metrics bench.MetricsCollector) (map[string][]uint64, error) {
	if *fixtureDir == "" {
		start := time.Now()
		sets, err := bench.GenerateAll(ctx, scenarios, *seed)
		if err != nil {
			return nil, err
		}
		logger.Info("generation completed",
			"scenarios", len(sets),
			"duration", time.Since(start),
		)
		return sets, nil
	}

	compression, err := bench.ParseCompression(*compressionName)
	if err != nil {
		return nil, err
	}
	store := bench.NewFixtureStore(*fixtureDir, compression)

	sets := make(map[string][]uint64, len(scenarios))
	for _, s := range scenarios {
		start := time.Now()
		members, err := store.LoadOrGenerate(s, *seed)
		logger.LogGenerate(ctx, s.Name, len(members), time.Since(start), err)
		metrics.RecordGenerate(s.Name, len(members), time.Since(start), err)
		if err != nil {
			return nil, err
		}
		sets[s.Name] = members
	}

	return sets, nil
}

func printResults(results []bench.Result) {
	fmt.Printf("%-12s %-14s %-10s %8s %4s %12s %12s %12s\n",
		"VARIANT", "SCENARIO", "PHASE", "REPS", "N", "MEAN(s)", "MIN(s)", "STDDEV(s)")

	for _, res := range results {
		s := res.Summary()
		fmt.Printf("%-12s %-14s %-10s %8d %4d %12.6f %12.6f %12.6f\n",
			res.Variant, res.Scenario, res.Phase, res.Reps, s.N, s.Mean, s.Min, s.StdDev)
	}
}

func newLogger() *bench.Logger {
	level := parseLevel(*logLevel)
	if *jsonLogs {
		return bench.NewJSONLogger(level)
	}
	return bench.NewTextLogger(level)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
