package bench

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/pyramap/bitmap"
)

// Phase identifies which half of a benchmark sample is being timed.
type Phase string

const (
	// PhasePopulate times the Set loop over the member array.
	PhasePopulate Phase = "populate"
	// PhaseCheck times the NextSet verification walk.
	PhaseCheck Phase = "check"
)

// StatReps is the number of timing samples taken per phase when a stat
// directory is configured.
const StatReps = 100

// MismatchError reports a successor query disagreeing with the expected
// member set.
type MismatchError struct {
	Variant  string
	Scenario string
	From     uint64
	Got      uint64
	GotOK    bool
	Want     uint64
	WantOK   bool
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("bench: %s/%s: NextSet(%d) = %s, want %s",
		e.Variant, e.Scenario, e.From, formatHit(e.Got, e.GotOK), formatHit(e.Want, e.WantOK))
}

func formatHit(v uint64, ok bool) string {
	if !ok {
		return "none"
	}
	return strconv.FormatUint(v, 10)
}

// Result holds the timing samples for one (variant, scenario, phase).
type Result struct {
	Variant  string
	Scenario string
	Phase    Phase
	Reps     int       // inner repetitions per sample
	Samples  []float64 // seconds per sample
}

// Summary returns aggregate statistics over the result's samples.
func (r Result) Summary() Summary {
	return Summarize(r.Samples)
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	// StatDir, when non-empty, receives one file per (variant,
	// scenario, phase) holding one seconds value per line, suitable
	// as ministat input.
	StatDir string

	// OuterReps overrides the number of timing samples per phase.
	// Zero means 1, or StatReps when StatDir is set.
	OuterReps int

	// Logger receives progress and result logs.
	Logger *Logger

	// Metrics observes phase samples and mismatches.
	Metrics MetricsCollector

	// ProgressEvery rate-limits per-sample progress logging.
	// Zero logs every sample.
	ProgressEvery time.Duration
}

// DefaultRunnerOptions holds the default runner configuration.
var DefaultRunnerOptions = RunnerOptions{
	Metrics:       NoopMetricsCollector{},
	ProgressEvery: 2 * time.Second,
}

// Runner executes the populate/check measurement protocol.
type Runner struct {
	opts     RunnerOptions
	progress *rate.Limiter
}

// NewRunner creates a new Runner.
func NewRunner(optFns ...func(o *RunnerOptions)) *Runner {
	opts := DefaultRunnerOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = NoopLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = NoopMetricsCollector{}
	}

	return &Runner{
		opts:     opts,
		progress: rate.NewLimiter(rate.Every(opts.ProgressEvery), 1),
	}
}

// Smoke members and the successor each probe must find. A miss here
// means the variant is broken, not slow.
var smokeMembers = []uint64{1, 9, 62, 63, 64, 65, 88, 280}

var smokeProbes = []struct {
	from uint64
	want uint64
	ok   bool
}{
	{0, 1, true},
	{1, 1, true},
	{2, 9, true},
	{9, 9, true},
	{10, 62, true},
	{63, 63, true},
	{64, 64, true},
	{65, 65, true},
	{66, 88, true},
	{89, 280, true},
	{281, 0, false},
}

// Smoke builds the named variant over a small universe and verifies a
// hand-checked probe table. Run it before timing so a broken variant
// fails fast instead of producing garbage samples.
func (r *Runner) Smoke(name string) error {
	bm, err := bitmap.New(name, 1000)
	if err != nil {
		return err
	}
	defer bm.Release()

	for _, m := range smokeMembers {
		bm.Set(m)
	}

	for _, p := range smokeProbes {
		got, ok := bm.NextSet(p.from)
		if got != p.want || ok != p.ok {
			return &MismatchError{
				Variant:  name,
				Scenario: "smoke",
				From:     p.from,
				Got:      got,
				GotOK:    ok,
				Want:     p.want,
				WantOK:   p.ok,
			}
		}
	}

	return nil
}

// Run executes the measurement protocol for every (variant, scenario)
// pair. Pairs run strictly sequentially so samples stay comparable.
// sets maps scenario name to its sorted member array and must cover
// every scenario.
func (r *Runner) Run(ctx context.Context, variants []string, scenarios []Scenario, sets map[string][]uint64) ([]Result, error) {
	results := make([]Result, 0, 2*len(variants)*len(scenarios))

	for _, s := range scenarios {
		members, ok := sets[s.Name]
		if !ok {
			return nil, fmt.Errorf("bench: no member set for scenario %q", s.Name)
		}

		for _, name := range variants {
			populate, check, err := r.measure(ctx, name, s, members)
			if err != nil {
				return nil, err
			}

			if r.opts.StatDir != "" {
				if err := r.writeStats(populate); err != nil {
					return nil, err
				}
				if err := r.writeStats(check); err != nil {
					return nil, err
				}
			}

			results = append(results, populate, check)
		}
	}

	return results, nil
}

func (r *Runner) outerReps() int {
	if r.opts.OuterReps > 0 {
		return r.opts.OuterReps
	}
	if r.opts.StatDir != "" {
		return StatReps
	}
	return 1
}

func (r *Runner) measure(ctx context.Context, variant string, s Scenario, members []uint64) (Result, Result, error) {
	logger := r.opts.Logger.WithVariant(variant).WithScenario(s.Name)

	bm, err := bitmap.New(variant, s.Universe)
	if err != nil {
		return Result{}, Result{}, err
	}
	defer bm.Release()

	inner := s.Reps()
	outer := r.outerReps()

	populate := Result{
		Variant:  variant,
		Scenario: s.Name,
		Phase:    PhasePopulate,
		Reps:     inner,
		Samples:  make([]float64, 0, outer),
	}
	check := Result{
		Variant:  variant,
		Scenario: s.Name,
		Phase:    PhaseCheck,
		Reps:     inner,
		Samples:  make([]float64, 0, outer),
	}

	for rep := 0; rep < outer; rep++ {
		if err := ctx.Err(); err != nil {
			return Result{}, Result{}, err
		}

		start := time.Now()
		for range inner {
			for _, m := range members {
				bm.Set(m)
			}
		}
		elapsed := time.Since(start)
		populate.Samples = append(populate.Samples, elapsed.Seconds())
		r.opts.Metrics.RecordPhase(variant, s.Name, PhasePopulate, elapsed)

		start = time.Now()
		for range inner {
			last := uint64(0)
			for _, m := range members {
				got, ok := bm.NextSet(last)
				if !ok || got != m {
					r.opts.Metrics.RecordMismatch(variant, s.Name)
					return Result{}, Result{}, &MismatchError{
						Variant:  variant,
						Scenario: s.Name,
						From:     last,
						Got:      got,
						GotOK:    ok,
						Want:     m,
						WantOK:   true,
					}
				}
				last = got + 1
			}
			if got, ok := bm.NextSet(last); ok {
				r.opts.Metrics.RecordMismatch(variant, s.Name)
				return Result{}, Result{}, &MismatchError{
					Variant:  variant,
					Scenario: s.Name,
					From:     last,
					Got:      got,
					GotOK:    true,
				}
			}
		}
		elapsed = time.Since(start)
		check.Samples = append(check.Samples, elapsed.Seconds())
		r.opts.Metrics.RecordPhase(variant, s.Name, PhaseCheck, elapsed)

		if r.progress.Allow() {
			logger.InfoContext(ctx, "benchmark progress",
				"sample", rep+1,
				"of", outer,
			)
		}
	}

	logger.LogRun(ctx, populate, check)

	return populate, check, nil
}

// writeStats writes one stat file per result in ministat format.
func (r *Runner) writeStats(res Result) error {
	if err := os.MkdirAll(r.opts.StatDir, 0o755); err != nil {
		return fmt.Errorf("bench: create stat dir: %w", err)
	}

	var buf bytes.Buffer
	for _, sec := range res.Samples {
		fmt.Fprintf(&buf, "%f\n", sec)
	}

	name := fmt.Sprintf("%s-%s-%s", res.Variant, res.Scenario, res.Phase)
	if err := os.WriteFile(filepath.Join(r.opts.StatDir, name), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("bench: write stat file: %w", err)
	}

	return nil
}
