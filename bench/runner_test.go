package bench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pyramap/bitmap"
	"github.com/hupe1980/pyramap/flat"

	_ "github.com/hupe1980/pyramap/baseline"
	_ "github.com/hupe1980/pyramap/pyramid"
)

// The full registry, spelled out so tests stay independent of variants
// other tests may register.
var allVariants = []string{
	"naive", "scan",
	"p8", "p32", "p64", "p64-fixed", "p64-naive", "p64-iter",
	"roaring", "bitset",
}

func TestRunner_Smoke(t *testing.T) {
	r := NewRunner()

	for _, name := range allVariants {
		assert.NoError(t, r.Smoke(name), "variant %s", name)
	}
}

func TestRunner_Smoke_Unknown(t *testing.T) {
	r := NewRunner()
	assert.ErrorIs(t, r.Smoke("no-such-variant"), bitmap.ErrUnknownVariant)
}

func TestRunner_Run(t *testing.T) {
	statdir := t.TempDir()

	var metrics BasicMetricsCollector
	r := NewRunner(func(o *RunnerOptions) {
		o.StatDir = statdir
		o.OuterReps = 3
		o.Metrics = &metrics
	})

	s := QuickScenarios[0] // small-sparse
	members, err := s.Members(DefaultSeed)
	require.NoError(t, err)

	variants := []string{"p64", "scan"}
	results, err := r.Run(context.Background(), variants, []Scenario{s}, map[string][]uint64{s.Name: members})
	require.NoError(t, err)
	require.Len(t, results, 4) // 2 variants x 2 phases

	for _, res := range results {
		assert.Equal(t, s.Name, res.Scenario)
		assert.Equal(t, s.Reps(), res.Reps)
		assert.Len(t, res.Samples, 3)

		sum := res.Summary()
		assert.Equal(t, 3, sum.N)
		assert.GreaterOrEqual(t, sum.Max, sum.Min)
	}

	for _, variant := range variants {
		for _, phase := range []Phase{PhasePopulate, PhaseCheck} {
			path := filepath.Join(statdir, fmt.Sprintf("%s-%s-%s", variant, s.Name, phase))
			data, err := os.ReadFile(path)
			require.NoError(t, err, "stat file %s", path)

			lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
			require.Len(t, lines, 3, "stat file %s", path)
			for _, line := range lines {
				_, err := strconv.ParseFloat(line, 64)
				assert.NoError(t, err, "stat line %q", line)
			}
		}
	}

	stats := metrics.GetStats()
	assert.Equal(t, int64(6), stats.PopulateSamples)
	assert.Equal(t, int64(6), stats.CheckSamples)
	assert.Zero(t, stats.Mismatches)
}

func TestRunner_Run_MissingSet(t *testing.T) {
	r := NewRunner()

	s := QuickScenarios[0]
	_, err := r.Run(context.Background(), []string{"p64"}, []Scenario{s}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no member set")
}

func TestRunner_Run_UnknownVariant(t *testing.T) {
	r := NewRunner()

	s := QuickScenarios[0]
	members, err := s.Members(DefaultSeed)
	require.NoError(t, err)

	_, err = r.Run(context.Background(), []string{"no-such-variant"}, []Scenario{s}, map[string][]uint64{s.Name: members})
	assert.ErrorIs(t, err, bitmap.ErrUnknownVariant)
}

func TestRunner_Run_Canceled(t *testing.T) {
	r := NewRunner()

	s := QuickScenarios[0]
	members, err := s.Members(DefaultSeed)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Run(ctx, []string{"p64"}, []Scenario{s}, map[string][]uint64{s.Name: members})
	assert.ErrorIs(t, err, context.Canceled)
}

// silentBitmap never finds a successor, so every check walk must fail.
type silentBitmap struct {
	bitmap.Bitmap
}

func (silentBitmap) NextSet(uint64) (uint64, bool) { return 0, false }

func TestRunner_Run_Mismatch(t *testing.T) {
	bitmap.Register("silent", func(universe uint64) (bitmap.Bitmap, error) {
		inner, err := flat.NewScan(universe)
		if err != nil {
			return nil, err
		}
		return silentBitmap{Bitmap: inner}, nil
	})

	var metrics BasicMetricsCollector
	r := NewRunner(func(o *RunnerOptions) {
		o.Metrics = &metrics
	})

	s := Scenario{Name: "tiny", Universe: 1_000, Count: 5}
	members, err := s.Members(DefaultSeed)
	require.NoError(t, err)

	_, err = r.Run(context.Background(), []string{"silent"}, []Scenario{s}, map[string][]uint64{s.Name: members})

	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "silent", mismatch.Variant)
	assert.Equal(t, "tiny", mismatch.Scenario)
	assert.True(t, mismatch.WantOK)
	assert.False(t, mismatch.GotOK)

	assert.Equal(t, int64(1), metrics.GetStats().Mismatches)
}

func TestRunner_OuterReps(t *testing.T) {
	assert.Equal(t, 1, NewRunner().outerReps())

	withStats := NewRunner(func(o *RunnerOptions) { o.StatDir = "stats" })
	assert.Equal(t, StatReps, withStats.outerReps())

	explicit := NewRunner(func(o *RunnerOptions) { o.StatDir = "stats"; o.OuterReps = 5 })
	assert.Equal(t, 5, explicit.outerReps())
}

func TestMismatchError_Error(t *testing.T) {
	miss := &MismatchError{Variant: "p64", Scenario: "mid-mid", From: 41, Want: 42, WantOK: true}
	assert.Equal(t, "bench: p64/mid-mid: NextSet(41) = none, want 42", miss.Error())

	wrong := &MismatchError{Variant: "p64", Scenario: "mid-mid", From: 41, Got: 43, GotOK: true, Want: 42, WantOK: true}
	assert.Equal(t, "bench: p64/mid-mid: NextSet(41) = 43, want 42", wrong.Error())
}
