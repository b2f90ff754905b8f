package bench

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting harness metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordGenerate is called after each member-set generation.
	// members is the number of members drawn, err is nil if successful.
	RecordGenerate(scenario string, members int, duration time.Duration, err error)

	// RecordPhase is called after each timed sample.
	// duration is the wall-clock time of all inner repetitions.
	RecordPhase(variant, scenario string, phase Phase, duration time.Duration)

	// RecordMismatch is called when a check phase finds a wrong successor.
	RecordMismatch(variant, scenario string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGenerate(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordPhase(string, string, Phase, time.Duration) {}
func (NoopMetricsCollector) RecordMismatch(string, string)                    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GenerateCount      atomic.Int64
	GenerateErrors     atomic.Int64
	GenerateMembers    atomic.Int64
	PopulateSamples    atomic.Int64
	PopulateTotalNanos atomic.Int64
	CheckSamples       atomic.Int64
	CheckTotalNanos    atomic.Int64
	Mismatches         atomic.Int64
}

// RecordGenerate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGenerate(scenario string, members int, duration time.Duration, err error) {
	b.GenerateCount.Add(1)
	b.GenerateMembers.Add(int64(members))
	if err != nil {
		b.GenerateErrors.Add(1)
	}
}

// RecordPhase implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPhase(variant, scenario string, phase Phase, duration time.Duration) {
	switch phase {
	case PhasePopulate:
		b.PopulateSamples.Add(1)
		b.PopulateTotalNanos.Add(duration.Nanoseconds())
	case PhaseCheck:
		b.CheckSamples.Add(1)
		b.CheckTotalNanos.Add(duration.Nanoseconds())
	}
}

// RecordMismatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMismatch(variant, scenario string) {
	b.Mismatches.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GenerateCount:    b.GenerateCount.Load(),
		GenerateErrors:   b.GenerateErrors.Load(),
		GenerateMembers:  b.GenerateMembers.Load(),
		PopulateSamples:  b.PopulateSamples.Load(),
		PopulateAvgNanos: avgNanos(b.PopulateTotalNanos.Load(), b.PopulateSamples.Load()),
		CheckSamples:     b.CheckSamples.Load(),
		CheckAvgNanos:    avgNanos(b.CheckTotalNanos.Load(), b.CheckSamples.Load()),
		Mismatches:       b.Mismatches.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GenerateCount    int64
	GenerateErrors   int64
	GenerateMembers  int64
	PopulateSamples  int64
	PopulateAvgNanos int64
	CheckSamples     int64
	CheckAvgNanos    int64
	Mismatches       int64
}
