package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{4, 1, 3, 2})

	assert.Equal(t, 4, s.N)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, 1, s.Min, 1e-12)
	assert.InDelta(t, 4, s.Max, 1e-12)
	assert.InDelta(t, 2.5, s.Median, 1e-12)
	assert.InDelta(t, 1.2909944487358056, s.StdDev, 1e-12)
}

func TestSummarize_OddMedian(t *testing.T) {
	s := Summarize([]float64{3, 1, 2})
	assert.InDelta(t, 2, s.Median, 1e-12)
}

func TestSummarize_Single(t *testing.T) {
	s := Summarize([]float64{7})

	assert.Equal(t, 1, s.N)
	assert.InDelta(t, 7, s.Mean, 1e-12)
	assert.InDelta(t, 7, s.Median, 1e-12)
	assert.Zero(t, s.StdDev)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSummarize_DoesNotMutate(t *testing.T) {
	samples := []float64{3, 1, 2}
	Summarize(samples)
	assert.Equal(t, []float64{3, 1, 2}, samples)
}
