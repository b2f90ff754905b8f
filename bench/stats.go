package bench

import (
	"math"
	"slices"
)

// Summary holds aggregate statistics over timing samples, in seconds.
type Summary struct {
	N      int
	Mean   float64
	Min    float64
	Max    float64
	Median float64
	StdDev float64
}

// Summarize computes summary statistics for a set of samples.
// An empty input yields a zero Summary.
func Summarize(samples []float64) Summary {
	n := len(samples)
	if n == 0 {
		return Summary{}
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	var sum float64
	for _, s := range sorted {
		sum += s
	}
	mean := sum / float64(n)

	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	// Sample standard deviation
	var stddev float64
	if n > 1 {
		var sq float64
		for _, s := range sorted {
			d := s - mean
			sq += d * d
		}
		stddev = math.Sqrt(sq / float64(n-1))
	}

	return Summary{
		N:      n,
		Mean:   mean,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Median: median,
		StdDev: stddev,
	}
}
