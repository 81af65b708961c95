package sweep

import (
	"math"
	"sort"
)

// Summary describes the spread of accuracies over a swept parameter.
type Summary struct {
	Best   float64
	Median float64
	Worst  float64
}

// Summarize returns the maximum, median and minimum of values. The median
// is the element at len/2 after sorting ascending, so for an even count it
// is the upper of the two middle values. Ties need no breaking because only
// values are reported. An empty input yields NaN everywhere.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{Best: math.NaN(), Median: math.NaN(), Worst: math.NaN()}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Summary{
		Best:   sorted[len(sorted)-1],
		Median: sorted[len(sorted)/2],
		Worst:  sorted[0],
	}
}
