package simulator

import (
	"math"
)

// Results accumulates the outcome of one simulation pass.
type Results struct {
	// TotalPredictions is the number of conditional branches predicted.
	TotalPredictions uint64
	// TotalHits is the number of correct direction predictions.
	TotalHits uint64
	// TargetLookups is the number of taken conditional branches looked up
	// in the target buffer. Zero when no target buffer is attached.
	TargetLookups uint64
	// TargetHits is the number of lookups that returned the right target.
	TargetHits uint64
}

// Defined reports whether any prediction was made. Accuracy is meaningless
// otherwise.
func (r Results) Defined() bool {
	return r.TotalPredictions > 0
}

// Accuracy returns hits / predictions, or NaN if no prediction was made.
// Callers must check Defined (or math.IsNaN) before comparing accuracies.
func (r Results) Accuracy() float64 {
	if r.TotalPredictions == 0 {
		return math.NaN()
	}
	return float64(r.TotalHits) / float64(r.TotalPredictions)
}

// Percentage returns the accuracy as a percentage (NaN if undefined).
func (r Results) Percentage() float64 {
	return r.Accuracy() * 100
}

// Mispredictions returns the number of wrong direction predictions.
func (r Results) Mispredictions() uint64 {
	return r.TotalPredictions - r.TotalHits
}

// TargetAccuracy returns the fraction of target lookups that were correct,
// or NaN if there were none.
func (r Results) TargetAccuracy() float64 {
	if r.TargetLookups == 0 {
		return math.NaN()
	}
	return float64(r.TargetHits) / float64(r.TargetLookups)
}

// Add returns the element-wise sum of r and other.
func (r Results) Add(other Results) Results {
	return Results{
		TotalPredictions: r.TotalPredictions + other.TotalPredictions,
		TotalHits:        r.TotalHits + other.TotalHits,
		TargetLookups:    r.TargetLookups + other.TargetLookups,
		TargetHits:       r.TargetHits + other.TargetHits,
	}
}
