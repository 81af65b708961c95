// Package predictor provides the branch direction prediction strategies used
// by the simulator, the trainer for statically profiled prediction, and a
// branch target buffer.
package predictor

import (
	"errors"
	"math/bits"
)

// Strategy predicts the direction of a conditional branch and then learns
// from the actual outcome.
//
// PredictAndUpdate returns the prediction made before the outcome was taken
// into account. It must be called at most once per branch, in trace order,
// by a single owner.
type Strategy interface {
	PredictAndUpdate(pc, target uint64, taken bool) bool
}

// Trainer accumulates examples and turns them into a Strategy. Finalize
// consumes the trainer: any later call reports ErrTrainerFinalized.
type Trainer interface {
	AddExample(pc, target uint64, taken bool) error
	Finalize() (Strategy, error)
}

var (
	// ErrTableSize is reported for table sizes that are not a power of two.
	ErrTableSize = errors.New("table size must be a non-zero power of two")

	// ErrTrainerFinalized is reported when a trainer is used after it was
	// converted into a predictor.
	ErrTrainerFinalized = errors.New("trainer has already been finalized")

	// ErrUnknownKind is reported for an unrecognized strategy kind.
	ErrUnknownKind = errors.New("unknown predictor kind")
)

// IsPowerOfTwo reports whether n is a non-zero power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// IndexBits returns log2(size) for a power-of-two table size.
func IndexBits(size int) int {
	return bits.TrailingZeros(uint(size))
}

func checkTableSize(size int) error {
	if !IsPowerOfTwo(size) {
		return ErrTableSize
	}
	return nil
}
