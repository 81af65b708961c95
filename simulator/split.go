package simulator

import (
	"fmt"
	"math"

	"github.com/sarchlab/bpsim/predictor"
	"github.com/sarchlab/bpsim/trace"
)

// SplitPoint returns the byte offset that divides data into a training
// prefix and a test suffix. split is clamped to [0, 1] and the boundary is
// rounded down to a whole record.
func SplitPoint(data []byte, split float64) int {
	split = predictor.ClampSplit(split)
	records := trace.NumRecords(data)

	n := int(math.Floor(split * float64(records)))
	if n > records {
		n = records
	}

	return n * trace.RecordSize
}

// Train feeds every conditional record of data to trainer, in order.
func Train(trainer predictor.Trainer, data []byte) error {
	var trainErr error

	err := trace.Iterate(data, func(r trace.Record) {
		if !r.Conditional || trainErr != nil {
			return
		}
		trainErr = trainer.AddExample(r.PC, r.Target, r.Taken)
	})
	if err != nil {
		return fmt.Errorf("failed to train on trace: %w", err)
	}

	return trainErr
}

// SplitSimulate trains on the first split fraction of data, finalizes the
// trainer and simulates the resulting strategy on the rest. With split = 1
// the test segment is empty and the returned Results are undefined
// (zero predictions).
func SplitSimulate(
	trainer predictor.Trainer,
	split float64,
	data []byte,
	opts ...Option,
) (Results, error) {
	if err := trace.CheckAligned(data); err != nil {
		return Results{}, fmt.Errorf("failed to split trace: %w", err)
	}

	at := SplitPoint(data, split)

	if err := Train(trainer, data[:at]); err != nil {
		return Results{}, err
	}

	strategy, err := trainer.Finalize()
	if err != nil {
		return Results{}, fmt.Errorf("failed to finalize trainer: %w", err)
	}

	return New(strategy, opts...).Simulate(data[at:])
}
