// Package sweep explores predictor configuration grids in parallel and
// combines result tables across traces.
package sweep

import (
	"context"
	"fmt"

	"github.com/sarchlab/bpsim/predictor"
	"github.com/sarchlab/bpsim/simulator"
)

// Evaluate runs the single configuration config over data. It is a pure
// function of its inputs: each call owns a fresh predictor and only reads
// data. KindProfiled is evaluated with a train/test split; KindGShareBest
// is evaluated sequentially over its history range, see GShareBest for the
// parallel form.
func Evaluate(config predictor.Config, data []byte) (simulator.Results, error) {
	if err := config.Validate(); err != nil {
		return simulator.Results{}, err
	}
	config = config.Normalize()

	switch config.Kind {
	case predictor.KindProfiled:
		trainer, err := predictor.NewTrainer(config)
		if err != nil {
			return simulator.Results{}, err
		}
		return simulator.SplitSimulate(trainer, config.Split, data)

	case predictor.KindGShareBest:
		best := simulator.Results{}
		found := false
		for _, h := range HistoryWidths(config.TableSize) {
			p := Point{TableSize: config.TableSize, HistoryBits: h}
			res, err := Evaluate(p.Config(), data)
			if err != nil {
				return simulator.Results{}, err
			}
			if !found || res.TotalHits > best.TotalHits {
				best, found = res, true
			}
		}
		return best, nil

	default:
		strategy, err := predictor.New(config)
		if err != nil {
			return simulator.Results{}, err
		}
		return simulator.Simulate(strategy, data)
	}
}

// GShareBest evaluates every history width for tableSize in parallel and
// returns the results with the most hits. Ties keep the smallest width.
func GShareBest(
	ctx context.Context,
	r *Runner,
	data []byte,
	tableSize int,
) (simulator.Results, int, error) {
	if !predictor.IsPowerOfTwo(tableSize) {
		return simulator.Results{}, 0,
			fmt.Errorf("%w: got %d", predictor.ErrTableSize, tableSize)
	}

	widths := HistoryWidths(tableSize)
	results, err := Run(ctx, r, len(widths), func(i int) (simulator.Results, error) {
		p := Point{TableSize: tableSize, HistoryBits: widths[i]}
		return Evaluate(p.Config(), data)
	})
	if err != nil {
		return simulator.Results{}, 0, err
	}

	best := 0
	for i, res := range results {
		if res.TotalHits > results[best].TotalHits {
			best = i
		}
	}

	return results[best], widths[best], nil
}
