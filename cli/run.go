package cli

import (
	"context"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/bpsim/predictor"
	"github.com/sarchlab/bpsim/simulator"
	"github.com/sarchlab/bpsim/sweep"
)

// Run describes one simulation requested from the command line.
type Run struct {
	Config predictor.Config

	// TargetBuffer, if set, also scores target prediction with a branch
	// target buffer of this geometry.
	TargetBuffer *predictor.TargetBufferConfig

	// Hooks are attached to every simulator the run creates.
	Hooks []sim.Hook

	// Workers is the pool size of the gsharebest search.
	Workers int
}

// Execute simulates data. A gsharebest run first searches every history
// width in parallel and then replays the winning width, so hooks and the
// target buffer see exactly one pass.
func (r Run) Execute(ctx context.Context, data []byte) (simulator.Results, error) {
	if err := r.Config.Validate(); err != nil {
		return simulator.Results{}, err
	}
	config := r.Config.Normalize()

	if config.Kind == predictor.KindGShareBest {
		_, width, err := sweep.GShareBest(ctx, sweep.NewRunner(r.Workers), data, config.TableSize)
		if err != nil {
			return simulator.Results{}, err
		}

		config = sweep.Point{TableSize: config.TableSize, HistoryBits: width}.Config()
	}

	opts, err := r.options()
	if err != nil {
		return simulator.Results{}, err
	}

	if config.Kind == predictor.KindProfiled {
		trainer, err := predictor.NewTrainer(config)
		if err != nil {
			return simulator.Results{}, err
		}
		return simulator.SplitSimulate(trainer, config.Split, data, opts...)
	}

	strategy, err := predictor.New(config)
	if err != nil {
		return simulator.Results{}, err
	}

	return simulator.New(strategy, opts...).Simulate(data)
}

func (r Run) options() ([]simulator.Option, error) {
	var opts []simulator.Option

	if r.TargetBuffer != nil {
		btb, err := predictor.NewTargetBuffer(*r.TargetBuffer)
		if err != nil {
			return nil, err
		}
		opts = append(opts, simulator.WithTargetBuffer(btb))
	}

	if len(r.Hooks) > 0 {
		opts = append(opts, simulator.WithHooks(r.Hooks...))
	}

	return opts, nil
}
