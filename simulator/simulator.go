// Package simulator drives prediction strategies across decoded traces.
package simulator

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/bpsim/predictor"
	"github.com/sarchlab/bpsim/trace"
)

// HookPosSimulationStart is invoked before a pass starts. Item is the trace
// buffer.
var HookPosSimulationStart = &sim.HookPos{Name: "SimulationStart"}

// HookPosSimulationEnd is invoked after a pass completes. Item is the
// Results of the pass.
var HookPosSimulationEnd = &sim.HookPos{Name: "SimulationEnd"}

// Simulator runs one strategy over a trace and accumulates Results. It owns
// the strategy exclusively; a Simulator must not be shared between
// goroutines.
type Simulator struct {
	*sim.HookableBase

	strategy     predictor.Strategy
	targetBuffer *predictor.TargetBuffer
	results      Results
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithTargetBuffer attaches a branch target buffer. Taken conditional
// branches are then also scored on target prediction.
func WithTargetBuffer(btb *predictor.TargetBuffer) Option {
	return func(s *Simulator) {
		s.targetBuffer = btb
	}
}

// WithHooks attaches hooks before the first pass.
func WithHooks(hooks ...sim.Hook) Option {
	return func(s *Simulator) {
		for _, h := range hooks {
			s.AcceptHook(h)
		}
	}
}

// New creates a Simulator for strategy.
func New(strategy predictor.Strategy, opts ...Option) *Simulator {
	s := &Simulator{
		HookableBase: sim.NewHookableBase(),
		strategy:     strategy,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Results returns the results accumulated so far.
func (s *Simulator) Results() Results {
	return s.results
}

// Simulate runs the strategy over every conditional record of data, in
// order, and returns the accumulated results. Non-conditional records are
// skipped entirely. Calling Simulate again continues from the current
// predictor state and keeps accumulating.
func (s *Simulator) Simulate(data []byte) (Results, error) {
	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosSimulationStart,
		Item:   data,
	})

	err := trace.Iterate(data, s.step)
	if err != nil {
		return s.results, fmt.Errorf("failed to simulate trace: %w", err)
	}

	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosSimulationEnd,
		Item:   s.results,
	})

	return s.results, nil
}

func (s *Simulator) step(r trace.Record) {
	if !r.Conditional {
		return
	}

	s.results.TotalPredictions++
	if s.strategy.PredictAndUpdate(r.PC, r.Target, r.Taken) == r.Taken {
		s.results.TotalHits++
	}

	if s.targetBuffer != nil && r.Taken {
		s.results.TargetLookups++
		if target, ok := s.targetBuffer.Lookup(r.PC); ok && target == r.Target {
			s.results.TargetHits++
		}
		s.targetBuffer.Update(r.PC, r.Target)
	}
}

// Simulate runs strategy over data with a fresh Simulator.
func Simulate(strategy predictor.Strategy, data []byte) (Results, error) {
	return New(strategy).Simulate(data)
}
