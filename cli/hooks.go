package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/bpsim/simulator"
	"github.com/sarchlab/bpsim/trace"
)

// VerboseHook prints a line when a simulation pass starts and ends.
type VerboseHook struct {
	W io.Writer

	start time.Time
}

// NewVerboseHook creates a VerboseHook writing to w.
func NewVerboseHook(w io.Writer) *VerboseHook {
	return &VerboseHook{W: w}
}

// Func implements sim.Hook.
func (h *VerboseHook) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case simulator.HookPosSimulationStart:
		h.start = time.Now()
		data, _ := ctx.Item.([]byte)
		fmt.Fprintf(h.W, "Simulating %d records\n", trace.NumRecords(data))

	case simulator.HookPosSimulationEnd:
		res, _ := ctx.Item.(simulator.Results)
		fmt.Fprintf(h.W, "Pass finished in %v: %d predictions, %d mispredictions\n",
			time.Since(h.start).Round(time.Millisecond),
			res.TotalPredictions, res.Mispredictions())
	}
}
