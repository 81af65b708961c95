package benchmarks

import (
	"math/rand"

	"github.com/sarchlab/bpsim/trace"
)

// GetWorkloads returns the standard set of synthetic workloads. Each one
// targets a specific predictor characteristic.
func GetWorkloads() []Workload {
	return []Workload{
		loopNest(),
		alternating(),
		correlated(),
		biased(),
		functionCalls(),
		randomOutcomes(),
	}
}

// GetCoreWorkloads returns a minimal set of 3 workloads for quick
// comparisons: a loop, a history pattern and a bias-only workload.
func GetCoreWorkloads() []Workload {
	return []Workload{
		loopNest(),
		alternating(),
		biased(),
	}
}

// traceBuilder appends records until it holds n of them.
type traceBuilder struct {
	n    int
	data []byte
}

func newTraceBuilder(n int) *traceBuilder {
	return &traceBuilder{n: n, data: make([]byte, 0, n*trace.RecordSize)}
}

func (b *traceBuilder) full() bool {
	return trace.NumRecords(b.data) >= b.n
}

func (b *traceBuilder) conditional(pc, target uint64, taken bool) {
	if b.full() {
		return
	}
	b.data = trace.Append(b.data, trace.Record{
		PC:          pc,
		Target:      target,
		Kind:        'J',
		Direct:      true,
		Conditional: true,
		Taken:       taken,
	})
}

func (b *traceBuilder) call(pc, target uint64) {
	if b.full() {
		return
	}
	b.data = trace.Append(b.data, trace.Record{
		PC:     pc,
		Target: target,
		Kind:   'C',
		Direct: true,
		Taken:  true,
	})
}

func (b *traceBuilder) ret(pc, target uint64) {
	if b.full() {
		return
	}
	b.data = trace.Append(b.data, trace.Record{
		PC:     pc,
		Target: target,
		Kind:   'R',
		Taken:  true,
	})
}

// 1. Loop nest - inner loop of 8 iterations inside an outer loop of 4
func loopNest() Workload {
	return Workload{
		Name:        "loop_nest",
		Description: "8-trip inner loop in a 4-trip outer loop - exits are the only surprises",
		Generate: func(_ *rand.Rand, n int) []byte {
			b := newTraceBuilder(n)
			for !b.full() {
				for outer := 0; outer < 4; outer++ {
					for inner := 0; inner < 8; inner++ {
						b.conditional(0x400120, 0x400100, inner != 7)
					}
					b.conditional(0x400140, 0x4000f0, outer != 3)
				}
			}
			return b.data
		},
	}
}

// 2. Alternating - one branch flipping every execution
func alternating() Workload {
	return Workload{
		Name:        "alternating",
		Description: "single branch alternating taken/not taken - needs history",
		Generate: func(_ *rand.Rand, n int) []byte {
			b := newTraceBuilder(n)
			for i := 0; !b.full(); i++ {
				b.conditional(0x400200, 0x400240, i%2 == 0)
			}
			return b.data
		},
	}
}

// 3. Correlated - second branch repeats the outcome of the first
func correlated() Workload {
	return Workload{
		Name:        "correlated",
		Description: "random branch followed by a branch with the same outcome",
		Generate: func(rng *rand.Rand, n int) []byte {
			b := newTraceBuilder(n)
			for !b.full() {
				taken := rng.Intn(2) == 0
				b.conditional(0x400300, 0x400310, taken)
				b.conditional(0x400304, 0x400320, taken)
			}
			return b.data
		},
	}
}

// 4. Biased - many independent branches, each strongly biased one way
func biased() Workload {
	return Workload{
		Name:        "biased",
		Description: "32 branches, each 90% taken or 90% not taken",
		Generate: func(rng *rand.Rand, n int) []byte {
			const branches = 32
			b := newTraceBuilder(n)
			for !b.full() {
				i := rng.Intn(branches)
				pc := 0x400400 + uint64(i)*4
				likely := i%2 == 0
				b.conditional(pc, pc+0x40, (rng.Intn(10) != 0) == likely)
			}
			return b.data
		},
	}
}

// 5. Function calls - unconditional calls and returns around a conditional
func functionCalls() Workload {
	return Workload{
		Name:        "function_calls",
		Description: "calls to 4 functions with an early-exit test - only the test is scored",
		Generate: func(rng *rand.Rand, n int) []byte {
			b := newTraceBuilder(n)
			for !b.full() {
				f := uint64(rng.Intn(4))
				entry := 0x401000 + f*0x100
				site := 0x400500 + f*8

				b.call(site, entry)
				b.conditional(entry+0x10, entry+0x40, f == 3)
				b.ret(entry+0x44, site+4)
			}
			return b.data
		},
	}
}

// 6. Random - fair coin flips, no strategy can beat 50%
func randomOutcomes() Workload {
	return Workload{
		Name:        "random",
		Description: "8 branches with uniformly random outcomes - lower bound",
		Generate: func(rng *rand.Rand, n int) []byte {
			b := newTraceBuilder(n)
			for !b.full() {
				pc := 0x400600 + uint64(rng.Intn(8))*4
				b.conditional(pc, pc+0x20, rng.Intn(2) == 0)
			}
			return b.data
		},
	}
}
