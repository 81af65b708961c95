package simulator_test

import (
	"errors"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/bpsim/predictor"
	"github.com/sarchlab/bpsim/simulator"
	"github.com/sarchlab/bpsim/trace"
)

type recordingHook struct {
	positions []*sim.HookPos
	items     []any
}

func (h *recordingHook) Func(ctx sim.HookCtx) {
	h.positions = append(h.positions, ctx.Pos)
	h.items = append(h.items, ctx.Item)
}

var _ = Describe("Simulator", func() {
	It("should score three taken conditional branches with always taken", func() {
		data := build(
			conditional(0x1000, true),
			conditional(0x1004, true),
			conditional(0x1008, true),
		)

		res, err := simulator.Simulate(predictor.NewAlwaysTaken(), data)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.TotalPredictions).To(Equal(uint64(3)))
		Expect(res.TotalHits).To(Equal(uint64(3)))
		Expect(res.Accuracy()).To(Equal(1.0))
	})

	It("should match the taken fraction for always taken", func() {
		rng := rand.New(rand.NewSource(7))
		var records []trace.Record
		taken, total := 0, 0
		for i := 0; i < 2000; i++ {
			pc := uint64(rng.Intn(4096)) * 4
			if rng.Intn(5) == 0 {
				records = append(records, unconditional(pc))
				continue
			}
			t := rng.Intn(3) != 0
			if t {
				taken++
			}
			total++
			records = append(records, conditional(pc, t))
		}

		res, err := simulator.Simulate(predictor.NewAlwaysTaken(), build(records...))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.TotalPredictions).To(Equal(uint64(total)))
		Expect(res.Accuracy()).To(Equal(float64(taken) / float64(total)))
	})

	It("should report NaN accuracy when there are no conditional branches", func() {
		res, err := simulator.Simulate(
			predictor.NewAlwaysTaken(),
			build(unconditional(0x10), unconditional(0x20)),
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Defined()).To(BeFalse())
		Expect(math.IsNaN(res.Accuracy())).To(BeTrue())
	})

	It("should fail on a misaligned trace", func() {
		data := build(conditional(0x10, true))
		_, err := simulator.Simulate(predictor.NewAlwaysTaken(), data[:40])
		Expect(errors.Is(err, trace.ErrMisaligned)).To(BeTrue())
	})

	if trace.Validating {
		It("should fail on a malformed record", func() {
			data := build(conditional(0x10, true), conditional(0x14, false))
			data[trace.RecordSize+2] = '#'

			_, err := simulator.Simulate(predictor.NewAlwaysTaken(), data)
			Expect(errors.Is(err, trace.ErrMalformedRecord)).To(BeTrue())
		})
	}

	Context("with a mock strategy", func() {
		var (
			mockCtrl *gomock.Controller
			strategy *MockStrategy
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			strategy = NewMockStrategy(mockCtrl)
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		It("should only consult the strategy for conditional branches, in order", func() {
			data := build(
				conditional(0x100, true),
				unconditional(0x200),
				conditional(0x300, false),
				unconditional(0x400),
				conditional(0x500, true),
			)

			gomock.InOrder(
				strategy.EXPECT().PredictAndUpdate(uint64(0x100), uint64(0x140), true).Return(true),
				strategy.EXPECT().PredictAndUpdate(uint64(0x300), uint64(0x340), false).Return(true),
				strategy.EXPECT().PredictAndUpdate(uint64(0x500), uint64(0x540), true).Return(true),
			)

			res, err := simulator.New(strategy).Simulate(data)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.TotalPredictions).To(Equal(uint64(3)))
			Expect(res.TotalHits).To(Equal(uint64(2)))
			Expect(res.Mispredictions()).To(Equal(uint64(1)))
		})
	})

	It("should invoke hooks around a pass", func() {
		hook := &recordingHook{}
		s := simulator.New(predictor.NewAlwaysTaken())
		s.AcceptHook(hook)

		data := build(conditional(0x10, true), conditional(0x10, false))
		_, err := s.Simulate(data)
		Expect(err).NotTo(HaveOccurred())

		Expect(hook.positions).To(Equal([]*sim.HookPos{
			simulator.HookPosSimulationStart,
			simulator.HookPosSimulationEnd,
		}))
		Expect(hook.items[1]).To(Equal(simulator.Results{
			TotalPredictions: 2,
			TotalHits:        1,
		}))
	})

	It("should attach hooks given as options", func() {
		hook := &recordingHook{}
		s := simulator.New(predictor.NewAlwaysTaken(), simulator.WithHooks(hook))

		_, err := s.Simulate(build(conditional(0x10, true)))
		Expect(err).NotTo(HaveOccurred())

		Expect(hook.positions).To(HaveLen(2))
	})

	It("should score targets when a target buffer is attached", func() {
		btb, err := predictor.NewTargetBuffer(predictor.DefaultTargetBufferConfig())
		Expect(err).NotTo(HaveOccurred())

		data := build(
			conditional(0x10, true),
			conditional(0x10, true),
			conditional(0x10, false),
			conditional(0x10, true),
		)

		res, err := simulator.New(
			predictor.NewAlwaysTaken(),
			simulator.WithTargetBuffer(btb),
		).Simulate(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.TargetLookups).To(Equal(uint64(3)))
		Expect(res.TargetHits).To(Equal(uint64(2)))
	})

	It("should be deterministic", func() {
		rng := rand.New(rand.NewSource(3))
		var records []trace.Record
		for i := 0; i < 3000; i++ {
			records = append(records, conditional(uint64(rng.Intn(1<<16)), rng.Intn(2) == 0))
		}
		data := build(records...)

		run := func() simulator.Results {
			g, err := predictor.NewGShare(1024, 4, 6)
			Expect(err).NotTo(HaveOccurred())
			res, err := simulator.Simulate(g, data)
			Expect(err).NotTo(HaveOccurred())
			return res
		}

		Expect(run()).To(Equal(run()))
	})
})

var _ = Describe("Results", func() {
	It("should add element-wise", func() {
		a := simulator.Results{TotalPredictions: 4, TotalHits: 3}
		b := simulator.Results{TotalPredictions: 6, TotalHits: 1, TargetLookups: 2, TargetHits: 1}

		sum := a.Add(b)
		Expect(sum.TotalPredictions).To(Equal(uint64(10)))
		Expect(sum.Accuracy()).To(Equal(0.4))
		Expect(sum.TargetAccuracy()).To(Equal(0.5))
		Expect(math.IsNaN(a.TargetAccuracy())).To(BeTrue())
	})
})
