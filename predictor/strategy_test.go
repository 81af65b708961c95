package predictor_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bpsim/predictor"
)

var _ = Describe("AlwaysTaken", func() {
	It("should predict taken regardless of outcome", func() {
		p := predictor.NewAlwaysTaken()
		Expect(p.PredictAndUpdate(0x1000, 0x2000, false)).To(BeTrue())
		Expect(p.PredictAndUpdate(0x1000, 0x2000, false)).To(BeTrue())
		Expect(p.PredictAndUpdate(0x1004, 0, true)).To(BeTrue())
	})
})

var _ = Describe("SaturatingCounter", func() {
	DescribeTable("transition table",
		func(state uint8, taken bool, wantPrediction bool, wantNext uint8) {
			prediction, next := predictor.CounterTransition(state, taken)
			Expect(prediction).To(Equal(wantPrediction))
			Expect(next).To(Equal(wantNext))
		},
		Entry("0, not taken", uint8(0), false, false, uint8(0)),
		Entry("0, taken", uint8(0), true, false, uint8(1)),
		Entry("1, not taken", uint8(1), false, false, uint8(0)),
		Entry("1, taken", uint8(1), true, false, uint8(2)),
		Entry("2, not taken", uint8(2), false, true, uint8(1)),
		Entry("2, taken", uint8(2), true, true, uint8(3)),
		Entry("3, not taken", uint8(3), false, true, uint8(2)),
		Entry("3, taken", uint8(3), true, true, uint8(3)),
	)

	It("should reject table sizes that are not powers of two", func() {
		_, err := predictor.NewSaturatingCounter(1000)
		Expect(err).To(MatchError(predictor.ErrTableSize))

		_, err = predictor.NewSaturatingCounter(0)
		Expect(err).To(MatchError(predictor.ErrTableSize))
	})

	It("should start strongly not taken", func() {
		c, err := predictor.NewSaturatingCounter(16)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.State(3)).To(Equal(predictor.StronglyNotTaken))
		Expect(c.PredictAndUpdate(3, 0, true)).To(BeFalse())
		Expect(c.State(3)).To(Equal(predictor.WeaklyNotTaken))
	})

	It("should require two taken outcomes to flip from strongly not taken", func() {
		c, _ := predictor.NewSaturatingCounter(16)
		pc := uint64(0x1000)

		Expect(c.PredictAndUpdate(pc, 0, true)).To(BeFalse())
		Expect(c.PredictAndUpdate(pc, 0, true)).To(BeFalse())
		Expect(c.PredictAndUpdate(pc, 0, true)).To(BeTrue())
	})

	It("should alias PCs that share low bits", func() {
		c, _ := predictor.NewSaturatingCounter(16)

		c.PredictAndUpdate(0x3, 0, true)
		c.PredictAndUpdate(0x3, 0, true)
		Expect(c.State(0x13)).To(Equal(predictor.WeaklyTaken))
		Expect(c.State(0x4)).To(Equal(predictor.StronglyNotTaken))
	})
})

var _ = Describe("GShare", func() {
	It("should behave like a saturating counter with no history", func() {
		for _, size := range []int{16, 512, 4096} {
			g, err := predictor.NewGShare(size, 0, predictor.DefaultAddressBits(size, 0))
			Expect(err).NotTo(HaveOccurred())
			c, err := predictor.NewSaturatingCounter(size)
			Expect(err).NotTo(HaveOccurred())

			rng := rand.New(rand.NewSource(int64(size)))
			for i := 0; i < 5000; i++ {
				pc := uint64(rng.Intn(1 << 20))
				taken := rng.Intn(3) != 0
				Expect(g.PredictAndUpdate(pc, 0, taken)).
					To(Equal(c.PredictAndUpdate(pc, 0, taken)), "step %d", i)
			}
		}
	})

	It("should clamp history and address widths to the index width", func() {
		g, err := predictor.NewGShare(512, 40, 99)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.HistoryBits()).To(Equal(9))
		Expect(g.AddressBits()).To(Equal(9))

		g, err = predictor.NewGShare(512, -3, -1)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.HistoryBits()).To(Equal(0))
		Expect(g.AddressBits()).To(Equal(0))
	})

	It("should place history in the top index bits", func() {
		g, _ := predictor.NewGShare(16, 2, 2)

		g.PredictAndUpdate(0, 0, true)
		g.PredictAndUpdate(0, 0, true)
		// history = 0b11, shifted to bits 2..3
		Expect(g.Index(0x1)).To(Equal(uint64(0b1101)))
		Expect(g.Index(0x7)).To(Equal(uint64(0b1111)))
	})

	It("should learn an alternating pattern that a bimodal table cannot", func() {
		g, _ := predictor.NewGShare(4, 1, 1)
		c, _ := predictor.NewSaturatingCounter(4)

		taken := true
		for i := 0; i < 10; i++ {
			g.PredictAndUpdate(0, 0, taken)
			c.PredictAndUpdate(0, 0, taken)
			taken = !taken
		}

		gshareHits, bimodalHits := 0, 0
		for i := 0; i < 20; i++ {
			if g.PredictAndUpdate(0, 0, taken) == taken {
				gshareHits++
			}
			if c.PredictAndUpdate(0, 0, taken) == taken {
				bimodalHits++
			}
			taken = !taken
		}

		Expect(gshareHits).To(Equal(20))
		Expect(bimodalHits).To(BeNumerically("<", 20))
	})

	It("should reject table sizes that are not powers of two", func() {
		_, err := predictor.NewGShare(100, 2, 2)
		Expect(err).To(MatchError(predictor.ErrTableSize))
	})
})
