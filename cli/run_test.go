package cli_test

import (
	"bytes"
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/bpsim/cli"
	"github.com/sarchlab/bpsim/predictor"
	"github.com/sarchlab/bpsim/sweep"
)

var _ = Describe("Run", func() {
	data := loopTrace(4, 50)

	It("should simulate a single strategy", func() {
		run := cli.Run{Config: predictor.DefaultConfig(predictor.KindAlways)}

		res, err := run.Execute(context.Background(), data)

		Expect(err).NotTo(HaveOccurred())
		Expect(res.TotalPredictions).To(Equal(uint64(200)))
		Expect(res.TotalHits).To(Equal(uint64(150)))
	})

	It("should match the sequential gsharebest evaluation", func() {
		config := predictor.DefaultConfig(predictor.KindGShareBest)
		config.TableSize = 16
		run := cli.Run{Config: config, Workers: 2}

		res, err := run.Execute(context.Background(), data)
		Expect(err).NotTo(HaveOccurred())

		want, err := sweep.Evaluate(config, data)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(want))
	})

	It("should score targets when a target buffer is requested", func() {
		btb := predictor.DefaultTargetBufferConfig()
		run := cli.Run{
			Config:       predictor.DefaultConfig(predictor.KindTwoBit),
			TargetBuffer: &btb,
		}

		res, err := run.Execute(context.Background(), data)

		Expect(err).NotTo(HaveOccurred())
		Expect(res.TargetLookups).To(Equal(uint64(150)))
		Expect(res.TargetHits).To(Equal(uint64(149)))
	})

	It("should run hooks on a profiled run", func() {
		var buf bytes.Buffer
		config := predictor.DefaultConfig(predictor.KindProfiled)
		run := cli.Run{
			Config: config,
			Hooks:  []sim.Hook{cli.NewVerboseHook(&buf)},
		}

		res, err := run.Execute(context.Background(), data)

		Expect(err).NotTo(HaveOccurred())
		Expect(res.TotalPredictions).To(Equal(uint64(100)))
		Expect(buf.String()).To(ContainSubstring("Simulating 100 records"))
		Expect(buf.String()).To(ContainSubstring("100 predictions"))
	})

	It("should reject an invalid configuration", func() {
		run := cli.Run{Config: predictor.Config{Kind: predictor.KindTwoBit, TableSize: 3}}

		_, err := run.Execute(context.Background(), data)

		Expect(err).To(HaveOccurred())
	})
})
