package sweep_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bpsim/predictor"
	"github.com/sarchlab/bpsim/sweep"
	"github.com/sarchlab/bpsim/trace"
)

func table(values ...float64) sweep.Table {
	t := sweep.Table{
		Name:       "t",
		KeyColumns: []string{"table_size"},
		Columns:    []string{"a", "b"},
	}
	for i := 0; i+1 < len(values); i += 2 {
		t.Rows = append(t.Rows, sweep.Row{
			Key:    []int{512 << (i / 2)},
			Values: []float64{values[i], values[i+1]},
		})
	}
	return t
}

var _ = Describe("Combine", func() {
	It("should weight every cell by its trace weight", func() {
		combined := sweep.Combine(
			[]sweep.Table{table(1.0, 0.5, 0.0, 1.0), table(0.0, 1.0, 1.0, 1.0)},
			[]uint64{3, 1},
		)

		Expect(combined.Rows).To(HaveLen(2))
		Expect(combined.Rows[0].Key).To(Equal([]int{512}))
		Expect(combined.Rows[0].Values).To(Equal([]float64{0.75, 0.625}))
		Expect(combined.Rows[1].Values).To(Equal([]float64{0.25, 1.0}))
	})

	It("should return a single table unchanged", func() {
		t := table(0.9, 0.8)
		Expect(sweep.Combine([]sweep.Table{t}, []uint64{1})).To(Equal(t))
	})

	It("should be undefined with zero total weight", func() {
		combined := sweep.Combine([]sweep.Table{table(1, 1)}, []uint64{0})
		Expect(math.IsNaN(combined.Rows[0].Values[0])).To(BeTrue())
	})

	It("should not alias its inputs", func() {
		t := table(0.5, 0.5)
		combined := sweep.Combine([]sweep.Table{t}, []uint64{1})
		combined.Rows[0].Key[0] = 7
		Expect(t.Rows[0].Key[0]).To(Equal(512))
	})

	It("should panic on mismatched keys", func() {
		a := table(1, 1, 1, 1)
		b := table(1, 1, 1, 1)
		b.Rows[1].Key = []int{999}

		Expect(func() {
			sweep.Combine([]sweep.Table{a, b}, []uint64{1, 1})
		}).To(Panic())
	})

	It("should panic on mismatched columns or row counts", func() {
		a := table(1, 1)
		b := table(1, 1)
		b.Columns = []string{"a", "c"}
		Expect(func() { sweep.Combine([]sweep.Table{a, b}, []uint64{1, 1}) }).To(Panic())

		Expect(func() {
			sweep.Combine([]sweep.Table{table(1, 1), table(1, 1, 1, 1)}, []uint64{1, 1})
		}).To(Panic())
	})

	It("should panic on bad arguments", func() {
		Expect(func() { sweep.Combine(nil, nil) }).To(Panic())
		Expect(func() { sweep.Combine([]sweep.Table{table(1, 1)}, []uint64{1, 2}) }).To(Panic())
	})
})

var _ = Describe("RecordWeights", func() {
	It("should count every record", func() {
		a := randomTrace(1, 10)
		b := randomTrace(2, 25)
		Expect(sweep.RecordWeights(a, b)).To(Equal([]uint64{10, 25}))
		Expect(len(a) / trace.RecordSize).To(Equal(10))
	})
})

var _ = Describe("CombineTraces", func() {
	accuracyOf := func(_ context.Context, data []byte) (sweep.Table, error) {
		res, err := sweep.Evaluate(predictor.DefaultConfig(predictor.KindAlways), data)
		if err != nil {
			return sweep.Table{}, err
		}
		return sweep.Table{
			Name:       "always",
			KeyColumns: []string{"table_size"},
			Columns:    []string{"always"},
			Rows:       []sweep.Row{{Key: []int{0}, Values: []float64{res.Accuracy()}}},
		}, nil
	}

	It("should combine per-trace tables by record count", func() {
		traces := [][]byte{randomTrace(1, 100), randomTrace(2, 300)}

		combined, perTrace, err := sweep.CombineTraces(context.Background(), traces, accuracyOf)

		Expect(err).NotTo(HaveOccurred())
		Expect(perTrace).To(HaveLen(2))
		Expect(combined).To(Equal(sweep.Combine(perTrace, []uint64{100, 300})))
	})

	It("should fail without traces", func() {
		_, _, err := sweep.CombineTraces(context.Background(), nil, accuracyOf)
		Expect(err).To(HaveOccurred())
	})

	It("should report which trace failed", func() {
		traces := [][]byte{randomTrace(1, 10), []byte("short")}

		_, _, err := sweep.CombineTraces(context.Background(), traces, accuracyOf)

		Expect(err).To(MatchError(ContainSubstring("trace 1")))
		Expect(errors.Is(err, trace.ErrMisaligned)).To(BeTrue())
	})
})
