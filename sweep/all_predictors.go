package sweep

import (
	"context"

	"github.com/sarchlab/bpsim/predictor"
)

// AllPredictorsTable names tables produced by AllPredictors.
const AllPredictorsTable = "all_predictors"

// AllPredictorsColumns are the metric columns of an AllPredictors table.
var AllPredictorsColumns = []string{
	"always",
	"twobit",
	"gshare_best",
	"gshare_median",
	"gshare_worst",
	"profiled",
}

// AllPredictors compares every strategy at every table size of the grid.
// The GShare columns summarize the sweep over all history widths for the
// table size. The profiled column trains on the first split fraction of the
// trace and is scored on the remainder only.
func AllPredictors(
	ctx context.Context,
	r *Runner,
	data []byte,
	grid Grid,
	split float64,
) (Table, error) {
	sizes := grid.TableSizes()

	// Job layout: [always] then, per size, [twobit, profiled, gshare 0..n].
	jobs := []predictor.Config{predictor.DefaultConfig(predictor.KindAlways)}
	firstJob := make([]int, len(sizes))
	for s, size := range sizes {
		firstJob[s] = len(jobs)
		jobs = append(jobs,
			predictor.Config{Kind: predictor.KindTwoBit, TableSize: size},
			predictor.Config{Kind: predictor.KindProfiled, TableSize: size, Split: split},
		)
		for _, h := range HistoryWidths(size) {
			jobs = append(jobs, Point{TableSize: size, HistoryBits: h}.Config())
		}
	}

	accs, err := Run(ctx, r, len(jobs), func(i int) (float64, error) {
		res, err := Evaluate(jobs[i], data)
		if err != nil {
			return 0, err
		}
		return res.Accuracy(), nil
	})
	if err != nil {
		return Table{}, err
	}

	table := Table{
		Name:       AllPredictorsTable,
		KeyColumns: []string{"table_size"},
		Columns:    AllPredictorsColumns,
		Rows:       make([]Row, len(sizes)),
	}

	always := accs[0]
	for s, size := range sizes {
		first := firstJob[s]
		gshare := accs[first+2 : first+2+len(HistoryWidths(size))]
		summary := Summarize(gshare)

		table.Rows[s] = Row{
			Key: []int{size},
			Values: []float64{
				always,
				accs[first],
				summary.Best,
				summary.Median,
				summary.Worst,
				accs[first+1],
			},
		}
	}

	return table, nil
}
