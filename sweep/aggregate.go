package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/sarchlab/bpsim/trace"
)

// RecordWeights returns the record count of every trace, the weights used
// by Combine. Every record counts, conditional or not, so traces with
// unusually many unconditional branches are over-weighted.
func RecordWeights(traces ...[]byte) []uint64 {
	weights := make([]uint64, len(traces))
	for i, t := range traces {
		weights[i] = uint64(trace.NumRecords(t))
	}
	return weights
}

// Combine merges per-trace tables into one weighted table: every value
// becomes sum(weight_i * value_i) / sum(weight_i).
//
// All tables must have exactly the same key columns, metric columns and row
// keys in the same order. A mismatch is a programming error and panics. An
// undefined (NaN) input value makes the combined value NaN, as does a zero
// total weight.
func Combine(tables []Table, weights []uint64) Table {
	if len(tables) == 0 {
		panic("sweep: no tables to combine")
	}
	if len(tables) != len(weights) {
		panic(fmt.Sprintf("sweep: %d tables but %d weights", len(tables), len(weights)))
	}

	first := tables[0]
	for i, t := range tables[1:] {
		if !sameShape(first, t) {
			panic(fmt.Sprintf("sweep: table %d does not match table 0", i+1))
		}
	}

	var totalWeight float64
	for _, w := range weights {
		totalWeight += float64(w)
	}

	combined := Table{
		Name:       first.Name,
		KeyColumns: slices.Clone(first.KeyColumns),
		Columns:    slices.Clone(first.Columns),
		Rows:       make([]Row, len(first.Rows)),
	}

	for r, row := range first.Rows {
		values := make([]float64, len(row.Values))
		for c := range values {
			var sum float64
			for t, table := range tables {
				sum += float64(weights[t]) * table.Rows[r].Values[c]
			}
			if totalWeight == 0 {
				values[c] = math.NaN()
			} else {
				values[c] = sum / totalWeight
			}
		}

		combined.Rows[r] = Row{Key: slices.Clone(row.Key), Values: values}
	}

	return combined
}

// Analysis computes one table from one trace.
type Analysis func(ctx context.Context, data []byte) (Table, error)

// CombineTraces runs analysis over every trace in order and combines the
// results with RecordWeights. The per-trace tables are returned as well,
// in input order.
func CombineTraces(
	ctx context.Context,
	traces [][]byte,
	analysis Analysis,
) (Table, []Table, error) {
	if len(traces) == 0 {
		return Table{}, nil, errors.New("no traces to combine")
	}

	tables := make([]Table, len(traces))
	for i, data := range traces {
		t, err := analysis(ctx, data)
		if err != nil {
			return Table{}, nil, fmt.Errorf("failed to analyse trace %d: %w", i, err)
		}
		tables[i] = t
	}

	return Combine(tables, RecordWeights(traces...)), tables, nil
}
