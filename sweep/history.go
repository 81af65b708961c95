package sweep

import (
	"context"
)

// HistoryRangeTable names tables produced by HistoryRange.
const HistoryRangeTable = "gshare_history_range"

// HistoryRange evaluates GShare at every grid point and returns a table
// keyed by (table_size, history_bits) with a single accuracy column.
func HistoryRange(
	ctx context.Context,
	r *Runner,
	data []byte,
	grid Grid,
) (Table, error) {
	points := grid.Points()

	results, err := Run(ctx, r, len(points), func(i int) (float64, error) {
		res, err := Evaluate(points[i].Config(), data)
		if err != nil {
			return 0, err
		}
		return res.Accuracy(), nil
	})
	if err != nil {
		return Table{}, err
	}

	table := Table{
		Name:       HistoryRangeTable,
		KeyColumns: []string{"table_size", "history_length"},
		Columns:    []string{"accuracy"},
		Rows:       make([]Row, len(points)),
	}

	for i, p := range points {
		table.Rows[i] = Row{
			Key:    []int{p.TableSize, p.HistoryBits},
			Values: []float64{results[i]},
		}
	}

	return table, nil
}
