// Package report writes simulation results and sweep tables.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/sarchlab/bpsim/sweep"
)

// FormatValue renders a metric. Undefined accuracies are written as NaN.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func rowRecord(prefix []string, row sweep.Row) []string {
	record := make([]string, 0, len(prefix)+len(row.Key)+len(row.Values))
	record = append(record, prefix...)
	for _, k := range row.Key {
		record = append(record, strconv.Itoa(k))
	}
	for _, v := range row.Values {
		record = append(record, FormatValue(v))
	}
	return record
}

// WriteCSV writes table with a header line.
func WriteCSV(w io.Writer, table sweep.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(table.Header()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range table.Rows {
		if err := cw.Write(rowRecord(nil, row)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// LabeledTable is a table that belongs to one named trace.
type LabeledTable struct {
	Label string
	Table sweep.Table
}

// WriteLabeledCSV writes several tables with identical schemas as one CSV,
// prefixing every row with a trace column.
func WriteLabeledCSV(w io.Writer, tables []LabeledTable) error {
	if len(tables) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)

	header := append([]string{"trace"}, tables[0].Table.Header()...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, lt := range tables {
		for _, row := range lt.Table.Rows {
			if err := cw.Write(rowRecord([]string{lt.Label}, row)); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
