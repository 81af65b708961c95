package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sarchlab/bpsim/simulator"
	"github.com/sarchlab/bpsim/sweep"
)

// WriteSummary writes the one-line result of a single simulation.
func WriteSummary(w io.Writer, res simulator.Results) error {
	_, err := fmt.Fprintf(w, "Total Lines: %d, Hits: %d, Percentage: %s\n",
		res.TotalPredictions, res.TotalHits, FormatValue(res.Percentage()))
	if err != nil {
		return err
	}

	if res.TargetLookups > 0 {
		_, err = fmt.Fprintf(w, "Target Lookups: %d, Target Hits: %d, Percentage: %s\n",
			res.TargetLookups, res.TargetHits, FormatValue(res.TargetAccuracy()*100))
	}

	return err
}

// WriteTable writes table as aligned, human-readable columns.
func WriteTable(w io.Writer, table sweep.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(tw, strings.Join(table.Header(), "\t"))
	for _, row := range table.Rows {
		_, _ = fmt.Fprintln(tw, strings.Join(rowRecord(nil, row), "\t"))
	}

	return tw.Flush()
}
