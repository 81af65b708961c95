package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sarchlab/akita/v4/monitoring"

	"github.com/sarchlab/bpsim/cli"
	"github.com/sarchlab/bpsim/loader"
	"github.com/sarchlab/bpsim/report"
	"github.com/sarchlab/bpsim/sweep"
)

const (
	analysisAllPredictors = "all-predictors"
	analysisHistoryRange  = "gshare-history-range"
)

// combinedLabel labels the combined table in the result database.
const combinedLabel = "combined"

type analyser struct {
	config   *sweep.Config
	verbose  bool
	validate bool
	dbPath   string

	out io.Writer
	log io.Writer
}

func (a *analyser) logf(format string, args ...any) {
	if a.verbose {
		fmt.Fprintf(a.log, format, args...)
	}
}

func (a *analyser) analysis(name string) (sweep.Analysis, error) {
	grid := a.config.Grid()

	var tasks int
	var run func(ctx context.Context, r *sweep.Runner, data []byte) (sweep.Table, error)

	switch name {
	case analysisAllPredictors:
		tasks = sweep.AllPredictorsTasks(grid)
		run = func(ctx context.Context, r *sweep.Runner, data []byte) (sweep.Table, error) {
			return sweep.AllPredictors(ctx, r, data, grid, a.config.Split)
		}
	case analysisHistoryRange:
		tasks = sweep.HistoryRangeTasks(grid)
		run = func(ctx context.Context, r *sweep.Runner, data []byte) (sweep.Table, error) {
			return sweep.HistoryRange(ctx, r, data, grid)
		}
	default:
		return nil, fmt.Errorf("unknown analysis %q", name)
	}

	return func(ctx context.Context, data []byte) (sweep.Table, error) {
		r := sweep.NewRunner(a.config.Workers)

		var bar *monitoring.ProgressBar
		if a.verbose {
			bar = sweep.NewProgressBar(name, uint64(tasks))
			r.WithProgress(bar)
		}

		table, err := run(ctx, r, data)

		if bar != nil {
			a.logf("%s: %d/%d tasks on %d workers in %v\n",
				bar.Name, bar.Finished, bar.Total, r.Workers(),
				time.Since(bar.StartTime).Round(time.Millisecond))
		}

		return table, err
	}, nil
}

func (a *analyser) single(ctx context.Context, path, name string) error {
	analysis, err := a.analysis(name)
	if err != nil {
		return err
	}

	t, err := loader.Load(path, loader.Options{Validate: a.validate})
	if err != nil {
		return err
	}
	defer func() { _ = t.Close() }()

	a.logf("Loaded: %s (%d records)\n", t.Path, t.Records())

	table, err := analysis(ctx, t.Data)
	if err != nil {
		return err
	}

	if err := a.record([]report.LabeledTable{{Label: t.Name(), Table: table}}); err != nil {
		return err
	}

	a.reportResources()

	return report.WriteCSV(a.out, table)
}

func (a *analyser) traces(ctx context.Context, dir, name string, perTrace bool) error {
	analysis, err := a.analysis(name)
	if err != nil {
		return err
	}

	traces, err := loader.LoadDir(dir, loader.Options{Validate: a.validate})
	if err != nil {
		return err
	}
	defer func() { _ = loader.CloseAll(traces) }()

	data := make([][]byte, len(traces))
	for i, t := range traces {
		data[i] = t.Data
		a.logf("Loaded: %s (%d records)\n", t.Path, t.Records())
	}

	combined, tables, err := sweep.CombineTraces(ctx, data, analysis)
	if err != nil {
		return err
	}

	labeled := make([]report.LabeledTable, len(tables))
	for i, t := range traces {
		labeled[i] = report.LabeledTable{Label: t.Name(), Table: tables[i]}
	}

	toRecord := append(labeled, report.LabeledTable{Label: combinedLabel, Table: combined})
	if err := a.record(toRecord); err != nil {
		return err
	}

	a.reportResources()

	if perTrace {
		return report.WriteLabeledCSV(a.out, labeled)
	}
	return report.WriteCSV(a.out, combined)
}

func (a *analyser) record(tables []report.LabeledTable) error {
	if a.dbPath == "" {
		return nil
	}

	recorder, err := report.NewSQLiteRecorder(a.dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = recorder.Close() }()

	for _, t := range tables {
		if err := recorder.Record(t.Label, t.Table); err != nil {
			return err
		}
	}

	a.logf("Recorded %d table(s) to %s\n", len(tables), recorder.Filename())

	return nil
}

func (a *analyser) reportResources() {
	if a.verbose {
		cli.ReportResources(a.log)
	}
}
