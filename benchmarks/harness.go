// Package benchmarks provides synthetic branch workloads and a harness that
// compares prediction strategies on them.
package benchmarks

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/sarchlab/bpsim/cli"
	"github.com/sarchlab/bpsim/predictor"
	"github.com/sarchlab/bpsim/trace"
)

// WorkloadResult holds the results of one strategy on one workload.
type WorkloadResult struct {
	// Workload identifies the workload
	Workload string `json:"workload"`

	// Description explains what the workload exercises
	Description string `json:"description"`

	// Strategy names the strategy and its parameters
	Strategy string `json:"strategy"`

	// Records is the number of records in the generated trace
	Records int `json:"records"`

	// Predictions is the number of conditional branches scored
	Predictions uint64 `json:"predictions"`

	// Correct is the number of correct direction predictions
	Correct uint64 `json:"correct"`

	// Mispredictions is Predictions - Correct
	Mispredictions uint64 `json:"mispredictions"`

	// AccuracyPercent is the direction accuracy in percent
	AccuracyPercent float64 `json:"accuracy_percent"`

	// Target buffer stats (if enabled)
	TargetLookups uint64 `json:"target_lookups,omitempty"`
	TargetHits    uint64 `json:"target_hits,omitempty"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`
}

// Workload defines one synthetic trace.
type Workload struct {
	// Name identifies the workload
	Name string

	// Description explains what the workload exercises
	Description string

	// Generate returns a trace of n records. All randomness must come from
	// rng so that a seed reproduces the trace.
	Generate func(rng *rand.Rand, n int) []byte
}

// HarnessConfig configures the workload harness.
type HarnessConfig struct {
	// Strategies are run on every workload, in order
	Strategies []predictor.Config

	// Records is the trace length generated per workload
	Records int

	// Seed seeds every workload generator
	Seed int64

	// EnableTargetBuffer also scores target prediction
	EnableTargetBuffer bool

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Verbose enables detailed output
	Verbose bool
}

// DefaultStrategies returns one configuration of every strategy.
func DefaultStrategies() []predictor.Config {
	gshare := predictor.DefaultConfig(predictor.KindGShare)
	gshare.HistoryBits = 4

	return []predictor.Config{
		predictor.DefaultConfig(predictor.KindAlways),
		predictor.DefaultConfig(predictor.KindTwoBit),
		gshare,
		predictor.DefaultConfig(predictor.KindGShareBest),
		predictor.DefaultConfig(predictor.KindProfiled),
	}
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		Strategies:         DefaultStrategies(),
		Records:            100000,
		Seed:               1,
		EnableTargetBuffer: false,
		Output:             os.Stdout,
		Verbose:            false,
	}
}

// StrategyName renders a configuration the way it is typed on the
// branchsim command line.
func StrategyName(c predictor.Config) string {
	switch c.Kind {
	case predictor.KindAlways:
		return string(c.Kind)
	case predictor.KindGShare:
		return fmt.Sprintf("%s(%d,%d)", c.Kind, c.TableSize, c.HistoryBits)
	case predictor.KindProfiled:
		return fmt.Sprintf("%s(%d,%s)", c.Kind, c.TableSize,
			strconv.FormatFloat(c.Split, 'g', -1, 64))
	default:
		return fmt.Sprintf("%s(%d)", c.Kind, c.TableSize)
	}
}

// Harness runs strategies over workloads and reports results.
type Harness struct {
	config    HarnessConfig
	workloads []Workload
}

// NewHarness creates a new workload harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Harness{
		config:    config,
		workloads: []Workload{},
	}
}

// AddWorkload adds a workload to the harness.
func (h *Harness) AddWorkload(w Workload) {
	h.workloads = append(h.workloads, w)
}

// AddWorkloads adds multiple workloads to the harness.
func (h *Harness) AddWorkloads(workloads []Workload) {
	h.workloads = append(h.workloads, workloads...)
}

// RunAll runs every strategy on every workload and returns the results,
// grouped by workload.
func (h *Harness) RunAll(ctx context.Context) ([]WorkloadResult, error) {
	results := make([]WorkloadResult, 0, len(h.workloads)*len(h.config.Strategies))

	for _, w := range h.workloads {
		data := w.Generate(rand.New(rand.NewSource(h.config.Seed)), h.config.Records)

		for _, s := range h.config.Strategies {
			result, err := h.runWorkload(ctx, w, s, data)
			if err != nil {
				return nil, fmt.Errorf("failed to run %s on %s: %w",
					StrategyName(s), w.Name, err)
			}

			if h.config.Verbose {
				_, _ = fmt.Fprintf(h.config.Output, "%s / %s: %.1f%%\n",
					w.Name, result.Strategy, result.AccuracyPercent)
			}

			results = append(results, result)
		}
	}

	return results, nil
}

func (h *Harness) runWorkload(
	ctx context.Context,
	w Workload,
	s predictor.Config,
	data []byte,
) (WorkloadResult, error) {
	run := cli.Run{Config: s}
	if h.config.EnableTargetBuffer {
		btb := predictor.DefaultTargetBufferConfig()
		run.TargetBuffer = &btb
	}

	start := time.Now()
	res, err := run.Execute(ctx, data)
	wallTime := time.Since(start)
	if err != nil {
		return WorkloadResult{}, err
	}

	// Undefined accuracy is reported as 0; JSON has no NaN.
	accuracy := 0.0
	if res.Defined() {
		accuracy = res.Percentage()
	}

	return WorkloadResult{
		Workload:        w.Name,
		Description:     w.Description,
		Strategy:        StrategyName(s),
		Records:         trace.NumRecords(data),
		Predictions:     res.TotalPredictions,
		Correct:         res.TotalHits,
		Mispredictions:  res.Mispredictions(),
		AccuracyPercent: accuracy,
		TargetLookups:   res.TargetLookups,
		TargetHits:      res.TargetHits,
		WallTime:        wallTime,
	}, nil
}

// PrintResults outputs results in a human-readable format.
func (h *Harness) PrintResults(results []WorkloadResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== BPSim Workload Results ===")

	last := ""
	for _, r := range results {
		if r.Workload != last {
			_, _ = fmt.Fprintln(h.config.Output, "")
			_, _ = fmt.Fprintf(h.config.Output, "Workload: %s (%d records)\n", r.Workload, r.Records)
			_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
			last = r.Workload
		}

		_, _ = fmt.Fprintf(h.config.Output, "  %-22s %6.2f%%  (%d/%d, %d mispredicted, %v)\n",
			r.Strategy, r.AccuracyPercent, r.Correct, r.Predictions, r.Mispredictions, r.WallTime)

		if r.TargetLookups > 0 {
			_, _ = fmt.Fprintf(h.config.Output, "  %-22s target hits %d/%d\n",
				"", r.TargetHits, r.TargetLookups)
		}
	}

	_, _ = fmt.Fprintln(h.config.Output, "")
}

// PrintCSV outputs results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []WorkloadResult) error {
	w := csv.NewWriter(h.config.Output)

	header := []string{
		"workload", "strategy", "records", "predictions", "correct",
		"mispredictions", "accuracy_percent", "target_lookups", "target_hits",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range results {
		record := []string{
			r.Workload,
			r.Strategy,
			strconv.Itoa(r.Records),
			strconv.FormatUint(r.Predictions, 10),
			strconv.FormatUint(r.Correct, 10),
			strconv.FormatUint(r.Mispredictions, 10),
			strconv.FormatFloat(r.AccuracyPercent, 'f', 3, 64),
			strconv.FormatUint(r.TargetLookups, 10),
			strconv.FormatUint(r.TargetHits, 10),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// HarnessReport is the complete output format for harness results.
type HarnessReport struct {
	// Metadata about the run
	Metadata ReportMetadata `json:"metadata"`

	// Results is the list of individual results
	Results []WorkloadResult `json:"results"`

	// Summary contains aggregate statistics
	Summary ReportSummary `json:"summary"`
}

// ReportMetadata contains information about the harness run.
type ReportMetadata struct {
	// Timestamp when the harness was run
	Timestamp string `json:"timestamp"`

	// Records is the trace length per workload
	Records int `json:"records"`

	// Seed used for every workload
	Seed int64 `json:"seed"`

	// TargetBufferEnabled reports whether targets were scored
	TargetBufferEnabled bool `json:"target_buffer_enabled"`
}

// ReportSummary contains per-strategy accuracy over all workloads.
type ReportSummary struct {
	// TotalWorkloads is the number of workloads run
	TotalWorkloads int `json:"total_workloads"`

	// AccuracyPercent maps each strategy to its accuracy over all
	// workloads combined
	AccuracyPercent map[string]float64 `json:"accuracy_percent"`

	// TotalWallTime is the total wall clock time of all simulations
	TotalWallTime time.Duration `json:"total_wall_time_ns"`
}

// Summarize combines the results of each strategy across workloads.
func Summarize(results []WorkloadResult) ReportSummary {
	predictions := map[string]uint64{}
	correct := map[string]uint64{}
	workloads := map[string]bool{}

	var totalWallTime time.Duration
	for _, r := range results {
		predictions[r.Strategy] += r.Predictions
		correct[r.Strategy] += r.Correct
		workloads[r.Workload] = true
		totalWallTime += r.WallTime
	}

	accuracy := make(map[string]float64, len(predictions))
	for s, p := range predictions {
		if p > 0 {
			accuracy[s] = float64(correct[s]) / float64(p) * 100
		}
	}

	return ReportSummary{
		TotalWorkloads:  len(workloads),
		AccuracyPercent: accuracy,
		TotalWallTime:   totalWallTime,
	}
}

// PrintJSON outputs results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []WorkloadResult) error {
	report := HarnessReport{
		Metadata: ReportMetadata{
			Timestamp:           time.Now().UTC().Format(time.RFC3339),
			Records:             h.config.Records,
			Seed:                h.config.Seed,
			TargetBufferEnabled: h.config.EnableTargetBuffer,
		},
		Results: results,
		Summary: Summarize(results),
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
