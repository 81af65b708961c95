// Package main provides the entry point for BPSim.
// BPSim estimates how accurately branch prediction strategies would have
// predicted a recorded branch trace.
//
// For the full CLIs, use: go run ./cmd/branchsim or go run ./cmd/branchanalyse
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("BPSim - Branch Prediction Trace Simulator")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: branchsim [flags] <strategy> <trace> [arguments]")
	fmt.Println("       branchanalyse [flags] <analysis> <trace|dir>")
	fmt.Println("")
	fmt.Println("Strategies: always, twobit, gshare, gsharebest, profiled")
	fmt.Println("Analyses:   all-predictors, gshare-history-range, traces")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/branchsim --help' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/branchsim' instead.")
	}
}
