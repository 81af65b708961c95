package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/shirou/gopsutil/process"
)

// ResourceUsage is a snapshot of the process' resource consumption.
type ResourceUsage struct {
	CPUPercent float64
	RSS        uint64
}

// CurrentResourceUsage samples the running process.
func CurrentResourceUsage() (ResourceUsage, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ResourceUsage{}, fmt.Errorf("failed to inspect process: %w", err)
	}

	cpu, err := p.CPUPercent()
	if err != nil {
		return ResourceUsage{}, fmt.Errorf("failed to read CPU usage: %w", err)
	}

	mem, err := p.MemoryInfo()
	if err != nil {
		return ResourceUsage{}, fmt.Errorf("failed to read memory usage: %w", err)
	}

	return ResourceUsage{CPUPercent: cpu, RSS: mem.RSS}, nil
}

// ReportResources writes the current resource usage to w. Failures to
// sample are reported instead of returned.
func ReportResources(w io.Writer) {
	usage, err := CurrentResourceUsage()
	if err != nil {
		fmt.Fprintf(w, "Resource usage unavailable: %v\n", err)
		return
	}

	fmt.Fprintf(w, "CPU: %.1f%%, RSS: %.1f MiB\n",
		usage.CPUPercent, float64(usage.RSS)/(1<<20))
}
