package sweep

import (
	"github.com/sarchlab/bpsim/predictor"
)

// MaxTableExponent bounds table sizes to 2^30 entries.
const MaxTableExponent = 30

// Grid enumerates power-of-two table sizes 2^MinExponent ... 2^MaxExponent.
type Grid struct {
	MinExponent int
	MaxExponent int
}

// DefaultGrid sweeps 512 to 65536 entries.
func DefaultGrid() Grid {
	return Grid{MinExponent: 9, MaxExponent: 16}
}

// TableSizes returns the table sizes in ascending order. Exponents are
// clamped to [0, MaxTableExponent].
func (g Grid) TableSizes() []int {
	var sizes []int
	for e := max(g.MinExponent, 0); e <= min(g.MaxExponent, MaxTableExponent); e++ {
		sizes = append(sizes, 1<<e)
	}
	return sizes
}

// Point is one coordinate of a GShare sweep.
type Point struct {
	TableSize   int
	HistoryBits int
}

// Config returns the GShare configuration for p, with the default address
// width.
func (p Point) Config() predictor.Config {
	return predictor.Config{
		Kind:        predictor.KindGShare,
		TableSize:   p.TableSize,
		HistoryBits: p.HistoryBits,
		AddressBits: predictor.Width(predictor.DefaultAddressBits(p.TableSize, p.HistoryBits)),
	}
}

// HistoryWidths returns the history widths swept for size: 0 through
// log2(size), inclusive.
func HistoryWidths(size int) []int {
	n := predictor.IndexBits(size)
	widths := make([]int, n+1)
	for i := range widths {
		widths[i] = i
	}
	return widths
}

// Points returns every (table size, history width) pair, ordered by table
// size and then history width.
func (g Grid) Points() []Point {
	var points []Point
	for _, size := range g.TableSizes() {
		for _, h := range HistoryWidths(size) {
			points = append(points, Point{TableSize: size, HistoryBits: h})
		}
	}
	return points
}

// HistoryRangeTasks returns the number of tasks HistoryRange runs on g.
func HistoryRangeTasks(g Grid) int {
	return len(g.Points())
}

// AllPredictorsTasks returns the number of tasks AllPredictors runs on g.
func AllPredictorsTasks(g Grid) int {
	return 1 + 2*len(g.TableSizes()) + len(g.Points())
}
