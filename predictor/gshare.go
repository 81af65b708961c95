package predictor

// GShare indexes a saturating counter table with program counter bits
// combined with a global history of recent outcomes.
//
// With n = log2(size), the index is
//
//	(pc & addressMask) ^ ((history << (n - historyBits)) & historyMask)
//
// where historyMask covers the top historyBits bits of the n-bit index. The
// history therefore never spills outside the table, and with the default
// address width (n - historyBits) PC and history bits do not overlap.
type GShare struct {
	counter *SaturatingCounter

	history      uint64
	historyShift uint
	historyMask  uint64
	addressMask  uint64

	historyBits int
	addressBits int
}

// NewGShare creates a GShare predictor. historyBits and addressBits are
// clamped to [0, log2(size)].
func NewGShare(size, historyBits, addressBits int) (*GShare, error) {
	counter, err := NewSaturatingCounter(size)
	if err != nil {
		return nil, err
	}

	n := IndexBits(size)
	historyBits = clampBits(historyBits, n)
	addressBits = clampBits(addressBits, n)
	shift := uint(n - historyBits)

	return &GShare{
		counter:      counter,
		historyShift: shift,
		historyMask:  lowMask(historyBits) << shift,
		addressMask:  lowMask(addressBits),
		historyBits:  historyBits,
		addressBits:  addressBits,
	}, nil
}

// DefaultAddressBits is the address width that fills the index bits left
// over by the history.
func DefaultAddressBits(size, historyBits int) int {
	n := IndexBits(size)
	return n - clampBits(historyBits, n)
}

// HistoryBits returns the effective history width.
func (g *GShare) HistoryBits() int {
	return g.historyBits
}

// AddressBits returns the effective address width.
func (g *GShare) AddressBits() int {
	return g.addressBits
}

// Index returns the table index used for pc under the current history.
func (g *GShare) Index(pc uint64) uint64 {
	return (pc & g.addressMask) ^ ((g.history << g.historyShift) & g.historyMask)
}

// PredictAndUpdate predicts with the counter selected by Index and then
// shifts the outcome into the global history.
func (g *GShare) PredictAndUpdate(pc, target uint64, taken bool) bool {
	prediction := g.counter.PredictAndUpdate(g.Index(pc), target, taken)
	g.history = g.history<<1 | uint64(b2u(taken))
	return prediction
}

func clampBits(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}

func lowMask(n int) uint64 {
	return uint64(1)<<uint(n) - 1
}
