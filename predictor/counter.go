package predictor

// Counter states. Prediction is taken in the two upper states.
const (
	StronglyNotTaken uint8 = iota
	WeaklyNotTaken
	WeaklyTaken
	StronglyTaken
)

// counterTransitions is indexed by state and holds
// {prediction, next state if not taken, next state if taken}.
var counterTransitions = [4][3]uint8{
	{0, StronglyNotTaken, WeaklyNotTaken},
	{0, StronglyNotTaken, WeaklyTaken},
	{1, WeaklyNotTaken, StronglyTaken},
	{1, WeaklyTaken, StronglyTaken},
}

// CounterTransition returns the prediction made in state and the state that
// follows the given outcome.
func CounterTransition(state uint8, taken bool) (prediction bool, next uint8) {
	t := counterTransitions[state&3]
	return t[0] == 1, t[1+b2u(taken)]
}

// SaturatingCounter is a table of 2-bit counters indexed by the low bits of
// the program counter (the classic bimodal predictor).
type SaturatingCounter struct {
	states []uint8
	mask   uint64
}

// NewSaturatingCounter creates a counter table with size entries, all in the
// strongly not-taken state. size must be a power of two.
func NewSaturatingCounter(size int) (*SaturatingCounter, error) {
	if err := checkTableSize(size); err != nil {
		return nil, err
	}

	return &SaturatingCounter{
		states: make([]uint8, size),
		mask:   uint64(size - 1),
	}, nil
}

// Size returns the number of counters.
func (c *SaturatingCounter) Size() int {
	return len(c.states)
}

// State returns the counter state selected by index.
func (c *SaturatingCounter) State(index uint64) uint8 {
	return c.states[index&c.mask]
}

// PredictAndUpdate predicts from the counter selected by pc and moves that
// counter toward the actual outcome.
func (c *SaturatingCounter) PredictAndUpdate(pc, _ uint64, taken bool) bool {
	idx := pc & c.mask
	t := &counterTransitions[c.states[idx]]
	c.states[idx] = t[1+b2u(taken)]
	return t[0] == 1
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
