package predictor

import (
	"fmt"
)

// Kind names a prediction strategy.
type Kind string

// Supported strategy kinds.
const (
	KindAlways     Kind = "always"
	KindTwoBit     Kind = "twobit"
	KindGShare     Kind = "gshare"
	KindGShareBest Kind = "gsharebest"
	KindProfiled   Kind = "profiled"
)

// Kinds lists every supported kind.
func Kinds() []Kind {
	return []Kind{KindAlways, KindTwoBit, KindGShare, KindGShareBest, KindProfiled}
}

// Config selects a strategy and its numeric parameters.
type Config struct {
	// Kind selects the strategy.
	Kind Kind `json:"kind"`
	// TableSize is the number of table entries. Must be a power of 2.
	// Ignored by KindAlways. Default is 1024.
	TableSize int `json:"table_size"`
	// HistoryBits is the global history width used by KindGShare.
	// Clamped to [0, log2(TableSize)].
	HistoryBits int `json:"history_bits"`
	// AddressBits is the number of PC bits used by KindGShare. Nil means
	// log2(TableSize) - HistoryBits; zero indexes by history alone.
	// Clamped to [0, log2(TableSize)].
	AddressBits *int `json:"address_bits,omitempty"`
	// Split is the fraction of the trace used for training by
	// KindProfiled. Clamped to [0, 1]. Default is 0.5.
	Split float64 `json:"split"`
}

// DefaultConfig returns a configuration for kind with default parameters.
func DefaultConfig(kind Kind) Config {
	return Config{
		Kind:      kind,
		TableSize: 1024,
		Split:     0.5,
	}
}

// Validate checks the parts of the configuration that cannot be clamped.
func (c Config) Validate() error {
	switch c.Kind {
	case KindAlways:
		return nil
	case KindTwoBit, KindGShare, KindGShareBest, KindProfiled:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
	}

	if !IsPowerOfTwo(c.TableSize) {
		return fmt.Errorf("%w: got %d", ErrTableSize, c.TableSize)
	}

	return nil
}

// Normalize returns a copy of c with out-of-range widths and split clamped
// and a derived address width filled in.
func (c Config) Normalize() Config {
	c.Split = ClampSplit(c.Split)

	if !IsPowerOfTwo(c.TableSize) {
		return c
	}

	n := IndexBits(c.TableSize)
	c.HistoryBits = clampBits(c.HistoryBits, n)
	addressBits := n - c.HistoryBits
	if c.AddressBits != nil {
		addressBits = clampBits(*c.AddressBits, n)
	}
	c.AddressBits = Width(addressBits)

	return c
}

// Width returns a pointer to bits, for the optional width fields of Config.
func Width(bits int) *int {
	return &bits
}

// ClampSplit clamps a train/test split fraction into [0, 1]. NaN becomes 0.
func ClampSplit(split float64) float64 {
	switch {
	case split > 1:
		return 1
	case split >= 0:
		return split
	default:
		return 0
	}
}

// New creates the single strategy described by c. KindGShareBest and
// KindProfiled are not single strategies: the former is a sweep and the
// latter needs training, see NewTrainer.
func New(c Config) (Strategy, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c = c.Normalize()

	switch c.Kind {
	case KindAlways:
		return NewAlwaysTaken(), nil
	case KindTwoBit:
		return NewSaturatingCounter(c.TableSize)
	case KindGShare:
		return NewGShare(c.TableSize, c.HistoryBits, *c.AddressBits)
	default:
		return nil, fmt.Errorf("%q cannot be created as a single strategy", c.Kind)
	}
}

// NewTrainer creates the trainer for a KindProfiled configuration.
func NewTrainer(c Config) (Trainer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Kind != KindProfiled {
		return nil, fmt.Errorf("%q has no trainer", c.Kind)
	}

	return NewStaticTrainer(c.TableSize)
}
