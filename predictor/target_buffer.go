package predictor

import (
	"fmt"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// TargetBufferConfig holds configuration for the branch target buffer.
type TargetBufferConfig struct {
	// Entries is the total number of entries. Must be a power of 2.
	// Default is 256.
	Entries int
	// Associativity is the number of ways per set. Must divide Entries.
	// Default is 4.
	Associativity int
}

// DefaultTargetBufferConfig returns a default configuration.
func DefaultTargetBufferConfig() TargetBufferConfig {
	return TargetBufferConfig{
		Entries:       256,
		Associativity: 4,
	}
}

// TargetBufferStats holds statistics for the branch target buffer.
type TargetBufferStats struct {
	// Lookups is the number of target lookups.
	Lookups uint64
	// Hits is the number of lookups that found an entry for the PC.
	Hits uint64
	// Evictions is the number of valid entries replaced.
	Evictions uint64
}

// HitRate returns the lookup hit rate as a percentage.
func (s TargetBufferStats) HitRate() float64 {
	if s.Lookups == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Lookups) * 100
}

// TargetBuffer is a set-associative branch target buffer with LRU
// replacement. Tag management is delegated to an Akita cache directory with
// one-byte blocks, so every distinct PC owns its own block.
type TargetBuffer struct {
	config TargetBufferConfig

	directory *akitacache.DirectoryImpl

	// Targets, indexed by (setID * associativity + wayID).
	targets []uint64

	stats TargetBufferStats
}

// NewTargetBuffer creates a branch target buffer. Zero fields take their
// default values.
func NewTargetBuffer(config TargetBufferConfig) (*TargetBuffer, error) {
	def := DefaultTargetBufferConfig()
	if config.Entries == 0 {
		config.Entries = def.Entries
	}
	if config.Associativity == 0 {
		config.Associativity = def.Associativity
	}

	if !IsPowerOfTwo(config.Entries) {
		return nil, fmt.Errorf("target buffer: %w: got %d", ErrTableSize, config.Entries)
	}
	if config.Associativity < 0 || config.Entries%config.Associativity != 0 {
		return nil, fmt.Errorf(
			"target buffer: associativity %d does not divide %d entries",
			config.Associativity, config.Entries)
	}

	numSets := config.Entries / config.Associativity

	return &TargetBuffer{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			1,
			akitacache.NewLRUVictimFinder(),
		),
		targets: make([]uint64, config.Entries),
	}, nil
}

// Config returns the target buffer configuration.
func (b *TargetBuffer) Config() TargetBufferConfig {
	return b.config
}

// Stats returns the target buffer statistics.
func (b *TargetBuffer) Stats() TargetBufferStats {
	return b.stats
}

func (b *TargetBuffer) blockIndex(block *akitacache.Block) int {
	return block.SetID*b.config.Associativity + block.WayID
}

// Lookup returns the recorded target for pc, if any.
func (b *TargetBuffer) Lookup(pc uint64) (uint64, bool) {
	b.stats.Lookups++

	block := b.directory.Lookup(0, pc)
	if block == nil || !block.IsValid {
		return 0, false
	}

	b.stats.Hits++
	b.directory.Visit(block)

	return b.targets[b.blockIndex(block)], true
}

// Update records target as the destination of the branch at pc, replacing
// the least recently used entry of the set on a miss.
func (b *TargetBuffer) Update(pc, target uint64) {
	block := b.directory.Lookup(0, pc)
	if block == nil || !block.IsValid {
		block = b.directory.FindVictim(pc)
		if block == nil {
			return
		}

		if block.IsValid {
			b.stats.Evictions++
		}

		block.Tag = pc
		block.IsValid = true
	}

	b.targets[b.blockIndex(block)] = target
	b.directory.Visit(block)
}

// Reset invalidates every entry and clears statistics.
func (b *TargetBuffer) Reset() {
	b.directory.Reset()
	b.stats = TargetBufferStats{}
}
