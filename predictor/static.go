package predictor

// StaticTrainer profiles a trace prefix: every index keeps a signed count of
// taken minus not-taken outcomes.
type StaticTrainer struct {
	counts []int64
	mask   uint64
}

// NewStaticTrainer creates a trainer with size counters.
func NewStaticTrainer(size int) (*StaticTrainer, error) {
	if err := checkTableSize(size); err != nil {
		return nil, err
	}

	return &StaticTrainer{
		counts: make([]int64, size),
		mask:   uint64(size - 1),
	}, nil
}

// AddExample records one outcome for pc. Callers feed conditional branches
// only.
func (t *StaticTrainer) AddExample(pc, _ uint64, taken bool) error {
	if t.counts == nil {
		return ErrTrainerFinalized
	}

	if taken {
		t.counts[pc&t.mask]++
	} else {
		t.counts[pc&t.mask]--
	}

	return nil
}

// ToPredictor thresholds every counter (count >= 0 predicts taken) and
// returns the resulting read-only predictor. The trainer cannot be used
// afterward.
func (t *StaticTrainer) ToPredictor() (*TrainedStatic, error) {
	if t.counts == nil {
		return nil, ErrTrainerFinalized
	}

	table := make([]bool, len(t.counts))
	for i, c := range t.counts {
		table[i] = c >= 0
	}

	t.counts = nil

	return &TrainedStatic{table: table, mask: t.mask}, nil
}

// Finalize implements Trainer.
func (t *StaticTrainer) Finalize() (Strategy, error) {
	p, err := t.ToPredictor()
	if err != nil {
		return nil, err
	}
	return p, nil
}

// TrainedStatic predicts from a fixed table decided during training.
type TrainedStatic struct {
	table []bool
	mask  uint64
}

// Size returns the number of table entries.
func (p *TrainedStatic) Size() int {
	return len(p.table)
}

// Predict returns the trained direction for pc.
func (p *TrainedStatic) Predict(pc uint64) bool {
	return p.table[pc&p.mask]
}

// PredictAndUpdate returns the trained direction. The outcome is ignored.
func (p *TrainedStatic) PredictAndUpdate(pc, _ uint64, _ bool) bool {
	return p.table[pc&p.mask]
}
