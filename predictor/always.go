package predictor

// AlwaysTaken is the static predictor that assumes every branch is taken.
type AlwaysTaken struct{}

// NewAlwaysTaken creates an AlwaysTaken predictor.
func NewAlwaysTaken() *AlwaysTaken {
	return &AlwaysTaken{}
}

// PredictAndUpdate always predicts taken.
func (AlwaysTaken) PredictAndUpdate(_, _ uint64, _ bool) bool {
	return true
}
