//go:build bpsim_unchecked

package trace

// Validating reports whether Decode checks every field of every record.
// This build was produced with -tags bpsim_unchecked; see validate.go.
const Validating = false
