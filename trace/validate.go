//go:build !bpsim_unchecked

package trace

// Validating reports whether Decode checks every field of every record.
//
// Default builds validate. Building with -tags bpsim_unchecked turns the
// per-record checks off for throughput: malformed bytes then decode to
// unspecified values instead of returning an error. Buffer alignment is
// checked in both modes.
const Validating = true
