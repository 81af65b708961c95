package trace

import (
	"errors"
	"fmt"
)

var (
	// ErrMisaligned is reported when a buffer is not a whole number of
	// records.
	ErrMisaligned = errors.New("trace length is not a multiple of the record size")

	// ErrMalformedRecord is reported when a field holds an invalid byte.
	ErrMalformedRecord = errors.New("malformed trace record")
)

// FormatError locates a format problem inside a trace buffer.
type FormatError struct {
	// Offset is the byte offset of the offending field, relative to the
	// start of the buffer that was being decoded.
	Offset int64
	// Field names the record field that failed to decode.
	Field string
	// Err is ErrMisaligned or ErrMalformedRecord, possibly wrapping a lower
	// level error such as a hex decoding failure.
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("trace format error at byte %d (%s): %v",
		e.Offset, e.Field, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func fieldError(offset int, field string, err error) error {
	if !errors.Is(err, ErrMalformedRecord) {
		err = fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	return &FormatError{Offset: int64(offset), Field: field, Err: err}
}

func withOffset(err error, base int64) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		return &FormatError{Offset: base + fe.Offset, Field: fe.Field, Err: fe.Err}
	}
	return err
}
