// Package trace decodes and encodes fixed-width branch trace records.
//
// A trace is a sequence of 42-byte ASCII lines, one per executed branch:
//
//	0000000000401a2c 0000000000401a40 J 1 1 1\n
//	|  program counter  target address  | | | |
//	                           branch kind  | | taken
//	                                 direct   conditional
//
// Addresses are 16 hexadecimal characters. Flags are '0' or '1'. There is no
// separator between records other than the line terminator, so a valid trace
// buffer is always an exact multiple of RecordSize.
package trace

const (
	addressLength   = 16
	separatorLength = 1
	flagLength      = 1

	pcOffset          = 0
	targetOffset      = pcOffset + addressLength + separatorLength
	kindOffset        = targetOffset + addressLength + separatorLength
	directOffset      = kindOffset + flagLength + separatorLength
	conditionalOffset = directOffset + flagLength + separatorLength
	takenOffset       = conditionalOffset + flagLength + separatorLength
	terminatorOffset  = takenOffset + flagLength
)

// separatorOffsets lists the byte before every field but the first.
var separatorOffsets = [...]int{
	targetOffset - separatorLength,
	kindOffset - separatorLength,
	directOffset - separatorLength,
	conditionalOffset - separatorLength,
	takenOffset - separatorLength,
}

// RecordSize is the length in bytes of one encoded record.
const RecordSize = terminatorOffset + 1

// Separator is the byte written between fields by Encode.
const Separator = ' '

// Terminator ends every record.
const Terminator = '\n'

// Record is one decoded branch. Records are decoded on the fly and are not
// retained by the simulator.
type Record struct {
	// PC is the address of the branch instruction.
	PC uint64
	// Target is the address the branch jumps to when taken.
	Target uint64
	// Kind is the raw branch-kind character recorded by the tracer.
	Kind byte
	// Direct is true if the target is encoded in the instruction.
	Direct bool
	// Conditional is true if the branch direction depends on a condition.
	// Only conditional branches are scored.
	Conditional bool
	// Taken is the actual outcome.
	Taken bool
}

// NumRecords returns how many whole records fit in buf.
func NumRecords(buf []byte) int {
	return len(buf) / RecordSize
}

// CheckAligned reports ErrMisaligned if buf is not an exact multiple of
// RecordSize. The check is cheap and is performed in every build.
func CheckAligned(buf []byte) error {
	if len(buf)%RecordSize != 0 {
		return &FormatError{
			Offset: int64(len(buf) - len(buf)%RecordSize),
			Field:  "length",
			Err:    ErrMisaligned,
		}
	}
	return nil
}

// Decode decodes the record held in line, which must be exactly RecordSize
// bytes long. In validating builds every field is checked and a
// *FormatError is returned for malformed input. In unchecked builds only the
// length is checked.
func Decode(line []byte) (Record, error) {
	if len(line) != RecordSize {
		return Record{}, &FormatError{Field: "length", Err: ErrMisaligned}
	}

	if Validating {
		return decodeChecked(line)
	}

	return decodeUnchecked(line), nil
}

func decodeChecked(line []byte) (Record, error) {
	var r Record
	var err error

	r.PC, err = decodeAddress(line[pcOffset : pcOffset+addressLength])
	if err != nil {
		return Record{}, fieldError(pcOffset, "program_counter", err)
	}

	r.Target, err = decodeAddress(line[targetOffset : targetOffset+addressLength])
	if err != nil {
		return Record{}, fieldError(targetOffset, "target_address", err)
	}

	r.Kind = line[kindOffset]

	if r.Direct, err = decodeFlag(line[directOffset]); err != nil {
		return Record{}, fieldError(directOffset, "is_direct", err)
	}
	if r.Conditional, err = decodeFlag(line[conditionalOffset]); err != nil {
		return Record{}, fieldError(conditionalOffset, "is_conditional", err)
	}
	if r.Taken, err = decodeFlag(line[takenOffset]); err != nil {
		return Record{}, fieldError(takenOffset, "is_taken", err)
	}

	for _, off := range separatorOffsets {
		if line[off] != Separator {
			return Record{}, fieldError(off, "separator", ErrMalformedRecord)
		}
	}

	if line[terminatorOffset] != Terminator {
		return Record{}, fieldError(terminatorOffset, "terminator", ErrMalformedRecord)
	}

	return r, nil
}

func decodeUnchecked(line []byte) Record {
	return Record{
		PC:          decodeAddressUnchecked(line[pcOffset : pcOffset+addressLength]),
		Target:      decodeAddressUnchecked(line[targetOffset : targetOffset+addressLength]),
		Kind:        line[kindOffset],
		Direct:      line[directOffset] == '1',
		Conditional: line[conditionalOffset] == '1',
		Taken:       line[takenOffset] == '1',
	}
}

func decodeFlag(b byte) (bool, error) {
	switch b {
	case '0':
		return false, nil
	case '1':
		return true, nil
	default:
		return false, ErrMalformedRecord
	}
}

// Encode writes r into dst, which must be at least RecordSize bytes long.
func Encode(dst []byte, r Record) {
	_ = dst[RecordSize-1]

	encodeAddress(dst[pcOffset:pcOffset+addressLength], r.PC)
	dst[targetOffset-1] = Separator
	encodeAddress(dst[targetOffset:targetOffset+addressLength], r.Target)
	dst[kindOffset-1] = Separator
	dst[kindOffset] = r.Kind
	dst[directOffset-1] = Separator
	dst[directOffset] = encodeFlag(r.Direct)
	dst[conditionalOffset-1] = Separator
	dst[conditionalOffset] = encodeFlag(r.Conditional)
	dst[takenOffset-1] = Separator
	dst[takenOffset] = encodeFlag(r.Taken)
	dst[terminatorOffset] = Terminator
}

// Append encodes r and appends it to dst.
func Append(dst []byte, r Record) []byte {
	var line [RecordSize]byte
	Encode(line[:], r)
	return append(dst, line[:]...)
}

func encodeFlag(v bool) byte {
	if v {
		return '1'
	}
	return '0'
}

// Iterate decodes buf record by record and calls fn for each, in order. It
// stops at the first malformed record and returns its error with the offset
// adjusted to the position within buf.
func Iterate(buf []byte, fn func(Record)) error {
	if err := CheckAligned(buf); err != nil {
		return err
	}

	for offset := 0; offset < len(buf); offset += RecordSize {
		r, err := Decode(buf[offset : offset+RecordSize])
		if err != nil {
			return withOffset(err, int64(offset))
		}
		fn(r)
	}

	return nil
}

// Validate checks that buf is aligned and that every record decodes.
func Validate(buf []byte) error {
	return Iterate(buf, func(Record) {})
}
