package trace

import (
	"encoding/binary"
	"encoding/hex"
)

const hexDigits = "0123456789abcdef"

// nibble maps an ASCII byte to its hex value. Non-hex bytes map to 0 and are
// only reachable in unchecked builds.
var nibble = func() (t [256]byte) {
	for i := byte(0); i < 10; i++ {
		t['0'+i] = i
	}
	for i := byte(0); i < 6; i++ {
		t['a'+i] = 10 + i
		t['A'+i] = 10 + i
	}
	return t
}()

// decodeAddress decodes 16 hex characters as a big-endian 64-bit value.
func decodeAddress(src []byte) (uint64, error) {
	var raw [8]byte
	if _, err := hex.Decode(raw[:], src[:addressLength]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(raw[:]), nil
}

func decodeAddressUnchecked(src []byte) uint64 {
	_ = src[addressLength-1]

	var v uint64
	for i := 0; i < addressLength; i++ {
		v = v<<4 | uint64(nibble[src[i]])
	}
	return v
}

func encodeAddress(dst []byte, v uint64) {
	_ = dst[addressLength-1]

	for i := addressLength - 1; i >= 0; i-- {
		dst[i] = hexDigits[v&0xf]
		v >>= 4
	}
}
