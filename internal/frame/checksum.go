package frame

import "encoding/binary"

// Checksum computes the one's-complement 16-bit sum over b, starting with
// initial. An odd trailing byte is padded with zero. The result is the
// folded sum; callers complement it before storing it in a header.
func Checksum(b []byte, initial uint16) uint16 {
	v := uint32(initial)

	for i := 0; i+1 < len(b); i += 2 {
		v += uint32(binary.BigEndian.Uint16(b[i : i+2]))
	}
	if len(b)%2 != 0 {
		v += uint32(b[len(b)-1]) << 8
	}

	for v > 0xffff {
		v = (v >> 16) + (v & 0xffff)
	}

	return uint16(v)
}
