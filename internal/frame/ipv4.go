package frame

import (
	"encoding/binary"
	"net"
)

const (
	ipVersIHL  = 0
	ipTOS      = 1
	ipTotalLen = 2
	ipID       = 4
	ipFlagsFO  = 6
	ipTTL      = 8
	ipProtocol = 9
	ipChecksum = 10
	ipSrcAddr  = 12
	ipDstAddr  = 16
)

const (
	// IPv4HeaderSize is the size of an IPv4 header without options.
	IPv4HeaderSize = 20

	// IPv4AddressSize is the size of an IPv4 address.
	IPv4AddressSize = 4

	// ipv4DontFragment is the flags/fragment-offset field value for a
	// non-fragmented packet with the DF bit set.
	ipv4DontFragment = 0x4000
)

// IPv4Fields contains the fields of an IPv4 header. It is used to describe a
// header that needs to be encoded into a frame arena. Version and header
// length are fixed: this generator never emits IP options.
type IPv4Fields struct {
	TOS         uint8
	TotalLength uint16
	ID          uint16
	TTL         uint8
	Protocol    uint8
	SrcAddr     net.IP
	DstAddr     net.IP
}

// IPv4 is a typed view over an IPv4 header stored in a byte slice.
type IPv4 []byte

// TotalLength returns the "total length" field.
func (b IPv4) TotalLength() uint16 {
	return binary.BigEndian.Uint16(b[ipTotalLen:])
}

// TTL returns the "time to live" field.
func (b IPv4) TTL() uint8 {
	return b[ipTTL]
}

// Protocol returns the transport protocol field.
func (b IPv4) Protocol() uint8 {
	return b[ipProtocol]
}

// Checksum returns the header checksum field.
func (b IPv4) Checksum() uint16 {
	return binary.BigEndian.Uint16(b[ipChecksum:])
}

// SourceAddress returns the "source address" field.
func (b IPv4) SourceAddress() net.IP {
	return net.IP(b[ipSrcAddr : ipSrcAddr+IPv4AddressSize])
}

// DestinationAddress returns the "destination address" field.
func (b IPv4) DestinationAddress() net.IP {
	return net.IP(b[ipDstAddr : ipDstAddr+IPv4AddressSize])
}

// Encode encodes all the fields of the IPv4 header and leaves the checksum
// field zeroed. The checksum is computed last, over the otherwise finished
// header, via SetChecksum(^CalculateChecksum()).
func (b IPv4) Encode(i *IPv4Fields) {
	b[ipVersIHL] = (4 << 4) | (IPv4HeaderSize / 4)
	b[ipTOS] = i.TOS
	binary.BigEndian.PutUint16(b[ipTotalLen:], i.TotalLength)
	binary.BigEndian.PutUint16(b[ipID:], i.ID)
	binary.BigEndian.PutUint16(b[ipFlagsFO:], ipv4DontFragment)
	b[ipTTL] = i.TTL
	b[ipProtocol] = i.Protocol
	b.SetChecksum(0)
	copy(b[ipSrcAddr:ipSrcAddr+IPv4AddressSize], i.SrcAddr.To4())
	copy(b[ipDstAddr:ipDstAddr+IPv4AddressSize], i.DstAddr.To4())
}

// SetChecksum sets the header checksum field.
func (b IPv4) SetChecksum(v uint16) {
	binary.BigEndian.PutUint16(b[ipChecksum:], v)
}

// CalculateChecksum computes the one's-complement sum over the header as
// stored. A header carrying a correct checksum sums to 0xffff.
func (b IPv4) CalculateChecksum() uint16 {
	return Checksum(b[:IPv4HeaderSize], 0)
}
