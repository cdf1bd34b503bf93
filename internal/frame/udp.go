package frame

import "encoding/binary"

const (
	udpSrcPort  = 0
	udpDstPort  = 2
	udpLen      = 4
	udpChecksum = 6
)

// UDPHeaderSize is the size of a UDP header.
const UDPHeaderSize = 8

// UDPFields contains the fields of a UDP header. It is used to describe a
// header that needs to be encoded into a frame arena.
type UDPFields struct {
	SrcPort uint16
	DstPort uint16
	Length  uint16

	// Checksum stays zero: the generator uses the checksum-disabled
	// policy that IPv4 permits for UDP.
	Checksum uint16
}

// UDP is a typed view over a UDP header stored in a byte slice.
type UDP []byte

// SourcePort returns the "source port" field.
func (b UDP) SourcePort() uint16 {
	return binary.BigEndian.Uint16(b[udpSrcPort:])
}

// DestinationPort returns the "destination port" field.
func (b UDP) DestinationPort() uint16 {
	return binary.BigEndian.Uint16(b[udpDstPort:])
}

// Length returns the datagram length field.
func (b UDP) Length() uint16 {
	return binary.BigEndian.Uint16(b[udpLen:])
}

// Checksum returns the checksum field.
func (b UDP) Checksum() uint16 {
	return binary.BigEndian.Uint16(b[udpChecksum:])
}

// Encode encodes all the fields of the UDP header.
func (b UDP) Encode(u *UDPFields) {
	binary.BigEndian.PutUint16(b[udpSrcPort:], u.SrcPort)
	binary.BigEndian.PutUint16(b[udpDstPort:], u.DstPort)
	binary.BigEndian.PutUint16(b[udpLen:], u.Length)
	binary.BigEndian.PutUint16(b[udpChecksum:], u.Checksum)
}
