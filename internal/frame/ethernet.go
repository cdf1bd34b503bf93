package frame

import (
	"encoding/binary"
	"net"

	"github.com/google/gopacket/layers"
)

const (
	ethDstMAC    = 0
	ethSrcMAC    = 6
	ethEtherType = 12
)

// EthernetHeaderSize is the size of an Ethernet header without VLAN tags.
const EthernetHeaderSize = 14

// EthernetFields contains the fields of an Ethernet header. It is used to
// describe a header that needs to be encoded into a frame arena.
type EthernetFields struct {
	DstMAC    net.HardwareAddr
	SrcMAC    net.HardwareAddr
	EtherType layers.EthernetType
}

// Ethernet is a typed view over an Ethernet header stored in a byte slice.
type Ethernet []byte

// DestinationMAC returns the destination address field.
func (b Ethernet) DestinationMAC() net.HardwareAddr {
	return net.HardwareAddr(b[ethDstMAC : ethDstMAC+6])
}

// SourceMAC returns the source address field.
func (b Ethernet) SourceMAC() net.HardwareAddr {
	return net.HardwareAddr(b[ethSrcMAC : ethSrcMAC+6])
}

// EtherType returns the ethertype field.
func (b Ethernet) EtherType() layers.EthernetType {
	return layers.EthernetType(binary.BigEndian.Uint16(b[ethEtherType:]))
}

// Encode encodes all the fields of the Ethernet header.
func (b Ethernet) Encode(e *EthernetFields) {
	copy(b[ethDstMAC:ethDstMAC+6], e.DstMAC)
	copy(b[ethSrcMAC:ethSrcMAC+6], e.SrcMAC)
	binary.BigEndian.PutUint16(b[ethEtherType:], uint16(e.EtherType))
}
