// Package frame stamps the fixed Ethernet/IPv4/UDP demo frame into a packet
// buffer arena. Header regions live at fixed offsets (each offset is the sum
// of the preceding header sizes) and are accessed through typed views, so no
// write can land outside its region.
package frame

import (
	"fmt"
	"net"

	"github.com/google/gopacket/layers"
)

const (
	// PayloadSize is the fixed size of the zero-padded payload region.
	// It is declared independently of the sample string length on purpose:
	// the wire contract is a 172-byte region, whatever the text says.
	PayloadSize = 172

	ipv4Offset    = EthernetHeaderSize
	udpOffset     = ipv4Offset + IPv4HeaderSize
	payloadOffset = udpOffset + UDPHeaderSize

	// FrameSize is the total length of a generated frame.
	FrameSize = EthernetHeaderSize + IPv4HeaderSize + UDPHeaderSize + PayloadSize

	// ipv4TotalLength covers everything after the Ethernet header.
	ipv4TotalLength = IPv4HeaderSize + UDPHeaderSize + PayloadSize

	// udpLength covers the UDP header plus payload.
	udpLength = UDPHeaderSize + PayloadSize
)

// Fixed demo addressing. The generator always emits the same frame; making
// these configurable is out of scope.
var (
	srcMAC = net.HardwareAddr{0x12, 0x45, 0xab, 0xcd, 0x78, 0x21}
	dstMAC = net.HardwareAddr{0xde, 0xad, 0xbe, 0xef, 0xab, 0x12}
	srcIP  = net.IP{1, 2, 3, 4}
	dstIP  = net.IP{4, 3, 2, 1}
)

const (
	srcPort = 10000
	dstPort = 5000
	ttl     = 64

	samplePayload = "This is sample data generated by a synthetic traffic generator ..."
)

// PutEthernetHeader stamps the Ethernet header at the start of the arena.
func PutEthernetHeader(b []byte) {
	Ethernet(b[:EthernetHeaderSize]).Encode(&EthernetFields{
		DstMAC:    dstMAC,
		SrcMAC:    srcMAC,
		EtherType: layers.EthernetTypeIPv4,
	})
}

// PutIPv4Header stamps the IPv4 header. The header checksum is computed
// last, after every other field is final.
func PutIPv4Header(b []byte) {
	ip := IPv4(b[ipv4Offset : ipv4Offset+IPv4HeaderSize])
	ip.Encode(&IPv4Fields{
		TOS:         0,
		TotalLength: ipv4TotalLength,
		ID:          0,
		TTL:         ttl,
		Protocol:    uint8(layers.IPProtocolUDP),
		SrcAddr:     srcIP,
		DstAddr:     dstIP,
	})
	ip.SetChecksum(^ip.CalculateChecksum())
}

// PutUDPHeader stamps the UDP header. The checksum stays zero, the
// checksum-disabled state IPv4 allows for UDP.
func PutUDPHeader(b []byte) {
	UDP(b[udpOffset : udpOffset+UDPHeaderSize]).Encode(&UDPFields{
		SrcPort: srcPort,
		DstPort: dstPort,
		Length:  udpLength,
	})
}

// PutPayload zero-fills the payload region and stamps the sample string into
// its start. The string never exceeds the region.
func PutPayload(b []byte) {
	p := b[payloadOffset : payloadOffset+PayloadSize]
	clear(p)
	copy(p, samplePayload)
}

// Build stamps a complete frame into the arena, link layer first, and
// returns the total frame length for the caller to record on its buffer.
func Build(b []byte) (int, error) {
	if len(b) < FrameSize {
		return 0, fmt.Errorf("arena of %d bytes cannot hold a %d byte frame", len(b), FrameSize)
	}

	PutEthernetHeader(b)
	PutIPv4Header(b)
	PutUDPHeader(b)
	PutPayload(b)

	return FrameSize, nil
}
