// Package port owns the single transmit interface: device discovery and
// selection, the pcap handle lifecycle, and the transmit primitive.
package port

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/gopacket/pcap"

	"github.com/moscovium115/txgen/internal/pool"
)

// maxPorts is the fixed discovery capacity. More devices than this is
// treated as a configuration error rather than silently truncated.
const maxPorts = 32

const snapLen = 65536

// libpcap interface flag bits, as reported in pcap.Interface.Flags.
const (
	flagLoopback = 0x01
	flagUp       = 0x02
)

// Port is the transmit side of one network interface. It returns sent
// buffers to the pool on behalf of the device layer.
type Port struct {
	handle *pcap.Handle
	name   string
	pool   *pool.Pool
}

// Discover enumerates the capture-capable devices on the system.
func Discover() ([]pcap.Interface, error) {
	devs, err := pcap.FindAllDevs()
	if err != nil {
		return nil, fmt.Errorf("device discovery: %w", err)
	}
	return devs, nil
}

// isEthernetDevice reports whether a device looks like it uses Ethernet
// framing. Loopback and down devices are skipped, as are tunnel and VPN
// devices, which carry raw IP packets without a link-layer header.
func isEthernetDevice(d pcap.Interface) bool {
	if d.Flags&flagLoopback != 0 {
		return false
	}
	if d.Flags&flagUp == 0 {
		return false
	}
	for _, prefix := range []string{"tun", "utun", "ppp", "wg", "lo"} {
		if strings.HasPrefix(d.Name, prefix) {
			return false
		}
	}
	return true
}

// choose selects the transmit device. An explicitly named device must exist;
// otherwise the first discovered Ethernet-framing device is used.
func choose(devs []pcap.Interface, name string) (string, error) {
	if len(devs) == 0 {
		return "", errors.New("no network devices detected")
	}
	if len(devs) > maxPorts {
		return "", fmt.Errorf("%d network devices detected, more than the supported %d", len(devs), maxPorts)
	}

	if name != "" {
		for _, d := range devs {
			if d.Name == name {
				return name, nil
			}
		}
		return "", fmt.Errorf("device %q not found", name)
	}

	for _, d := range devs {
		if isEthernetDevice(d) {
			return d.Name, nil
		}
	}
	return "", errors.New("no Ethernet-framing device found")
}

// Open discovers the available devices, selects one and opens it for
// transmission. The handle is restricted to the outbound direction: this
// generator never reads inbound traffic.
func Open(name string, bufs *pool.Pool) (*Port, error) {
	devs, err := Discover()
	if err != nil {
		return nil, err
	}

	chosen, err := choose(devs, name)
	if err != nil {
		return nil, err
	}

	handle, err := pcap.OpenLive(chosen, snapLen, false, pcap.BlockForever)
	if err != nil {
		return nil, fmt.Errorf("open device %s: %w", chosen, err)
	}
	if err := handle.SetDirection(pcap.DirectionOut); err != nil {
		handle.Close()
		return nil, fmt.Errorf("restrict %s to transmit: %w", chosen, err)
	}

	slog.Debug("Opened transmit port", "device", chosen)
	return &Port{handle: handle, name: chosen, pool: bufs}, nil
}

// Name returns the selected device name.
func (p *Port) Name() string {
	return p.name
}

// Send submits one buffer to the device transmit path. On success the port
// takes ownership: WritePacketData copies the frame before returning, so the
// buffer goes straight back to the pool here, on behalf of the device layer.
// On failure ownership stays with the caller, which must release the buffer
// itself.
func (p *Port) Send(b *pool.Buffer) error {
	if err := p.handle.WritePacketData(b.Frame()); err != nil {
		return err
	}
	p.pool.Release(b)
	return nil
}

// Close releases the pcap handle. It is safe to call more than once.
func (p *Port) Close() {
	if p.handle != nil {
		p.handle.Close()
		p.handle = nil
	}
}
