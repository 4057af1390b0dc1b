// Package ipv4 implements the IPv4 receive validation pipeline and the
// complementary transmit composition: checksum, header sanity,
// destination/source address acceptance, and protocol dispatch.
package ipv4

import (
	"encoding/binary"

	"github.com/dantte-lp/gohyphaip/internal/addr"
	"github.com/dantte-lp/gohyphaip/internal/headers"
	"github.com/dantte-lp/gohyphaip/internal/hostio"
	"github.com/dantte-lp/gohyphaip/internal/hyphaerr"
	"github.com/dantte-lp/gohyphaip/internal/wire"
)

// Features are the subset of engine feature flags the IPv4 layer
// consults.
type Features struct {
	UseChecksum        bool
	AllowAnyLocalhost  bool
	AllowAnyMulticast  bool
	AllowAnyBroadcast  bool
}

// ReceiveConfig carries the fields Receive needs from the engine's
// interface and feature configuration.
type ReceiveConfig struct {
	Interface hostio.NetworkInterface
	Features  Features
	// SourceFilter reports whether source is acceptable; nil disables
	// filtering.
	SourceFilter func(source hostio.IPv4) bool
}

// Packet is a decoded, accepted IPv4 packet.
type Packet struct {
	Header  headers.IPv4Header
	Payload []byte
}

// Receive validates span as an IPv4 packet per the specification's
// gates, in order: header size, checksum, version/IHL (no options),
// fragmentation and total length, destination acceptance, source
// acceptance, source filter, then returns the decoded header and payload
// for protocol dispatch.
func Receive(span []byte, cfg ReceiveConfig) (Packet, error) {
	h, ok := headers.UnmarshalIPv4Header(span)
	if !ok {
		return Packet{}, hyphaerr.ErrInvalidSpan
	}

	if cfg.Features.UseChecksum {
		if wire.Checksum(span[:headers.IPv4HeaderSize], nil) != wire.ChecksumValid {
			return Packet{}, hyphaerr.ErrIPv4ChecksumRejected
		}
	}

	if h.Version != 4 || h.IHL != 5 || h.MoreFragments || h.FragmentOffset != 0 {
		return Packet{}, hyphaerr.ErrIPv4HeaderRejected
	}
	if int(h.TotalLength) > len(span) || int(h.TotalLength) < headers.IPv4HeaderSize {
		return Packet{}, hyphaerr.ErrIPv4HeaderRejected
	}

	if !acceptableDestination(h.Destination, cfg) {
		return Packet{}, hyphaerr.ErrIPv4DestinationRejected
	}

	sameSubnet := addr.SameNetwork(h.Source, cfg.Interface.Address, cfg.Interface.Netmask)
	localLoop := addr.IsLocalhost(h.Destination) && addr.IsLocalhost(h.Source) && cfg.Features.AllowAnyLocalhost
	if !sameSubnet && !localLoop {
		return Packet{}, hyphaerr.ErrIPv4SourceRejected
	}

	if cfg.SourceFilter != nil && h.Source != cfg.Interface.Address && !cfg.SourceFilter(h.Source) {
		return Packet{}, hyphaerr.ErrIPv4SourceFiltered
	}

	return Packet{Header: h, Payload: span[headers.IPv4HeaderSize:h.TotalLength]}, nil
}

func acceptableDestination(dst hostio.IPv4, cfg ReceiveConfig) bool {
	switch {
	case dst == cfg.Interface.Address:
		return true
	case addr.IsMulticast(dst):
		return cfg.Features.AllowAnyMulticast
	case addr.IsLimitedBroadcast(dst):
		return cfg.Features.AllowAnyBroadcast
	case addr.IsLocalhost(dst):
		return cfg.Features.AllowAnyLocalhost
	default:
		return false
	}
}

// TransmitConfig carries the fields Transmit needs to compose a header.
type TransmitConfig struct {
	Interface      hostio.NetworkInterface
	TTL            uint8
	MTU            int
	UseChecksum    bool
	Identification uint16
}

// Transmit builds a complete IPv4 packet (header + payload) addressed to
// destination, carrying protocol and payload. destination must be
// multicast, the limited broadcast address, localhost, or the
// interface's own address; any other destination is rejected with
// hyphaerr.ErrIPv4DestinationRejected, mirroring the symmetric check
// Receive applies on the way in. Returns hyphaerr.ErrIPv4PacketTooLarge
// if the composed packet would exceed cfg.MTU.
//
// The packet's source address is the interface's own address, except
// when destination is localhost: there, source keeps the caller's own
// 127.x.x.x address if it supplied one, or substitutes 127.0.0.1
// otherwise — this allows loopback transmission to be tested with an
// arbitrary 127.x.x.x source without spoofing any other address.
func Transmit(destination hostio.IPv4, source hostio.IPv4, protocol headers.Protocol, payload []byte, cfg TransmitConfig) ([]byte, error) {
	total := headers.IPv4HeaderSize + len(payload)
	if total > cfg.MTU {
		return nil, hyphaerr.ErrIPv4PacketTooLarge
	}
	if !acceptableTransmitDestination(destination, cfg) {
		return nil, hyphaerr.ErrIPv4DestinationRejected
	}

	actualSource := cfg.Interface.Address
	if addr.IsLocalhost(destination) {
		if addr.IsLocalhost(source) {
			actualSource = source
		} else {
			actualSource = addr.LoopbackDefault
		}
	}

	h := headers.IPv4Header{
		Version:        4,
		IHL:            5,
		TotalLength:    uint16(total),
		Identification: cfg.Identification,
		DontFragment:   true,
		TTL:            cfg.TTL,
		Protocol:       protocol,
		Source:         actualSource,
		Destination:    destination,
	}

	header := h.Marshal()
	if cfg.UseChecksum {
		sum := wire.Checksum(header, nil)
		binary.BigEndian.PutUint16(header[10:12], ^sum)
	}

	out := make([]byte, 0, total)
	out = append(out, header...)
	out = append(out, payload...)
	return out, nil
}

func acceptableTransmitDestination(destination hostio.IPv4, cfg TransmitConfig) bool {
	switch {
	case destination == cfg.Interface.Address:
		return true
	case addr.IsMulticast(destination):
		return true
	case addr.IsLimitedBroadcast(destination):
		return true
	case addr.IsLocalhost(destination):
		return true
	default:
		return false
	}
}

// IsLoopback reports whether destination equals the interface's own
// address, meaning Transmit's output should be short-circuited straight
// back into Receive rather than handed to the driver.
func IsLoopback(destination hostio.IPv4, iface hostio.NetworkInterface) bool {
	return destination == iface.Address
}
