// Package link implements the Ethernet acceptance and composition rules:
// which received frames the engine accepts for further processing, and
// how an outgoing IPv4/ARP/IGMP packet becomes a transmittable frame.
package link

import (
	"github.com/dantte-lp/gohyphaip/internal/addr"
	"github.com/dantte-lp/gohyphaip/internal/headers"
	"github.com/dantte-lp/gohyphaip/internal/hostio"
	"github.com/dantte-lp/gohyphaip/internal/hyphaerr"
)

// AcceptConfig carries the knobs Accept needs from the engine's feature
// set and interface configuration.
type AcceptConfig struct {
	Interface         hostio.MAC
	VLANEnabled       bool
	VLANID            uint16
	AllowAnyMulticast bool
	AllowAnyBroadcast bool
	// MacFilterEnabled and MacFilterLookup implement the "MAC filtering
	// disabled OR present in filter" branch of the destination-MAC
	// acceptance rule; MacFilterLookup is keyed by destination MAC.
	MacFilterEnabled bool
	MacFilterLookup  func(dst hostio.MAC) bool
}

// Accept decodes the Ethernet header from frame and decides whether the
// stack should continue processing it, per the specification's
// destination-MAC, ethertype, and VLAN-tag rules. On success it returns
// the decoded header and the remaining payload (the IPv4 or ARP packet).
func Accept(frame []byte, cfg AcceptConfig) (headers.EthernetHeader, []byte, error) {
	h, n, ok := headers.UnmarshalEthernetHeader(frame)
	if !ok {
		return headers.EthernetHeader{}, nil, hyphaerr.ErrInvalidSpan
	}

	switch {
	case h.Destination == cfg.Interface:
	case addr.IsMulticastMAC(h.Destination) && cfg.AllowAnyMulticast:
	case addr.IsBroadcastMAC(h.Destination) && cfg.AllowAnyBroadcast:
	case !cfg.MacFilterEnabled:
	case cfg.MacFilterLookup != nil && cfg.MacFilterLookup(h.Destination):
	default:
		return headers.EthernetHeader{}, nil, hyphaerr.ErrMacRejected
	}

	if h.EtherType != headers.EtherTypeIPv4 && h.EtherType != headers.EtherTypeARP {
		return headers.EthernetHeader{}, nil, hyphaerr.ErrEthernetTypeRejected
	}

	if h.VLANPresent && cfg.VLANEnabled && h.VLANTag != cfg.VLANID {
		return headers.EthernetHeader{}, nil, hyphaerr.ErrStaticVLANFiltered
	}

	return h, frame[n:], nil
}

// ResolveDestinationMAC picks the MAC address an outgoing IPv4 packet
// destined for ip should be sent to: the derived multicast MAC for a
// multicast destination, the broadcast MAC for the limited broadcast
// address, an ARP-cache hit for an on-link unicast destination, or the
// gateway's resolved MAC for an off-link destination. This stack never
// sends ARP requests to populate a missing cache entry, so a unicast
// destination with no cache hit falls back to the broadcast MAC rather
// than failing resolution outright.
func ResolveDestinationMAC(ip hostio.IPv4, iface hostio.NetworkInterface, arpLookup func(hostio.IPv4) (hostio.MAC, bool)) hostio.MAC {
	if mac, ok := addr.MulticastMAC(ip); ok {
		return mac
	}
	if addr.IsLimitedBroadcast(ip) {
		return addr.EthernetBroadcast
	}

	target := ip
	if !addr.SameNetwork(ip, iface.Address, iface.Netmask) {
		target = iface.Gateway
	}
	if mac, ok := arpLookup(target); ok {
		return mac
	}
	return addr.EthernetBroadcast
}

// ComposeConfig carries the fields Compose needs to build the Ethernet
// header around a payload.
type ComposeConfig struct {
	Source      hostio.MAC
	Destination hostio.MAC
	EtherType   headers.EtherType
	VLANEnabled bool
	VLANID      uint16
}

// Compose prepends an Ethernet header to payload and returns the
// complete frame ready for the host's Transmit callback.
func Compose(cfg ComposeConfig, payload []byte) []byte {
	h := headers.EthernetHeader{
		Destination: cfg.Destination,
		Source:      cfg.Source,
		EtherType:   cfg.EtherType,
		VLANPresent: cfg.VLANEnabled,
		VLANTag:     cfg.VLANID,
	}
	out := make([]byte, 0, h.Size()+len(payload))
	out = append(out, h.Marshal()...)
	out = append(out, payload...)
	return out
}
