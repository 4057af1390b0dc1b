package engine

import (
	"github.com/dantte-lp/gohyphaip/internal/addr"
	"github.com/dantte-lp/gohyphaip/internal/arp"
	"github.com/dantte-lp/gohyphaip/internal/headers"
	"github.com/dantte-lp/gohyphaip/internal/hostio"
	"github.com/dantte-lp/gohyphaip/internal/hyphaerr"
	"github.com/dantte-lp/gohyphaip/internal/igmp"
	"github.com/dantte-lp/gohyphaip/internal/ipv4"
	"github.com/dantte-lp/gohyphaip/internal/link"
)

// FindIPv4Address returns the interface's own IPv4 address.
func (e *Engine) FindIPv4Address() hostio.IPv4 { return e.cfg.Interface.Address }

// FindEthernetAddress returns the interface's own MAC address.
func (e *Engine) FindEthernetAddress() hostio.MAC { return e.cfg.Interface.MAC }

// PopulateArpTable seeds the ARP cache with entries, stamping each with
// the configured expiration and incrementing arp.additions per entry.
// Populating implicitly enables the ARP cache feature.
func (e *Engine) PopulateArpTable(entries []hostio.AddressMatch) error {
	if e.arpCache.Len()+len(entries) > e.arpCache.Cap() {
		return hyphaerr.ErrArpTableFull
	}
	for _, entry := range entries {
		if err := e.arpCache.Add(entry.IPv4, entry.MAC, e.cfg.ExpirationTime); err != nil {
			return err
		}
		e.stats.ARP.Additions++
	}
	e.cfg.Features.AllowARPCache = true
	return nil
}

// PopulateEthernetFilter seeds the MAC filter table. Populating
// implicitly enables MAC filtering.
func (e *Engine) PopulateEthernetFilter(macs []hostio.MAC) error {
	if e.macFilter.Len()+len(macs) > e.macFilter.Cap() {
		return hyphaerr.ErrEthernetFilterTableFull
	}
	for _, mac := range macs {
		if err := e.macFilter.Add(mac, struct{}{}, e.cfg.ExpirationTime); err != nil {
			return err
		}
	}
	e.cfg.Features.AllowMACFiltering = true
	return nil
}

// PopulateIPv4Filter seeds the IPv4 filter table. Populating implicitly
// enables IP filtering.
func (e *Engine) PopulateIPv4Filter(ips []hostio.IPv4) error {
	if e.ipv4Filter.Len()+len(ips) > e.ipv4Filter.Cap() {
		return hyphaerr.ErrIPv4FilterTableFull
	}
	for _, ip := range ips {
		if err := e.ipv4Filter.Add(ip, struct{}{}, e.cfg.ExpirationTime); err != nil {
			return err
		}
	}
	e.cfg.Features.AllowIPFiltering = true
	return nil
}

func (e *Engine) nextIdentification() uint16 {
	e.identification++
	return e.identification
}

// TransmitUdpDatagram sends payload to meta's destination address/port.
// meta.SourceAddress is always overwritten with the interface's own
// address: callers cannot spoof the source. A payload larger than one
// MTU's worth of UDP data is split into multiple independent datagrams
// at the UDP-payload level (see the udp package); each chunk is
// transmitted as its own frame.
func (e *Engine) TransmitUdpDatagram(meta hostio.MetaData, payload []byte) error {
	if len(payload) == 0 {
		e.report(hyphaerr.ErrInvalidArgument, "TransmitUdpDatagram", 0)
		return hyphaerr.ErrInvalidArgument
	}
	callerSource := meta.SourceAddress
	meta.SourceAddress = e.cfg.Interface.Address

	maxPayload := e.cfg.MTU - headers.IPv4HeaderSize - headers.UDPHeaderSize
	chunks := udpTransmit(payload, meta, e.cfg.UseUDPChecksum, maxPayload)

	for _, chunk := range chunks {
		if err := e.transmitIPv4(meta.DestinationAddress, callerSource, headers.ProtocolUDP, chunk); err != nil {
			return err
		}
	}
	return nil
}

// PrepareUdpReceive emits an IGMPv2 Membership Report announcing
// interest in multicast, so upstream switches/routers forward the
// group's traffic to this interface. Only multicast addresses are
// supported; the stack keeps no per-port listener table.
func (e *Engine) PrepareUdpReceive(multicast hostio.IPv4, port uint16) error {
	if !addr.IsMulticast(multicast) {
		e.report(hyphaerr.ErrNotSupported, "PrepareUdpReceive", 0)
		return hyphaerr.ErrNotSupported
	}
	packet := igmp.MembershipReport(multicast)
	return e.transmitIPv4(multicast, e.cfg.Interface.Address, headers.ProtocolIGMP, packet)
}

// PrepareUdpTransmit is a no-op for multicast destinations: no
// membership or session state needs to be prepared before transmitting
// to a group.
func (e *Engine) PrepareUdpTransmit(destination hostio.IPv4) error {
	return nil
}

// AnnounceArp emits a gratuitous ARP request announcing the interface's
// own (mac, ipv4). Not part of the specification's required facade, but
// exposed for hosts that want to announce on link-up.
func (e *Engine) AnnounceArp() error {
	packet := arp.Announce(e.cfg.Interface.MAC, e.cfg.Interface.Address)
	frame := link.Compose(link.ComposeConfig{
		Source:      e.cfg.Interface.MAC,
		Destination: addr.EthernetBroadcast,
		EtherType:   headers.EtherTypeARP,
		VLANEnabled: e.cfg.Features.AllowVLANFiltering && e.cfg.VLANEnabled,
		VLANID:      e.cfg.VLANID,
	}, packet)

	if err := e.transmitFrame(frame); err != nil {
		e.report(err, "AnnounceArp", 0)
		return err
	}
	e.stats.ARP.Announces++
	return nil
}

// transmitIPv4 composes and sends one IPv4 packet, short-circuiting to
// the local receive path when destination is the interface's own
// address or a loopback address. source is the caller-supplied IPv4
// source address; it is only honored when destination is localhost
// (see ipv4.Transmit).
func (e *Engine) transmitIPv4(destination hostio.IPv4, source hostio.IPv4, protocol headers.Protocol, payload []byte) error {
	packet, err := ipv4.Transmit(destination, source, protocol, payload, ipv4.TransmitConfig{
		Interface:      e.cfg.Interface,
		TTL:            e.cfg.TTL,
		MTU:            e.cfg.MTU,
		UseChecksum:    e.cfg.UseIPChecksum,
		Identification: e.nextIdentification(),
	})
	if err != nil {
		e.report(err, "transmitIPv4", 0)
		return err
	}
	e.stats.Counter.IPv4.TX.Bytes += uint64(len(packet))
	e.stats.Counter.IPv4.TX.Packets++

	if ipv4.IsLoopback(destination, e.cfg.Interface) || addr.IsLocalhost(destination) {
		if err := e.receiveIPv4Packet(packet); err != nil {
			e.report(err, "transmitIPv4", 0)
			return err
		}
		return nil
	}

	mac := link.ResolveDestinationMAC(destination, e.cfg.Interface, func(ip hostio.IPv4) (hostio.MAC, bool) {
		mac, ok := e.arpCache.Lookup(ip)
		if ok {
			e.stats.ARP.Lookups++
		}
		return mac, ok
	})

	frame := link.Compose(link.ComposeConfig{
		Source:      e.cfg.Interface.MAC,
		Destination: mac,
		EtherType:   headers.EtherTypeIPv4,
		VLANEnabled: e.cfg.Features.AllowVLANFiltering && e.cfg.VLANEnabled,
		VLANID:      e.cfg.VLANID,
	}, packet)
	if err := e.transmitFrame(frame); err != nil {
		e.report(err, "transmitIPv4", 0)
		return err
	}
	return nil
}

func (e *Engine) transmitFrame(frame []byte) error {
	buf := e.host.Acquire()
	if buf == nil {
		e.stats.Frames.Failures++
		return hyphaerr.ErrOutOfMemory
	}
	e.stats.Frames.Acquires++
	buf.Len = copy(buf.Buf, frame)

	err := e.host.Transmit(buf)
	if err == nil {
		e.stats.Counter.MAC.TX.Bytes += uint64(buf.Len)
		e.stats.Counter.MAC.TX.Packets++
	}

	if relErr := e.host.Release(buf); relErr != nil {
		e.stats.Frames.Failures++
	} else {
		e.stats.Frames.Releases++
	}
	return err
}
