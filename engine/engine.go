// Package engine wires the protocol-core packages (wire, addr, headers,
// filter, link, ipv4, udp, igmp, arp) together behind the facade the
// specification calls the "context": Initialize, Deinitialize, RunOnce,
// GetStatistics, and the Populate*/TransmitUdpDatagram/PrepareUdp*
// operations an embedder drives it with.
package engine

import (
	"errors"
	"runtime"

	"github.com/dantte-lp/gohyphaip/internal/addr"
	"github.com/dantte-lp/gohyphaip/internal/arp"
	"github.com/dantte-lp/gohyphaip/internal/filter"
	"github.com/dantte-lp/gohyphaip/internal/headers"
	"github.com/dantte-lp/gohyphaip/internal/hostio"
	"github.com/dantte-lp/gohyphaip/internal/hyphaerr"
	"github.com/dantte-lp/gohyphaip/internal/ipv4"
	"github.com/dantte-lp/gohyphaip/internal/link"
	"github.com/dantte-lp/gohyphaip/internal/stats"
	"github.com/dantte-lp/gohyphaip/internal/udp"
)

// Engine is the stack's single exclusively-owned instance. Every field
// is mutated only by the driving task's calls into this package — there
// is no internal locking, matching the specification's single-threaded
// cooperative concurrency model.
type Engine struct {
	cfg      Config
	host     hostio.Host
	icmpHost hostio.ICMPHost

	macFilter  *filter.Table[hostio.MAC, struct{}]
	ipv4Filter *filter.Table[hostio.IPv4, struct{}]
	arpCache   *filter.Table[hostio.IPv4, hostio.MAC]

	stats          stats.Statistics
	identification uint16
}

// Initialize validates host and cfg.Interface against the
// specification's invariants (§3) and returns a ready-to-drive Engine.
// A nil host, or a host that implements hostio.Host incompletely,
// cannot be expressed as distinct per-callback null checks the way the
// original's external-interface struct did; here the single non-nil
// interface value stands in for "every mandatory callback present".
func Initialize(cfg Config, host hostio.Host) (*Engine, error) {
	if host == nil {
		return nil, hyphaerr.ErrInvalidContext
	}
	if addr.IsMulticastMAC(cfg.Interface.MAC) {
		return nil, hyphaerr.ErrInvalidMAC
	}
	if addr.IsMulticast(cfg.Interface.Address) || addr.IsLocalhost(cfg.Interface.Address) || addr.IsReserved(cfg.Interface.Address) {
		return nil, hyphaerr.ErrInvalidIPv4
	}
	if !addr.SameNetwork(cfg.Interface.Address, cfg.Interface.Gateway, cfg.Interface.Netmask) {
		return nil, hyphaerr.ErrInvalidNetwork
	}
	if cfg.MTU <= headers.IPv4HeaderSize {
		return nil, hyphaerr.ErrInvalidArgument
	}

	e := &Engine{
		cfg:  cfg,
		host: host,
	}
	if ih, ok := host.(hostio.ICMPHost); ok {
		e.icmpHost = ih
	}

	clock := host.GetMonotonicTimestamp
	e.macFilter = filter.New[hostio.MAC, struct{}](cfg.MacFilterTableSize, hyphaerr.ErrEthernetFilterTableFull, clock)
	e.ipv4Filter = filter.New[hostio.IPv4, struct{}](cfg.IPv4FilterTableSize, hyphaerr.ErrIPv4FilterTableFull, clock)
	e.arpCache = filter.New[hostio.IPv4, hostio.MAC](cfg.ArpTableSize, hyphaerr.ErrArpTableFull, clock)

	return e, nil
}

// Deinitialize clears every table and counter; the Engine must not be
// used again afterward.
func (e *Engine) Deinitialize() {
	*e = Engine{}
}

// GetStatistics returns a snapshot of the engine's counters.
func (e *Engine) GetStatistics() stats.Statistics {
	return e.stats
}

// report forwards status to the host's diagnostic sink, mirroring the
// specification's "report is invoked on every non-ok status" policy.
// status == nil is a no-op. A line of 0 is replaced with the source line
// of report's caller.
func (e *Engine) report(status error, funcName string, line int) {
	if status == nil {
		return
	}
	if line == 0 {
		if _, _, callerLine, ok := runtime.Caller(1); ok {
			line = callerLine
		}
	}
	e.host.Report(status, funcName, line)
}

// RunOnce drains exactly one frame: acquire, driver-receive, the
// Ethernet receive pipeline, release. It never blocks and never
// processes more than the one frame it acquired.
func (e *Engine) RunOnce() error {
	frame := e.host.Acquire()
	if frame == nil {
		e.stats.Frames.Failures++
		err := hyphaerr.ErrOutOfMemory
		e.report(err, "RunOnce", 0)
		return err
	}
	e.stats.Frames.Acquires++

	if err := e.host.Receive(frame); err != nil {
		e.report(err, "RunOnce", 0)
		e.releaseFrame(frame)
		return err
	}

	processErr := e.receiveEthernetFrame(frame.Bytes())
	if processErr != nil {
		e.report(processErr, "RunOnce", 0)
	}

	e.releaseFrame(frame)
	return processErr
}

func (e *Engine) releaseFrame(frame *hostio.Frame) {
	if err := e.host.Release(frame); err != nil {
		e.stats.Frames.Failures++
		e.report(err, "RunOnce", 0)
		return
	}
	e.stats.Frames.Releases++
}

func (e *Engine) receiveEthernetFrame(frame []byte) error {
	acceptCfg := link.AcceptConfig{
		Interface:         e.cfg.Interface.MAC,
		VLANEnabled:       e.cfg.Features.AllowVLANFiltering && e.cfg.VLANEnabled,
		VLANID:            e.cfg.VLANID,
		AllowAnyMulticast: e.cfg.Features.AllowAnyMulticast,
		AllowAnyBroadcast: e.cfg.Features.AllowAnyBroadcast,
		MacFilterEnabled:  e.cfg.Features.AllowMACFiltering,
		MacFilterLookup: func(dst hostio.MAC) bool {
			_, ok := e.macFilter.Lookup(dst)
			return ok
		},
	}

	eth, payload, err := link.Accept(frame, acceptCfg)
	if err != nil {
		if errors.Is(err, hyphaerr.ErrEthernetTypeRejected) {
			e.stats.EtherType.Rejected++
		} else {
			e.stats.MAC.Rejected++
		}
		return err
	}
	e.stats.MAC.Accepted++
	e.stats.EtherType.Accepted++
	e.stats.Counter.MAC.RX.Bytes += uint64(len(frame))
	e.stats.Counter.MAC.RX.Packets++

	switch eth.EtherType {
	case headers.EtherTypeARP:
		e.stats.Counter.ARP.RX.Bytes += uint64(len(payload))
		e.stats.Counter.ARP.RX.Packets++
		return arp.Process(payload)
	case headers.EtherTypeIPv4:
		return e.receiveIPv4Packet(payload)
	default:
		return hyphaerr.ErrEthernetTypeRejected
	}
}

func (e *Engine) receiveIPv4Packet(span []byte) error {
	var sourceFilter func(hostio.IPv4) bool
	if e.cfg.Features.AllowIPFiltering {
		sourceFilter = func(ip hostio.IPv4) bool {
			_, ok := e.ipv4Filter.Lookup(ip)
			return ok
		}
	}

	pkt, err := ipv4.Receive(span, ipv4.ReceiveConfig{
		Interface: e.cfg.Interface,
		Features: ipv4.Features{
			UseChecksum:       e.cfg.UseIPChecksum,
			AllowAnyLocalhost: e.cfg.Features.AllowAnyLocalhost,
			AllowAnyMulticast: e.cfg.Features.AllowAnyMulticast,
			AllowAnyBroadcast: e.cfg.Features.AllowAnyBroadcast,
		},
		SourceFilter: sourceFilter,
	})
	if err != nil {
		e.stats.IP.Rejected++
		return err
	}
	e.stats.IP.Accepted++
	e.stats.Counter.IPv4.RX.Bytes += uint64(pkt.Header.TotalLength)
	e.stats.Counter.IPv4.RX.Packets++

	meta := hostio.MetaData{
		SourceAddress:      pkt.Header.Source,
		DestinationAddress: pkt.Header.Destination,
		Timestamp:          e.host.GetMonotonicTimestamp(),
	}

	switch pkt.Header.Protocol {
	case headers.ProtocolUDP:
		return e.receiveUDP(meta, pkt.Payload)
	case headers.ProtocolICMP:
		return e.receiveICMP(meta, pkt.Payload)
	case headers.ProtocolIGMP:
		// This stack never parses incoming IGMP; accepted at the IP
		// layer but not dispatched further.
		e.stats.Counter.IGMP.RX.Bytes += uint64(len(pkt.Payload))
		e.stats.Counter.IGMP.RX.Packets++
		return nil
	default:
		e.stats.Unknown.Rejected++
		return hyphaerr.ErrUnsupportedProtocol
	}
}

func (e *Engine) receiveUDP(meta hostio.MetaData, span []byte) error {
	dgram, err := udp.Receive(span, udp.ReceiveConfig{
		Source:      meta.SourceAddress,
		Destination: meta.DestinationAddress,
		UseChecksum: e.cfg.UseUDPChecksum,
	})
	if err != nil {
		e.stats.UDP.Rejected++
		return err
	}
	e.stats.UDP.Accepted++
	e.stats.Counter.UDP.RX.Bytes += uint64(len(dgram.Payload))
	e.stats.Counter.UDP.RX.Packets++

	meta.SourcePort = dgram.SourcePort
	meta.DestinationPort = dgram.DestinationPort
	return e.host.ReceiveUDP(&meta, dgram.Payload)
}

func (e *Engine) receiveICMP(meta hostio.MetaData, span []byte) error {
	if _, ok := headers.UnmarshalICMPHeader(span); !ok {
		e.stats.ICMP.Rejected++
		return hyphaerr.ErrInvalidSpan
	}
	e.stats.ICMP.Accepted++
	e.stats.Counter.ICMP.RX.Bytes += uint64(len(span))
	e.stats.Counter.ICMP.RX.Packets++

	if e.icmpHost == nil {
		return nil
	}
	payload := span[headers.ICMPHeaderSize:]
	return e.icmpHost.ReceiveICMP(&meta, payload)
}
