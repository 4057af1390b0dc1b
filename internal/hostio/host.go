// Package hostio defines the contract between the engine core and the host
// environment that embeds it: frame buffer allocation, the driver's
// transmit/receive primitives, the monotonic clock, and the diagnostic
// sink. Everything in this package is a plain Go type or interface — no
// core package outside of hostio, wire, addr, headers, filter, link,
// ipv4, udp, igmp, arp and engine is permitted to depend on anything else,
// matching the teacher's own internal/bfd split between protocol core and
// ambient stack.
package hostio

// MAC is a 48-bit 802.3 Ethernet address.
type MAC [6]byte

// IPv4 is an IPv4 address in network (big-endian) octet order.
type IPv4 [4]byte

// AddressMatch correlates a MAC with an IPv4 address, the shape used by
// both the ARP cache and PopulateArpTable.
type AddressMatch struct {
	MAC  MAC
	IPv4 IPv4
}

// NetworkInterface is the tuple the engine is initialized against.
type NetworkInterface struct {
	MAC     MAC
	Address IPv4
	Netmask IPv4
	Gateway IPv4
}

// MetaData carries the IP/UDP metadata of a datagram, passed down to the
// network layer on transmit and constructed from the wire on receive.
type MetaData struct {
	// SourceAddress is overwritten with the interface address on transmit;
	// any value other than a localhost address is ignored.
	SourceAddress      IPv4
	DestinationAddress IPv4
	SourcePort         uint16
	DestinationPort    uint16
	// Timestamp is stamped by the engine from GetMonotonicTimestamp on
	// successful transmit or receive.
	Timestamp int64
}

// Frame is a host-owned Ethernet frame buffer. Buf holds the raw bytes:
// the Ethernet header followed by up to MTU bytes of payload. Unlike the
// original's raw pointer-plus-overlay, the engine never aliases a packed
// wire struct onto Buf — headers are decoded into value types via the
// wire package's flip-copy schedules and encoded back the same way.
//
// Len reports how many bytes of Buf are significant: set by the driver's
// Receive call on the way in, and by the engine itself before calling
// Transmit on the way out.
type Frame struct {
	Buf []byte
	Len int
}

// Bytes returns the significant portion of the frame buffer.
func (f *Frame) Bytes() []byte {
	if f == nil {
		return nil
	}
	return f.Buf[:f.Len]
}

// Host is the set of callbacks the engine requires from its embedder.
// Every method corresponds to one of the required external callbacks in
// the specification; the opaque "external context" pointer of the C
// original collapses into the receiver of whatever concrete type
// implements Host.
type Host interface {
	// Acquire returns an exclusively-owned, MTU-sized frame buffer, or nil
	// on exhaustion.
	Acquire() *Frame
	// Release returns a frame previously obtained from Acquire. Must
	// succeed for any frame this Host produced.
	Release(frame *Frame) error
	// Receive fills frame with one received Ethernet frame. May fail with
	// no data pending.
	Receive(frame *Frame) error
	// Transmit sends frame's bytes on the wire. Synchronous: once it
	// returns, the bytes are either sent or unrecoverably lost, and the
	// buffer is reusable.
	Transmit(frame *Frame) error
	// Print is a printf-shaped diagnostic sink; implementations may treat
	// it as a no-op.
	Print(format string, args ...any)
	// GetMonotonicTimestamp returns a non-decreasing timestamp; unit is
	// host-defined but must be used consistently.
	GetMonotonicTimestamp() int64
	// Report is invoked on every non-ok status produced by the engine,
	// with the name of the function and the source line that produced it.
	// Report must never re-enter the engine.
	Report(status error, funcName string, line int)
	// ReceiveUDP delivers an accepted UDP datagram. A non-nil return
	// indicates the host rejected the datagram; the engine propagates it
	// as the result of the triggering RunOnce/receive call.
	ReceiveUDP(meta *MetaData, payload []byte) error
}

// ICMPHost is an optional extension of Host for hosts that want ICMP
// datagrams delivered. The engine performs a type assertion against it;
// hosts that don't implement it simply never receive ICMP callbacks.
type ICMPHost interface {
	ReceiveICMP(meta *MetaData, payload []byte) error
}
