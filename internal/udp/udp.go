// Package udp implements UDP datagram receive validation (pseudo-header
// checksum verification and dispatch) and MTU-aware chunked transmit.
package udp

import (
	"github.com/dantte-lp/gohyphaip/internal/headers"
	"github.com/dantte-lp/gohyphaip/internal/hostio"
	"github.com/dantte-lp/gohyphaip/internal/hyphaerr"
	"github.com/dantte-lp/gohyphaip/internal/wire"
)

// Datagram is a decoded, accepted UDP datagram.
type Datagram struct {
	SourcePort      uint16
	DestinationPort uint16
	Payload         []byte
}

// ReceiveConfig carries the knobs Receive needs.
type ReceiveConfig struct {
	Source      hostio.IPv4
	Destination hostio.IPv4
	UseChecksum bool
}

// Receive validates span (the IPv4 payload, i.e. the UDP header and its
// data) and returns the decoded datagram. A received checksum of zero
// is treated as "not computed" and passes through unconditionally, per
// RFC 768, regardless of cfg.UseChecksum.
func Receive(span []byte, cfg ReceiveConfig) (Datagram, error) {
	h, ok := headers.UnmarshalUDPHeader(span)
	if !ok {
		return Datagram{}, hyphaerr.ErrInvalidSpan
	}
	if int(h.Length) > len(span) || int(h.Length) < headers.UDPHeaderSize {
		return Datagram{}, hyphaerr.ErrInvalidSpan
	}

	if cfg.UseChecksum && h.Checksum != wire.ChecksumDisabled {
		pseudo := headers.PseudoHeader{
			Source:      cfg.Source,
			Destination: cfg.Destination,
			Protocol:    headers.ProtocolUDP,
			Length:      h.Length,
		}.Marshal()
		if wire.Checksum(pseudo, span[:h.Length]) != wire.ChecksumValid {
			return Datagram{}, hyphaerr.ErrUDPChecksumRejected
		}
	}

	return Datagram{
		SourcePort:      h.SourcePort,
		DestinationPort: h.DestinationPort,
		Payload:         span[headers.UDPHeaderSize:h.Length],
	}, nil
}

// TransmitConfig carries the knobs Transmit needs.
type TransmitConfig struct {
	Source          hostio.IPv4
	Destination     hostio.IPv4
	SourcePort      uint16
	DestinationPort uint16
	UseChecksum     bool
	// MaxPayload is the largest UDP payload one datagram may carry,
	// derived from the interface MTU minus the IPv4 and UDP headers.
	// Transmit splits a larger payload into multiple datagrams rather
	// than fragmenting at the IP layer, by design: this stack never
	// emits IP fragments.
	MaxPayload int
}

// Transmit splits payload into one or more UDP datagrams no larger than
// cfg.MaxPayload bytes of user data each and returns them in order.
// Every datagram's checksum field is computed and written into the
// returned bytes whenever cfg.UseChecksum is set — unlike the datagram
// this was ported from, which computed the checksum but left the
// header's zero checksum field untouched.
func Transmit(payload []byte, cfg TransmitConfig) [][]byte {
	if cfg.MaxPayload <= 0 {
		cfg.MaxPayload = len(payload)
	}
	if len(payload) == 0 {
		return [][]byte{buildDatagram(nil, cfg)}
	}

	var chunks [][]byte
	for offset := 0; offset < len(payload); offset += cfg.MaxPayload {
		end := offset + cfg.MaxPayload
		if end > len(payload) {
			end = len(payload)
		}
		chunks = append(chunks, buildDatagram(payload[offset:end], cfg))
	}
	return chunks
}

func buildDatagram(chunk []byte, cfg TransmitConfig) []byte {
	length := uint16(headers.UDPHeaderSize + len(chunk))
	h := headers.UDPHeader{
		SourcePort:      cfg.SourcePort,
		DestinationPort: cfg.DestinationPort,
		Length:          length,
	}

	if cfg.UseChecksum {
		header := h.Marshal()
		pseudo := headers.PseudoHeader{
			Source:      cfg.Source,
			Destination: cfg.Destination,
			Protocol:    headers.ProtocolUDP,
			Length:      length,
		}.Marshal()
		sum := wire.Checksum(pseudo, append(append([]byte{}, header...), chunk...))
		checksum := ^sum
		if checksum == wire.ChecksumDisabled {
			checksum = wire.ChecksumValid
		}
		h.Checksum = checksum
	}

	out := make([]byte, 0, length)
	out = append(out, h.Marshal()...)
	out = append(out, chunk...)
	return out
}
