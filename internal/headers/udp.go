package headers

import (
	"encoding/binary"

	"github.com/dantte-lp/gohyphaip/internal/hostio"
	"github.com/dantte-lp/gohyphaip/internal/wire"
)

// UDPHeaderSize is the fixed 8-byte UDP header size.
const UDPHeaderSize = 8

// UDPHeader is the four 16-bit fields of a UDP datagram header.
type UDPHeader struct {
	SourcePort      uint16
	DestinationPort uint16
	Length          uint16
	Checksum        uint16
}

// Marshal encodes h into an 8-byte wire-order header.
func (h UDPHeader) Marshal() []byte {
	staging := make([]byte, UDPHeaderSize)
	binary.LittleEndian.PutUint16(staging[0:2], h.SourcePort)
	binary.LittleEndian.PutUint16(staging[2:4], h.DestinationPort)
	binary.LittleEndian.PutUint16(staging[4:6], h.Length)
	binary.LittleEndian.PutUint16(staging[6:8], h.Checksum)

	out := make([]byte, UDPHeaderSize)
	wire.FlipCopy(wire.UDPHeaderSchedule, out, staging)
	return out
}

// UnmarshalUDPHeader decodes an 8-byte UDP header from the front of buf.
func UnmarshalUDPHeader(buf []byte) (UDPHeader, bool) {
	if len(buf) < UDPHeaderSize {
		return UDPHeader{}, false
	}
	staging := make([]byte, UDPHeaderSize)
	wire.FlipCopy(wire.UDPHeaderSchedule, staging, buf[:UDPHeaderSize])

	return UDPHeader{
		SourcePort:      binary.LittleEndian.Uint16(staging[0:2]),
		DestinationPort: binary.LittleEndian.Uint16(staging[2:4]),
		Length:          binary.LittleEndian.Uint16(staging[4:6]),
		Checksum:        binary.LittleEndian.Uint16(staging[6:8]),
	}, true
}

// PseudoHeader is the IPv4 pseudo-header prepended to the UDP payload
// for checksum purposes only; it is never transmitted.
type PseudoHeader struct {
	Source      hostio.IPv4
	Destination hostio.IPv4
	Protocol    Protocol
	Length      uint16 // UDP header + payload length
}

// Marshal encodes the pseudo-header into its 12-byte checksum form:
// source, destination, a zero byte, the protocol byte, and the length
// as a big-endian u16. Unlike the real headers this is never flipped —
// it exists only to be fed into wire.Checksum, which already reads
// wire-order bytes.
func (p PseudoHeader) Marshal() []byte {
	buf := make([]byte, 12)
	copy(buf[0:4], p.Source[:])
	copy(buf[4:8], p.Destination[:])
	buf[8] = 0
	buf[9] = uint8(p.Protocol)
	binary.BigEndian.PutUint16(buf[10:12], p.Length)
	return buf
}
