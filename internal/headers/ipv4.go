package headers

import (
	"encoding/binary"

	"github.com/dantte-lp/gohyphaip/internal/hostio"
	"github.com/dantte-lp/gohyphaip/internal/wire"
)

// IPv4HeaderSize is the fixed 20-byte header size; this stack never
// emits or accepts IP options.
const IPv4HeaderSize = 20

// Protocol identifies the payload protocol carried in an IPv4 packet.
type Protocol uint8

const (
	ProtocolICMP Protocol = 0x01
	ProtocolIGMP Protocol = 0x02
	ProtocolUDP  Protocol = 0x11
)

// IPv4Header is the fixed-size (no-options) IPv4 header.
type IPv4Header struct {
	Version        uint8 // always 4
	IHL             uint8 // always 5 (20 bytes, no options)
	DSCP            uint8
	ECN             uint8
	TotalLength     uint16
	Identification  uint16
	DontFragment    bool
	MoreFragments   bool
	FragmentOffset  uint16
	TTL             uint8
	Protocol        Protocol
	Checksum        uint16
	Source          hostio.IPv4
	Destination     hostio.IPv4
}

// Marshal encodes h into a 20-byte wire-order header.
func (h IPv4Header) Marshal() []byte {
	staging := make([]byte, IPv4HeaderSize)
	staging[0] = (h.Version << 4) | (h.IHL & 0x0F)
	staging[1] = (h.DSCP << 2) | (h.ECN & 0x03)
	binary.LittleEndian.PutUint16(staging[2:4], h.TotalLength)
	binary.LittleEndian.PutUint16(staging[4:6], h.Identification)

	var flags uint16
	if h.DontFragment {
		flags |= 0x02
	}
	if h.MoreFragments {
		flags |= 0x01
	}
	binary.LittleEndian.PutUint16(staging[6:8], (flags<<13)|(h.FragmentOffset&0x1FFF))

	staging[8] = h.TTL
	staging[9] = uint8(h.Protocol)
	binary.LittleEndian.PutUint16(staging[10:12], h.Checksum)
	copy(staging[12:16], h.Source[:])
	copy(staging[16:20], h.Destination[:])

	out := make([]byte, IPv4HeaderSize)
	wire.FlipCopy(wire.IPv4HeaderSchedule, out, staging)
	return out
}

// UnmarshalIPv4Header decodes a 20-byte IPv4 header from the front of
// buf. Returns false if buf is too short.
func UnmarshalIPv4Header(buf []byte) (IPv4Header, bool) {
	if len(buf) < IPv4HeaderSize {
		return IPv4Header{}, false
	}
	staging := make([]byte, IPv4HeaderSize)
	wire.FlipCopy(wire.IPv4HeaderSchedule, staging, buf[:IPv4HeaderSize])

	h := IPv4Header{
		Version: staging[0] >> 4,
		IHL:     staging[0] & 0x0F,
		DSCP:    staging[1] >> 2,
		ECN:     staging[1] & 0x03,
	}
	h.TotalLength = binary.LittleEndian.Uint16(staging[2:4])
	h.Identification = binary.LittleEndian.Uint16(staging[4:6])

	flagsFrag := binary.LittleEndian.Uint16(staging[6:8])
	flags := flagsFrag >> 13
	h.DontFragment = flags&0x02 != 0
	h.MoreFragments = flags&0x01 != 0
	h.FragmentOffset = flagsFrag & 0x1FFF

	h.TTL = staging[8]
	h.Protocol = Protocol(staging[9])
	h.Checksum = binary.LittleEndian.Uint16(staging[10:12])
	copy(h.Source[:], staging[12:16])
	copy(h.Destination[:], staging[16:20])
	return h, true
}
