package headers

import (
	"encoding/binary"

	"github.com/dantte-lp/gohyphaip/internal/hostio"
	"github.com/dantte-lp/gohyphaip/internal/wire"
)

// IGMPPacketSize is the fixed 8-byte size of an IGMPv2 message.
const IGMPPacketSize = 8

// IGMPType distinguishes a membership report from a leave notification;
// this stack never parses an incoming query or report.
type IGMPType uint8

const (
	IGMPTypeMembershipReportV2 IGMPType = 0x16
	IGMPTypeLeaveGroup         IGMPType = 0x17
)

// IGMPPacket is an IGMPv2 message: type, max response time (always zero
// for the reports/leaves this stack emits), checksum, and group address.
type IGMPPacket struct {
	Type             IGMPType
	MaxResponseTime  uint8
	Checksum         uint16
	Group            hostio.IPv4
}

// Marshal encodes p into an 8-byte wire-order IGMP message.
func (p IGMPPacket) Marshal() []byte {
	staging := make([]byte, IGMPPacketSize)
	staging[0] = uint8(p.Type)
	staging[1] = p.MaxResponseTime
	binary.LittleEndian.PutUint16(staging[2:4], p.Checksum)
	copy(staging[4:8], p.Group[:])

	out := make([]byte, IGMPPacketSize)
	wire.FlipCopy(wire.IGMPSchedule, out, staging)
	return out
}

// UnmarshalIGMPPacket decodes an 8-byte IGMP message from the front of buf.
func UnmarshalIGMPPacket(buf []byte) (IGMPPacket, bool) {
	if len(buf) < IGMPPacketSize {
		return IGMPPacket{}, false
	}
	staging := make([]byte, IGMPPacketSize)
	wire.FlipCopy(wire.IGMPSchedule, staging, buf[:IGMPPacketSize])

	p := IGMPPacket{
		Type:            IGMPType(staging[0]),
		MaxResponseTime: staging[1],
		Checksum:        binary.LittleEndian.Uint16(staging[2:4]),
	}
	copy(p.Group[:], staging[4:8])
	return p, true
}
