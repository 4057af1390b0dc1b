package headers

import (
	"encoding/binary"

	"github.com/dantte-lp/gohyphaip/internal/addr"
	"github.com/dantte-lp/gohyphaip/internal/hostio"
	"github.com/dantte-lp/gohyphaip/internal/wire"
)

// ARPPacketSize is the fixed 28-byte size of an Ethernet/IPv4 ARP packet.
const ARPPacketSize = 28

// ARPOperation distinguishes request from reply; this stack only ever
// emits requests (gratuitous announcements) and never parses replies.
type ARPOperation uint16

const (
	ARPOperationRequest ARPOperation = 1
	ARPOperationReply   ARPOperation = 2
)

const (
	arpHardwareTypeEthernet uint16 = 1
	arpProtocolTypeIPv4     uint16 = 0x0800
	arpHardwareLen          uint8  = 6
	arpProtocolLen          uint8  = 4
)

// ARPPacket is the fixed Ethernet/IPv4 ARP packet body (hardware and
// protocol type/length are always Ethernet/IPv4 in this stack, so
// NewARPRequest fills them in for the caller).
type ARPPacket struct {
	Operation ARPOperation
	SenderMAC hostio.MAC
	SenderIP  hostio.IPv4
	TargetMAC hostio.MAC
	TargetIP  hostio.IPv4
}

// NewARPRequest builds a gratuitous ARP request announcing (senderMAC,
// senderIP): TargetMAC is the broadcast address, since the target's real
// MAC isn't known yet, and TargetIP equals SenderIP, per the
// gratuitous-announcement convention.
func NewARPRequest(senderMAC hostio.MAC, senderIP hostio.IPv4) ARPPacket {
	return ARPPacket{
		Operation: ARPOperationRequest,
		SenderMAC: senderMAC,
		SenderIP:  senderIP,
		TargetMAC: addr.EthernetBroadcast,
		TargetIP:  senderIP,
	}
}

// Marshal encodes p into a 28-byte wire-order ARP packet.
func (p ARPPacket) Marshal() []byte {
	staging := make([]byte, ARPPacketSize)
	binary.LittleEndian.PutUint16(staging[0:2], arpHardwareTypeEthernet)
	binary.LittleEndian.PutUint16(staging[2:4], arpProtocolTypeIPv4)
	staging[4] = arpHardwareLen
	staging[5] = arpProtocolLen
	binary.LittleEndian.PutUint16(staging[6:8], uint16(p.Operation))
	copy(staging[8:14], p.SenderMAC[:])
	copy(staging[14:18], p.SenderIP[:])
	copy(staging[18:24], p.TargetMAC[:])
	copy(staging[24:28], p.TargetIP[:])

	out := make([]byte, ARPPacketSize)
	wire.FlipCopy(wire.ARPSchedule, out, staging)
	return out
}

// UnmarshalARPPacket decodes a 28-byte ARP packet from the front of buf.
func UnmarshalARPPacket(buf []byte) (ARPPacket, bool) {
	if len(buf) < ARPPacketSize {
		return ARPPacket{}, false
	}
	staging := make([]byte, ARPPacketSize)
	wire.FlipCopy(wire.ARPSchedule, staging, buf[:ARPPacketSize])

	p := ARPPacket{
		Operation: ARPOperation(binary.LittleEndian.Uint16(staging[6:8])),
	}
	copy(p.SenderMAC[:], staging[8:14])
	copy(p.SenderIP[:], staging[14:18])
	copy(p.TargetMAC[:], staging[18:24])
	copy(p.TargetIP[:], staging[24:28])
	return p, true
}
