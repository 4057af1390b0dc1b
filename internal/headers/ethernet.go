// Package headers provides value-type representations of every wire
// header the stack understands, each with Marshal/Unmarshal methods
// built on the internal/wire flip-copy schedules. None of these types
// is ever aliased onto a raw buffer: a header is always decoded into
// one of these structs and re-encoded through Marshal, never read or
// written in place.
package headers

import (
	"encoding/binary"

	"github.com/dantte-lp/gohyphaip/internal/hostio"
	"github.com/dantte-lp/gohyphaip/internal/wire"
)

// EtherType identifies the payload carried by an Ethernet frame.
type EtherType uint16

const (
	EtherTypeIPv4 EtherType = 0x0800
	EtherTypeARP  EtherType = 0x0806
	EtherTypeVLAN EtherType = 0x8100
)

// EthernetHeaderSize is the fixed 14-byte header size with no VLAN tag.
const EthernetHeaderSize = 14

// EthernetHeaderSizeVLAN is the header size with one 802.1Q tag present.
const EthernetHeaderSizeVLAN = 18

// EthernetHeader is the destination/source MAC pair plus ethertype, with
// an optional single 802.1Q tag.
type EthernetHeader struct {
	Destination hostio.MAC
	Source      hostio.MAC
	VLANTag     uint16 // valid only when VLANPresent
	EtherType   EtherType
	VLANPresent bool
}

// Size reports the marshaled size of h, 14 or 18 bytes.
func (h EthernetHeader) Size() int {
	if h.VLANPresent {
		return EthernetHeaderSizeVLAN
	}
	return EthernetHeaderSize
}

// Marshal encodes h into the wire's 14- or 18-byte big-endian form.
func (h EthernetHeader) Marshal() []byte {
	staging := make([]byte, h.Size())
	copy(staging[0:6], h.Destination[:])
	copy(staging[6:12], h.Source[:])
	if h.VLANPresent {
		binary.LittleEndian.PutUint16(staging[12:14], uint16(EtherTypeVLAN))
		binary.LittleEndian.PutUint16(staging[14:16], h.VLANTag)
		binary.LittleEndian.PutUint16(staging[16:18], uint16(h.EtherType))
	} else {
		binary.LittleEndian.PutUint16(staging[12:14], uint16(h.EtherType))
	}
	out := make([]byte, h.Size())
	wire.FlipCopy(wire.EthernetSchedule(h.VLANPresent), out, staging)
	return out
}

// UnmarshalEthernetHeader decodes an Ethernet header from the front of
// buf, auto-detecting the presence of an 802.1Q tag. It returns the
// header and the number of bytes consumed.
func UnmarshalEthernetHeader(buf []byte) (EthernetHeader, int, bool) {
	if len(buf) < EthernetHeaderSize {
		return EthernetHeader{}, 0, false
	}
	vlanPresent := buf[12] == 0x81 && buf[13] == 0x00
	size := EthernetHeaderSize
	if vlanPresent {
		size = EthernetHeaderSizeVLAN
	}
	if len(buf) < size {
		return EthernetHeader{}, 0, false
	}
	staging := make([]byte, size)
	wire.FlipCopy(wire.EthernetSchedule(vlanPresent), staging, buf[:size])

	h := EthernetHeader{VLANPresent: vlanPresent}
	copy(h.Destination[:], staging[0:6])
	copy(h.Source[:], staging[6:12])
	if vlanPresent {
		h.VLANTag = binary.LittleEndian.Uint16(staging[14:16])
		h.EtherType = EtherType(binary.LittleEndian.Uint16(staging[16:18]))
	} else {
		h.EtherType = EtherType(binary.LittleEndian.Uint16(staging[12:14]))
	}
	return h, size, true
}
