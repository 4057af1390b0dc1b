package headers

import (
	"encoding/binary"

	"github.com/dantte-lp/gohyphaip/internal/wire"
)

// ICMPHeaderSize is the fixed 4-byte ICMP header size (type, code,
// checksum; no type-specific fields are modeled, since this stack never
// transmits ICMP and only optionally forwards received datagrams to the
// host unparsed).
const ICMPHeaderSize = 4

// ICMPHeader is the type/code/checksum triple common to every ICMP
// message.
type ICMPHeader struct {
	Type     uint8
	Code     uint8
	Checksum uint16
}

// Marshal encodes h into a 4-byte wire-order header.
func (h ICMPHeader) Marshal() []byte {
	staging := make([]byte, ICMPHeaderSize)
	staging[0] = h.Type
	staging[1] = h.Code
	binary.LittleEndian.PutUint16(staging[2:4], h.Checksum)

	out := make([]byte, ICMPHeaderSize)
	wire.FlipCopy(wire.ICMPHeaderSchedule, out, staging)
	return out
}

// UnmarshalICMPHeader decodes a 4-byte ICMP header from the front of buf.
func UnmarshalICMPHeader(buf []byte) (ICMPHeader, bool) {
	if len(buf) < ICMPHeaderSize {
		return ICMPHeader{}, false
	}
	staging := make([]byte, ICMPHeaderSize)
	wire.FlipCopy(wire.ICMPHeaderSchedule, staging, buf[:ICMPHeaderSize])

	return ICMPHeader{
		Type:     staging[0],
		Code:     staging[1],
		Checksum: binary.LittleEndian.Uint16(staging[2:4]),
	}, true
}
