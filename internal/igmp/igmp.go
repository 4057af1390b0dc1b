// Package igmp implements IGMPv2 membership report and leave message
// construction. This stack only ever sends these two message types; it
// never parses an incoming query.
package igmp

import (
	"github.com/dantte-lp/gohyphaip/internal/headers"
	"github.com/dantte-lp/gohyphaip/internal/hostio"
	"github.com/dantte-lp/gohyphaip/internal/wire"
)

// Build constructs the IGMPv2 message of the given type for group,
// with its checksum computed and filled in. TTL and IP Router Alert
// option are the transmitting layer's concern, not this package's: per
// the specification, this stack emits IGMP packets with an ordinary
// TTL of 64 and no Router Alert option, unlike most real
// implementations — an intentional simplification, not an oversight.
func Build(msgType headers.IGMPType, group hostio.IPv4) []byte {
	p := headers.IGMPPacket{Type: msgType, Group: group}
	buf := p.Marshal()
	sum := wire.Checksum(buf, nil)
	p.Checksum = ^sum
	return p.Marshal()
}

// MembershipReport builds an IGMPv2 Membership Report for group.
func MembershipReport(group hostio.IPv4) []byte {
	return Build(headers.IGMPTypeMembershipReportV2, group)
}

// LeaveGroup builds an IGMPv2 Leave Group message for group.
func LeaveGroup(group hostio.IPv4) []byte {
	return Build(headers.IGMPTypeLeaveGroup, group)
}
