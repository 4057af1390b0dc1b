// Package arp implements gratuitous ARP announcement construction and
// the (deliberately unimplemented) incoming-ARP ingest path.
package arp

import (
	"github.com/dantte-lp/gohyphaip/internal/headers"
	"github.com/dantte-lp/gohyphaip/internal/hostio"
	"github.com/dantte-lp/gohyphaip/internal/hyphaerr"
)

// Announce builds a gratuitous ARP request announcing (mac, ip): both
// sender and target protocol address are ip, and the target hardware
// address is the broadcast address.
func Announce(mac hostio.MAC, ip hostio.IPv4) []byte {
	return headers.NewARPRequest(mac, ip).Marshal()
}

// Process handles a received ARP packet. The original implementation
// only ever counts the received bytes and explicitly declines to update
// its cache or answer requests; this port preserves that behavior
// rather than completing it, since doing so would change the wire
// contract described by the specification rather than just porting it.
func Process(span []byte) error {
	if _, ok := headers.UnmarshalARPPacket(span); !ok {
		return hyphaerr.ErrInvalidSpan
	}
	return hyphaerr.ErrNotImplemented
}
