package engine

import (
	"github.com/dantte-lp/gohyphaip/internal/hostio"
	"github.com/dantte-lp/gohyphaip/internal/udp"
)

// udpTransmit adapts hostio.MetaData to udp.TransmitConfig and returns
// the chunked datagrams ready for IPv4 encapsulation.
func udpTransmit(payload []byte, meta hostio.MetaData, useChecksum bool, maxPayload int) [][]byte {
	return udp.Transmit(payload, udp.TransmitConfig{
		Source:          meta.SourceAddress,
		Destination:     meta.DestinationAddress,
		SourcePort:      meta.SourcePort,
		DestinationPort: meta.DestinationPort,
		UseChecksum:     useChecksum,
		MaxPayload:      maxPayload,
	})
}
