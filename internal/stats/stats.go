// Package stats defines the counters the engine accumulates across its
// lifetime and exposes through GetStatistics, mirroring the original's
// statistics struct field for field.
package stats

// LayerResult is the accepted/rejected tally kept for each protocol
// layer (MAC, ethertype, IP, UDP, ICMP, unknown-protocol).
type LayerResult struct {
	Accepted uint64
	Rejected uint64
}

// DirectionalThroughput tracks bytes and packets moved in one direction.
type DirectionalThroughput struct {
	Bytes   uint64
	Packets uint64
}

// Throughput tracks both directions of traffic for one layer.
type Throughput struct {
	RX DirectionalThroughput
	TX DirectionalThroughput
}

// Counter groups per-layer throughput.
type Counter struct {
	MAC  Throughput
	ARP  Throughput
	IPv4 Throughput
	UDP  Throughput
	ICMP Throughput
	IGMP Throughput
}

// ArpCounter tracks ARP cache activity distinct from ARP traffic volume.
type ArpCounter struct {
	Lookups   uint64
	Announces uint64
	Additions uint64
	Removals  uint64
}

// FrameCounter tracks the host frame allocator's usage.
type FrameCounter struct {
	Acquires uint64
	Releases uint64
	Failures uint64
}

// Statistics is the full counter set GetStatistics returns.
type Statistics struct {
	MAC       LayerResult
	EtherType LayerResult
	IP        LayerResult
	UDP       LayerResult
	ICMP      LayerResult
	Unknown   LayerResult

	ARP     ArpCounter
	Counter Counter
	Frames  FrameCounter
}
