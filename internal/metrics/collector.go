// Package hyphametrics bridges the engine's internal stats.Statistics
// snapshot to Prometheus. Unlike a push-style collector that increments
// its own counters as events happen, the engine already owns every
// counter exclusively (stats.Statistics is accumulated in-process with
// no locking); this package only needs to read a snapshot on scrape, so
// Collector implements prometheus.Collector directly over a supplied
// StatsProvider rather than keeping a second copy of the counters.
package hyphametrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dantte-lp/gohyphaip/internal/stats"
)

const namespace = "gohyphaip"

// StatsProvider returns the current statistics snapshot. Engine.GetStatistics
// satisfies this signature directly.
type StatsProvider func() stats.Statistics

// Collector exposes stats.Statistics as Prometheus metrics, computed on
// every scrape from the provider rather than cached between scrapes.
type Collector struct {
	provider StatsProvider

	layerResult  *prometheus.Desc
	throughput   *prometheus.Desc
	arpActivity  *prometheus.Desc
	frameOutcome *prometheus.Desc
}

// NewCollector builds a Collector reading from provider. The caller
// registers it against a prometheus.Registerer of its choosing; no
// registration happens here, matching prometheus.Collector's usual
// construction contract.
func NewCollector(provider StatsProvider) *Collector {
	return &Collector{
		provider: provider,
		layerResult: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "layer_packets_total"),
			"Accepted/rejected packet counts per protocol layer.",
			[]string{"layer", "outcome"}, nil,
		),
		throughput: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "throughput_bytes_total"),
			"Bytes moved per protocol layer and direction.",
			[]string{"layer", "direction"}, nil,
		),
		arpActivity: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "arp_activity_total"),
			"ARP cache activity counters (lookups, announces, additions, removals).",
			[]string{"kind"}, nil,
		),
		frameOutcome: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "frame_outcome_total"),
			"Host frame allocator outcomes (acquires, releases, failures).",
			[]string{"outcome"}, nil,
		),
	}
}

// Describe sends every metric description Collect can emit.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.layerResult
	ch <- c.throughput
	ch <- c.arpActivity
	ch <- c.frameOutcome
}

// Collect reads one statistics snapshot and emits it as constant metrics.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.provider()

	layers := map[string]stats.LayerResult{
		"mac":       s.MAC,
		"ethertype": s.EtherType,
		"ip":        s.IP,
		"udp":       s.UDP,
		"icmp":      s.ICMP,
		"unknown":   s.Unknown,
	}
	for layer, result := range layers {
		ch <- prometheus.MustNewConstMetric(c.layerResult, prometheus.CounterValue, float64(result.Accepted), layer, "accepted")
		ch <- prometheus.MustNewConstMetric(c.layerResult, prometheus.CounterValue, float64(result.Rejected), layer, "rejected")
	}

	counters := map[string]stats.Throughput{
		"mac":  s.Counter.MAC,
		"arp":  s.Counter.ARP,
		"ipv4": s.Counter.IPv4,
		"udp":  s.Counter.UDP,
		"icmp": s.Counter.ICMP,
		"igmp": s.Counter.IGMP,
	}
	for layer, t := range counters {
		ch <- prometheus.MustNewConstMetric(c.throughput, prometheus.CounterValue, float64(t.RX.Bytes), layer, "rx")
		ch <- prometheus.MustNewConstMetric(c.throughput, prometheus.CounterValue, float64(t.TX.Bytes), layer, "tx")
	}

	arpKinds := map[string]uint64{
		"lookups":   s.ARP.Lookups,
		"announces": s.ARP.Announces,
		"additions": s.ARP.Additions,
		"removals":  s.ARP.Removals,
	}
	for kind, v := range arpKinds {
		ch <- prometheus.MustNewConstMetric(c.arpActivity, prometheus.CounterValue, float64(v), kind)
	}

	frameOutcomes := map[string]uint64{
		"acquires": s.Frames.Acquires,
		"releases": s.Frames.Releases,
		"failures": s.Frames.Failures,
	}
	for outcome, v := range frameOutcomes {
		ch <- prometheus.MustNewConstMetric(c.frameOutcome, prometheus.CounterValue, float64(v), outcome)
	}
}
