package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dantte-lp/gohyphaip/internal/hostio"
)

// driver is the subset of hostio.Host a transport package (drivers/tap,
// drivers/rawsock) implements on its own; hostHandle composes one of
// them with a clock and a logger to produce a complete hostio.Host.
type driver interface {
	Acquire() *hostio.Frame
	Release(frame *hostio.Frame) error
	Receive(frame *hostio.Frame) error
	Transmit(frame *hostio.Frame) error
	SetDiagnostics(fn func(status error, funcName string, line int))
}

// hostHandle adapts a driver plus a logger into the engine's full
// hostio.Host/hostio.ICMPHost contract. Accepted UDP/ICMP datagrams are
// logged rather than forwarded anywhere further, matching the absence of
// any application demo in the specification's scope.
type hostHandle struct {
	d      driver
	logger *slog.Logger
}

// newHostHandle wires d's diagnostic sink to logger and returns the
// combined Host.
func newHostHandle(d driver, logger *slog.Logger) *hostHandle {
	h := &hostHandle{d: d, logger: logger}
	d.SetDiagnostics(h.Report)
	return h
}

func (h *hostHandle) Acquire() *hostio.Frame           { return h.d.Acquire() }
func (h *hostHandle) Release(frame *hostio.Frame) error { return h.d.Release(frame) }
func (h *hostHandle) Receive(frame *hostio.Frame) error { return h.d.Receive(frame) }
func (h *hostHandle) Transmit(frame *hostio.Frame) error { return h.d.Transmit(frame) }

func (h *hostHandle) Print(format string, args ...any) {
	h.logger.Debug("driver", slog.String("message", fmt.Sprintf(format, args...)))
}

// GetMonotonicTimestamp reports wall-clock nanoseconds since the Unix
// epoch; the engine only requires the value to be non-decreasing, which
// time.Now().UnixNano() satisfies in practice.
func (h *hostHandle) GetMonotonicTimestamp() int64 {
	return time.Now().UnixNano()
}

func (h *hostHandle) Report(status error, funcName string, line int) {
	if status == nil {
		return
	}
	h.logger.Warn("engine status",
		slog.String("error", status.Error()),
		slog.String("func", funcName),
		slog.Int("line", line),
	)
}

func (h *hostHandle) ReceiveUDP(meta *hostio.MetaData, payload []byte) error {
	h.logger.Info("udp datagram received",
		slog.Int("bytes", len(payload)),
		slog.Int("src_port", int(meta.SourcePort)),
		slog.Int("dst_port", int(meta.DestinationPort)),
	)
	return nil
}

func (h *hostHandle) ReceiveICMP(meta *hostio.MetaData, payload []byte) error {
	h.logger.Info("icmp message received",
		slog.Int("bytes", len(payload)),
	)
	return nil
}
