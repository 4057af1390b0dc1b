// Package tap implements hostio.Host over a Linux TAP device using
// songgao/water, so the engine can be driven against a real kernel
// network interface without a privileged raw socket.
package tap

import (
	"errors"
	"fmt"
	"sync"

	"github.com/songgao/water"

	"github.com/dantte-lp/gohyphaip/internal/hostio"
)

// frameSize is the largest frame buffer the pool hands out: a VLAN tag
// plus the largest MTU this stack is configured for still fits well
// under this.
const frameSize = 2048

// framePool provides reusable frame buffers for TAP I/O, the same
// pointer-to-slice sync.Pool shape used for zero-allocation packet
// buffers elsewhere in this codebase's lineage.
var framePool = sync.Pool{
	New: func() any {
		buf := make([]byte, frameSize)
		return &buf
	},
}

// Device wraps a TAP interface as a hostio.Host. Acquire/Release draw
// from framePool; Receive/Transmit read and write the TAP file
// descriptor directly.
type Device struct {
	iface *water.Interface

	mu       sync.Mutex
	reportFn func(status error, funcName string, line int)
}

// Open creates or attaches to the named TAP device. If name is empty,
// the kernel assigns one.
func Open(name string) (*Device, error) {
	iface, err := water.New(water.Config{
		DeviceType: water.TAP,
		PlatformSpecificParams: water.PlatformSpecificParams{
			Name: name,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open tap device %q: %w", name, err)
	}
	return &Device{iface: iface}, nil
}

// Name returns the kernel-assigned or requested interface name.
func (d *Device) Name() string {
	return d.iface.Name()
}

// Close releases the underlying TAP file descriptor.
func (d *Device) Close() error {
	return d.iface.Close()
}

// Acquire returns a pooled frame buffer.
func (d *Device) Acquire() *hostio.Frame {
	bufp, ok := framePool.Get().(*[]byte)
	if !ok {
		return nil
	}
	return &hostio.Frame{Buf: *bufp}
}

// Release returns frame's buffer to the pool.
func (d *Device) Release(frame *hostio.Frame) error {
	if frame == nil {
		return errors.New("tap: release of nil frame")
	}
	buf := frame.Buf
	framePool.Put(&buf)
	return nil
}

// Receive reads one Ethernet frame from the TAP device into frame.Buf.
func (d *Device) Receive(frame *hostio.Frame) error {
	n, err := d.iface.Read(frame.Buf)
	if err != nil {
		return fmt.Errorf("tap receive: %w", err)
	}
	frame.Len = n
	return nil
}

// Transmit writes frame's significant bytes to the TAP device.
func (d *Device) Transmit(frame *hostio.Frame) error {
	if _, err := d.iface.Write(frame.Bytes()); err != nil {
		return fmt.Errorf("tap transmit: %w", err)
	}
	return nil
}

// Print forwards to the configured report sink, or is a no-op if none
// was set via SetDiagnostics.
func (d *Device) Print(format string, args ...any) {
	if d.reportFn == nil {
		return
	}
	d.reportFn(fmt.Errorf(format, args...), "tap.Print", 0)
}

// GetMonotonicTimestamp is implemented by the caller's clock source in
// production use; Device itself has no notion of time, so embedders
// compose Device with their own hostio.Host wrapper when they need one.
// Exposed here only to satisfy straightforward embedding; returns 0.
func (d *Device) GetMonotonicTimestamp() int64 { return 0 }

// Report is a no-op unless SetDiagnostics installed a sink.
func (d *Device) Report(status error, funcName string, line int) {
	d.mu.Lock()
	fn := d.reportFn
	d.mu.Unlock()
	if fn != nil {
		fn(status, funcName, line)
	}
}

// SetDiagnostics installs the sink Report and Print forward to.
func (d *Device) SetDiagnostics(fn func(status error, funcName string, line int)) {
	d.mu.Lock()
	d.reportFn = fn
	d.mu.Unlock()
}

// ReceiveUDP is not meaningful on the raw device itself; embedders
// compose Device behind a type that also implements hostio.Host's
// ReceiveUDP (see cmd/hyphaip for the concrete wiring). Declared here
// only so *Device alone satisfies hostio.Host for tests that don't
// care about delivered datagrams.
func (d *Device) ReceiveUDP(meta *hostio.MetaData, payload []byte) error {
	return nil
}
