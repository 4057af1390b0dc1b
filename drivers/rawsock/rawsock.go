//go:build linux

// Package rawsock implements hostio.Host over a Linux AF_PACKET/SOCK_RAW
// socket bound to one interface, for embedders that want to own the
// Ethernet MAC directly rather than go through a TAP device.
package rawsock

import (
	"encoding/binary"
	"fmt"
	"net"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/dantte-lp/gohyphaip/internal/hostio"
)

const frameSize = 2048

var framePool = sync.Pool{
	New: func() any {
		buf := make([]byte, frameSize)
		return &buf
	},
}

// htons converts a 16-bit value from host to network byte order, needed
// because AF_PACKET's sll_protocol and the socket() protocol argument
// are both taken in network byte order.
func htons(v uint16) uint16 {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return binary.NativeEndian.Uint16(b[:])
}

// Socket wraps one AF_PACKET raw socket bound to a single interface,
// receiving and transmitting complete Ethernet frames.
type Socket struct {
	fd      int
	ifIndex int

	mu       sync.Mutex
	reportFn func(status error, funcName string, line int)
}

// Open binds a new raw socket to the named interface, receiving every
// ethertype (ETH_P_ALL). It does not put the interface into promiscuous
// mode.
func Open(ifName string) (*Socket, error) {
	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, int(htons(unix.ETH_P_ALL)))
	if err != nil {
		return nil, fmt.Errorf("rawsock: socket: %w", err)
	}

	iface, err := net.InterfaceByName(ifName)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("rawsock: lookup interface %q: %w", ifName, err)
	}

	addr := unix.SockaddrLinklayer{
		Protocol: htons(unix.ETH_P_ALL),
		Ifindex:  iface.Index,
	}
	if err := unix.Bind(fd, &addr); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("rawsock: bind to %q: %w", ifName, err)
	}

	return &Socket{fd: fd, ifIndex: iface.Index}, nil
}

// Close releases the underlying file descriptor.
func (s *Socket) Close() error {
	return unix.Close(s.fd)
}

// Acquire returns a pooled frame buffer.
func (s *Socket) Acquire() *hostio.Frame {
	bufp, ok := framePool.Get().(*[]byte)
	if !ok {
		return nil
	}
	return &hostio.Frame{Buf: *bufp}
}

// Release returns frame's buffer to the pool.
func (s *Socket) Release(frame *hostio.Frame) error {
	if frame == nil {
		return fmt.Errorf("rawsock: release of nil frame")
	}
	buf := frame.Buf
	framePool.Put(&buf)
	return nil
}

// Receive reads one Ethernet frame from the socket into frame.Buf.
func (s *Socket) Receive(frame *hostio.Frame) error {
	n, _, err := unix.Recvfrom(s.fd, frame.Buf, 0)
	if err != nil {
		return fmt.Errorf("rawsock receive: %w", err)
	}
	frame.Len = n
	return nil
}

// Transmit writes frame's significant bytes onto the wire.
func (s *Socket) Transmit(frame *hostio.Frame) error {
	addr := unix.SockaddrLinklayer{
		Protocol: htons(unix.ETH_P_ALL),
		Ifindex:  s.ifIndex,
	}
	if err := unix.Sendto(s.fd, frame.Bytes(), 0, &addr); err != nil {
		return fmt.Errorf("rawsock transmit: %w", err)
	}
	return nil
}

// Print forwards to the installed diagnostic sink, if any.
func (s *Socket) Print(format string, args ...any) {
	s.Report(fmt.Errorf(format, args...), "rawsock.Print", 0)
}

// GetMonotonicTimestamp is a placeholder; embedders compose Socket with
// their own clock source the way cmd/hyphaip does.
func (s *Socket) GetMonotonicTimestamp() int64 { return 0 }

// Report forwards to the sink installed via SetDiagnostics, or is a
// no-op if none was installed.
func (s *Socket) Report(status error, funcName string, line int) {
	s.mu.Lock()
	fn := s.reportFn
	s.mu.Unlock()
	if fn != nil {
		fn(status, funcName, line)
	}
}

// SetDiagnostics installs the sink Report and Print forward to.
func (s *Socket) SetDiagnostics(fn func(status error, funcName string, line int)) {
	s.mu.Lock()
	s.reportFn = fn
	s.mu.Unlock()
}

// ReceiveUDP is declared only so *Socket alone satisfies hostio.Host;
// real embedders compose Socket behind a type that delivers datagrams
// to the application (see cmd/hyphaip).
func (s *Socket) ReceiveUDP(meta *hostio.MetaData, payload []byte) error {
	return nil
}

