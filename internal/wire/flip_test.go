package wire_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/dantte-lp/gohyphaip/internal/wire"
)

func u16Record(words ...uint16) []byte {
	buf := make([]byte, len(words)*2)
	for i, w := range words {
		binary.BigEndian.PutUint16(buf[i*2:i*2+2], w)
	}
	return buf
}

func TestFlipCopyU16RoundTrip(t *testing.T) {
	t.Parallel()

	schedule := wire.Schedule{{Bytes: 2, Count: 3}}
	in := u16Record(0xDEAD, 0xC0DE, 0xFACE)
	want := u16Record(0xADDE, 0xDEC0, 0xCEFA)

	flipped := make([]byte, len(in))
	if n := wire.FlipCopy(schedule, flipped, in); n != len(in) {
		t.Fatalf("FlipCopy copied %d bytes, want %d", n, len(in))
	}
	if !bytes.Equal(flipped, want) {
		t.Fatalf("flip = % x, want % x", flipped, want)
	}

	back := make([]byte, len(in))
	wire.FlipCopy(schedule, back, flipped)
	if !bytes.Equal(back, in) {
		t.Fatalf("round trip = % x, want % x", back, in)
	}
}

func TestFlipCopyU32RoundTrip(t *testing.T) {
	t.Parallel()

	schedule := wire.Schedule{{Bytes: 4, Count: 3}}
	in := make([]byte, 12)
	binary.BigEndian.PutUint32(in[0:4], 0xDEADFFCC)
	binary.BigEndian.PutUint32(in[4:8], 0xB00CC0DE)
	binary.BigEndian.PutUint32(in[8:12], 0xAAEEFACE)

	want := make([]byte, 12)
	binary.BigEndian.PutUint32(want[0:4], 0xCCFFADDE)
	binary.BigEndian.PutUint32(want[4:8], 0xDEC00CB0)
	binary.BigEndian.PutUint32(want[8:12], 0xCEFAEEAA)

	flipped := make([]byte, 12)
	wire.FlipCopy(schedule, flipped, in)
	if !bytes.Equal(flipped, want) {
		t.Fatalf("flip = % x, want % x", flipped, want)
	}

	back := make([]byte, 12)
	wire.FlipCopy(schedule, back, flipped)
	if !bytes.Equal(back, in) {
		t.Fatalf("round trip = % x, want % x", back, in)
	}
}

func TestFlipCopyTruncatesOnShortBuffer(t *testing.T) {
	t.Parallel()

	schedule := wire.Schedule{{Bytes: 2, Count: 3}}
	in := u16Record(0x1234, 0x5678, 0x9ABC)
	dst := make([]byte, 3) // one full unit and half of the next

	n := wire.FlipCopy(schedule, dst, in)
	if n != 2 {
		t.Fatalf("FlipCopy with short dst copied %d bytes, want 2", n)
	}
}
