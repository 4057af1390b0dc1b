// Package wire implements the byte-order conversion and checksum
// primitives shared by every header codec in the stack: flip-copy (host
// record <-> wire record) and the 1's-complement checksum.
package wire

// Unit describes one run of same-sized fields in a flip-copy schedule: a
// field that is Bytes wide, repeated Count times.
type Unit struct {
	Bytes uint8
	Count uint8
}

// Schedule is an ordered list of Units describing how a structured record
// is laid out, field group by field group, for the purpose of reversing
// multi-byte fields between host and wire order. Unit size 1 means a
// straight copy; everything on the wire is big-endian and the headers
// package stages every multi-byte field little-endian, so the flip is
// always symmetric: running the same schedule a second time over its own
// output restores the original bytes.
type Schedule []Unit

// FlipCopy copies the units named by the schedule from src to dst,
// reversing the byte order within each multi-byte unit. It stops before
// the first unit that does not fit in both src and dst, and returns the
// number of bytes copied. There are no error returns: the caller is
// responsible for sizing dst and src to the schedule's total byte count.
func FlipCopy(schedule Schedule, dst, src []byte) int {
	copied := 0
	for _, unit := range schedule {
		n := int(unit.Bytes)
		for range int(unit.Count) {
			if copied+n > len(src) || copied+n > len(dst) {
				return copied
			}
			flipUnit(dst[copied:copied+n], src[copied:copied+n], n)
			copied += n
		}
	}
	return copied
}

// flipUnit reverses (or straight-copies, for n==1) a single field.
func flipUnit(dst, src []byte, n int) {
	if n == 1 {
		dst[0] = src[0]
		return
	}
	for i := range n {
		dst[i] = src[n-1-i]
	}
}

// Byte-group schedules for every wire header the stack knows how to
// encode/decode, transcribed field-for-field from the specification's
// §4.1 table.

// EthernetSchedule covers {destination(6), source(6)} as 12 straight
// bytes, followed by the ethertype (and, if VLAN is enabled, the VLAN
// TPID/TCI pair) as 16-bit units.
func EthernetSchedule(vlan bool) Schedule {
	count := uint8(1)
	if vlan {
		count = 3
	}
	return Schedule{
		{Bytes: 1, Count: 12},
		{Bytes: 2, Count: count},
	}
}

// IPv4HeaderSchedule covers the 20-byte IPv4 header: the version/IHL and
// DSCP/ECN bytes straight, total-length and identification as u16, the
// flags/fragment-offset group as a u16, TTL/protocol as bytes, checksum
// as u16, then the 8 address bytes straight.
var IPv4HeaderSchedule = Schedule{
	{Bytes: 1, Count: 2},
	{Bytes: 2, Count: 3},
	{Bytes: 1, Count: 2},
	{Bytes: 2, Count: 1},
	{Bytes: 1, Count: 8},
}

// UDPHeaderSchedule covers the 8-byte UDP header: four u16 fields.
var UDPHeaderSchedule = Schedule{
	{Bytes: 2, Count: 4},
}

// ICMPHeaderSchedule covers the 4-byte ICMP header: type and code as
// independent bytes (the original C struct packs them into one 16-bit
// bitfield container and flips them as a unit, which silently swaps
// type and code on a little-endian host; this port keeps them as the
// single bytes they actually are on the wire), followed by the u16
// checksum.
var ICMPHeaderSchedule = Schedule{
	{Bytes: 1, Count: 2},
	{Bytes: 2, Count: 1},
}

// ARPSchedule covers the 28-byte ARP packet: hardware-type and
// protocol-type as u16, hw-len and proto-len as independent bytes (a u16
// flip would swap them, as with ICMP's type and code), operation as u16,
// then sender-hw (6 bytes), sender-proto (4 bytes), target-hw (6 bytes),
// target-proto (4 bytes) as straight byte runs.
var ARPSchedule = Schedule{
	{Bytes: 2, Count: 2},
	{Bytes: 1, Count: 2},
	{Bytes: 2, Count: 1},
	{Bytes: 1, Count: 6},
	{Bytes: 1, Count: 4},
	{Bytes: 1, Count: 6},
	{Bytes: 1, Count: 4},
}

// IGMPSchedule covers the 8-byte IGMP packet: type and
// max-response-time as independent bytes (a u16 flip would swap them, as
// with ICMP's type and code), the u16 checksum, then the 4-byte group
// address straight.
var IGMPSchedule = Schedule{
	{Bytes: 1, Count: 2},
	{Bytes: 2, Count: 1},
	{Bytes: 1, Count: 4},
}
