package engine

import "github.com/dantte-lp/gohyphaip/internal/hostio"

// Config is the engine's build-time configuration surface, ported from
// the specification's compile-time-constant table (§6.3) into ordinary
// runtime fields so one process can host more than one instance.
type Config struct {
	Interface hostio.NetworkInterface
	Features  hostio.Features

	MTU int
	TTL uint8

	VLANEnabled bool
	VLANID      uint16

	UseIPChecksum  bool
	UseUDPChecksum bool

	ArpTableSize       int
	MacFilterTableSize int
	IPv4FilterTableSize int

	// ExpirationTime is the lifetime, in the host clock's own units,
	// stamped onto every filter/ARP-cache entry at Populate time.
	ExpirationTime int64
}

// DefaultConfig returns the specification's default configuration for
// the given interface; callers typically start here and override only
// the fields they need.
func DefaultConfig(iface hostio.NetworkInterface) Config {
	return Config{
		Interface:           iface,
		Features:            hostio.DefaultFeatures(),
		MTU:                 1500,
		TTL:                 64,
		VLANEnabled:         true,
		VLANID:              1,
		UseIPChecksum:       true,
		UseUDPChecksum:      false,
		ArpTableSize:        32,
		MacFilterTableSize:  32,
		IPv4FilterTableSize: 32,
		ExpirationTime:      1_000_000_000_000,
	}
}
