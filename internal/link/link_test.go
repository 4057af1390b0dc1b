package link_test

import (
	"errors"
	"testing"

	"github.com/dantte-lp/gohyphaip/internal/addr"
	"github.com/dantte-lp/gohyphaip/internal/headers"
	"github.com/dantte-lp/gohyphaip/internal/hostio"
	"github.com/dantte-lp/gohyphaip/internal/hyphaerr"
	"github.com/dantte-lp/gohyphaip/internal/link"
)

var (
	ifaceMAC = hostio.MAC{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	peerMAC  = hostio.MAC{0x02, 0x00, 0x00, 0x00, 0x00, 0x02}
)

func frame(dst, src hostio.MAC, etherType headers.EtherType, vlan bool, vlanID uint16, payload []byte) []byte {
	h := headers.EthernetHeader{
		Destination: dst,
		Source:      src,
		EtherType:   etherType,
		VLANPresent: vlan,
		VLANTag:     vlanID,
	}
	return append(h.Marshal(), payload...)
}

func TestAcceptOwnUnicast(t *testing.T) {
	t.Parallel()

	f := frame(ifaceMAC, peerMAC, headers.EtherTypeIPv4, false, 0, []byte{1, 2, 3})
	h, payload, err := link.Accept(f, link.AcceptConfig{Interface: ifaceMAC})
	if err != nil {
		t.Fatalf("Accept() error: %v", err)
	}
	if h.Destination != ifaceMAC {
		t.Errorf("Destination = %v, want %v", h.Destination, ifaceMAC)
	}
	if string(payload) != "\x01\x02\x03" {
		t.Errorf("payload = %v, want [1 2 3]", payload)
	}
}

func TestAcceptAcceptsForeignUnicastWhenFilteringDisabled(t *testing.T) {
	t.Parallel()

	// MacFilterEnabled false means the filter step is skipped entirely:
	// any destination MAC is accepted, matching a promiscuous-style
	// deployment that relies on the driver, not this layer, to narrow
	// which frames even reach RunOnce.
	f := frame(peerMAC, ifaceMAC, headers.EtherTypeIPv4, false, 0, nil)
	_, _, err := link.Accept(f, link.AcceptConfig{Interface: ifaceMAC})
	if err != nil {
		t.Errorf("err = %v, want nil", err)
	}
}

func TestAcceptRejectsForeignUnicastWhenFilterEnabledAndAbsent(t *testing.T) {
	t.Parallel()

	f := frame(peerMAC, ifaceMAC, headers.EtherTypeIPv4, false, 0, nil)
	cfg := link.AcceptConfig{
		Interface:        ifaceMAC,
		MacFilterEnabled: true,
		MacFilterLookup:  func(hostio.MAC) bool { return false },
	}
	_, _, err := link.Accept(f, cfg)
	if !errors.Is(err, hyphaerr.ErrMacRejected) {
		t.Errorf("err = %v, want ErrMacRejected", err)
	}
}

// denyAll is a MacFilterLookup that never matches, used to isolate one
// acceptance branch at a time: with MacFilterEnabled true and a lookup
// that always misses, only the destination/multicast/broadcast branches
// being exercised can still lead to acceptance.
func denyAll(hostio.MAC) bool { return false }

func TestAcceptMulticastRequiresFlag(t *testing.T) {
	t.Parallel()

	mcastMAC, _ := addr.MulticastMAC(hostio.IPv4{224, 0, 0, 1})
	f := frame(mcastMAC, peerMAC, headers.EtherTypeIPv4, false, 0, nil)
	base := link.AcceptConfig{Interface: ifaceMAC, MacFilterEnabled: true, MacFilterLookup: denyAll}

	withoutFlag := base
	withoutFlag.AllowAnyMulticast = false
	if _, _, err := link.Accept(f, withoutFlag); !errors.Is(err, hyphaerr.ErrMacRejected) {
		t.Errorf("without flag: err = %v, want ErrMacRejected", err)
	}

	withFlag := base
	withFlag.AllowAnyMulticast = true
	if _, _, err := link.Accept(f, withFlag); err != nil {
		t.Errorf("with flag: err = %v, want nil", err)
	}
}

func TestAcceptBroadcastRequiresFlag(t *testing.T) {
	t.Parallel()

	f := frame(addr.EthernetBroadcast, peerMAC, headers.EtherTypeARP, false, 0, nil)
	base := link.AcceptConfig{Interface: ifaceMAC, MacFilterEnabled: true, MacFilterLookup: denyAll}

	withoutFlag := base
	withoutFlag.AllowAnyBroadcast = false
	if _, _, err := link.Accept(f, withoutFlag); !errors.Is(err, hyphaerr.ErrMacRejected) {
		t.Errorf("without flag: err = %v, want ErrMacRejected", err)
	}

	withFlag := base
	withFlag.AllowAnyBroadcast = true
	if _, _, err := link.Accept(f, withFlag); err != nil {
		t.Errorf("with flag: err = %v, want nil", err)
	}
}

func TestAcceptMacFilterLookup(t *testing.T) {
	t.Parallel()

	other := hostio.MAC{0x02, 0x00, 0x00, 0x00, 0x00, 0x03}
	f := frame(other, peerMAC, headers.EtherTypeIPv4, false, 0, nil)

	cfg := link.AcceptConfig{
		Interface:        ifaceMAC,
		MacFilterEnabled: true,
		MacFilterLookup:  func(dst hostio.MAC) bool { return dst == other },
	}
	if _, _, err := link.Accept(f, cfg); err != nil {
		t.Errorf("filtered-in MAC rejected: %v", err)
	}

	cfg.MacFilterLookup = func(hostio.MAC) bool { return false }
	if _, _, err := link.Accept(f, cfg); !errors.Is(err, hyphaerr.ErrMacRejected) {
		t.Errorf("filtered-out MAC err = %v, want ErrMacRejected", err)
	}
}

func TestAcceptRejectsUnknownEtherType(t *testing.T) {
	t.Parallel()

	f := frame(ifaceMAC, peerMAC, 0x88CC, false, 0, nil)
	_, _, err := link.Accept(f, link.AcceptConfig{Interface: ifaceMAC})
	if !errors.Is(err, hyphaerr.ErrEthernetTypeRejected) {
		t.Errorf("err = %v, want ErrEthernetTypeRejected", err)
	}
}

func TestAcceptStaticVLANFiltering(t *testing.T) {
	t.Parallel()

	f := frame(ifaceMAC, peerMAC, headers.EtherTypeIPv4, true, 5, nil)

	cfg := link.AcceptConfig{Interface: ifaceMAC, VLANEnabled: true, VLANID: 5}
	if _, _, err := link.Accept(f, cfg); err != nil {
		t.Errorf("matching VLAN ID rejected: %v", err)
	}

	cfg.VLANID = 6
	if _, _, err := link.Accept(f, cfg); !errors.Is(err, hyphaerr.ErrStaticVLANFiltered) {
		t.Errorf("mismatched VLAN ID err = %v, want ErrStaticVLANFiltered", err)
	}
}

func TestAcceptTruncatedFrame(t *testing.T) {
	t.Parallel()

	_, _, err := link.Accept([]byte{1, 2, 3}, link.AcceptConfig{Interface: ifaceMAC})
	if !errors.Is(err, hyphaerr.ErrInvalidSpan) {
		t.Errorf("err = %v, want ErrInvalidSpan", err)
	}
}

func TestResolveDestinationMACMulticast(t *testing.T) {
	t.Parallel()

	iface := hostio.NetworkInterface{MAC: ifaceMAC, Address: hostio.IPv4{192, 168, 1, 1}, Netmask: addr.ClassCNetmask}
	mac := link.ResolveDestinationMAC(hostio.IPv4{224, 0, 0, 1}, iface, func(hostio.IPv4) (hostio.MAC, bool) {
		t.Fatal("arp lookup should not be consulted for multicast")
		return hostio.MAC{}, false
	})
	want, _ := addr.MulticastMAC(hostio.IPv4{224, 0, 0, 1})
	if mac != want {
		t.Errorf("mac = %v, want %v", mac, want)
	}
}

func TestResolveDestinationMACLimitedBroadcast(t *testing.T) {
	t.Parallel()

	iface := hostio.NetworkInterface{MAC: ifaceMAC, Address: hostio.IPv4{192, 168, 1, 1}, Netmask: addr.ClassCNetmask}
	mac := link.ResolveDestinationMAC(addr.LimitedBroadcast, iface, nil)
	if mac != addr.EthernetBroadcast {
		t.Errorf("mac = %v, want broadcast", mac)
	}
}

func TestResolveDestinationMACOnLinkCacheHit(t *testing.T) {
	t.Parallel()

	iface := hostio.NetworkInterface{MAC: ifaceMAC, Address: hostio.IPv4{192, 168, 1, 1}, Netmask: addr.ClassCNetmask}
	target := hostio.IPv4{192, 168, 1, 42}
	mac := link.ResolveDestinationMAC(target, iface, func(ip hostio.IPv4) (hostio.MAC, bool) {
		if ip != target {
			t.Errorf("lookup ip = %v, want %v", ip, target)
		}
		return peerMAC, true
	})
	if mac != peerMAC {
		t.Errorf("mac = %v, want %v", mac, peerMAC)
	}
}

func TestResolveDestinationMACOffLinkUsesGateway(t *testing.T) {
	t.Parallel()

	gateway := hostio.IPv4{192, 168, 1, 254}
	iface := hostio.NetworkInterface{MAC: ifaceMAC, Address: hostio.IPv4{192, 168, 1, 1}, Netmask: addr.ClassCNetmask, Gateway: gateway}
	off := hostio.IPv4{10, 0, 0, 5}

	mac := link.ResolveDestinationMAC(off, iface, func(ip hostio.IPv4) (hostio.MAC, bool) {
		if ip != gateway {
			t.Errorf("lookup ip = %v, want gateway %v", ip, gateway)
		}
		return peerMAC, true
	})
	if mac != peerMAC {
		t.Errorf("mac = %v, want %v", mac, peerMAC)
	}
}

// TestResolveDestinationMACUnresolved exercises a unicast destination
// with no ARP cache entry: this stack never sends ARP requests to
// populate one, so resolution falls back to the broadcast MAC rather
// than failing.
func TestResolveDestinationMACUnresolved(t *testing.T) {
	t.Parallel()

	iface := hostio.NetworkInterface{MAC: ifaceMAC, Address: hostio.IPv4{192, 168, 1, 1}, Netmask: addr.ClassCNetmask}
	mac := link.ResolveDestinationMAC(hostio.IPv4{192, 168, 1, 42}, iface, func(hostio.IPv4) (hostio.MAC, bool) {
		return hostio.MAC{}, false
	})
	if mac != addr.EthernetBroadcast {
		t.Errorf("mac = %v, want broadcast fallback", mac)
	}
}

func TestComposeRoundTrip(t *testing.T) {
	t.Parallel()

	payload := []byte{0xAA, 0xBB}
	out := link.Compose(link.ComposeConfig{
		Source:      ifaceMAC,
		Destination: peerMAC,
		EtherType:   headers.EtherTypeIPv4,
	}, payload)

	h, n, ok := headers.UnmarshalEthernetHeader(out)
	if !ok {
		t.Fatal("UnmarshalEthernetHeader() failed on composed frame")
	}
	if h.Destination != peerMAC || h.Source != ifaceMAC || h.EtherType != headers.EtherTypeIPv4 {
		t.Errorf("header = %+v, want dst=%v src=%v type=IPv4", h, peerMAC, ifaceMAC)
	}
	if string(out[n:]) != string(payload) {
		t.Errorf("payload = %v, want %v", out[n:], payload)
	}
}

func TestComposeWithVLAN(t *testing.T) {
	t.Parallel()

	out := link.Compose(link.ComposeConfig{
		Source:      ifaceMAC,
		Destination: peerMAC,
		EtherType:   headers.EtherTypeARP,
		VLANEnabled: true,
		VLANID:      7,
	}, nil)

	h, _, ok := headers.UnmarshalEthernetHeader(out)
	if !ok {
		t.Fatal("UnmarshalEthernetHeader() failed on composed frame")
	}
	if !h.VLANPresent || h.VLANTag != 7 {
		t.Errorf("VLANPresent/VLANTag = %v/%d, want true/7", h.VLANPresent, h.VLANTag)
	}
}
