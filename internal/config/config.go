// Package config manages gohyphaip configuration using koanf/v2.
//
// Supports YAML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dantte-lp/gohyphaip/internal/hostio"
)

// -------------------------------------------------------------------------
// Configuration Structures
// -------------------------------------------------------------------------

// Config holds the complete gohyphaip configuration.
type Config struct {
	Interface InterfaceConfig `koanf:"interface"`
	Features  FeaturesConfig  `koanf:"features"`
	Engine    EngineConfig    `koanf:"engine"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Log       LogConfig       `koanf:"log"`
}

// InterfaceConfig names the network interface the engine binds to: its
// own MAC/IPv4/netmask and default gateway, plus the host device name
// the chosen driver opens.
type InterfaceConfig struct {
	// Name is the host network interface to open (e.g., "eth0" or a tap
	// device name), consumed by the driver rather than the engine.
	Name    string `koanf:"name"`
	MAC     string `koanf:"mac"`
	Address string `koanf:"address"`
	Netmask string `koanf:"netmask"`
	Gateway string `koanf:"gateway"`
}

// NetworkInterface parses the string fields into the engine's binary
// address types, validating each along the way.
func (ic InterfaceConfig) NetworkInterface() (hostio.NetworkInterface, error) {
	mac, err := net.ParseMAC(ic.MAC)
	if err != nil || len(mac) != 6 {
		return hostio.NetworkInterface{}, fmt.Errorf("interface.mac %q: %w", ic.MAC, ErrInvalidMAC)
	}
	address, err := parseIPv4(ic.Address)
	if err != nil {
		return hostio.NetworkInterface{}, fmt.Errorf("interface.address %q: %w", ic.Address, err)
	}
	netmask, err := parseIPv4(ic.Netmask)
	if err != nil {
		return hostio.NetworkInterface{}, fmt.Errorf("interface.netmask %q: %w", ic.Netmask, err)
	}
	gateway, err := parseIPv4(ic.Gateway)
	if err != nil {
		return hostio.NetworkInterface{}, fmt.Errorf("interface.gateway %q: %w", ic.Gateway, err)
	}

	var iface hostio.NetworkInterface
	copy(iface.MAC[:], mac)
	iface.Address = address
	iface.Netmask = netmask
	iface.Gateway = gateway
	return iface, nil
}

func parseIPv4(s string) (hostio.IPv4, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return hostio.IPv4{}, ErrInvalidIPv4
	}
	v4 := ip.To4()
	if v4 == nil {
		return hostio.IPv4{}, ErrInvalidIPv4
	}
	var out hostio.IPv4
	copy(out[:], v4)
	return out, nil
}

// FeaturesConfig mirrors hostio.Features; broken out into its own koanf
// section so each flag can be overridden independently from a file or
// environment variable.
type FeaturesConfig struct {
	AllowAnyLocalhost  bool `koanf:"allow_any_localhost"`
	AllowAnyMulticast  bool `koanf:"allow_any_multicast"`
	AllowAnyBroadcast  bool `koanf:"allow_any_broadcast"`
	AllowMACFiltering  bool `koanf:"allow_mac_filtering"`
	AllowIPFiltering   bool `koanf:"allow_ip_filtering"`
	AllowARPCache      bool `koanf:"allow_arp_cache"`
	AllowVLANFiltering bool `koanf:"allow_vlan_filtering"`
}

// Features converts to hostio.Features.
func (fc FeaturesConfig) Features() hostio.Features {
	return hostio.Features{
		AllowAnyLocalhost:  fc.AllowAnyLocalhost,
		AllowAnyMulticast:  fc.AllowAnyMulticast,
		AllowAnyBroadcast:  fc.AllowAnyBroadcast,
		AllowMACFiltering:  fc.AllowMACFiltering,
		AllowIPFiltering:   fc.AllowIPFiltering,
		AllowARPCache:      fc.AllowARPCache,
		AllowVLANFiltering: fc.AllowVLANFiltering,
	}
}

// EngineConfig holds the remaining engine.Config knobs that aren't
// address or feature-flag shaped.
type EngineConfig struct {
	MTU                 int    `koanf:"mtu"`
	TTL                 int    `koanf:"ttl"`
	VLANEnabled         bool   `koanf:"vlan_enabled"`
	VLANID              int    `koanf:"vlan_id"`
	UseIPChecksum       bool   `koanf:"use_ip_checksum"`
	UseUDPChecksum      bool   `koanf:"use_udp_checksum"`
	ArpTableSize        int    `koanf:"arp_table_size"`
	MacFilterTableSize  int    `koanf:"mac_filter_table_size"`
	IPv4FilterTableSize int    `koanf:"ipv4_filter_table_size"`
	ExpirationTime      int64  `koanf:"expiration_time"`
	Driver              string `koanf:"driver"`
}

// MetricsConfig holds the Prometheus metrics endpoint configuration.
type MetricsConfig struct {
	// Addr is the HTTP listen address for the metrics endpoint (e.g., ":9100").
	Addr string `koanf:"addr"`
	// Path is the URL path for the metrics endpoint (e.g., "/metrics").
	Path string `koanf:"path"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	Level string `koanf:"level"`
	// Format is the log output format: "json" or "text".
	Format string `koanf:"format"`
}

// -------------------------------------------------------------------------
// Translating into engine.Config
// -------------------------------------------------------------------------

// EngineValues is the subset of engine.Config that can be built purely
// from configuration, without importing the engine package: the values
// are kept as plain fields so cmd/ can assemble the real engine.Config.
type EngineValues struct {
	Interface hostio.NetworkInterface
	Features  hostio.Features

	MTU int
	TTL uint8

	VLANEnabled bool
	VLANID      uint16

	UseIPChecksum  bool
	UseUDPChecksum bool

	ArpTableSize        int
	MacFilterTableSize  int
	IPv4FilterTableSize int
	ExpirationTime      int64
}

// ResolveEngine resolves the configured interface and engine knobs into
// EngineValues, ready for the caller to copy into an engine.Config. Named
// distinctly from the Engine field (EngineConfig) since Go does not allow
// a method and a field to share a name on the same struct.
func (c *Config) ResolveEngine() (EngineValues, error) {
	iface, err := c.Interface.NetworkInterface()
	if err != nil {
		return EngineValues{}, err
	}
	return EngineValues{
		Interface:           iface,
		Features:            c.Features.Features(),
		MTU:                 c.Engine.MTU,
		TTL:                 uint8(c.Engine.TTL),
		VLANEnabled:         c.Engine.VLANEnabled,
		VLANID:              uint16(c.Engine.VLANID),
		UseIPChecksum:       c.Engine.UseIPChecksum,
		UseUDPChecksum:      c.Engine.UseUDPChecksum,
		ArpTableSize:        c.Engine.ArpTableSize,
		MacFilterTableSize:  c.Engine.MacFilterTableSize,
		IPv4FilterTableSize: c.Engine.IPv4FilterTableSize,
		ExpirationTime:      c.Engine.ExpirationTime,
	}, nil
}

// -------------------------------------------------------------------------
// Defaults
// -------------------------------------------------------------------------

// DefaultConfig returns a Config populated with the specification's
// compile-time defaults (§6.3): MTU 1500, TTL 64, VLAN 1 enabled,
// 32-entry tables, IP checksum on and UDP checksum off. Interface
// fields are left empty; the caller (or a loaded file) must supply them.
func DefaultConfig() *Config {
	return &Config{
		Features: FeaturesConfig{
			AllowAnyLocalhost:  true,
			AllowAnyMulticast:  true,
			AllowAnyBroadcast:  false,
			AllowMACFiltering:  true,
			AllowIPFiltering:   true,
			AllowARPCache:      true,
			AllowVLANFiltering: true,
		},
		Engine: EngineConfig{
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
			Driver:              "tap",
		},
		Metrics: MetricsConfig{
			Addr: ":9100",
			Path: "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// -------------------------------------------------------------------------
// Loader
// -------------------------------------------------------------------------

// envPrefix is the environment variable prefix for gohyphaip configuration.
// Variables are named HYPHAIP_<section>_<key>, e.g., HYPHAIP_ENGINE_MTU.
const envPrefix = "HYPHAIP_"

// Load reads configuration from a YAML file at path, overlays environment
// variable overrides (HYPHAIP_ prefix), and merges on top of
// DefaultConfig(). Missing fields inherit defaults.
//
// Environment variable mapping:
//
//	HYPHAIP_INTERFACE_MAC   -> interface.mac
//	HYPHAIP_ENGINE_MTU      -> engine.mtu
//	HYPHAIP_METRICS_ADDR    -> metrics.addr
//	HYPHAIP_LOG_LEVEL       -> log.level
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := loadDefaults(k, defaults); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config from %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config from %s: %w", path, err)
	}

	return cfg, nil
}

// envKeyMapper transforms HYPHAIP_ENGINE_MTU -> engine.mtu.
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.Replace(s, "_", ".", 1)
}

// loadDefaults marshals the default config into koanf as the base layer.
func loadDefaults(k *koanf.Koanf, defaults *Config) error {
	defaultMap := map[string]any{
		"features.allow_any_localhost":  defaults.Features.AllowAnyLocalhost,
		"features.allow_any_multicast":  defaults.Features.AllowAnyMulticast,
		"features.allow_any_broadcast":  defaults.Features.AllowAnyBroadcast,
		"features.allow_mac_filtering":  defaults.Features.AllowMACFiltering,
		"features.allow_ip_filtering":   defaults.Features.AllowIPFiltering,
		"features.allow_arp_cache":      defaults.Features.AllowARPCache,
		"features.allow_vlan_filtering": defaults.Features.AllowVLANFiltering,
		"engine.mtu":                    defaults.Engine.MTU,
		"engine.ttl":                    defaults.Engine.TTL,
		"engine.vlan_enabled":           defaults.Engine.VLANEnabled,
		"engine.vlan_id":                defaults.Engine.VLANID,
		"engine.use_ip_checksum":        defaults.Engine.UseIPChecksum,
		"engine.use_udp_checksum":       defaults.Engine.UseUDPChecksum,
		"engine.arp_table_size":         defaults.Engine.ArpTableSize,
		"engine.mac_filter_table_size":  defaults.Engine.MacFilterTableSize,
		"engine.ipv4_filter_table_size": defaults.Engine.IPv4FilterTableSize,
		"engine.expiration_time":        defaults.Engine.ExpirationTime,
		"engine.driver":                 defaults.Engine.Driver,
		"metrics.addr":                  defaults.Metrics.Addr,
		"metrics.path":                  defaults.Metrics.Path,
		"log.level":                     defaults.Log.Level,
		"log.format":                    defaults.Log.Format,
	}

	for key, val := range defaultMap {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

// -------------------------------------------------------------------------
// Validation
// -------------------------------------------------------------------------

// Validation errors.
var (
	// ErrInvalidMAC indicates interface.mac did not parse as a 6-byte MAC.
	ErrInvalidMAC = errors.New("interface.mac is not a valid MAC address")

	// ErrInvalidIPv4 indicates an interface address field did not parse
	// as a dotted-quad IPv4 address.
	ErrInvalidIPv4 = errors.New("address is not a valid IPv4 address")

	// ErrInvalidMTU indicates engine.mtu is too small to carry an IPv4 header.
	ErrInvalidMTU = errors.New("engine.mtu must be greater than the IPv4 header size")

	// ErrInvalidTTL indicates engine.ttl is outside the representable range.
	ErrInvalidTTL = errors.New("engine.ttl must be between 1 and 255")

	// ErrInvalidVLANID indicates engine.vlan_id is outside the 12-bit VLAN ID space.
	ErrInvalidVLANID = errors.New("engine.vlan_id must be between 0 and 4094")

	// ErrInvalidTableSize indicates a filter/ARP table size is non-positive.
	ErrInvalidTableSize = errors.New("table size must be > 0")

	// ErrEmptyMetricsAddr indicates the metrics listen address is empty.
	ErrEmptyMetricsAddr = errors.New("metrics.addr must not be empty")

	// ErrInvalidDriver indicates engine.driver names an unrecognized driver.
	ErrInvalidDriver = errors.New("engine.driver must be \"tap\" or \"rawsock\"")
)

// ValidDrivers lists the recognized driver names.
var ValidDrivers = map[string]bool{
	"tap":     true,
	"rawsock": true,
}

// Validate checks the configuration for logical errors, including that
// interface.mac/address/netmask/gateway parse and that the engine knobs
// fall within the ranges the specification requires.
// Returns the first validation error encountered.
func Validate(cfg *Config) error {
	if _, err := cfg.Interface.NetworkInterface(); err != nil {
		return err
	}
	if cfg.Engine.MTU <= 20 {
		return ErrInvalidMTU
	}
	if cfg.Engine.TTL < 1 || cfg.Engine.TTL > 255 {
		return ErrInvalidTTL
	}
	if cfg.Engine.VLANID < 0 || cfg.Engine.VLANID > 4094 {
		return ErrInvalidVLANID
	}
	if cfg.Engine.ArpTableSize <= 0 || cfg.Engine.MacFilterTableSize <= 0 || cfg.Engine.IPv4FilterTableSize <= 0 {
		return ErrInvalidTableSize
	}
	if cfg.Metrics.Addr == "" {
		return ErrEmptyMetricsAddr
	}
	if !ValidDrivers[cfg.Engine.Driver] {
		return ErrInvalidDriver
	}
	return nil
}

// -------------------------------------------------------------------------
// Log Level Parsing
// -------------------------------------------------------------------------

// ParseLogLevel maps a configuration log level string to the corresponding
// slog.Level. Unknown values default to slog.LevelInfo.
//
// Recognized values: "debug", "info", "warn", "error" (case-insensitive).
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
