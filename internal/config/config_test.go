package config_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dantte-lp/gohyphaip/internal/config"
)

const validInterfaceYAML = `
interface:
  name: "eth0"
  mac: "80:90:A0:12:34:56"
  address: "172.16.0.7"
  netmask: "255.240.0.0"
  gateway: "172.16.0.1"
`

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	if cfg.Engine.MTU != 1500 {
		t.Errorf("Engine.MTU = %d, want 1500", cfg.Engine.MTU)
	}
	if cfg.Engine.TTL != 64 {
		t.Errorf("Engine.TTL = %d, want 64", cfg.Engine.TTL)
	}
	if !cfg.Engine.VLANEnabled || cfg.Engine.VLANID != 1 {
		t.Errorf("Engine.VLANEnabled/VLANID = %v/%d, want true/1", cfg.Engine.VLANEnabled, cfg.Engine.VLANID)
	}
	if !cfg.Engine.UseIPChecksum || cfg.Engine.UseUDPChecksum {
		t.Errorf("Engine checksum defaults = %v/%v, want true/false", cfg.Engine.UseIPChecksum, cfg.Engine.UseUDPChecksum)
	}
	if cfg.Engine.ArpTableSize != 32 || cfg.Engine.MacFilterTableSize != 32 || cfg.Engine.IPv4FilterTableSize != 32 {
		t.Errorf("table sizes = %d/%d/%d, want 32/32/32", cfg.Engine.ArpTableSize, cfg.Engine.MacFilterTableSize, cfg.Engine.IPv4FilterTableSize)
	}
	if cfg.Metrics.Addr != ":9100" {
		t.Errorf("Metrics.Addr = %q, want %q", cfg.Metrics.Addr, ":9100")
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, "/metrics")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "json")
	}

	if !cfg.Features.AllowAnyLocalhost || !cfg.Features.AllowAnyMulticast || cfg.Features.AllowAnyBroadcast {
		t.Errorf("Features defaults unexpected: %+v", cfg.Features)
	}

	// Defaults plus a valid interface must pass validation.
	cfg.Interface.MAC = "80:90:A0:12:34:56"
	cfg.Interface.Address = "172.16.0.7"
	cfg.Interface.Netmask = "255.240.0.0"
	cfg.Interface.Gateway = "172.16.0.1"
	if err := config.Validate(cfg); err != nil {
		t.Errorf("DefaultConfig() + interface failed validation: %v", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	t.Parallel()

	yamlContent := validInterfaceYAML + `
engine:
  mtu: 1400
  ttl: 32
  driver: rawsock
metrics:
  addr: ":9200"
  path: "/custom-metrics"
log:
  level: "debug"
  format: "text"
`

	path := writeTemp(t, yamlContent)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Engine.MTU != 1400 {
		t.Errorf("Engine.MTU = %d, want 1400", cfg.Engine.MTU)
	}
	if cfg.Engine.TTL != 32 {
		t.Errorf("Engine.TTL = %d, want 32", cfg.Engine.TTL)
	}
	if cfg.Engine.Driver != "rawsock" {
		t.Errorf("Engine.Driver = %q, want %q", cfg.Engine.Driver, "rawsock")
	}
	if cfg.Metrics.Addr != ":9200" {
		t.Errorf("Metrics.Addr = %q, want %q", cfg.Metrics.Addr, ":9200")
	}
	if cfg.Metrics.Path != "/custom-metrics" {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, "/custom-metrics")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "text")
	}

	iface, err := cfg.Interface.NetworkInterface()
	if err != nil {
		t.Fatalf("NetworkInterface(): %v", err)
	}
	if iface.Address != [4]byte{172, 16, 0, 7} {
		t.Errorf("interface address = %v, want 172.16.0.7", iface.Address)
	}
}

func TestLoadMergesDefaults(t *testing.T) {
	t.Parallel()

	// Partial YAML: only override engine.mtu and log.level plus the
	// mandatory interface block. Everything else inherits from defaults.
	yamlContent := validInterfaceYAML + `
engine:
  mtu: 1400
log:
  level: "warn"
`

	path := writeTemp(t, yamlContent)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Engine.MTU != 1400 {
		t.Errorf("Engine.MTU = %d, want 1400", cfg.Engine.MTU)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}

	// Defaults should be preserved for everything untouched.
	if cfg.Engine.TTL != 64 {
		t.Errorf("Engine.TTL = %d, want default 64", cfg.Engine.TTL)
	}
	if cfg.Metrics.Addr != ":9100" {
		t.Errorf("Metrics.Addr = %q, want default %q", cfg.Metrics.Addr, ":9100")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want default %q", cfg.Log.Format, "json")
	}
	if cfg.Engine.Driver != "tap" {
		t.Errorf("Engine.Driver = %q, want default %q", cfg.Engine.Driver, "tap")
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	validInterface := config.InterfaceConfig{
		MAC:     "80:90:A0:12:34:56",
		Address: "172.16.0.7",
		Netmask: "255.240.0.0",
		Gateway: "172.16.0.1",
	}

	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr error
	}{
		{
			name: "missing interface mac",
			modify: func(cfg *config.Config) {
				cfg.Interface = validInterface
				cfg.Interface.MAC = ""
			},
			wantErr: config.ErrInvalidMAC,
		},
		{
			name: "invalid interface address",
			modify: func(cfg *config.Config) {
				cfg.Interface = validInterface
				cfg.Interface.Address = "not-an-ip"
			},
			wantErr: config.ErrInvalidIPv4,
		},
		{
			name: "mtu too small",
			modify: func(cfg *config.Config) {
				cfg.Interface = validInterface
				cfg.Engine.MTU = 10
			},
			wantErr: config.ErrInvalidMTU,
		},
		{
			name: "ttl zero",
			modify: func(cfg *config.Config) {
				cfg.Interface = validInterface
				cfg.Engine.TTL = 0
			},
			wantErr: config.ErrInvalidTTL,
		},
		{
			name: "vlan id out of range",
			modify: func(cfg *config.Config) {
				cfg.Interface = validInterface
				cfg.Engine.VLANID = 5000
			},
			wantErr: config.ErrInvalidVLANID,
		},
		{
			name: "zero table size",
			modify: func(cfg *config.Config) {
				cfg.Interface = validInterface
				cfg.Engine.ArpTableSize = 0
			},
			wantErr: config.ErrInvalidTableSize,
		},
		{
			name: "empty metrics addr",
			modify: func(cfg *config.Config) {
				cfg.Interface = validInterface
				cfg.Metrics.Addr = ""
			},
			wantErr: config.ErrEmptyMetricsAddr,
		},
		{
			name: "unknown driver",
			modify: func(cfg *config.Config) {
				cfg.Interface = validInterface
				cfg.Engine.Driver = "bogus"
			},
			wantErr: config.ErrInvalidDriver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.modify(cfg)

			err := config.Validate(cfg)
			if err == nil {
				t.Fatal("Validate() returned nil, want error")
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "DEBUG", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "INFO", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "WARN", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "Error", want: slog.LevelError},
		{input: "unknown", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "trace", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := config.ParseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadNonexistentFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load("/nonexistent/path/config.yml")
	if err == nil {
		t.Fatal("Load() returned nil error for nonexistent file")
	}
}

func TestEngineValues(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, validInterfaceYAML)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	values, err := cfg.ResolveEngine()
	if err != nil {
		t.Fatalf("ResolveEngine() error: %v", err)
	}
	if values.Interface.MAC != [6]byte{0x80, 0x90, 0xA0, 0x12, 0x34, 0x56} {
		t.Errorf("Interface.MAC = %v, want 80:90:A0:12:34:56", values.Interface.MAC)
	}
	if values.TTL != 64 {
		t.Errorf("TTL = %d, want 64", values.TTL)
	}
	if values.VLANID != 1 {
		t.Errorf("VLANID = %d, want 1", values.VLANID)
	}
}

// -------------------------------------------------------------------------
// Environment Variable Override Tests
// -------------------------------------------------------------------------

func TestLoadEnvOverrides(t *testing.T) {
	// Environment variable tests cannot be parallel because they modify
	// process-wide state (os.Setenv).

	path := writeTemp(t, validInterfaceYAML)

	t.Setenv("HYPHAIP_ENGINE_MTU", "1400")
	t.Setenv("HYPHAIP_LOG_LEVEL", "debug")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Engine.MTU != 1400 {
		t.Errorf("Engine.MTU = %d, want %d (from env)", cfg.Engine.MTU, 1400)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q (from env)", cfg.Log.Level, "debug")
	}
}

func TestLoadEnvOverridesMetrics(t *testing.T) {
	path := writeTemp(t, validInterfaceYAML)

	t.Setenv("HYPHAIP_METRICS_ADDR", ":9200")
	t.Setenv("HYPHAIP_METRICS_PATH", "/custom")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Metrics.Addr != ":9200" {
		t.Errorf("Metrics.Addr = %q, want %q (from env)", cfg.Metrics.Addr, ":9200")
	}
	if cfg.Metrics.Path != "/custom" {
		t.Errorf("Metrics.Path = %q, want %q (from env)", cfg.Metrics.Path, "/custom")
	}
}

// writeTemp creates a temporary YAML file and returns its path.
// The file is automatically cleaned up when the test finishes.
func writeTemp(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "hyphaip.yml")

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	return path
}
