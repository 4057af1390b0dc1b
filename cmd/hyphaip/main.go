// Command hyphaip runs the embeddable IPv4/UDP network stack against a
// real host network interface, driven by either a TAP device or a raw
// AF_PACKET socket, and exposes its counters on a Prometheus endpoint.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dantte-lp/gohyphaip/internal/config"
	"github.com/dantte-lp/gohyphaip/engine"
	hyphametrics "github.com/dantte-lp/gohyphaip/internal/metrics"
	appversion "github.com/dantte-lp/gohyphaip/internal/version"
)

func main() {
	os.Exit(run())
}

var configPath string

var rootCmd = &cobra.Command{
	Use:   "hyphaip",
	Short: "Driver-agnostic IPv4/UDP stack for a host-owned Ethernet interface",
	Long:  "hyphaip runs the packet-processing engine against a TAP device or a raw Ethernet socket.",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runDaemon(configPath)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file (YAML)")
	rootCmd.AddCommand(versionCmd())
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print hyphaip build information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(appversion.Full("hyphaip"))
		},
	}
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// runDaemon loads configuration, wires a driver into the engine, and runs
// the receive loop and metrics server until interrupted.
func runDaemon(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to load configuration",
			slog.String("error", err.Error()))
		return err
	}

	logger := newLogger(cfg.Log)
	logger.Info("hyphaip starting",
		slog.String("version", appversion.Version),
		slog.String("interface", cfg.Interface.Name),
		slog.String("driver", cfg.Engine.Driver),
		slog.String("metrics_addr", cfg.Metrics.Addr),
	)

	drv, closeDriver, err := openDriver(cfg)
	if err != nil {
		return fmt.Errorf("open driver: %w", err)
	}
	defer closeDriver()

	host := newHostHandle(drv, logger)

	values, err := cfg.ResolveEngine()
	if err != nil {
		return fmt.Errorf("resolve engine config: %w", err)
	}
	eng, err := engine.Initialize(engine.Config{
		Interface:           values.Interface,
		Features:            values.Features,
		MTU:                 values.MTU,
		TTL:                 values.TTL,
		VLANEnabled:         values.VLANEnabled,
		VLANID:              values.VLANID,
		UseIPChecksum:       values.UseIPChecksum,
		UseUDPChecksum:      values.UseUDPChecksum,
		ArpTableSize:        values.ArpTableSize,
		MacFilterTableSize:  values.MacFilterTableSize,
		IPv4FilterTableSize: values.IPv4FilterTableSize,
		ExpirationTime:      values.ExpirationTime,
	}, host)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	defer eng.Deinitialize()

	if err := eng.AnnounceArp(); err != nil {
		logger.Warn("gratuitous arp announce failed", slog.String("error", err.Error()))
	}

	reg := prometheus.NewRegistry()
	collector := hyphametrics.NewCollector(eng.GetStatistics)
	if err := reg.Register(collector); err != nil {
		return fmt.Errorf("register metrics collector: %w", err)
	}
	metricsSrv := newMetricsServer(cfg.Metrics, reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	lc := net.ListenConfig{}

	g.Go(func() error {
		logger.Info("metrics server listening",
			slog.String("addr", cfg.Metrics.Addr),
			slog.String("path", cfg.Metrics.Path))
		return listenAndServe(gCtx, &lc, metricsSrv, cfg.Metrics.Addr)
	})

	g.Go(func() error {
		return runEngineLoop(gCtx, eng, logger)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return metricsSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && gCtx.Err() == nil {
		return err
	}
	logger.Info("hyphaip stopped")
	return nil
}

// shutdownTimeout bounds how long the metrics server is given to drain
// active connections during graceful shutdown.
const shutdownTimeout = 5 * time.Second

// runEngineLoop drives RunOnce until ctx is cancelled. Rejections are
// already reported through the host's diagnostic sink by the engine
// itself, so errors here are only logged again at debug level.
func runEngineLoop(ctx context.Context, eng *engine.Engine, logger *slog.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if err := eng.RunOnce(); err != nil {
			logger.Debug("runonce", slog.String("error", err.Error()))
		}
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	level := config.ParseLogLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
