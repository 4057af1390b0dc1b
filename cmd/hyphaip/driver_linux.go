//go:build linux

package main

import (
	"fmt"

	"github.com/dantte-lp/gohyphaip/internal/config"
	"github.com/dantte-lp/gohyphaip/drivers/rawsock"
	"github.com/dantte-lp/gohyphaip/drivers/tap"
)

// openDriver opens the driver named by cfg.Engine.Driver ("tap" or
// "rawsock"), binding to cfg.Interface.Name. rawsock is only available
// under this linux-tagged build; non-Linux builds fall back to tap only.
func openDriver(cfg *config.Config) (driver, func() error, error) {
	switch cfg.Engine.Driver {
	case "rawsock":
		sock, err := rawsock.Open(cfg.Interface.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("open rawsock driver: %w", err)
		}
		return sock, sock.Close, nil
	case "tap":
		dev, err := tap.Open(cfg.Interface.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("open tap driver: %w", err)
		}
		return dev, dev.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown driver %q", cfg.Engine.Driver)
	}
}
