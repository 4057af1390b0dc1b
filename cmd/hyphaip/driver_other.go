//go:build !linux

package main

import (
	"fmt"

	"github.com/dantte-lp/gohyphaip/internal/config"
	"github.com/dantte-lp/gohyphaip/drivers/tap"
)

// openDriver opens the tap driver; rawsock requires Linux's AF_PACKET
// socket family and is unavailable on this build.
func openDriver(cfg *config.Config) (driver, func() error, error) {
	if cfg.Engine.Driver != "tap" {
		return nil, nil, fmt.Errorf("driver %q requires a linux build", cfg.Engine.Driver)
	}
	dev, err := tap.Open(cfg.Interface.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("open tap driver: %w", err)
	}
	return dev, dev.Close, nil
}
