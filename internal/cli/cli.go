// Package cli holds the flag handling shared by the binaries.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/simulation"
	"github.com/tochemey/goakt/v3/log"
)

// LoadConfig returns the defaults when path is empty.
func LoadConfig(path string) (*simulation.Config, error) {
	if path == "" {
		return simulation.DefaultConfig(), nil
	}
	return simulation.LoadConfig(path)
}

// ParseLevel maps a -log-level flag value to a goakt log level.
func ParseLevel(name string) (log.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return log.DebugLevel, nil
	case "info", "":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarningLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InvalidLevel, fmt.Errorf("unknown log level %q", name)
	}
}

// NewLogger builds the actor system logger writing to w.
func NewLogger(level string, w io.Writer) (log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.New(lvl, w), nil
}
