package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/internal/cli"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/display"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/simulation"
)

func main() {
	configFile := flag.String("config", "", "path to a .json or .toml config file (defaults when empty)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	if err := run(*configFile, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "flock: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, logLevel string) error {
	ctx := context.Background()

	cfg, err := cli.LoadConfig(configFile)
	if err != nil {
		return err
	}
	logger, err := cli.NewLogger(logLevel, os.Stdout)
	if err != nil {
		return err
	}

	world, err := simulation.NewWorld(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer world.Stop(ctx)

	ebiten.SetWindowSize(int(cfg.Width), int(cfg.Height))
	ebiten.SetWindowTitle("Flocking: repulsion, orientation, attraction")
	if cfg.FrameDelayMs > 0 {
		ebiten.SetTPS(max(1, 1000/cfg.FrameDelayMs))
	}

	// RunGame returns nil when Update returns ebiten.Termination
	if err := ebiten.RunGame(display.NewGame(ctx, world, cfg)); err != nil {
		return fmt.Errorf("window closed with error: %w", err)
	}
	return nil
}
