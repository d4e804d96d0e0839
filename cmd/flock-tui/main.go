package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/internal/cli"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/terminal"
)

func main() {
	configFile := flag.String("config", "", "path to a .json or .toml config file (defaults when empty)")
	logFile := flag.String("log", "", "write logs to this file (discarded when empty)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	if err := run(*configFile, *logFile, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "flock-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, logFile, logLevel string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := cli.LoadConfig(configFile)
	if err != nil {
		return err
	}

	// logs must not land on the screen
	var out io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger, err := cli.NewLogger(logLevel, out)
	if err != nil {
		return err
	}

	world, err := simulation.NewWorld(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer world.Stop(context.Background())

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	term, err := terminal.New(screen, cfg.ShowHUD)
	if err != nil {
		return err
	}
	defer term.Close()

	frames, err := simulation.RunFrames(ctx, world, term, term, cfg.FrameDelay())
	logger.Infof("terminal frontend stopped after %d frames", frames)
	return err
}
