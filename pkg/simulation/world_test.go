package simulation

import (
	"context"
	"errors"
	"testing"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/behavior"
	"github.com/tochemey/goakt/v3/log"
)

func smallConfig() *Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 400, 300
	cfg.PopulationSize = 40
	cfg.Seed = 99
	return cfg
}

func newTestWorld(t *testing.T, cfg *Config) *World {
	t.Helper()
	ctx := context.Background()
	w, err := NewWorld(ctx, cfg, log.DiscardLogger)
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	t.Cleanup(func() {
		if err := w.Stop(ctx); err != nil {
			t.Errorf("Stop() error = %v", err)
		}
	})
	return w
}

func TestWorld_InitialSnapshot(t *testing.T) {
	cfg := smallConfig()
	w := newTestWorld(t, cfg)

	snap := w.Snapshot()
	if snap == nil {
		t.Fatal("Snapshot() = nil before the first step")
	}
	if snap.Step != 0 {
		t.Errorf("initial Step = %d; want 0", snap.Step)
	}
	if len(snap.Bodies) != cfg.PopulationSize {
		t.Errorf("initial population = %d; want %d", len(snap.Bodies), cfg.PopulationSize)
	}
	if snap.Width != cfg.Width || snap.Height != cfg.Height || snap.BodyRadius != cfg.BodyRadius {
		t.Errorf("snapshot geometry = %vx%v r=%v; want %vx%v r=%v",
			snap.Width, snap.Height, snap.BodyRadius, cfg.Width, cfg.Height, cfg.BodyRadius)
	}
}

func TestWorld_Step(t *testing.T) {
	cfg := smallConfig()
	w := newTestWorld(t, cfg)
	ctx := context.Background()

	var snap *behavior.Snapshot
	for i := 1; i <= 5; i++ {
		var err error
		snap, err = w.Step(ctx)
		if err != nil {
			t.Fatalf("Step() #%d error = %v", i, err)
		}
		if snap.Step != uint64(i) {
			t.Errorf("Step() #%d returned snapshot of step %d", i, snap.Step)
		}
	}
	if w.Snapshot() != snap {
		t.Error("Snapshot() does not return the latest stepped state")
	}
}

func TestWorld_MatchesDirectEngine(t *testing.T) {
	// Same seed, same settings: the actor must not alter the dynamics.
	cfg := smallConfig()
	w := newTestWorld(t, cfg)

	direct, err := behavior.NewFlock(cfg.Settings())
	if err != nil {
		t.Fatalf("NewFlock() error = %v", err)
	}

	var snap *behavior.Snapshot
	for i := 0; i < 10; i++ {
		direct.Step()
		if snap, err = w.Step(context.Background()); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
	}

	want := direct.Bodies()
	for i := range want {
		if snap.Bodies[i] != want[i] {
			t.Fatalf("body %d: actor %+v, engine %+v", i, snap.Bodies[i], want[i])
		}
	}
}

func TestWorld_RunFrames(t *testing.T) {
	var trace []string
	w := newTestWorld(t, smallConfig())
	renderer := &fakeRenderer{trace: &trace}

	frames, err := RunFrames(context.Background(), w, &quitAfter{n: 3, trace: &trace}, renderer, 0)
	if err != nil {
		t.Fatalf("RunFrames() error = %v", err)
	}
	if frames != 3 {
		t.Errorf("frames = %d; want 3", frames)
	}
	for i, step := range renderer.rendered {
		if step != uint64(i+1) {
			t.Errorf("frame %d rendered step %d; want %d", i, step, i+1)
		}
	}
}

func TestNewWorld_InvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.RepulsionRadius = 500
	if _, err := NewWorld(context.Background(), cfg, log.DiscardLogger); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewWorld() error = %v; want ErrInvalidConfig", err)
	}
}

func BenchmarkWorld_Step(b *testing.B) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Seed = 1
	w, err := NewWorld(ctx, cfg, log.DiscardLogger)
	if err != nil {
		b.Fatalf("NewWorld() error = %v", err)
	}
	defer w.Stop(ctx)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := w.Step(ctx); err != nil {
			b.Fatalf("Step() error = %v", err)
		}
	}
}
