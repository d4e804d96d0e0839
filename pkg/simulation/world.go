package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/behavior"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ErrNoSnapshot is returned when the flock actor did not publish its state in time.
var ErrNoSnapshot = errors.New("flock actor published no snapshot")

// FlockActor owns the flock engine. Ticks are processed one at a time by the
// actor mailbox, so a step always completes before the next one starts.
type FlockActor struct {
	cfg        *Config
	flock      *behavior.Flock
	snapshotCh chan *behavior.Snapshot

	// --- Benchmark Stats ---
	stepCount   int
	lastLogTime time.Time
}

var _ actor.Actor = (*FlockActor)(nil)

// NewFlockActor creates the actor; the population is built in PreStart.
// The latest snapshot is published on snapshotCh, replacing an unread one.
func NewFlockActor(snapshotCh chan *behavior.Snapshot, cfg *Config) *FlockActor {
	return &FlockActor{
		cfg:         cfg,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (f *FlockActor) PreStart(ctx *actor.Context) error {
	flock, err := behavior.NewFlock(f.cfg.Settings())
	if err != nil {
		return fmt.Errorf("failed to create flock: %w", err)
	}
	f.flock = flock
	ctx.ActorSystem().Logger().Infof("Flock is spawning %d bodies in a %vx%v %s domain",
		flock.Len(), f.cfg.Width, f.cfg.Height, f.cfg.Boundary)
	f.pushSnapshot()
	return nil
}

func (f *FlockActor) Receive(ctx *actor.ReceiveContext) {
	switch ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Info("Flock started.")

	// The Main Simulation Step (Driven by the frame loop)
	case *emptypb.Empty:
		f.flock.Step()
		f.stepCount++
		ctx.Logger().Debugf("step %d done, %d collisions so far", f.flock.Steps(), f.flock.Collisions())

		f.logBenchmarks(ctx)
		f.pushSnapshot()
		ctx.Response(wrapperspb.UInt64(f.flock.Steps()))

	default:
		ctx.Unhandled()
	}
}

func (f *FlockActor) PostStop(ctx *actor.Context) error {
	if f.flock != nil {
		ctx.ActorSystem().Logger().Infof("Flock is shutdown after %d steps and %d collisions",
			f.flock.Steps(), f.flock.Collisions())
	}
	return nil
}

func (f *FlockActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if elapsed := time.Since(f.lastLogTime); elapsed >= time.Second {
		ctx.Logger().Infof("📊 STEP RATE: %.1f/sec | Bodies: %d | Collisions: %d",
			float64(f.stepCount)/elapsed.Seconds(), f.flock.Len(), f.flock.Collisions())
		f.stepCount = 0
		f.lastLogTime = time.Now()
	}
}

// pushSnapshot publishes the current state without ever blocking the actor:
// a snapshot the frontend has not read yet is replaced by the newer one.
func (f *FlockActor) pushSnapshot() {
	snap := f.flock.Snapshot()
	for {
		select {
		case f.snapshotCh <- snap:
			return
		default:
			select {
			case <-f.snapshotCh:
			default:
			}
		}
	}
}

// World is the facade frontends use: it runs the actor system hosting the
// flock actor and turns each step into a synchronous request.
type World struct {
	system    actor.ActorSystem
	flockPID  *actor.PID
	snapshots chan *behavior.Snapshot
	latest    *behavior.Snapshot
	timeout   time.Duration
}

// NewWorld starts an actor system logging to logger and spawns the flock.
func NewWorld(ctx context.Context, cfg *Config, logger log.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	system, err := actor.NewActorSystem("FlockWorld",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}

	// 1. Create the channel the actor publishes snapshots on
	snapshots := make(chan *behavior.Snapshot, 1)

	// 2. Spawn the Flock Actor
	pid, err := system.Spawn(ctx, "flock", NewFlockActor(snapshots, cfg))
	if err != nil {
		_ = system.Stop(ctx)
		return nil, fmt.Errorf("failed to spawn flock: %w", err)
	}

	w := &World{
		system:    system,
		flockPID:  pid,
		snapshots: snapshots,
		timeout:   cfg.StepTimeout(),
	}

	// 3. Wait for the initial population
	select {
	case w.latest = <-snapshots:
	case <-time.After(w.timeout):
		_ = system.Stop(ctx)
		return nil, ErrNoSnapshot
	}
	return w, nil
}

// Step advances the flock by one step and returns the resulting snapshot.
func (w *World) Step(ctx context.Context) (*behavior.Snapshot, error) {
	reply, err := actor.Ask(ctx, w.flockPID, &emptypb.Empty{}, w.timeout)
	if err != nil {
		return nil, fmt.Errorf("flock step failed: %w", err)
	}
	steps, ok := reply.(*wrapperspb.UInt64Value)
	if !ok {
		return nil, fmt.Errorf("unexpected reply %T from flock actor", reply)
	}

	// The actor publishes before it replies
	select {
	case w.latest = <-w.snapshots:
	default:
	}
	if w.latest.Step != steps.GetValue() {
		return nil, fmt.Errorf("%w for step %d", ErrNoSnapshot, steps.GetValue())
	}
	return w.latest, nil
}

// Snapshot returns the most recent state without stepping.
func (w *World) Snapshot() *behavior.Snapshot {
	return w.latest
}

// Stop shuts the actor system down.
func (w *World) Stop(ctx context.Context) error {
	if err := w.system.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop actor system: %w", err)
	}
	return nil
}
