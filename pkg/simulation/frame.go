package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/behavior"
)

// Stepper advances the simulation by one step.
type Stepper interface {
	Step(ctx context.Context) (*behavior.Snapshot, error)
}

// Renderer draws one frame from a read-only snapshot.
type Renderer interface {
	Render(snap *behavior.Snapshot) error
}

// Input reports, once per frame, whether the operator asked to quit.
type Input interface {
	QuitRequested() bool
}

// RunFrames drives the frame loop: poll quit, step, render, wait.
// It returns nil when quit is requested or ctx is done, and the number of
// frames fully rendered.
func RunFrames(ctx context.Context, world Stepper, input Input, renderer Renderer, frameDelay time.Duration) (int, error) {
	frames := 0
	for {
		if ctx.Err() != nil || input.QuitRequested() {
			return frames, nil
		}

		snap, err := world.Step(ctx)
		if err != nil {
			return frames, err
		}
		if err := renderer.Render(snap); err != nil {
			return frames, fmt.Errorf("failed to render frame %d: %w", frames, err)
		}
		frames++

		if frameDelay > 0 {
			select {
			case <-ctx.Done():
				return frames, nil
			case <-time.After(frameDelay):
			}
		}
	}
}
