package simulation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/behavior"
)

type fakeStepper struct {
	steps uint64
	err   error
	trace *[]string
}

func (f *fakeStepper) Step(context.Context) (*behavior.Snapshot, error) {
	*f.trace = append(*f.trace, "step")
	if f.err != nil {
		return nil, f.err
	}
	f.steps++
	return &behavior.Snapshot{Step: f.steps}, nil
}

type fakeRenderer struct {
	rendered []uint64
	err      error
	trace    *[]string
}

func (f *fakeRenderer) Render(snap *behavior.Snapshot) error {
	*f.trace = append(*f.trace, "render")
	f.rendered = append(f.rendered, snap.Step)
	return f.err
}

// quitAfter requests quit on the n-th poll.
type quitAfter struct {
	n, polls int
	trace    *[]string
}

func (q *quitAfter) QuitRequested() bool {
	*q.trace = append(*q.trace, "poll")
	q.polls++
	return q.polls > q.n
}

func TestRunFrames(t *testing.T) {
	t.Run("Quit is checked at frame boundaries", func(t *testing.T) {
		var trace []string
		stepper := &fakeStepper{trace: &trace}
		renderer := &fakeRenderer{trace: &trace}
		frames, err := RunFrames(context.Background(), stepper, &quitAfter{n: 2, trace: &trace}, renderer, 0)
		if err != nil {
			t.Fatalf("RunFrames() error = %v", err)
		}
		if frames != 2 {
			t.Errorf("frames = %d; want 2", frames)
		}
		want := []string{"poll", "step", "render", "poll", "step", "render", "poll"}
		if len(trace) != len(want) {
			t.Fatalf("trace = %v; want %v", trace, want)
		}
		for i := range want {
			if trace[i] != want[i] {
				t.Fatalf("trace = %v; want %v", trace, want)
			}
		}
		if renderer.rendered[1] != 2 {
			t.Errorf("second frame rendered step %d; want 2", renderer.rendered[1])
		}
	})

	t.Run("Quit before the first frame steps nothing", func(t *testing.T) {
		var trace []string
		stepper := &fakeStepper{trace: &trace}
		frames, _ := RunFrames(context.Background(), stepper, &quitAfter{n: 0, trace: &trace}, &fakeRenderer{trace: &trace}, 0)
		if frames != 0 || stepper.steps != 0 {
			t.Errorf("frames = %d, steps = %d; want 0, 0", frames, stepper.steps)
		}
	})

	t.Run("Step error stops the loop", func(t *testing.T) {
		var trace []string
		boom := errors.New("boom")
		_, err := RunFrames(context.Background(), &fakeStepper{err: boom, trace: &trace},
			&quitAfter{n: 5, trace: &trace}, &fakeRenderer{trace: &trace}, 0)
		if !errors.Is(err, boom) {
			t.Errorf("RunFrames() error = %v; want %v", err, boom)
		}
	})

	t.Run("Render error is wrapped", func(t *testing.T) {
		var trace []string
		boom := errors.New("no surface")
		_, err := RunFrames(context.Background(), &fakeStepper{trace: &trace},
			&quitAfter{n: 5, trace: &trace}, &fakeRenderer{err: boom, trace: &trace}, 0)
		if !errors.Is(err, boom) {
			t.Errorf("RunFrames() error = %v; want wrapped %v", err, boom)
		}
	})

	t.Run("Cancelled context ends a delayed loop", func(t *testing.T) {
		var trace []string
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		frames, err := RunFrames(ctx, &fakeStepper{trace: &trace},
			&quitAfter{n: 1 << 30, trace: &trace}, &fakeRenderer{trace: &trace}, 10*time.Millisecond)
		if err != nil {
			t.Errorf("RunFrames() error = %v; want nil", err)
		}
		if frames == 0 {
			t.Error("no frame rendered before the deadline")
		}
	})
}
