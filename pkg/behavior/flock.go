// Package behavior implements the flock engine: a fixed population of bodies
// steered by repulsion, orientation and attraction zones inside a forward
// perception cone, with elastic swap collisions, a bounded turn rate and
// Gaussian heading noise.
package behavior

import (
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/noise"
)

// Flock owns the population and advances it one step at a time.
// It is not safe for concurrent use.
type Flock struct {
	settings Settings
	bodies   []Body
	// prev is the frozen copy of bodies taken at the start of a step.
	// The influence scan reads only prev; collisions mutate bodies.
	prev     []Body
	rng      *noise.Generator
	boundary Boundary
	grid     *spatialGrid

	steps      uint64
	collisions uint64
}

// Snapshot is a read-only copy of the population handed to renderers.
type Snapshot struct {
	Step       uint64
	Width      float64
	Height     float64
	BodyRadius float64
	Bodies     []Body
}

// NewFlock creates a population of s.PopulationSize bodies with random
// positions and headings, all cruising at s.MaxSpeed.
func NewFlock(s Settings) (*Flock, error) {
	f, err := newFlock(s)
	if err != nil {
		return nil, err
	}
	f.bodies = make([]Body, s.PopulationSize)
	for i := range f.bodies {
		pos := geometry.Vector2D{
			X: f.rng.Uniform() * s.Width,
			Y: f.rng.Uniform() * s.Height,
		}
		f.bodies[i] = NewBody(pos, f.rng.Uniform()*360, s.MaxSpeed)
	}
	return f, nil
}

// NewFlockWithBodies creates a flock from an explicit population.
// s.PopulationSize is ignored; headings are re-derived from velocities.
func NewFlockWithBodies(s Settings, bodies []Body) (*Flock, error) {
	f, err := newFlock(s)
	if err != nil {
		return nil, err
	}
	f.bodies = make([]Body, len(bodies))
	copy(f.bodies, bodies)
	for i := range f.bodies {
		f.bodies[i].SyncHeading()
	}
	f.settings.PopulationSize = len(f.bodies)
	return f, nil
}

func newFlock(s Settings) (*Flock, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	f := &Flock{
		settings: s,
		rng:      noise.New(s.Seed),
		boundary: boundaryFor(s),
	}
	if s.SpatialIndex {
		f.grid = newSpatialGrid(s.AttractionRadius)
	}
	return f, nil
}

// Step advances every body by one time step, in index order.
func (f *Flock) Step() {
	f.prev = append(f.prev[:0], f.bodies...)
	if f.grid != nil {
		f.grid.rebuild(f.prev)
	}
	for i := range f.bodies {
		f.updateBody(i)
	}
	f.steps++
}

// updateBody runs the per-body pipeline: steer, integrate, contain,
// collide, re-derive heading, perturb.
func (f *Flock) updateBody(i int) {
	f.steer(i)

	b := &f.bodies[i]
	b.Pos = b.Pos.Add(b.Vel.Mul(f.settings.Dt))
	f.boundary(b)

	f.resolveCollisions(i)

	b.SyncHeading()
	b.SetHeading(b.Heading + f.rng.Normal(0, f.settings.NoiseStdDev))
}

// steer turns body i in response to the heading its neighborhood asks for.
func (f *Flock) steer(i int) {
	desired, ok := f.influenceOn(i).desiredHeading()
	if !ok {
		return
	}
	f.bodies[i].applyTurn(desired, f.settings.maxTurn())
}

// Bodies returns a copy of the current population.
func (f *Flock) Bodies() []Body {
	out := make([]Body, len(f.bodies))
	copy(out, f.bodies)
	return out
}

// Snapshot returns a copy of the population along with the domain geometry.
func (f *Flock) Snapshot() *Snapshot {
	return &Snapshot{
		Step:       f.steps,
		Width:      f.settings.Width,
		Height:     f.settings.Height,
		BodyRadius: f.settings.BodyRadius,
		Bodies:     f.Bodies(),
	}
}

// Steps is the number of completed steps.
func (f *Flock) Steps() uint64 { return f.steps }

// Collisions is the number of pairwise overlaps resolved so far.
func (f *Flock) Collisions() uint64 { return f.collisions }

// Settings returns the settings the flock was built with.
func (f *Flock) Settings() Settings { return f.settings }

// Len is the population size.
func (f *Flock) Len() int { return len(f.bodies) }
