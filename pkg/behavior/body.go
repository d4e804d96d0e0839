package behavior

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
)

// Body represents a single agent of the flock.
// Heading is in degrees and always agrees with Vel: Heading = atan2(Vel.Y, Vel.X).
// Fields are exported so renderers can read them from a Snapshot.
type Body struct {
	Pos     geometry.Vector2D
	Vel     geometry.Vector2D
	Heading float64
}

// NewBody creates a body at pos cruising at speed along heading (degrees).
func NewBody(pos geometry.Vector2D, heading, speed float64) Body {
	return Body{
		Pos:     pos,
		Vel:     geometry.NewVectorHeading(speed, heading),
		Heading: geometry.NormalizeDegrees(heading),
	}
}

// Speed is the magnitude of the velocity, the body's cruising speed.
func (b *Body) Speed() float64 {
	return b.Vel.Len()
}

// SyncHeading re-derives the heading from the velocity.
// A body at rest keeps its previous heading.
func (b *Body) SyncHeading() {
	if b.Vel.IsZero() {
		return
	}
	b.Heading = b.Vel.Heading()
}

// SetHeading points the body along heading (degrees) without changing its speed.
func (b *Body) SetHeading(heading float64) {
	b.Vel = geometry.NewVectorHeading(b.Speed(), heading)
	b.Heading = geometry.NormalizeDegrees(heading)
}

// applyTurn snaps the heading to desired when it is within maxTurn degrees.
// Otherwise the heading moves by exactly maxTurn in the sign of
// AngleDifference(current, desired), which is away from desired. The capped
// step direction shapes the whole flock, do not flip it.
func (b *Body) applyTurn(desired, maxTurn float64) {
	diff := geometry.AngleDifference(b.Heading, desired)
	heading := desired
	if math.Abs(diff) > maxTurn {
		heading = b.Heading + math.Copysign(maxTurn, diff)
	}
	b.SetHeading(heading)
}
