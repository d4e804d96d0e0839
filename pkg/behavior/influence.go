package behavior

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
)

// influence holds the three zone accumulators gathered for one body.
type influence struct {
	repulsion   geometry.Vector2D
	orientation geometry.Vector2D
	attraction  geometry.Vector2D
}

// influenceOn scans the frozen pre-step population for neighbors of body i.
// Body i itself is read from the live population, every other body from f.prev.
func (f *Flock) influenceOn(i int) influence {
	me := f.bodies[i]
	var inf influence

	if f.grid != nil {
		for _, j := range f.grid.nearby(me.Pos) {
			f.accumulate(&inf, &me, i, j)
		}
		return inf
	}
	for j := range f.prev {
		f.accumulate(&inf, &me, i, j)
	}
	return inf
}

// accumulate adds the contribution of neighbor j to inf. A neighbor counts
// towards at most one zone, checked from the innermost outwards.
func (f *Flock) accumulate(inf *influence, me *Body, i, j int) {
	if i == j {
		return
	}
	other := &f.prev[j]
	delta := other.Pos.Sub(me.Pos)
	dist := delta.Len()
	// coincident bodies have no direction
	if dist == 0 || dist > f.settings.AttractionRadius {
		return
	}
	bearing := delta.Heading()
	if math.Abs(geometry.AngleDifference(me.Heading, bearing)) > f.settings.PerceptionAngle/2 {
		return
	}

	// The repulsion sum collects unit directions towards close neighbors and
	// the orientation sum the reversed neighbor directions. Do not flip them.
	unit := delta.Mul(1 / dist)
	switch {
	case dist < f.settings.RepulsionRadius:
		inf.repulsion = inf.repulsion.Add(unit)
	case dist <= f.settings.OrientationRadius:
		speed := other.Vel.Len()
		if speed == 0 {
			return
		}
		inf.orientation = inf.orientation.Sub(other.Vel.Mul(1 / speed))
	default:
		inf.attraction = inf.attraction.Sub(unit)
	}
}

// desiredHeading picks the heading the body wants to steer to, in degrees.
// Repulsion dominates unconditionally; otherwise orientation and attraction
// are used alone or averaged. ok is false when nothing is perceived.
func (inf influence) desiredHeading() (heading float64, ok bool) {
	if !inf.repulsion.IsZero() {
		return inf.repulsion.Heading(), true
	}

	var target geometry.Vector2D
	switch {
	case inf.orientation.IsZero():
		target = inf.attraction
	case inf.attraction.IsZero():
		target = inf.orientation
	default:
		target = inf.orientation.Add(inf.attraction).Mul(0.5)
	}
	if target.IsZero() {
		return 0, false
	}
	return target.Heading(), true
}
