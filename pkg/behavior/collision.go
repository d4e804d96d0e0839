package behavior

import "github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"

// fallbackNormal separates two bodies sitting exactly on top of each other.
var fallbackNormal = geometry.Vector2D{X: 1, Y: 0}

// collide resolves an overlap between a and b as an elastic swap: both
// bodies exchange velocity and heading, then each is pushed back by half the
// overlap along the line of centers so they end exactly minDist apart.
// It reports whether the bodies were overlapping.
func collide(a, b *Body, minDist float64) bool {
	delta := b.Pos.Sub(a.Pos)
	dist := delta.Len()
	overlap := minDist - dist
	if overlap <= 0 {
		return false
	}

	normal := fallbackNormal
	if dist > 0 {
		normal = delta.Mul(1 / dist)
	}

	a.Vel, b.Vel = b.Vel, a.Vel
	a.Heading, b.Heading = b.Heading, a.Heading

	push := normal.Mul(0.5 * overlap)
	a.Pos = a.Pos.Sub(push)
	b.Pos = b.Pos.Add(push)
	return true
}

// resolveCollisions checks body i against every other body of the live
// population. Earlier resolutions are visible to later pairs.
func (f *Flock) resolveCollisions(i int) {
	minDist := 2 * f.settings.BodyRadius
	me := &f.bodies[i]
	for j := range f.bodies {
		if j == i {
			continue
		}
		other := &f.bodies[j]
		if collide(me, other, minDist) {
			f.collisions++
			f.boundary(me)
			f.boundary(other)
		}
	}
}
