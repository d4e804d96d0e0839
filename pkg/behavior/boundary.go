package behavior

import "github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"

// A Boundary brings a body that just moved back inside the domain.
type Boundary func(b *Body)

// PeriodicBoundary wraps positions around the edges. Velocity is untouched.
func PeriodicBoundary(width, height float64) Boundary {
	return func(b *Body) {
		b.Pos.X = geometry.Wrap(b.Pos.X, width)
		b.Pos.Y = geometry.Wrap(b.Pos.Y, height)
	}
}

// ReflectiveBoundary mirrors a body that crossed a wall back inside and
// negates the velocity component normal to that wall.
func ReflectiveBoundary(width, height float64) Boundary {
	return func(b *Body) {
		var bounced bool
		b.Pos.X, b.Vel.X, bounced = reflect(b.Pos.X, b.Vel.X, width)
		if bounced {
			b.SyncHeading()
		}
		b.Pos.Y, b.Vel.Y, bounced = reflect(b.Pos.Y, b.Vel.Y, height)
		if bounced {
			b.SyncHeading()
		}
	}
}

func reflect(x, v, extent float64) (float64, float64, bool) {
	switch {
	case x < 0:
		x = -x
	case x > extent:
		x = 2*extent - x
	default:
		return x, v, false
	}
	// a single mirror is not enough when the step was longer than the domain
	x = min(max(x, 0), extent)
	return x, -v, true
}

func boundaryFor(s Settings) Boundary {
	if s.Boundary == BoundaryReflective {
		return ReflectiveBoundary(s.Width, s.Height)
	}
	return PeriodicBoundary(s.Width, s.Height)
}
