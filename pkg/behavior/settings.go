package behavior

import (
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/geometry"
)

// BoundaryMode selects how the domain edges behave.
type BoundaryMode string

const (
	// BoundaryPeriodic wraps bodies around: the domain is a torus.
	BoundaryPeriodic BoundaryMode = "periodic"
	// BoundaryReflective bounces bodies off the walls.
	BoundaryReflective BoundaryMode = "reflective"
)

// ErrInvalidSettings is returned when Settings cannot drive a simulation.
var ErrInvalidSettings = errors.New("invalid flock settings")

// Settings controls the physics constants for the simulation.
// Angles are in degrees, MaxTurningRate in degrees per time unit.
type Settings struct {
	Width  float64
	Height float64

	BodyRadius     float64
	PopulationSize int
	MaxSpeed       float64
	Dt             float64

	RepulsionRadius   float64 // Personal space, repulsion dominates inside it
	OrientationRadius float64 // Alignment band
	AttractionRadius  float64 // Cohesion band, nothing is seen beyond it

	PerceptionAngle float64 // Full width of the forward cone
	MaxTurningRate  float64
	NoiseStdDev     float64

	Boundary     BoundaryMode
	SpatialIndex bool   // Use a uniform grid for the neighbor scan
	Seed         uint64 // 0 seeds from the wall clock
}

// DefaultSettings returns the classic 300-body setup on a 1200x800 domain.
func DefaultSettings() Settings {
	return Settings{
		Width:             1200,
		Height:            800,
		BodyRadius:        8,
		PopulationSize:    300,
		MaxSpeed:          15,
		Dt:                0.1,
		RepulsionRadius:   15,
		OrientationRadius: 64,
		AttractionRadius:  100,
		PerceptionAngle:   200,
		MaxTurningRate:    40,
		NoiseStdDev:       5.5,
		Boundary:          BoundaryPeriodic,
		SpatialIndex:      false,
		Seed:              0,
	}
}

// Validate reports the first inconsistency found in s.
func (s Settings) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: domain %vx%v must be positive", ErrInvalidSettings, s.Width, s.Height)
	case s.BodyRadius < 0:
		return fmt.Errorf("%w: body radius %v is negative", ErrInvalidSettings, s.BodyRadius)
	case s.PopulationSize < 0:
		return fmt.Errorf("%w: population size %d is negative", ErrInvalidSettings, s.PopulationSize)
	case s.MaxSpeed < 0:
		return fmt.Errorf("%w: max speed %v is negative", ErrInvalidSettings, s.MaxSpeed)
	case s.MaxSpeed > 0 && s.MaxSpeed < geometry.Epsilon:
		// velocity components below Epsilon are rounded to zero
		return fmt.Errorf("%w: max speed %v is below %v", ErrInvalidSettings, s.MaxSpeed, geometry.Epsilon)
	case s.Dt <= 0:
		return fmt.Errorf("%w: time step %v must be positive", ErrInvalidSettings, s.Dt)
	case s.RepulsionRadius <= 0 || s.RepulsionRadius > s.OrientationRadius || s.OrientationRadius > s.AttractionRadius:
		return fmt.Errorf("%w: radii must satisfy 0 < repulsion (%v) <= orientation (%v) <= attraction (%v)",
			ErrInvalidSettings, s.RepulsionRadius, s.OrientationRadius, s.AttractionRadius)
	case s.PerceptionAngle <= 0 || s.PerceptionAngle > 360:
		return fmt.Errorf("%w: perception angle %v must be in (0, 360]", ErrInvalidSettings, s.PerceptionAngle)
	case s.MaxTurningRate < 0:
		return fmt.Errorf("%w: max turning rate %v is negative", ErrInvalidSettings, s.MaxTurningRate)
	case s.NoiseStdDev < 0:
		return fmt.Errorf("%w: noise stddev %v is negative", ErrInvalidSettings, s.NoiseStdDev)
	}
	switch s.Boundary {
	case BoundaryPeriodic, BoundaryReflective:
	default:
		return fmt.Errorf("%w: unknown boundary %q", ErrInvalidSettings, s.Boundary)
	}
	return nil
}

// maxTurn is the largest heading change allowed in one step.
func (s Settings) maxTurn() float64 {
	return s.MaxTurningRate * s.Dt
}
