package geometry

import "math"

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeDegrees maps any angle onto (-180, 180].
func NormalizeDegrees(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a <= -180 {
		a += 360
	} else if a > 180 {
		a -= 360
	}
	return a
}

// AngleDifference returns the signed shortest rotation a-b in degrees,
// in the range (-180, 180]. AngleDifference(170, -170) is -20, not 340.
func AngleDifference(a, b float64) float64 {
	diff := math.Mod(a-b+180, 360)
	if diff < 0 {
		diff += 360
	}
	diff -= 180
	if diff == -180 {
		return 180
	}
	return diff
}

// Wrap folds x into [0, extent) for a periodic domain.
func Wrap(x, extent float64) float64 {
	if x >= 0 && x < extent {
		return x
	}
	x = math.Mod(x, extent)
	if x < 0 {
		x += extent
	}
	// x+extent can round up to extent for tiny negative x
	if x >= extent {
		x = 0
	}
	return x
}
