package utils

import (
	"math"
)

// Epsilon is the tolerance used for zero-length and zero-denominator checks.
const Epsilon = 1e-9

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// WrapAngle returns theta expressed in (-pi, pi].
func WrapAngle(theta float64) float64 {
	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return 0
	}
	wrapped := math.Mod(theta+math.Pi, 2*math.Pi)
	if wrapped <= 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped - math.Pi
}

// ShortestAngularDistance returns the signed rotation in (-pi, pi] that takes
// current onto target.
func ShortestAngularDistance(target, current float64) float64 {
	return WrapAngle(target - current)
}

// InterpolateAngle moves from a toward b along the shortest arc by the fraction by.
func InterpolateAngle(a, b, by float64) float64 {
	return WrapAngle(a + ShortestAngularDistance(b, a)*by)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampMagnitude limits |v| to limit, keeping the sign of v.
func ClampMagnitude(v, limit float64) float64 {
	if math.Abs(v) > limit {
		return math.Copysign(limit, v)
	}
	return v
}

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// Square returns n*n; math.Pow(x, 2) is slow.
func Square(n float64) float64 {
	return n * n
}
