// Package navmath provides the degree-based trigonometry, angle normalization and
// small numeric helpers shared by the sight-reduction and fix packages.
package navmath

import (
	"math"

	"github.com/soniakeys/unit"
)

// Sin returns the sine of an angle in degrees.
func Sin(deg float64) float64 {
	return math.Sin(DegToRad(deg))
}

// Cos returns the cosine of an angle in degrees.
func Cos(deg float64) float64 {
	return math.Cos(DegToRad(deg))
}

// Tan returns the tangent of an angle in degrees.
func Tan(deg float64) float64 {
	return math.Tan(DegToRad(deg))
}

// Asin returns the arcsine in degrees. x is clamped to [-1, 1] first so that
// floating point overshoot near the poles does not produce NaN.
func Asin(x float64) float64 {
	return RadToDeg(math.Asin(Clamp(x, -1, 1)))
}

// Acos returns the arccosine in degrees, clamping x to [-1, 1].
func Acos(x float64) float64 {
	return RadToDeg(math.Acos(Clamp(x, -1, 1)))
}

// Atan2 returns atan2(y, x) in degrees.
func Atan2(y, x float64) float64 {
	return RadToDeg(math.Atan2(y, x))
}

// Normalize360 maps any angle to [0, 360) using a floored modulo, so negative
// inputs wrap to the positive range.
func Normalize360(deg float64) float64 {
	a := unit.PMod(deg, 360)
	// PMod can return exactly 360 when deg is a tiny negative number.
	if a >= 360 {
		a = 0
	}
	return a
}

// Normalize180 maps any angle to (-180, 180].
func Normalize180(deg float64) float64 {
	a := Normalize360(deg)
	if a > 180 {
		a -= 360
	}
	return a
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
