package astro

import (
	"math"

	"github.com/litescript/ls-sextant/internal/navmath"
)

// SunEquatorial returns the Sun's apparent right ascension and declination in
// degrees for T Julian centuries since J2000.0.
// Low-precision solar theory; good to about an arc-minute over 1900–2100.
func SunEquatorial(T float64) (raDeg, decDeg float64) {
	// Geometric mean longitude
	L0 := navmath.Normalize360(280.46646 + T*(36000.76983+0.0003032*T))
	_, C := anomaly(T)
	trueLon := L0 + C

	// Apparent longitude: aberration constant plus the dominant nutation term
	omega := 125.04 - 1934.136*T
	lambda := trueLon - 0.00569 - 0.00478*navmath.Sin(omega)

	eps := MeanObliquity(T) + 0.00256*navmath.Cos(omega)

	sinLambda := navmath.Sin(lambda)
	raDeg = navmath.Normalize360(navmath.Atan2(navmath.Cos(eps)*sinLambda, navmath.Cos(lambda)))
	decDeg = navmath.Asin(navmath.Sin(eps) * sinLambda)
	return raDeg, decDeg
}

// anomaly returns the Sun's mean anomaly M and equation of center C, degrees.
func anomaly(T float64) (M, C float64) {
	M = 357.52911 + T*(35999.05029-0.0001537*T)
	Mrad := navmath.DegToRad(M)
	C = math.Sin(Mrad)*(1.914602-T*(0.004817+0.000014*T)) +
		math.Sin(2*Mrad)*(0.019993-0.000101*T) +
		math.Sin(3*Mrad)*0.000289
	return M, C
}

// SunDistanceAU returns the Sun's radius vector in astronomical units.
func SunDistanceAU(T float64) float64 {
	M, C := anomaly(T)
	e := EarthEccentricity(T)
	return 1.000001018 * (1 - e*e) / (1 + e*navmath.Cos(M+C))
}

// SunSemiDiameterMin returns the Sun's apparent semi-diameter in arc-minutes,
// 15.99′ at one astronomical unit.
func SunSemiDiameterMin(T float64) float64 {
	return 959.63 / 60 / SunDistanceAU(T)
}

// MeanObliquity returns the mean obliquity of the ecliptic in degrees.
func MeanObliquity(T float64) float64 {
	sec := 21.448 - T*(46.8150+T*(0.00059-0.001813*T))
	return 23 + (26+sec/60)/60
}

// EarthEccentricity returns the eccentricity of Earth's orbit.
func EarthEccentricity(T float64) float64 {
	return 0.016708634 - T*(0.000042037+0.0000001267*T)
}
