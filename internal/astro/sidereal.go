package astro

import "github.com/litescript/ls-sextant/internal/navmath"

// SunSample is the Sun's Greenwich hour angle and declination at an instant.
type SunSample struct {
	GHA float64
	Dec float64
}

// Sample holds every almanac quantity for one instant.
type Sample struct {
	JD       float64
	AriesGHA float64
	SunGHA   float64
	SunDec   float64
}

// GMST returns Greenwich mean sidereal time in degrees, [0, 360).
func GMST(jd float64) float64 {
	T := JulianCenturies(jd)
	return navmath.Normalize360(280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*T*T -
		T*T*T/38710000)
}

// AriesGHA returns the Greenwich hour angle of the First Point of Aries.
func AriesGHA(in Instant) float64 {
	return GMST(JulianDay(in))
}

// Sun returns the Sun's GHA and declination.
func Sun(in Instant) SunSample {
	s := SampleAt(in)
	return SunSample{GHA: s.SunGHA, Dec: s.SunDec}
}

// SampleAt reduces an instant to Aries GHA and the Sun's GHA/Dec.
func SampleAt(in Instant) Sample {
	jd := JulianDay(in)
	gmst := GMST(jd)
	ra, dec := SunEquatorial(JulianCenturies(jd))
	return Sample{
		JD:       jd,
		AriesGHA: gmst,
		SunGHA:   navmath.Normalize360(gmst - ra),
		SunDec:   dec,
	}
}

// StarGHA combines Aries GHA with a star's sidereal hour angle.
func StarGHA(ariesGHA, sha float64) float64 {
	return navmath.Normalize360(ariesGHA + sha)
}
