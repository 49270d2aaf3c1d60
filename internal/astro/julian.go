package astro

import "github.com/soniakeys/meeus/v3/julian"

// J2000 is the Julian Day of the J2000.0 epoch.
const J2000 = 2451545.0

// JulianDay returns the Julian Day of a UTC instant (Gregorian calendar).
func JulianDay(in Instant) float64 {
	day := float64(in.Day) + (float64(in.Hour)+(float64(in.Minute)+in.Second/60)/60)/24
	return julian.CalendarGregorianToJD(in.Year, in.Month, day)
}

// JulianCenturies returns Julian centuries since J2000.0.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / 36525
}
