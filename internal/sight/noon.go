package sight

import (
	"math"
	"strings"
)

// Bearing is where the body lies at meridian passage relative to the observer.
type Bearing int

const (
	BearsSouth Bearing = iota
	BearsNorth
)

func (b Bearing) String() string {
	if b == BearsNorth {
		return "north"
	}
	return "south"
}

// ParseBearing parses "south"/"north" (or "S"/"N"). Anything else is south.
func ParseBearing(s string) Bearing {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return BearsNorth
	default:
		return BearsSouth
	}
}

// NoonLatitude derives latitude from a meridian altitude as 90° − Ho ± Dec:
// 90 − Ho + Dec when the body bears south, 90 − Ho − Dec when it bears north.
// The north case yields the magnitude of a latitude south of the body; use
// SignedNoonLatitude for a north-positive result.
func NoonLatitude(hoDeg, decDeg float64, b Bearing) float64 {
	if b == BearsNorth {
		return 90 - hoDeg - decDeg
	}
	return 90 - hoDeg + decDeg
}

// SignedNoonLatitude is NoonLatitude with north positive: the observer is
// the zenith distance south of the body when it bears north.
func SignedNoonLatitude(hoDeg, decDeg float64, b Bearing) float64 {
	zd := 90 - hoDeg
	if b == BearsNorth {
		return decDeg - zd
	}
	return decDeg + zd
}

// LongitudeFromNoon returns the east-positive longitude from the UTC of local
// apparent noon, ignoring the equation of time.
func LongitudeFromNoon(utcLANHours float64) float64 {
	return (12 - utcLANHours) * 15
}

// LongitudeFromNoonEoT is LongitudeFromNoon with local apparent noon shifted
// by the equation of time for the given day of year.
func LongitudeFromNoonEoT(utcLANHours float64, dayOfYear int) float64 {
	return (12 - EquationOfTimeMinutes(dayOfYear)/60 - utcLANHours) * 15
}

// EquationOfTimeMinutes approximates apparent minus mean solar time in minutes
// (accurate to about a minute).
func EquationOfTimeMinutes(dayOfYear int) float64 {
	b := 2 * math.Pi * float64(dayOfYear-81) / 364
	return 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)
}
