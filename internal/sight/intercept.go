package sight

import (
	"math"

	"github.com/litescript/ls-sextant/internal/navmath"
)

// Direction tells which way to move from the assumed position along the azimuth.
type Direction int

const (
	Toward Direction = iota
	Away
)

func (d Direction) String() string {
	if d == Away {
		return "away"
	}
	return "toward"
}

// MarshalText renders the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses "toward" or "away".
func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "toward":
		*d = Toward
	case "away":
		*d = Away
	default:
		return &navmath.ParseError{Input: string(b), Reason: "direction is toward or away"}
	}
	return nil
}

// Intercept is the distance between observed and calculated altitude.
type Intercept struct {
	Minutes   float64 // magnitude, arc-minutes (≈ nautical miles)
	Direction Direction
}

// InterceptFrom compares Ho with Hc. Equal altitudes count as toward.
func InterceptFrom(hoDeg, hcDeg float64) Intercept {
	diff := (hoDeg - hcDeg) * 60
	dir := Toward
	if diff < 0 {
		dir = Away
	}
	return Intercept{Minutes: math.Abs(diff), Direction: dir}
}

// Report is a fully reduced sight.
type Report struct {
	Reduction
	Ho        float64
	Intercept Intercept
}

// ReduceSight corrects Hs, reduces the body for the assumed position and
// returns Ho, Hc, Zn and the intercept together.
func ReduceSight(latDeg, lonEastDeg, ghaDeg, decDeg, hsDeg float64, c Corrections) Report {
	red := Reduce(latDeg, lonEastDeg, ghaDeg, decDeg)
	ho := ObservedAltitude(hsDeg, c)
	return Report{
		Reduction: red,
		Ho:        ho,
		Intercept: InterceptFrom(ho, red.Hc),
	}
}
