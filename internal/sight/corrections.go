// Package sight reduces a single celestial observation: it corrects the
// sextant altitude, solves the navigational triangle for an assumed position
// and reports the intercept. It also carries the noon-sight and time helpers.
package sight

import (
	"math"
	"strings"

	"github.com/litescript/ls-sextant/internal/navmath"
)

// Standard atmosphere used when no readings are supplied.
const (
	DefaultPressureHPa  = 1010.0
	DefaultTemperatureC = 10.0
)

// Limb is the edge of the Sun or Moon brought down to the horizon.
type Limb int

const (
	LowerLimb Limb = iota
	UpperLimb
)

// String returns "LL" or "UL".
func (l Limb) String() string {
	if l == UpperLimb {
		return "UL"
	}
	return "LL"
}

// ParseLimb parses "LL"/"UL" (case-insensitive). Anything else is lower limb.
func ParseLimb(s string) Limb {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UL", "UPPER":
		return UpperLimb
	default:
		return LowerLimb
	}
}

// Corrections holds the per-sight inputs of the altitude-correction pipeline.
type Corrections struct {
	IndexErrorMin   float64 // minutes, positive = off the arc
	HeightOfEyeM    float64 // meters above the sea surface
	PressureHPa     float64
	TemperatureC    float64
	SemiDiameterMin float64 // 0 for stars and planets
	Limb            Limb
	ParallaxMin     float64 // parallax in altitude, minutes; subtracted from Hs
}

// DefaultCorrections returns zero instrument corrections and a standard atmosphere.
func DefaultCorrections() Corrections {
	return Corrections{
		PressureHPa:  DefaultPressureHPa,
		TemperatureC: DefaultTemperatureC,
		Limb:         LowerLimb,
	}
}

// DipMinutes returns the dip of the sea horizon in minutes (always <= 0).
func DipMinutes(heightOfEyeM float64) float64 {
	if heightOfEyeM <= 0 {
		return 0
	}
	return -1.76 * math.Sqrt(heightOfEyeM)
}

// RefractionMinutes returns the Bennett refraction correction in minutes
// (always <= 0). Altitudes below 0.1° are evaluated at 0.1°.
func RefractionMinutes(altDeg, pressureHPa, temperatureC float64) float64 {
	alt := math.Max(0.1, altDeg)
	k := 0.97015 * (pressureHPa / (273.15 + temperatureC))
	return -k / navmath.Tan(alt+10.3/(alt+5.11))
}

// ParallaxInAltitudeMinutes converts a horizontal parallax to parallax in
// altitude, HP·cos(alt). Used for the Moon.
func ParallaxInAltitudeMinutes(altDeg, hpMin float64) float64 {
	return hpMin * navmath.Cos(altDeg)
}

// ApparentAltitude applies index error and dip to the sextant altitude.
// Refraction and the Moon's parallax are evaluated at this altitude.
func ApparentAltitude(hsDeg float64, c Corrections) float64 {
	return hsDeg + (-c.IndexErrorMin+DipMinutes(c.HeightOfEyeM))/60
}

// ObservedAltitude turns a sextant altitude Hs into the observed altitude Ho:
//
//	Ho = Hs + (−IE + dip + R ± SD − P)/60
func ObservedAltitude(hsDeg float64, c Corrections) float64 {
	ic := -c.IndexErrorMin
	dip := DipMinutes(c.HeightOfEyeM)
	ref := RefractionMinutes(hsDeg+(ic+dip)/60, c.PressureHPa, c.TemperatureC)

	sd := c.SemiDiameterMin
	if c.Limb == UpperLimb {
		sd = -sd
	}

	total := ic + dip + ref + sd - c.ParallaxMin
	return hsDeg + total/60
}
