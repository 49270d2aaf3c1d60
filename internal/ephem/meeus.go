package ephem

import (
	"math"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/litescript/ls-sextant/internal/astro"
	"github.com/litescript/ls-sextant/internal/navmath"
)

// moonRadiusRatio is the Moon's equatorial radius in Earth equatorial radii.
const moonRadiusRatio = 0.272481

// MoonSample is the Moon's almanac data at an instant.
type MoonSample struct {
	GHA   float64
	Dec   float64
	HPMin float64 // horizontal parallax, arc-minutes
	SDMin float64 // geocentric semi-diameter, arc-minutes
}

// MeeusProvider uses the algorithms of Meeus, Astronomical Algorithms, with
// apparent sidereal time. UT is used in place of TT.
type MeeusProvider struct{}

// Name implements Provider.
func (MeeusProvider) Name() string { return "meeus" }

// Sun implements Provider.
func (MeeusProvider) Sun(in astro.Instant) (astro.SunSample, error) {
	jd := astro.JulianDay(in)
	ra, dec := solar.ApparentEquatorial(jd)
	return astro.SunSample{
		GHA: hourAngle(jd, ra),
		Dec: dec.Deg(),
	}, nil
}

// AriesGHA implements Provider.
func (MeeusProvider) AriesGHA(in astro.Instant) (float64, error) {
	return apparentSidereal(astro.JulianDay(in)), nil
}

// Moon returns the Moon's GHA, declination, horizontal parallax and
// semi-diameter.
func (MeeusProvider) Moon(in astro.Instant) (MoonSample, error) {
	jd := astro.JulianDay(in)
	lon, lat, distKm := moonposition.Position(jd)

	dPsi, dEps := nutation.Nutation(jd)
	eps := nutation.MeanObliquity(jd) + dEps
	ra, dec := coord.EclToEq(lon+dPsi, lat, eps.Sin(), eps.Cos())

	hp := moonposition.Parallax(distKm)
	sd := math.Asin(moonRadiusRatio * hp.Sin())

	return MoonSample{
		GHA:   hourAngle(jd, ra),
		Dec:   dec.Deg(),
		HPMin: hp.Deg() * 60,
		SDMin: navmath.RadToDeg(sd) * 60,
	}, nil
}

// SiderealTime implements the optional header hook used by GenerateTable.
func (MeeusProvider) SiderealTime() string { return "GAST @ Greenwich (hours -> deg)" }

func apparentSidereal(jd float64) float64 {
	return navmath.Normalize360(sidereal.Apparent(jd).Angle().Deg())
}

func hourAngle(jd float64, ra unit.RA) float64 {
	return navmath.Normalize360(apparentSidereal(jd) - ra.Deg())
}
