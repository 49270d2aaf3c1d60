package astro

import (
	"errors"
	"math"
	"sort"

	"github.com/litescript/ls-sextant/internal/navmath"
	"github.com/litescript/ls-sextant/internal/sight"
)

// Altitude limits for a star to be worth shooting. Below the floor refraction
// is unreliable; above the ceiling the sextant arc is hard to swing.
const (
	MinShootAltitude = 15.0
	MaxShootAltitude = 70.0
)

// ErrNoStarsVisible is returned when no catalog star lies inside the
// requested altitude band.
var ErrNoStarsVisible = errors.New("no catalog stars in altitude band")

// VisibleStar is a catalog star with its predicted altitude and azimuth from
// a dead-reckoning position.
type VisibleStar struct {
	Star NavStar
	Hc   float64
	Zn   float64
	Tier ElevationTier
}

// ElevationTier categorizes altitude for display.
type ElevationTier int

const (
	ElevationNone   ElevationTier = iota // Below horizon
	ElevationLow                         // 0-15 degrees
	ElevationMedium                      // 15-45 degrees
	ElevationHigh                        // 45+ degrees
)

// String returns a short label for the tier.
func (t ElevationTier) String() string {
	switch t {
	case ElevationLow:
		return "low"
	case ElevationMedium:
		return "medium"
	case ElevationHigh:
		return "high"
	default:
		return "below"
	}
}

// GetElevationTier returns the tier for a given altitude.
func GetElevationTier(altDeg float64) ElevationTier {
	switch {
	case altDeg <= 0:
		return ElevationNone
	case altDeg < 15:
		return ElevationLow
	case altDeg < 45:
		return ElevationMedium
	default:
		return ElevationHigh
	}
}

// VisibleStars predicts Hc/Zn for every catalog star from (latDeg, lonEastDeg)
// at ariesGHA and returns those with minAlt <= Hc <= maxAlt, sorted by azimuth.
func VisibleStars(latDeg, lonEastDeg, ariesGHA, minAlt, maxAlt float64) []VisibleStar {
	var out []VisibleStar
	for _, s := range Stars() {
		r := sight.Reduce(latDeg, lonEastDeg, StarGHA(ariesGHA, s.SHA), s.Dec)
		if r.Hc < minAlt || r.Hc > maxAlt {
			continue
		}
		out = append(out, VisibleStar{Star: s, Hc: r.Hc, Zn: r.Zn, Tier: GetElevationTier(r.Hc)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Zn < out[j].Zn })
	return out
}

// SelectForFix picks up to n stars whose azimuths are spread as evenly as
// possible. The brightest star seeds the set; each further pick maximizes its
// smallest azimuth gap to the stars already chosen.
func SelectForFix(candidates []VisibleStar, n int) ([]VisibleStar, error) {
	if len(candidates) == 0 {
		return nil, ErrNoStarsVisible
	}
	if n <= 0 || n > len(candidates) {
		n = len(candidates)
	}

	used := make([]bool, len(candidates))
	seed := 0
	for i, c := range candidates {
		if c.Star.Mag < candidates[seed].Star.Mag {
			seed = i
		}
	}
	used[seed] = true
	picked := []VisibleStar{candidates[seed]}

	for len(picked) < n {
		best, bestGap := -1, -1.0
		for i, c := range candidates {
			if used[i] {
				continue
			}
			gap := 360.0
			for _, p := range picked {
				gap = math.Min(gap, azimuthGap(c.Zn, p.Zn))
			}
			if gap > bestGap || (gap == bestGap && c.Star.Mag < candidates[best].Star.Mag) {
				best, bestGap = i, gap
			}
		}
		used[best] = true
		picked = append(picked, candidates[best])
	}

	sort.Slice(picked, func(i, j int) bool { return picked[i].Zn < picked[j].Zn })
	return picked, nil
}

// azimuthGap returns the smaller angle between two azimuths, [0, 180].
func azimuthGap(a, b float64) float64 {
	return math.Abs(navmath.Normalize180(a - b))
}

// LocalApparentNoon returns the UTC instant on the given date when the Sun
// crosses the meridian of lonEastDeg, with its declination at that moment.
// The result satisfies the noon-longitude relation of
// sight.LongitudeFromNoonEoT, so at LAN the Sun's GHA is −lonEastDeg.
func LocalApparentNoon(date Instant, lonEastDeg float64) (Instant, float64) {
	base := Instant{Year: date.Year, Month: date.Month, Day: date.Day}
	start := base.Time()

	// First guess ignores the equation of time. The Sun's GHA advances about
	// 15° per hour, so a few corrections converge to well under a second.
	hours := 12 - lonEastDeg/15
	var dec float64
	for n := 0; n < 4; n++ {
		in := InstantFromTime(start.Add(hoursToDuration(hours)))
		s := Sun(in)
		dec = s.Dec
		pastMeridian := navmath.Normalize180(s.GHA + lonEastDeg)
		hours -= pastMeridian / 15
	}
	return InstantFromTime(start.Add(hoursToDuration(hours))), dec
}
