package sight

import (
	"fmt"

	"github.com/litescript/ls-sextant/internal/navmath"
)

// Reduction is the predicted altitude and azimuth of a body for an assumed position.
type Reduction struct {
	LHA float64 // local hour angle, [0, 360)
	Hc  float64 // calculated altitude, degrees
	Zn  float64 // true azimuth, degrees from north clockwise, [0, 360)
}

// LHA returns GHA − longitude normalized to [0, 360). The longitude is
// east-positive.
func LHA(ghaDeg, lonEastDeg float64) float64 {
	return navmath.Normalize360(ghaDeg - lonEastDeg)
}

// HcZn solves the navigational triangle for latitude, declination and LHA:
//
//	sin Hc = sin φ·sin δ + cos φ·cos δ·cos LHA
//	Zn     = atan2(sin LHA, cos φ·tan δ − sin φ·cos LHA)
//
// Zn is measured from true north, clockwise, in [0, 360).
func HcZn(latDeg, decDeg, lhaDeg float64) (hc, zn float64) {
	sinLat, cosLat := navmath.Sin(latDeg), navmath.Cos(latDeg)
	sinDec, cosDec := navmath.Sin(decDeg), navmath.Cos(decDeg)
	cosLHA := navmath.Cos(lhaDeg)

	hc = navmath.Asin(sinLat*sinDec + cosLat*cosDec*cosLHA)
	zn = navmath.Normalize360(navmath.Atan2(navmath.Sin(lhaDeg), cosLat*navmath.Tan(decDeg)-sinLat*cosLHA))
	return hc, zn
}

// Reduce computes LHA, Hc and Zn for an assumed position and a body's GHA/Dec.
func Reduce(latDeg, lonEastDeg, ghaDeg, decDeg float64) Reduction {
	lha := LHA(ghaDeg, lonEastDeg)
	hc, zn := HcZn(latDeg, decDeg, lha)
	return Reduction{LHA: lha, Hc: hc, Zn: zn}
}

// TableRow is one line of a sight-reduction table.
type TableRow struct {
	LHA float64
	Hc  float64
	Zn  float64
}

// Table tabulates Hc/Zn for a fixed latitude and declination across an
// inclusive range of hour angles. With fromGHA set, from/to are GHA values and
// the LHA is derived with lonEastDeg; otherwise they are LHA values.
func Table(latDeg, decDeg, from, to, step, lonEastDeg float64, fromGHA bool) ([]TableRow, error) {
	if step == 0 || (to > from && step < 0) || (to < from && step > 0) {
		return nil, fmt.Errorf("table step %v cannot reach %v from %v: %w", step, to, from, navmath.ErrPrecondition)
	}

	var rows []TableRow
	for i := 0; ; i++ {
		v := from + float64(i)*step
		if (step > 0 && v > to) || (step < 0 && v < to) {
			break
		}
		lha := navmath.Normalize360(v)
		if fromGHA {
			lha = LHA(v, lonEastDeg)
		}
		hc, zn := HcZn(latDeg, decDeg, lha)
		rows = append(rows, TableRow{LHA: lha, Hc: hc, Zn: zn})
	}
	return rows, nil
}
