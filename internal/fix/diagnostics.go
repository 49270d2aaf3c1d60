package fix

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/litescript/ls-sextant/internal/navmath"
)

// Diagnostics describes the geometry and scatter of a fix. All distances are
// nautical miles; it is zero-valued when the sights leave no redundancy.
type Diagnostics struct {
	// Condition is the 2-norm condition number of the normal matrix. Large
	// values mean the lines of position cross at a shallow angle.
	Condition float64

	SigmaLatNM float64
	SigmaLonNM float64

	// One-sigma error ellipse. OrientationDeg is the true bearing of the
	// major axis, [0, 180).
	SemiMajorNM    float64
	SemiMinorNM    float64
	OrientationDeg float64
}

// diagnose derives the covariance of the fix from the normal matrix and the
// residual scatter. It needs more sights than unknowns.
func diagnose(n normalSystem, rms float64, count int, lat float64) Diagnostics {
	if count <= 2 {
		return Diagnostics{}
	}

	normal := mat.NewSymDense(2, []float64{n.a11, n.a12, n.a12, n.a22})
	var inv mat.Dense
	if err := inv.Inverse(normal); err != nil {
		return Diagnostics{}
	}

	// Unbiased variance of unit weight, arc-minutes squared.
	variance := rms * rms * float64(count) / float64(count-2)

	// One arc-minute of latitude is a nautical mile; of longitude, cos(lat) of one.
	cosLat := navmath.Cos(lat)
	cLatLat := variance * inv.At(0, 0)
	cLatLon := variance * inv.At(0, 1) * cosLat
	cLonLon := variance * inv.At(1, 1) * cosLat * cosLat

	d := Diagnostics{
		Condition:  mat.Cond(normal, 2),
		SigmaLatNM: math.Sqrt(cLatLat),
		SigmaLonNM: math.Sqrt(cLonLon),
	}

	cov := mat.NewSymDense(2, []float64{cLatLat, cLatLon, cLatLon, cLonLon})
	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return d
	}
	values := eig.Values(nil) // ascending
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	d.SemiMinorNM = math.Sqrt(math.Max(values[0], 0))
	d.SemiMajorNM = math.Sqrt(math.Max(values[1], 0))
	// Column 1 is the major axis as (north, east).
	north, east := vectors.At(0, 1), vectors.At(1, 1)
	d.OrientationDeg = math.Mod(navmath.Normalize360(navmath.Atan2(east, north)), 180)
	return d
}
