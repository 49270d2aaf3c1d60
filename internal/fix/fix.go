// Package fix solves for an observer's position from two or more reduced
// sights by iterated least squares on the altitude residuals.
package fix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/litescript/ls-sextant/internal/logging"
	"github.com/litescript/ls-sextant/internal/navmath"
	"github.com/litescript/ls-sextant/internal/sight"
)

const (
	// DefaultIterations is the number of Gauss-Newton steps.
	DefaultIterations = 6

	// diffStep is the central-difference step for Hc partials, degrees.
	diffStep = 1e-5

	// minDeterminant marks the normal matrix as singular.
	minDeterminant = 1e-9

	// maxLat keeps the navigational triangle away from the poles.
	maxLat = 89.9999
)

// ErrTooFewSights is returned when fewer than two sights are supplied.
var ErrTooFewSights = fmt.Errorf("a fix needs at least 2 sights: %w", navmath.ErrPrecondition)

// Sight is one reduced observation. Longitudes are east-positive.
type Sight struct {
	AssumedLat float64
	AssumedLon float64
	GHA        float64
	Dec        float64
	Ho         float64
}

// Result is a solved position.
type Result struct {
	Lat         float64
	Lon         float64 // (-180, 180]
	RMSMinutes  float64
	Count       int
	Iterations  int  // Gauss-Newton steps applied
	Degenerate  bool // normal matrix became singular; estimate is the last good one
	Diagnostics Diagnostics
}

// Options tunes the solver.
type Options struct {
	Iterations int
	// Tolerance stops early once both corrections fall below it, arc-minutes.
	// Zero disables the early exit.
	Tolerance float64
	Logger    *logging.Logger
}

// DefaultOptions returns the standard six-iteration solver.
func DefaultOptions() Options {
	return Options{Iterations: DefaultIterations}
}

// Solve computes a fix with DefaultOptions.
func Solve(sights []Sight) (Result, error) {
	return SolveWithOptions(sights, DefaultOptions())
}

// SolveWithOptions computes a fix.
func SolveWithOptions(sights []Sight, opts Options) (Result, error) {
	if len(sights) < 2 {
		return Result{}, fmt.Errorf("got %d: %w", len(sights), ErrTooFewSights)
	}
	if opts.Iterations <= 0 {
		opts.Iterations = DefaultIterations
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	lat, lon := initialEstimate(sights)
	log.Debug("fix: %d sights, start %.4f %.4f", len(sights), lat, lon)

	res := Result{Count: len(sights)}
	var sys normalSystem
	for iter := 0; iter < opts.Iterations; iter++ {
		sys = buildNormalSystem(sights, lat, lon)
		dLat, dLon, ok := sys.solve()
		if !ok {
			log.Warn("fix: singular normal matrix (det %.3g) after %d iterations, keeping %.4f %.4f",
				sys.det(), iter, lat, lon)
			res.Degenerate = true
			break
		}

		lat = navmath.Clamp(lat+dLat/60, -maxLat, maxLat)
		lon += dLon / 60
		res.Iterations++
		log.Debug("fix: iteration %d dLat %.4f' dLon %.4f' -> %.5f %.5f", iter+1, dLat, dLon, lat, lon)

		if opts.Tolerance > 0 && math.Abs(dLat) < opts.Tolerance && math.Abs(dLon) < opts.Tolerance {
			break
		}
	}

	res.Lat = lat
	res.Lon = navmath.Normalize180(lon)
	res.RMSMinutes = rmsMinutes(sights, lat, lon)
	if !res.Degenerate {
		sys = buildNormalSystem(sights, lat, lon)
		res.Diagnostics = diagnose(sys, res.RMSMinutes, len(sights), lat)
	}
	return res, nil
}

// initialEstimate averages the assumed positions. Longitudes are unwrapped
// around the first sight so 179°E and 179°W average to 180°.
func initialEstimate(sights []Sight) (lat, lon float64) {
	lats := make([]float64, len(sights))
	lons := make([]float64, len(sights))
	ref := sights[0].AssumedLon
	for i, s := range sights {
		lats[i] = s.AssumedLat
		lons[i] = ref + navmath.Normalize180(s.AssumedLon-ref)
	}
	return stat.Mean(lats, nil), stat.Mean(lons, nil)
}

func hc(s Sight, lat, lon float64) float64 {
	h, _ := sight.HcZn(lat, s.Dec, sight.LHA(s.GHA, lon))
	return h
}

// partials returns dHc/dLat and dHc/dLon by central differences. Longitude
// enters only through LHA = GHA − lon, so dHc/dLon is −dHc/dLHA.
func partials(s Sight, lat, lon float64) (dLat, dLon float64) {
	lha := sight.LHA(s.GHA, lon)
	hLatP, _ := sight.HcZn(lat+diffStep, s.Dec, lha)
	hLatM, _ := sight.HcZn(lat-diffStep, s.Dec, lha)
	hLhaP, _ := sight.HcZn(lat, s.Dec, lha+diffStep)
	hLhaM, _ := sight.HcZn(lat, s.Dec, lha-diffStep)

	dLat = (hLatP - hLatM) / (2 * diffStep)
	dLHA := (hLhaP - hLhaM) / (2 * diffStep)
	return dLat, -dLHA
}

// normalSystem holds AᵗA and Aᵗb for rows [dHc/dLat, dHc/dLon] and residuals
// (Ho - Hc) in arc-minutes.
type normalSystem struct {
	a11, a12, a22 float64
	b1, b2        float64
}

func buildNormalSystem(sights []Sight, lat, lon float64) normalSystem {
	var n normalSystem
	for _, s := range sights {
		pLat, pLon := partials(s, lat, lon)
		r := (s.Ho - hc(s, lat, lon)) * 60
		n.a11 += pLat * pLat
		n.a12 += pLat * pLon
		n.a22 += pLon * pLon
		n.b1 += pLat * r
		n.b2 += pLon * r
	}
	return n
}

func (n normalSystem) det() float64 {
	return n.a11*n.a22 - n.a12*n.a12
}

// solve applies Cramer's rule. The corrections are in arc-minutes.
func (n normalSystem) solve() (dLat, dLon float64, ok bool) {
	d := n.det()
	if math.Abs(d) < minDeterminant || math.IsNaN(d) {
		return 0, 0, false
	}
	dLat = (n.b1*n.a22 - n.a12*n.b2) / d
	dLon = (n.a11*n.b2 - n.a12*n.b1) / d
	return dLat, dLon, true
}

func rmsMinutes(sights []Sight, lat, lon float64) float64 {
	var sum float64
	for _, s := range sights {
		r := (s.Ho - hc(s, lat, lon)) * 60
		sum += r * r
	}
	return math.Sqrt(sum / float64(len(sights)))
}
