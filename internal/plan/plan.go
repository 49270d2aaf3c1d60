// Package plan turns a job file into reduced sights and a fix.
package plan

import (
	"errors"
	"fmt"

	"github.com/litescript/ls-sextant/internal/astro"
	"github.com/litescript/ls-sextant/internal/config"
	"github.com/litescript/ls-sextant/internal/ephem"
	"github.com/litescript/ls-sextant/internal/fix"
	"github.com/litescript/ls-sextant/internal/logging"
	"github.com/litescript/ls-sextant/internal/sight"
)

// Reduced is one job sight with its almanac data and reduction.
type Reduced struct {
	Entry       config.SightEntry
	Instant     astro.Instant // zero for custom bodies
	GHA         float64
	Dec         float64
	Corrections sight.Corrections
	Report      sight.Report
}

// FixSight converts the reduction into solver input.
func (r Reduced) FixSight() fix.Sight {
	return fix.Sight{
		AssumedLat: r.Entry.Lat,
		AssumedLon: r.Entry.Lon,
		GHA:        r.GHA,
		Dec:        r.Dec,
		Ho:         r.Report.Ho,
	}
}

// Planner reduces sights against one almanac source.
type Planner struct {
	cfg      config.Config
	provider ephem.Provider
	moon     ephem.MeeusProvider
	log      *logging.Logger
}

// New creates a planner. A nil logger discards output.
func New(cfg config.Config, provider ephem.Provider, log *logging.Logger) *Planner {
	if log == nil {
		log = logging.Discard()
	}
	return &Planner{cfg: cfg, provider: provider, log: log}
}

// ProviderFor builds the almanac source a config asks for, loading its table
// when one is named.
func ProviderFor(cfg config.Config) (ephem.Provider, error) {
	var table *ephem.Table
	if cfg.Ephemeris.Table != "" {
		t, err := ephem.LoadTable(cfg.Ephemeris.Table)
		if err != nil {
			return nil, err
		}
		table = t
	}
	return ephem.NewProvider(ephem.ParseMode(cfg.Ephemeris.Mode), table)
}

// Reduce resolves a sight's GHA and declination, corrects Hs and reduces it
// for the entry's assumed position.
func (p *Planner) Reduce(e config.SightEntry) (Reduced, error) {
	r := Reduced{Entry: e, Corrections: p.cfg.CorrectionsFor(e)}

	body := e.BodyName()
	if body != config.BodyCustom {
		in, err := astro.ParseInstant(e.Time)
		if err != nil {
			return Reduced{}, err
		}
		r.Instant = in
	}

	switch body {
	case config.BodyCustom:
		r.GHA, r.Dec = e.GHA, e.Dec
	case config.BodySun:
		s, err := p.provider.Sun(r.Instant)
		if err != nil {
			return Reduced{}, fmt.Errorf("sun at %s: %w", r.Instant, err)
		}
		r.GHA, r.Dec = s.GHA, s.Dec
		if e.SD == 0 {
			r.Corrections.SemiDiameterMin = astro.SunSemiDiameterMin(astro.JulianCenturies(astro.JulianDay(r.Instant)))
		}
	case config.BodyMoon:
		m, err := p.moon.Moon(r.Instant)
		if err != nil {
			return Reduced{}, fmt.Errorf("moon at %s: %w", r.Instant, err)
		}
		r.GHA, r.Dec = m.GHA, m.Dec
		hp := m.HPMin
		if e.HP != 0 {
			hp = e.HP
		}
		if e.SD == 0 {
			r.Corrections.SemiDiameterMin = m.SDMin
		}
		apparent := sight.ApparentAltitude(e.Hs, r.Corrections)
		r.Corrections.ParallaxMin = sight.ParallaxInAltitudeMinutes(apparent, hp)
	default:
		gha, dec, err := ephem.StarPosition(p.provider, e.Body, r.Instant)
		if err != nil {
			return Reduced{}, err
		}
		r.GHA, r.Dec = gha, dec
	}

	r.Report = sight.ReduceSight(e.Lat, e.Lon, r.GHA, r.Dec, e.Hs, r.Corrections)
	p.log.Debug("%s at %s: GHA %.4f Dec %.4f Ho %.4f Hc %.4f Zn %.1f intercept %.1f' %s",
		e.Body, r.Instant, r.GHA, r.Dec, r.Report.Ho, r.Report.Hc, r.Report.Zn,
		r.Report.Intercept.Minutes, r.Report.Intercept.Direction)
	return r, nil
}

// ReduceAll reduces every sight in the job. It stops at the first failure.
func (p *Planner) ReduceAll() ([]Reduced, error) {
	out := make([]Reduced, 0, len(p.cfg.Sights))
	for i, e := range p.cfg.Sights {
		r, err := p.Reduce(e)
		if err != nil {
			return nil, fmt.Errorf("sight %d (%s): %w", i+1, e.Body, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// ErrNoSights is returned by Fix for a job without sights.
var ErrNoSights = errors.New("job has no sights")

// Fix reduces every sight and solves for position.
func (p *Planner) Fix(opts fix.Options) (fix.Result, []Reduced, error) {
	if len(p.cfg.Sights) == 0 {
		return fix.Result{}, nil, ErrNoSights
	}
	reduced, err := p.ReduceAll()
	if err != nil {
		return fix.Result{}, nil, err
	}

	sights := make([]fix.Sight, len(reduced))
	for i, r := range reduced {
		sights[i] = r.FixSight()
	}
	if opts.Logger == nil {
		opts.Logger = p.log
	}
	res, err := fix.SolveWithOptions(sights, opts)
	if err != nil {
		return fix.Result{}, reduced, err
	}
	p.log.Info("fix from %d sights: %.4f %.4f rms %.2f'", res.Count, res.Lat, res.Lon, res.RMSMinutes)
	return res, reduced, nil
}

// Suggest lists the best-spread stars to shoot from a DR position.
func (p *Planner) Suggest(latDeg, lonEastDeg float64, in astro.Instant, n int) ([]astro.VisibleStar, error) {
	aries, err := p.provider.AriesGHA(in)
	if err != nil {
		return nil, err
	}
	vis := astro.VisibleStars(latDeg, lonEastDeg, aries, astro.MinShootAltitude, astro.MaxShootAltitude)
	return astro.SelectForFix(vis, n)
}
