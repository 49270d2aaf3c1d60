package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/litescript/ls-sextant/internal/astro"
	"github.com/litescript/ls-sextant/internal/config"
	"github.com/litescript/ls-sextant/internal/fix"
	"github.com/litescript/ls-sextant/internal/logging"
	"github.com/litescript/ls-sextant/internal/plan"
	"github.com/litescript/ls-sextant/internal/report"
	"github.com/litescript/ls-sextant/internal/ui"
	"github.com/litescript/ls-sextant/internal/version"
)

// loadJob reads a job file and applies its log level unless -log-level won.
func (e *env) loadJob(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if !e.logLevelSet && cfg.Observer.LogLevel != "" {
		e.log.SetLevel(logging.ParseLevel(cfg.Observer.LogLevel))
	}
	e.log.Debug("loaded %s: %d sights, ephemeris %s", path, len(cfg.Sights), cfg.Ephemeris.Mode)
	return cfg, nil
}

type fixJSON struct {
	Lat         float64         `json:"lat"`
	Lon         float64         `json:"lon"`
	RMSMinutes  float64         `json:"rms_min"`
	Count       int             `json:"count"`
	Iterations  int             `json:"iterations"`
	Degenerate  bool            `json:"degenerate"`
	Diagnostics fix.Diagnostics `json:"diagnostics"`
	Sights      []sightJSON     `json:"sights"`
}

func runFix(e *env, args []string) error {
	fs := newFlagSet(e, "fix")
	job := fs.String("job", "", "TOML job file")
	iterations := fs.Int("iterations", fix.DefaultIterations, "Maximum solver iterations")
	tolerance := fs.Float64("tolerance", 0, "Stop once both corrections are below this many minutes (0 runs every iteration)")
	asJSON := fs.Bool("json", false, "Print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *job == "" && fs.NArg() == 1 {
		*job = fs.Arg(0)
	}
	if *job == "" {
		return errors.New("fix: give -job or a job file")
	}

	cfg, err := e.loadJob(*job)
	if err != nil {
		return err
	}
	provider, err := plan.ProviderFor(cfg)
	if err != nil {
		return err
	}
	p := plan.New(cfg, provider, e.log)
	opts := fix.Options{Iterations: *iterations, Tolerance: *tolerance, Logger: e.log}
	res, reduced, err := p.Fix(opts)
	if err != nil {
		return err
	}
	if res.Degenerate {
		e.log.Warn("fix from %s is degenerate", *job)
	}

	if *asJSON {
		out := fixJSON{
			Lat: res.Lat, Lon: res.Lon, RMSMinutes: res.RMSMinutes, Count: res.Count,
			Iterations: res.Iterations, Degenerate: res.Degenerate, Diagnostics: res.Diagnostics,
		}
		for _, r := range reduced {
			out.Sights = append(out.Sights, newSightJSON(r.Entry.Body, r.Instant, r.GHA, r.Dec, r.Entry.Hs, r.Report))
		}
		return report.WriteJSON(e.out, out)
	}
	e.report().WriteFix(res, reduced)
	return nil
}

func runStars(e *env, args []string) error {
	fs := newFlagSet(e, "stars")
	lat := fs.Float64("lat", 0, "DR latitude (deg, +N)")
	lon := fs.Float64("lon", 0, "DR longitude (deg, +E)")
	at := fs.String("time", "", "UTC of twilight (default now)")
	count := fs.Int("count", 3, "Stars to pick for a fix")
	all := fs.Bool("all", false, "List every star between 15° and 70°")
	asJSON := fs.Bool("json", false, "Print JSON")
	eph := addEphemFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := require(fs, "lat", "lon"); err != nil {
		return err
	}

	in := astro.InstantFromTime(time.Now().Truncate(time.Second))
	if *at != "" {
		var err error
		if in, err = astro.ParseInstant(*at); err != nil {
			return err
		}
	}
	provider, err := eph.provider()
	if err != nil {
		return err
	}

	var stars []astro.VisibleStar
	if *all {
		aries, err := provider.AriesGHA(in)
		if err != nil {
			return err
		}
		stars = astro.VisibleStars(*lat, *lon, aries, astro.MinShootAltitude, astro.MaxShootAltitude)
	} else {
		p := plan.New(config.DefaultConfig(), provider, e.log)
		if stars, err = p.Suggest(*lat, *lon, in, *count); err != nil {
			return err
		}
	}

	if *asJSON {
		type starJSON struct {
			Name string  `json:"name"`
			Mag  float64 `json:"mag"`
			Hc   float64 `json:"hc"`
			Zn   float64 `json:"zn"`
			Tier string  `json:"tier"`
		}
		out := make([]starJSON, len(stars))
		for i, s := range stars {
			out[i] = starJSON{s.Star.Name, s.Star.Mag, s.Hc, s.Zn, s.Tier.String()}
		}
		return report.WriteJSON(e.out, out)
	}
	e.report().WriteStars(stars)
	return nil
}

func runInteractive(e *env, args []string) error {
	fs := newFlagSet(e, "interactive")
	job := fs.String("job", "", "TOML job file for observer and ephemeris settings")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if *job != "" {
		var err error
		if cfg, err = e.loadJob(*job); err != nil {
			return err
		}
	}
	provider, err := plan.ProviderFor(cfg)
	if err != nil {
		return err
	}
	// The alternate screen owns the terminal; keep log lines off it.
	return ui.Run(cfg, provider, logging.Discard())
}

func runVersion(e *env, _ []string) error {
	fmt.Fprintf(e.out, "ls-sextant %s\n", version.Version)
	return nil
}
