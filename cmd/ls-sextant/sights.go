package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/litescript/ls-sextant/internal/astro"
	"github.com/litescript/ls-sextant/internal/config"
	"github.com/litescript/ls-sextant/internal/ephem"
	"github.com/litescript/ls-sextant/internal/navmath"
	"github.com/litescript/ls-sextant/internal/plan"
	"github.com/litescript/ls-sextant/internal/report"
	"github.com/litescript/ls-sextant/internal/sight"
)

type observerFlags struct {
	ie, height, pressure, temp *float64
}

func addObserverFlags(fs *flag.FlagSet) *observerFlags {
	return &observerFlags{
		ie:       fs.Float64("ie", 0, "Index error, minutes (+ off the arc)"),
		height:   fs.Float64("height", 0, "Height of eye (m)"),
		pressure: fs.Float64("pressure", sight.DefaultPressureHPa, "Pressure (hPa)"),
		temp:     fs.Float64("temp", sight.DefaultTemperatureC, "Temperature (C)"),
	}
}

func (o *observerFlags) corrections() sight.Corrections {
	return sight.Corrections{
		IndexErrorMin: *o.ie,
		HeightOfEyeM:  *o.height,
		PressureHPa:   *o.pressure,
		TemperatureC:  *o.temp,
	}
}

type ephemFlags struct {
	mode, table *string
}

func addEphemFlags(fs *flag.FlagSet) *ephemFlags {
	return &ephemFlags{
		mode:  fs.String("ephemeris", "auto", "Almanac source (auto, analytic, meeus, table)"),
		table: fs.String("table", "", "Almanac table file (.json or .msgpack)"),
	}
}

func (f *ephemFlags) provider() (ephem.Provider, error) {
	cfg := config.DefaultConfig()
	cfg.Ephemeris = config.Ephemeris{Mode: *f.mode, Table: *f.table}
	return plan.ProviderFor(cfg)
}

// sightFlags are the inputs shared by the sun, star and moon commands.
type sightFlags struct {
	lat, lon, hs, gha, dec *float64
	at                     *string
	asJSON                 *bool
	eph                    *ephemFlags
	obs                    *observerFlags
}

func addSightFlags(fs *flag.FlagSet) *sightFlags {
	return &sightFlags{
		lat:    fs.Float64("lat", 0, "Assumed latitude (deg, +N)"),
		lon:    fs.Float64("lon", 0, "Assumed longitude (deg, +E)"),
		hs:     fs.Float64("hs", 0, "Sextant altitude Hs (deg)"),
		gha:    fs.Float64("gha", 0, "GHA of the body (deg)"),
		dec:    fs.Float64("dec", 0, "Declination of the body (deg, +N)"),
		at:     fs.String("time", "", "UTC of the sight; almanac data is computed when -gha/-dec are omitted"),
		asJSON: fs.Bool("json", false, "Print JSON"),
		eph:    addEphemFlags(fs),
		obs:    addObserverFlags(fs),
	}
}

// bodyPosition is a body's GHA/Dec with the instant it was computed for.
type bodyPosition struct {
	Instant astro.Instant // zero when given explicitly
	GHA     float64
	Dec     float64
}

var errNoAlmanacInput = errors.New("give -gha and -dec, or -time")

// resolve takes GHA/Dec from the flags or, with -time, from lookup.
func (s *sightFlags) resolve(fs *flag.FlagSet, lookup func(ephem.Provider, astro.Instant) (float64, float64, error)) (bodyPosition, error) {
	if isSet(fs, "gha") && isSet(fs, "dec") {
		return bodyPosition{GHA: *s.gha, Dec: *s.dec}, nil
	}
	if *s.at == "" {
		return bodyPosition{}, errNoAlmanacInput
	}
	in, err := astro.ParseInstant(*s.at)
	if err != nil {
		return bodyPosition{}, err
	}
	p, err := s.eph.provider()
	if err != nil {
		return bodyPosition{}, err
	}
	gha, dec, err := lookup(p, in)
	if err != nil {
		return bodyPosition{}, err
	}
	return bodyPosition{Instant: in, GHA: gha, Dec: dec}, nil
}

// sightJSON is the machine-readable form of a reduced sight.
type sightJSON struct {
	Body      string          `json:"body"`
	Time      string          `json:"time,omitempty"`
	GHA       float64         `json:"gha"`
	Dec       float64         `json:"dec"`
	LHA       float64         `json:"lha"`
	Hs        float64         `json:"hs"`
	Ho        float64         `json:"ho"`
	Hc        float64         `json:"hc"`
	Zn        float64         `json:"zn"`
	Intercept float64         `json:"intercept_min"`
	Direction sight.Direction `json:"direction"`
}

func newSightJSON(body string, in astro.Instant, gha, dec, hs float64, rep sight.Report) sightJSON {
	out := sightJSON{
		Body: body, GHA: gha, Dec: dec, LHA: rep.LHA, Hs: hs,
		Ho: rep.Ho, Hc: rep.Hc, Zn: rep.Zn,
		Intercept: rep.Intercept.Minutes, Direction: rep.Intercept.Direction,
	}
	if in != (astro.Instant{}) {
		out.Time = in.String()
	}
	return out
}

func (e *env) writeSight(body string, s *sightFlags, pos bodyPosition, c sight.Corrections) error {
	rep := sight.ReduceSight(*s.lat, *s.lon, pos.GHA, pos.Dec, *s.hs, c)
	e.log.Debug("%s: LHA %.4f Hc %.4f Zn %.2f Ho %.4f", body, rep.LHA, rep.Hc, rep.Zn, rep.Ho)
	if *s.asJSON {
		return report.WriteJSON(e.out, newSightJSON(body, pos.Instant, pos.GHA, pos.Dec, *s.hs, rep))
	}
	w := e.report()
	w.WriteSight(report.SightInput{
		Body: body, Instant: pos.Instant, GHA: pos.GHA, Dec: pos.Dec,
		Lat: *s.lat, Lon: *s.lon, Hs: *s.hs,
	}, rep)
	w.WriteCorrections(*s.hs, c)
	return nil
}

func runSun(e *env, args []string) error {
	fs := newFlagSet(e, "sun")
	s := addSightFlags(fs)
	limb := fs.String("limb", "LL", "Limb observed (LL or UL)")
	sd := fs.Float64("sd-min", config.SunSemiDiameterMin, "Semi-diameter (minutes)")
	par := fs.Float64("parallax-min", config.SunParallaxMin, "Parallax in altitude (minutes)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := require(fs, "lat", "lon", "hs"); err != nil {
		return err
	}

	pos, err := s.resolve(fs, func(p ephem.Provider, in astro.Instant) (float64, float64, error) {
		sun, err := p.Sun(in)
		return sun.GHA, sun.Dec, err
	})
	if err != nil {
		return err
	}
	c := s.obs.corrections()
	c.Limb = sight.ParseLimb(*limb)
	c.SemiDiameterMin = *sd
	c.ParallaxMin = *par
	return e.writeSight("Sun", s, pos, c)
}

func runStar(e *env, args []string) error {
	fs := newFlagSet(e, "star")
	s := addSightFlags(fs)
	name := fs.String("name", "", "Catalog star name (used with -time)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := require(fs, "lat", "lon", "hs"); err != nil {
		return err
	}

	body := "Star"
	if *name != "" {
		star, ok := astro.LookupStar(*name)
		if !ok {
			return fmt.Errorf("%q: %w", *name, astro.ErrStarNotFound)
		}
		body = star.Name
	}
	pos, err := s.resolve(fs, func(p ephem.Provider, in astro.Instant) (float64, float64, error) {
		if *name == "" {
			return 0, 0, errors.New("-time needs -name")
		}
		return ephem.StarPosition(p, *name, in)
	})
	if err != nil {
		return err
	}
	return e.writeSight(body, s, pos, s.obs.corrections())
}

func runMoon(e *env, args []string) error {
	fs := newFlagSet(e, "moon")
	s := addSightFlags(fs)
	limb := fs.String("limb", "LL", "Limb observed (LL or UL)")
	sd := fs.Float64("sd-min", config.MoonSemiDiameterMin, "Semi-diameter (minutes); computed with -time unless given")
	hp := fs.Float64("hp-min", config.MoonHPMin, "Horizontal parallax (minutes); computed with -time unless given")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := require(fs, "lat", "lon", "hs"); err != nil {
		return err
	}

	var moon ephem.MoonSample
	pos, err := s.resolve(fs, func(_ ephem.Provider, in astro.Instant) (float64, float64, error) {
		m, err := ephem.MeeusProvider{}.Moon(in)
		moon = m
		return m.GHA, m.Dec, err
	})
	if err != nil {
		return err
	}
	if pos.Instant != (astro.Instant{}) {
		if !isSet(fs, "sd-min") {
			*sd = moon.SDMin
		}
		if !isSet(fs, "hp-min") {
			*hp = moon.HPMin
		}
	}

	c := s.obs.corrections()
	c.Limb = sight.ParseLimb(*limb)
	c.SemiDiameterMin = *sd
	c.ParallaxMin = sight.ParallaxInAltitudeMinutes(sight.ApparentAltitude(*s.hs, c), *hp)
	return e.writeSight("Moon", s, pos, c)
}

type noonJSON struct {
	Ho        float64  `json:"ho"`
	Dec       float64  `json:"dec"`
	Bearing   string   `json:"bearing"`
	Latitude  float64  `json:"latitude"`
	Signed    float64  `json:"signed_latitude"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func runNoon(e *env, args []string) error {
	fs := newFlagSet(e, "noon")
	obs := addObserverFlags(fs)
	eph := addEphemFlags(fs)
	hs := fs.Float64("hs", 0, "Maximum sextant altitude at local apparent noon (deg)")
	dec := fs.Float64("dec", 0, "Sun declination at LAN (deg)")
	at := fs.String("time", "", "UTC of LAN; supplies the declination when -dec is omitted")
	bearing := fs.String("bearing", "south", "Direction the Sun bears at the meridian (south, north)")
	utcLAN := fs.String("utc-lan", "", "UTC of LAN (HH:MM[:SS] or decimal hours) for longitude")
	useEoT := fs.Bool("eot", false, "Correct the longitude for the equation of time")
	doy := fs.Int("doy", 0, "Day of year for -eot (defaults to the -time or -date day)")
	limb := fs.String("limb", "LL", "Limb observed (LL or UL)")
	sd := fs.Float64("sd-min", config.SunSemiDiameterMin, "Semi-diameter (minutes)")
	par := fs.Float64("parallax-min", config.SunParallaxMin, "Parallax in altitude (minutes)")
	date := fs.String("date", "", "Predict LAN for this date (YYYY-MM-DD) instead of reducing a sight")
	drLon := fs.Float64("lon", 0, "DR longitude for -date (deg, +E)")
	asJSON := fs.Bool("json", false, "Print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *date != "" {
		if err := require(fs, "lon"); err != nil {
			return err
		}
		day, err := astro.ParseInstant(*date + "T00:00")
		if err != nil {
			return err
		}
		lan, sunDec := astro.LocalApparentNoon(day, *drLon)
		e.report().WriteBody("Local apparent noon", "meridian "+report.Longitude(*drLon), lan,
			navmath.Normalize360(-*drLon), sunDec)
		return nil
	}

	if err := require(fs, "hs"); err != nil {
		return err
	}
	var lanInstant astro.Instant
	if *at != "" {
		in, err := astro.ParseInstant(*at)
		if err != nil {
			return err
		}
		lanInstant = in
	}
	if !isSet(fs, "dec") {
		if *at == "" {
			return errors.New("noon: give -dec or -time")
		}
		p, err := eph.provider()
		if err != nil {
			return err
		}
		sun, err := p.Sun(lanInstant)
		if err != nil {
			return err
		}
		*dec = sun.Dec
	}

	c := obs.corrections()
	c.Limb = sight.ParseLimb(*limb)
	c.SemiDiameterMin = *sd
	c.ParallaxMin = *par
	ho := sight.ObservedAltitude(*hs, c)
	b := sight.ParseBearing(*bearing)
	lat := sight.NoonLatitude(ho, *dec, b)
	signed := sight.SignedNoonLatitude(ho, *dec, b)

	var lon *float64
	if *utcLAN != "" {
		hours, err := navmath.ParseHours(*utcLAN)
		if err != nil {
			return err
		}
		v := sight.LongitudeFromNoon(hours)
		if *useEoT {
			day := *doy
			if day == 0 && *at != "" {
				day = lanInstant.DayOfYear()
			}
			if day < 1 || day > 366 {
				return fmt.Errorf("noon: -eot needs -doy or -time: %w", navmath.ErrPrecondition)
			}
			v = sight.LongitudeFromNoonEoT(hours, day)
		}
		v = navmath.Normalize180(v)
		lon = &v
	}

	if *asJSON {
		return report.WriteJSON(e.out, noonJSON{Ho: ho, Dec: *dec, Bearing: b.String(), Latitude: lat, Signed: signed, Longitude: lon})
	}
	e.report().WriteNoon(ho, *dec, b, lat, signed, lon)
	return nil
}

func runConvert(e *env, args []string) error {
	fs := newFlagSet(e, "convert")
	mode := fs.String("mode", "", "utc-to-lmt or lmt-to-utc")
	utc := fs.String("utc", "", "UTC (HH:MM[:SS] or decimal hours)")
	lmt := fs.String("lmt", "", "LMT (HH:MM[:SS] or decimal hours)")
	lon := fs.Float64("lon", 0, "Longitude (deg, +E)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := require(fs, "mode", "lon"); err != nil {
		return err
	}

	switch *mode {
	case "utc-to-lmt":
		hours, err := navmath.ParseHours(*utc)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.out, "LMT: %0.4f h\n", sight.UTCToLMT(hours, *lon))
	case "lmt-to-utc":
		hours, err := navmath.ParseHours(*lmt)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.out, "UTC: %0.4f h\n", sight.LMTToUTC(hours, *lon))
	default:
		return fmt.Errorf("convert: unknown mode %q", *mode)
	}
	return nil
}

func runEoT(e *env, args []string) error {
	fs := newFlagSet(e, "eot")
	doy := fs.Int("doy", 0, "Day of year (1..366)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *doy < 1 || *doy > 366 {
		return fmt.Errorf("eot: day of year %d out of range: %w", *doy, navmath.ErrPrecondition)
	}
	fmt.Fprintf(e.out, "EoT: %+.2f minutes\n", sight.EquationOfTimeMinutes(*doy))
	return nil
}

func runSRT(e *env, args []string) error {
	fs := newFlagSet(e, "srt")
	mode := fs.String("mode", "lha", "Range is LHA (lha) or GHA (from-gha)")
	lat := fs.Float64("lat", 0, "Latitude (deg)")
	dec := fs.Float64("dec", 0, "Declination (deg)")
	lon := fs.Float64("lon", 0, "Longitude for -mode from-gha (deg, +E)")
	start := fs.Float64("lha-start", 0, "First LHA or GHA (deg)")
	stop := fs.Float64("lha-stop", 0, "Last LHA or GHA (deg)")
	step := fs.Float64("lha-step", 5, "Step (deg)")
	csv := fs.Bool("csv", false, "Print CSV")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := require(fs, "lat", "dec", "lha-start", "lha-stop"); err != nil {
		return err
	}

	var fromGHA bool
	switch *mode {
	case "lha":
	case "from-gha":
		fromGHA = true
	default:
		return fmt.Errorf("srt: unknown mode %q", *mode)
	}
	rows, err := sight.Table(*lat, *dec, *start, *stop, *step, *lon, fromGHA)
	if err != nil {
		return err
	}

	if *csv {
		fmt.Fprintln(e.out, "LHA,Hc_deg,Zn_deg")
		for _, r := range rows {
			fmt.Fprintf(e.out, "%.2f,%.6f,%.6f\n", r.LHA, r.Hc, r.Zn)
		}
		return nil
	}
	e.report().WriteTable(*lat, *dec, rows)
	return nil
}
