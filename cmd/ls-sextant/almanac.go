package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/litescript/ls-sextant/internal/astro"
	"github.com/litescript/ls-sextant/internal/ephem"
	"github.com/litescript/ls-sextant/internal/report"
)

type almanacFlags struct {
	utc    *string
	day    *string
	asJSON *bool
	eph    *ephemFlags
}

func addAlmanacFlags(fs *flag.FlagSet) *almanacFlags {
	return &almanacFlags{
		utc:    fs.String("utc", "", "UTC instant, e.g. 2025-06-21T10:30:00Z"),
		day:    fs.String("day", "", "Whole day of hourly values (YYYY-MM-DD)"),
		asJSON: fs.Bool("json", false, "Print JSON"),
		eph:    addEphemFlags(fs),
	}
}

// almanacJSON is one almanac row. Fields that do not apply are omitted.
type almanacJSON struct {
	Time     string   `json:"time"`
	SunGHA   *float64 `json:"sun_gha,omitempty"`
	SunDec   *float64 `json:"sun_dec,omitempty"`
	AriesGHA *float64 `json:"aries_gha,omitempty"`
}

// rows evaluates the provider at -utc, or at every hour of -day.
func (a *almanacFlags) rows(p ephem.Provider) ([]astro.Instant, []report.AlmanacRow, error) {
	var instants []astro.Instant
	switch {
	case *a.utc != "":
		in, err := astro.ParseInstant(*a.utc)
		if err != nil {
			return nil, nil, err
		}
		instants = []astro.Instant{in}
	case *a.day != "":
		day, err := astro.ParseInstant(*a.day + "T00:00")
		if err != nil {
			return nil, nil, err
		}
		for h := 0; h < ephem.RecordsPerDay; h++ {
			in := day
			in.Hour = h
			instants = append(instants, in)
		}
	default:
		return nil, nil, errors.New("give -utc or -day")
	}

	rows := make([]report.AlmanacRow, len(instants))
	for i, in := range instants {
		sun, err := p.Sun(in)
		if err != nil {
			return nil, nil, err
		}
		aries, err := p.AriesGHA(in)
		if err != nil {
			return nil, nil, err
		}
		rows[i] = report.AlmanacRow{Hour: in.Hour, SunGHA: sun.GHA, SunDec: sun.Dec, AriesGHA: aries}
	}
	return instants, rows, nil
}

func runAlmanacSun(e *env, args []string) error {
	return runAlmanac(e, "almanac-sun", args, true)
}

func runAlmanacAries(e *env, args []string) error {
	return runAlmanac(e, "almanac-aries", args, false)
}

func runAlmanac(e *env, name string, args []string, sun bool) error {
	fs := newFlagSet(e, name)
	a := addAlmanacFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	p, err := a.eph.provider()
	if err != nil {
		return err
	}
	instants, rows, err := a.rows(p)
	if err != nil {
		return err
	}
	e.log.Debug("%s: %d rows from %s", name, len(rows), p.Name())

	if *a.asJSON {
		out := make([]almanacJSON, len(rows))
		for i := range rows {
			r := rows[i]
			out[i].Time = instants[i].String()
			if sun {
				out[i].SunGHA, out[i].SunDec = &r.SunGHA, &r.SunDec
			} else {
				out[i].AriesGHA = &r.AriesGHA
			}
		}
		return report.WriteJSON(e.out, out)
	}

	w := e.report()
	switch {
	case *a.utc != "" && sun:
		w.WriteBody("Sun", p.Name(), instants[0], rows[0].SunGHA, rows[0].SunDec)
	case *a.utc != "":
		w.WriteAries(p.Name(), instants[0], rows[0].AriesGHA)
	case sun:
		w.WriteSunPage(instants[0], p.Name(), rows)
	default:
		w.WriteAriesPage(instants[0], p.Name(), rows)
	}
	return nil
}

func runAlmanacMoon(e *env, args []string) error {
	fs := newFlagSet(e, "almanac-moon")
	utc := fs.String("utc", "", "UTC instant")
	asJSON := fs.Bool("json", false, "Print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := require(fs, "utc"); err != nil {
		return err
	}
	in, err := astro.ParseInstant(*utc)
	if err != nil {
		return err
	}
	m, err := ephem.MeeusProvider{}.Moon(in)
	if err != nil {
		return err
	}
	if *asJSON {
		return report.WriteJSON(e.out, struct {
			Time string  `json:"time"`
			GHA  float64 `json:"gha"`
			Dec  float64 `json:"dec"`
			HP   float64 `json:"hp_min"`
			SD   float64 `json:"sd_min"`
		}{in.String(), m.GHA, m.Dec, m.HPMin, m.SDMin})
	}
	e.report().WriteMoon(in, m)
	return nil
}

func runAlmanacGenerate(e *env, args []string) error {
	fs := newFlagSet(e, "almanac-generate")
	year := fs.Int("year", 0, "Year to tabulate")
	out := fs.String("out", "", "Output file; .msgpack or .mp selects msgpack, anything else JSON")
	source := fs.String("source", "meeus", "Source ephemeris (meeus, analytic)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := require(fs, "year", "out"); err != nil {
		return err
	}

	var p ephem.Provider
	switch ephem.ParseMode(*source) {
	case ephem.ModeMeeus:
		p = ephem.MeeusProvider{}
	case ephem.ModeAnalytic:
		p = ephem.AnalyticProvider{}
	default:
		return fmt.Errorf("almanac-generate: unsupported source %q", *source)
	}

	e.log.Info("generating %d almanac from %s", *year, p.Name())
	t, err := ephem.GenerateTable(p, *year)
	if err != nil {
		return err
	}
	if err := t.Save(*out); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "wrote %d records (%s to %s) to %s\n",
		len(t.Records), t.Header.StartDate, t.Header.EndDate, *out)
	return nil
}
