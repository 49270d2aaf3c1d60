// Package config loads sight-reduction job files.
//
// A job file is TOML:
//
//	[observer]
//	index_error = 1.5
//	height_of_eye = 3.0
//	pressure = 1010.0
//	temperature = 10.0
//
//	[ephemeris]
//	mode = "auto"
//	table = "sun_aries_2025_hourly.json"
//
//	[[sight]]
//	body = "Vega"
//	time = "2025-03-20T09:01:30"
//	hs = 42.1234
//	lat = 40.0
//	lon = -70.0
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/naoina/toml"

	"github.com/litescript/ls-sextant/internal/astro"
	"github.com/litescript/ls-sextant/internal/ephem"
	"github.com/litescript/ls-sextant/internal/sight"
)

// Default semi-diameters and parallaxes, arc-minutes.
const (
	SunSemiDiameterMin  = 15.8
	SunParallaxMin      = 0.1
	MoonSemiDiameterMin = 15.4
	MoonHPMin           = 57.0
)

// Body names with special handling. Anything else is a catalog star, or
// "custom" with explicit GHA and declination.
const (
	BodySun    = "sun"
	BodyMoon   = "moon"
	BodyCustom = "custom"
)

// Config is a complete job.
type Config struct {
	Observer  Observer
	Ephemeris Ephemeris
	Sights    []SightEntry `toml:"sight"`
}

// Observer holds instrument and atmosphere defaults shared by every sight.
type Observer struct {
	IndexErrorMin float64 `toml:"index_error"`
	HeightOfEyeM  float64 `toml:"height_of_eye"`
	PressureHPa   float64 `toml:"pressure"`
	TemperatureC  float64 `toml:"temperature"`
	LogLevel      string  `toml:"log_level"`
}

// Ephemeris selects the almanac source.
type Ephemeris struct {
	Mode  string
	Table string
}

// SightEntry is one observation. Lat/Lon is the assumed position. GHA and Dec
// are read only for custom bodies; SD and HP override the body defaults when
// non-zero.
type SightEntry struct {
	Body string
	Time string
	Hs   float64
	Limb string
	Lat  float64
	Lon  float64
	GHA  float64 `toml:"gha"`
	Dec  float64
	SD   float64 `toml:"sd"`
	HP   float64 `toml:"hp"`
}

// DefaultConfig returns a config with a standard atmosphere and auto ephemeris.
func DefaultConfig() Config {
	return Config{
		Observer: Observer{
			PressureHPa:  sight.DefaultPressureHPa,
			TemperatureC: sight.DefaultTemperatureC,
			LogLevel:     "info",
		},
		Ephemeris: Ephemeris{Mode: ephem.ModeAuto.String()},
	}
}

// Load reads and validates a job file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over DefaultConfig and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field that would otherwise fail deep inside a
// reduction. All problems are reported together.
func (c Config) Validate() error {
	var errs []error

	if c.Observer.HeightOfEyeM < 0 {
		errs = append(errs, fmt.Errorf("observer: height_of_eye %v is negative", c.Observer.HeightOfEyeM))
	}
	if c.Observer.PressureHPa <= 0 {
		errs = append(errs, fmt.Errorf("observer: pressure %v must be positive", c.Observer.PressureHPa))
	}
	if c.Observer.TemperatureC <= -273.15 {
		errs = append(errs, fmt.Errorf("observer: temperature %v below absolute zero", c.Observer.TemperatureC))
	}

	switch c.Ephemeris.Mode {
	case "", "auto", "analytic", "meeus":
	case "table":
		if c.Ephemeris.Table == "" {
			errs = append(errs, errors.New("ephemeris: mode table needs a table path"))
		}
	default:
		errs = append(errs, fmt.Errorf("ephemeris: unknown mode %q", c.Ephemeris.Mode))
	}

	for i, s := range c.Sights {
		if err := s.validate(); err != nil {
			errs = append(errs, fmt.Errorf("sight %d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}

func (s SightEntry) validate() error {
	body := s.BodyName()
	switch {
	case body == "":
		return errors.New("body is required")
	case body != BodySun && body != BodyMoon && body != BodyCustom:
		if _, ok := astro.LookupStar(s.Body); !ok {
			return fmt.Errorf("%q: %w", s.Body, astro.ErrStarNotFound)
		}
	}
	if body != BodyCustom {
		if _, err := astro.ParseInstant(s.Time); err != nil {
			return err
		}
	} else if s.Dec < -90 || s.Dec > 90 {
		return fmt.Errorf("dec %v out of range", s.Dec)
	}
	if s.Hs < -5 || s.Hs > 90 {
		return fmt.Errorf("hs %v out of range", s.Hs)
	}
	if s.Lat < -90 || s.Lat > 90 {
		return fmt.Errorf("lat %v out of range", s.Lat)
	}
	if l := strings.ToUpper(strings.TrimSpace(s.Limb)); l != "" && l != "LL" && l != "UL" {
		return fmt.Errorf("limb %q is not LL or UL", s.Limb)
	}
	return nil
}

// BodyName returns the lower-cased, trimmed body.
func (s SightEntry) BodyName() string {
	return strings.ToLower(strings.TrimSpace(s.Body))
}

// CorrectionsFor builds the correction inputs for one sight. Moon parallax
// depends on altitude and the Moon's distance, so the caller supplies HP
// through ParallaxInAltitudeMinutes once it is known.
func (c Config) CorrectionsFor(s SightEntry) sight.Corrections {
	corr := sight.Corrections{
		IndexErrorMin: c.Observer.IndexErrorMin,
		HeightOfEyeM:  c.Observer.HeightOfEyeM,
		PressureHPa:   c.Observer.PressureHPa,
		TemperatureC:  c.Observer.TemperatureC,
		Limb:          sight.ParseLimb(s.Limb),
	}

	switch s.BodyName() {
	case BodySun:
		corr.SemiDiameterMin = SunSemiDiameterMin
		corr.ParallaxMin = SunParallaxMin
	case BodyMoon:
		corr.SemiDiameterMin = MoonSemiDiameterMin
	}
	if s.SD != 0 {
		corr.SemiDiameterMin = s.SD
	}
	return corr
}
