package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/litescript/ls-sextant/internal/navmath"
	"github.com/litescript/ls-sextant/internal/sight"
)

const sampleJob = `
[observer]
index_error = -1.5
height_of_eye = 2.5
pressure = 1020.0
temperature = 25.0
log_level = "debug"

[ephemeris]
mode = "meeus"

[[sight]]
body = "Sun"
time = "2025-06-01T15:30:00"
hs = 55.5
limb = "UL"
lat = 36.5
lon = -122.0

[[sight]]
body = "Arcturus"
time = "2025-06-01T03:10"
hs = 48.25
lat = 36.5
lon = -122.0

[[sight]]
body = "custom"
gha = 123.4
dec = -12.5
hs = 33.0
lat = 36.5
lon = -122.0
sd = 0.2
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleJob))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	obs := cfg.Observer
	if obs.IndexErrorMin != -1.5 || obs.HeightOfEyeM != 2.5 || obs.PressureHPa != 1020 || obs.TemperatureC != 25 {
		t.Errorf("observer = %+v", obs)
	}
	if obs.LogLevel != "debug" {
		t.Errorf("log level = %q", obs.LogLevel)
	}
	if cfg.Ephemeris.Mode != "meeus" {
		t.Errorf("mode = %q", cfg.Ephemeris.Mode)
	}
	if len(cfg.Sights) != 3 {
		t.Fatalf("got %d sights, want 3", len(cfg.Sights))
	}
	if s := cfg.Sights[2]; s.GHA != 123.4 || s.Dec != -12.5 || s.SD != 0.2 {
		t.Errorf("custom sight = %+v", s)
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("[[sight]]\nbody = \"Vega\"\ntime = \"2025-01-01T00:00\"\nhs = 20.0\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Observer.PressureHPa != sight.DefaultPressureHPa || cfg.Observer.TemperatureC != sight.DefaultTemperatureC {
		t.Errorf("atmosphere defaults lost: %+v", cfg.Observer)
	}
	if cfg.Ephemeris.Mode != "auto" {
		t.Errorf("mode = %q, want auto", cfg.Ephemeris.Mode)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		job  string
		want string
	}{
		{"syntax", "[observer\n", "parse config"},
		{"unknown star", "[[sight]]\nbody = \"Nemesis\"\ntime = \"2025-01-01T00:00\"\nhs = 20.0\n", "Nemesis"},
		{"bad time", "[[sight]]\nbody = \"sun\"\ntime = \"yesterday\"\nhs = 20.0\n", "yesterday"},
		{"missing body", "[[sight]]\nhs = 20.0\n", "body is required"},
		{"bad limb", "[[sight]]\nbody = \"sun\"\ntime = \"2025-01-01T00:00\"\nhs = 20.0\nlimb = \"middle\"\n", "limb"},
		{"bad mode", "[ephemeris]\nmode = \"horoscope\"\n", "unknown mode"},
		{"table without path", "[ephemeris]\nmode = \"table\"\n", "table path"},
		{"negative eye", "[observer]\nheight_of_eye = -1.0\n", "height_of_eye"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.job))
			if err == nil {
				t.Fatal("Parse() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate_ReportsEverySight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sights = []SightEntry{
		{Body: "sun", Time: "bad"},
		{Body: "Vega", Time: "2025-01-01T00:00", Hs: 95},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil")
	}
	if !strings.Contains(err.Error(), "sight 1") || !strings.Contains(err.Error(), "sight 2") {
		t.Errorf("error %q should name both sights", err)
	}
	if !errors.Is(err, navmath.ErrParse) {
		t.Errorf("time error not wrapped: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.toml")
	if err := os.WriteFile(path, []byte(sampleJob), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.Sights) != 3 {
		t.Errorf("got %d sights", len(cfg.Sights))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v", err)
	}
}

func TestCorrectionsFor(t *testing.T) {
	cfg, err := Parse([]byte(sampleJob))
	if err != nil {
		t.Fatal(err)
	}

	sun := cfg.CorrectionsFor(cfg.Sights[0])
	if sun.SemiDiameterMin != SunSemiDiameterMin || sun.ParallaxMin != SunParallaxMin || sun.Limb != sight.UpperLimb {
		t.Errorf("sun corrections = %+v", sun)
	}
	if sun.IndexErrorMin != -1.5 || sun.HeightOfEyeM != 2.5 || sun.PressureHPa != 1020 {
		t.Errorf("observer values not carried: %+v", sun)
	}

	star := cfg.CorrectionsFor(cfg.Sights[1])
	if star.SemiDiameterMin != 0 || star.ParallaxMin != 0 {
		t.Errorf("star corrections = %+v", star)
	}

	custom := cfg.CorrectionsFor(cfg.Sights[2])
	if custom.SemiDiameterMin != 0.2 {
		t.Errorf("SD override ignored: %+v", custom)
	}

	moon := cfg.CorrectionsFor(SightEntry{Body: " Moon "})
	if moon.SemiDiameterMin != MoonSemiDiameterMin {
		t.Errorf("moon SD = %v", moon.SemiDiameterMin)
	}
}
