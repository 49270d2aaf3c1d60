// Package ephem provides almanac data sources for the Sun and Aries.
package ephem

import (
	"errors"
	"fmt"

	"github.com/litescript/ls-sextant/internal/astro"
	"github.com/litescript/ls-sextant/internal/navmath"
)

// Provider defines the interface for almanac data sources.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// Sun returns the Sun's GHA and declination at an instant.
	Sun(in astro.Instant) (astro.SunSample, error)

	// AriesGHA returns the Greenwich hour angle of Aries at an instant.
	AriesGHA(in astro.Instant) (float64, error)
}

// Mode represents which almanac source to use.
type Mode int

const (
	ModeAuto     Mode = iota // Table when loaded and covering the instant, else analytic (default)
	ModeAnalytic             // In-repo low-precision reduction
	ModeMeeus                // Meeus algorithms with nutation
	ModeTable                // Precomputed hourly table only
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeAnalytic:
		return "analytic"
	case ModeMeeus:
		return "meeus"
	case ModeTable:
		return "table"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string. Unknown values select ModeAuto.
func ParseMode(s string) Mode {
	switch s {
	case "analytic":
		return ModeAnalytic
	case "meeus":
		return ModeMeeus
	case "table":
		return ModeTable
	default:
		return ModeAuto
	}
}

// NewProvider builds the provider for a mode. table may be nil except for
// ModeTable.
func NewProvider(mode Mode, table *Table) (Provider, error) {
	switch mode {
	case ModeAnalytic:
		return AnalyticProvider{}, nil
	case ModeMeeus:
		return MeeusProvider{}, nil
	case ModeTable:
		if table == nil {
			return nil, fmt.Errorf("table mode without a loaded table: %w", navmath.ErrPrecondition)
		}
		return NewTableProvider(table), nil
	case ModeAuto:
		if table == nil {
			return AnalyticProvider{}, nil
		}
		return &autoProvider{primary: NewTableProvider(table), fallback: AnalyticProvider{}}, nil
	default:
		return nil, fmt.Errorf("unknown ephemeris mode %d: %w", mode, navmath.ErrPrecondition)
	}
}

// autoProvider answers from the table and falls back when the instant lies
// outside it.
type autoProvider struct {
	primary  Provider
	fallback Provider
}

func (p *autoProvider) Name() string {
	return "auto(" + p.primary.Name() + ", " + p.fallback.Name() + ")"
}

func (p *autoProvider) Sun(in astro.Instant) (astro.SunSample, error) {
	s, err := p.primary.Sun(in)
	if errors.Is(err, navmath.ErrLookup) {
		return p.fallback.Sun(in)
	}
	return s, err
}

func (p *autoProvider) AriesGHA(in astro.Instant) (float64, error) {
	g, err := p.primary.AriesGHA(in)
	if errors.Is(err, navmath.ErrLookup) {
		return p.fallback.AriesGHA(in)
	}
	return g, err
}

// AnalyticProvider computes the almanac with the in-repo solar theory and GMST.
type AnalyticProvider struct{}

// Name implements Provider.
func (AnalyticProvider) Name() string { return "analytic" }

// Sun implements Provider.
func (AnalyticProvider) Sun(in astro.Instant) (astro.SunSample, error) {
	return astro.Sun(in), nil
}

// AriesGHA implements Provider.
func (AnalyticProvider) AriesGHA(in astro.Instant) (float64, error) {
	return astro.AriesGHA(in), nil
}

// StarPosition returns a star's GHA and declination using p for Aries.
func StarPosition(p Provider, name string, in astro.Instant) (gha, dec float64, err error) {
	star, ok := astro.LookupStar(name)
	if !ok {
		return 0, 0, fmt.Errorf("%q: %w", name, astro.ErrStarNotFound)
	}
	aries, err := p.AriesGHA(in)
	if err != nil {
		return 0, 0, err
	}
	return astro.StarGHA(aries, star.SHA), star.Dec, nil
}
