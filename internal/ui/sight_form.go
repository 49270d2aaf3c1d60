package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-sextant/internal/astro"
	"github.com/litescript/ls-sextant/internal/config"
	"github.com/litescript/ls-sextant/internal/ephem"
	"github.com/litescript/ls-sextant/internal/logging"
	"github.com/litescript/ls-sextant/internal/navmath"
	"github.com/litescript/ls-sextant/internal/plan"
	"github.com/litescript/ls-sextant/internal/report"
)

// Form field indexes.
const (
	FieldBody = iota
	FieldTime
	FieldHs
	FieldLimb
	FieldLat
	FieldLon
	FieldIndexError
	FieldHeightOfEye
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Body", "Time (UTC)", "Hs", "Limb", "DR lat", "DR lon", "Index err ′", "Eye height m",
}

// Position is the DR position and time shared with the star finder.
type Position struct {
	Lat float64
	Lon float64
	At  astro.Instant
	Err error
}

// SightFormModel edits one sight and reduces it on every change.
type SightFormModel struct {
	cfg      config.Config
	provider ephem.Provider
	log      *logging.Logger

	values [fieldCount]string
	focus  int

	reduced *plan.Reduced
	err     error
}

// NewSightFormModel creates a form seeded from the observer settings.
func NewSightFormModel(cfg config.Config, provider ephem.Provider, log *logging.Logger) SightFormModel {
	m := SightFormModel{cfg: cfg, provider: provider, log: log}
	m.values[FieldBody] = "sun"
	m.values[FieldLimb] = "LL"
	m.values[FieldIndexError] = formatFloat(cfg.Observer.IndexErrorMin)
	m.values[FieldHeightOfEye] = formatFloat(cfg.Observer.HeightOfEyeM)
	return m
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Focus returns the focused field index.
func (m SightFormModel) Focus() int { return m.focus }

// Value returns the text of a field.
func (m SightFormModel) Value(field int) string { return m.values[field] }

// SetValue replaces the text of a field.
func (m SightFormModel) SetValue(field int, v string) SightFormModel {
	m.values[field] = v
	return m
}

// SetBody selects the body to reduce.
func (m SightFormModel) SetBody(name string) SightFormModel {
	return m.SetValue(FieldBody, name)
}

// Reduced returns the latest reduction, nil when the inputs do not reduce.
func (m SightFormModel) Reduced() *plan.Reduced { return m.reduced }

// Err returns the input error from the latest Recompute.
func (m SightFormModel) Err() error { return m.err }

// UsesNow reports whether the sight time follows the clock.
func (m SightFormModel) UsesNow() bool {
	return strings.TrimSpace(m.values[FieldTime]) == ""
}

// Update implements the form's key handling.
func (m SightFormModel) Update(msg tea.Msg) (SightFormModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyUp, tea.KeyShiftTab:
		m.focus = (m.focus + fieldCount - 1) % fieldCount
	case tea.KeyDown, tea.KeyEnter:
		m.focus = (m.focus + 1) % fieldCount
	case tea.KeyBackspace:
		if r := []rune(m.values[m.focus]); len(r) > 0 {
			m.values[m.focus] = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		m.values[m.focus] = ""
	case tea.KeySpace:
		m.values[m.focus] += " "
	case tea.KeyRunes:
		for _, r := range key.Runes {
			if unicode.IsPrint(r) {
				m.values[m.focus] += string(r)
			}
		}
	}
	return m, nil
}

// Position parses the DR position and sight time.
func (m SightFormModel) Position(clock time.Time) Position {
	var p Position
	var errs []error
	var err error
	if p.Lat, err = parseAngle(m.values[FieldLat], 'N', 'S'); err != nil {
		errs = append(errs, fmt.Errorf("DR lat: %w", err))
	} else if p.Lat < -90 || p.Lat > 90 {
		errs = append(errs, fmt.Errorf("DR lat %v out of range", p.Lat))
	}
	if p.Lon, err = parseAngle(m.values[FieldLon], 'E', 'W'); err != nil {
		errs = append(errs, fmt.Errorf("DR lon: %w", err))
	}
	if p.At, err = m.instant(clock); err != nil {
		errs = append(errs, fmt.Errorf("time: %w", err))
	}
	p.Err = errors.Join(errs...)
	return p
}

func (m SightFormModel) instant(clock time.Time) (astro.Instant, error) {
	if m.UsesNow() {
		return astro.InstantFromTime(clock.Truncate(time.Second)), nil
	}
	return astro.ParseInstant(m.values[FieldTime])
}

// Recompute parses the form and reduces the sight.
func (m SightFormModel) Recompute(clock time.Time) SightFormModel {
	m.reduced = nil
	m.err = nil

	pos := m.Position(clock)
	hs, hsErr := parseAngle(m.values[FieldHs], 0, 0)
	ie, ieErr := parseNumber(m.values[FieldIndexError])
	hoe, hoeErr := parseNumber(m.values[FieldHeightOfEye])
	if err := errors.Join(pos.Err, fieldErr("Hs", hsErr), fieldErr("index error", ieErr), fieldErr("eye height", hoeErr)); err != nil {
		m.err = err
		return m
	}

	cfg := m.cfg
	cfg.Observer.IndexErrorMin = ie
	cfg.Observer.HeightOfEyeM = hoe
	entry := config.SightEntry{
		Body: m.values[FieldBody],
		Time: pos.At.String(),
		Hs:   hs,
		Limb: m.values[FieldLimb],
		Lat:  pos.Lat,
		Lon:  pos.Lon,
	}
	cfg.Sights = []config.SightEntry{entry}
	if err := cfg.Validate(); err != nil {
		m.err = err
		return m
	}

	r, err := plan.New(cfg, m.provider, m.log).Reduce(entry)
	if err != nil {
		m.err = err
		return m
	}
	m.reduced = &r
	return m
}

func fieldErr(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}

// View renders the form and the latest reduction.
func (m SightFormModel) View() string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	focused := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	value := lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))

	var b strings.Builder
	for i := 0; i < fieldCount; i++ {
		text := m.values[i]
		if i == FieldTime && text == "" {
			text = label.Render("now")
		} else {
			text = value.Render(text)
		}
		if i == m.focus {
			fmt.Fprintf(&b, "%s %s%s\n", focused.Render(fmt.Sprintf("▶ %-13s", fieldLabels[i])), text, focused.Render("_"))
		} else {
			fmt.Fprintf(&b, "%s %s\n", label.Render(fmt.Sprintf("  %-13s", fieldLabels[i])), text)
		}
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		for _, line := range strings.Split(m.err.Error(), "\n") {
			b.WriteString(warn.Render("  "+line) + "\n")
		}
	case m.reduced != nil:
		r := m.reduced
		w := report.New(&b, true)
		w.WriteSight(report.SightInput{
			Body:    r.Entry.Body,
			Instant: r.Instant,
			GHA:     r.GHA,
			Dec:     r.Dec,
			Lat:     r.Entry.Lat,
			Lon:     r.Entry.Lon,
			Hs:      r.Entry.Hs,
		}, r.Report)
		w.WriteCorrections(r.Entry.Hs, r.Corrections)
	}
	return b.String()
}

// parseNumber parses a plain decimal. Empty text is zero.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &navmath.ParseError{Input: s, Reason: "not a number"}
	}
	return v, nil
}

// parseAngle accepts decimal degrees ("-70.25") or degrees and minutes
// ("70 15"), optionally followed by a hemisphere letter. pos and neg name the
// letters; zero disables them. Empty text is zero.
func parseAngle(s string, pos, neg rune) (float64, error) {
	orig := s
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}

	sign := 1
	if pos != 0 {
		last := rune(s[len(s)-1])
		switch last {
		case pos:
			s = strings.TrimSpace(s[:len(s)-1])
		case neg:
			sign = -1
			s = strings.TrimSpace(s[:len(s)-1])
		}
	}
	if strings.HasPrefix(s, "-") {
		sign = -sign
		s = strings.TrimSpace(s[1:])
	}

	parts := strings.Fields(s)
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(parts[0], 64)
		if err != nil || v < 0 {
			break
		}
		if sign < 0 {
			v = -v
		}
		return v, nil
	case 2:
		d, derr := strconv.Atoi(parts[0])
		mins, merr := strconv.ParseFloat(parts[1], 64)
		if derr != nil || merr != nil || d < 0 || mins < 0 || mins >= 60 {
			break
		}
		return navmath.FromDM(d, mins, sign), nil
	}
	return 0, &navmath.ParseError{Input: orig, Reason: "expected degrees or degrees and minutes"}
}
