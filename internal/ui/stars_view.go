package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-sextant/internal/astro"
	"github.com/litescript/ls-sextant/internal/ephem"
	"github.com/litescript/ls-sextant/internal/logging"
	"github.com/litescript/ls-sextant/internal/report"
)

// fixStarCount is how many stars the finder marks for a fix.
const fixStarCount = 3

// StarsViewModel lists the stars worth shooting from the form's DR position.
type StarsViewModel struct {
	provider ephem.Provider
	log      *logging.Logger

	pos      Position
	stars    []astro.VisibleStar
	pick     map[string]bool
	selected int
	err      error
}

// NewStarsViewModel creates an empty finder.
func NewStarsViewModel(provider ephem.Provider, log *logging.Logger) StarsViewModel {
	return StarsViewModel{provider: provider, log: log}
}

// Stars returns the listed stars, sorted by azimuth.
func (m StarsViewModel) Stars() []astro.VisibleStar { return m.stars }

// Selected returns the highlighted row.
func (m StarsViewModel) Selected() int { return m.selected }

// Picked reports whether a star is among those chosen for a fix.
func (m StarsViewModel) Picked(name string) bool { return m.pick[name] }

// Refresh recomputes the list for a new position or time.
func (m StarsViewModel) Refresh(pos Position) StarsViewModel {
	m.pos = pos
	m.stars = nil
	m.pick = nil
	m.err = pos.Err
	if m.err != nil {
		return m
	}

	aries, err := m.provider.AriesGHA(pos.At)
	if err != nil {
		m.err = err
		return m
	}
	m.stars = astro.VisibleStars(pos.Lat, pos.Lon, aries, astro.MinShootAltitude, astro.MaxShootAltitude)
	if m.selected >= len(m.stars) {
		m.selected = 0
	}

	chosen, err := astro.SelectForFix(m.stars, fixStarCount)
	if err != nil {
		m.log.Debug("star finder: %v", err)
		return m
	}
	m.pick = make(map[string]bool, len(chosen))
	for _, s := range chosen {
		m.pick[s.Star.Name] = true
	}
	return m
}

// Update handles selection keys.
func (m StarsViewModel) Update(msg tea.Msg) (StarsViewModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.stars) == 0 {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.stars)-1 {
			m.selected++
		}
	case "enter":
		name := m.stars[m.selected].Star.Name
		return m, func() tea.Msg { return StarChosenMsg{Name: name} }
	}
	return m, nil
}

// View renders the star list. Stars marked ★ give the widest azimuth spread.
func (m StarsViewModel) View() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	active := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))
	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))

	var b strings.Builder
	if m.err != nil {
		b.WriteString(warn.Render("  "+m.err.Error()) + "\n")
		return b.String()
	}

	b.WriteString(dim.Render(fmt.Sprintf("  From %s  %s at %s",
		report.Latitude(m.pos.Lat), report.Longitude(m.pos.Lon), m.pos.At)))
	b.WriteString("\n\n")
	if len(m.stars) == 0 {
		b.WriteString(warn.Render("  No catalog stars between 15° and 70°") + "\n")
		return b.String()
	}

	b.WriteString(dim.Render(fmt.Sprintf("    %-16s %5s %8s %7s %7s", "Star", "Mag", "Hc", "Zn", "Tier")))
	b.WriteString("\n")
	for i, s := range m.stars {
		mark := " "
		if m.pick[s.Star.Name] {
			mark = accent.Render("★")
		}
		row := fmt.Sprintf("%-16s %5.2f %8.2f %7.1f %7s", s.Star.Name, s.Star.Mag, s.Hc, s.Zn, s.Tier)
		if i == m.selected {
			row = active.Render("▶" + mark + " " + row)
		} else {
			row = " " + mark + " " + row
		}
		b.WriteString(" " + row + "\n")
	}
	return b.String()
}
