// Package ui provides the interactive sight form using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-sextant/internal/config"
	"github.com/litescript/ls-sextant/internal/ephem"
	"github.com/litescript/ls-sextant/internal/logging"
	"github.com/litescript/ls-sextant/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewSight ViewMode = iota
	ViewStars
)

const viewCount = 2

// Msg types for Bubble Tea
type (
	// TickMsg refreshes the clock and any sight taken "now".
	TickMsg time.Time

	// StarChosenMsg asks the sight form to reduce a star from the finder.
	StarChosenMsg struct {
		Name string
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	cfg      config.Config
	provider ephem.Provider
	log      *logging.Logger
	now      func() time.Time

	viewMode ViewMode
	width    int
	height   int
	ready    bool
	clock    time.Time

	form  SightFormModel
	stars StarsViewModel
}

// New creates the root model. cfg supplies the observer defaults; the form
// edits a copy.
func New(cfg config.Config, provider ephem.Provider, log *logging.Logger) Model {
	if log == nil {
		log = logging.Discard()
	}
	return newModel(cfg, provider, log, time.Now)
}

func newModel(cfg config.Config, provider ephem.Provider, log *logging.Logger, now func() time.Time) Model {
	m := Model{
		cfg:      cfg,
		provider: provider,
		log:      log,
		now:      now,
		viewMode: ViewSight,
		clock:    now().UTC(),
		form:     NewSightFormModel(cfg, provider, log),
		stars:    NewStarsViewModel(provider, log),
	}
	m.form = m.form.Recompute(m.clock)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount
			if m.viewMode == ViewStars {
				m.stars = m.stars.Refresh(m.form.Position(m.clock))
			}

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.clock = time.Time(msg).UTC()
		if m.form.UsesNow() {
			m.form = m.form.Recompute(m.clock)
		}

	case StarChosenMsg:
		m.form = m.form.SetBody(msg.Name).Recompute(m.clock)
		m.viewMode = ViewSight

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewSight:
		m.form, cmd = m.form.Update(msg)
		m.form = m.form.Recompute(m.clock)
	case ViewStars:
		m.stars, cmd = m.stars.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewSight:
		content = m.form.View()
	case ViewStars:
		content = m.stars.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(renderGradient("LS-SEXTANT"))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  v%s · sight reduction", version.Version)))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"Sight", "Stars"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "   ")
}

func (m Model) renderFooter() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	var help string
	switch m.viewMode {
	case ViewSight:
		help = "↑/↓ field · type to edit · ctrl+u clear · tab stars · esc quit"
	case ViewStars:
		help = "↑/↓ select · enter reduce · tab sight · esc quit"
	}
	clock := m.clock.Format("2006-01-02 15:04:05") + " UTC"
	return dim.Render("  "+help) + "  " + accent.Render(clock)
}

// renderGradient colors text along the purple-to-pink banner gradient.
func renderGradient(text string) string {
	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		c := gradientColor(i, len(runes))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Bold(true).Render(string(r)))
	}
	return b.String()
}

// gradientColor returns the hex color at position col of width:
// blue -> purple -> magenta -> pink.
func gradientColor(col, width int) string {
	if width <= 1 {
		return "#3B82F6"
	}
	x := float64(col) / float64(width-1)

	type rgb struct{ r, g, b float64 }
	stops := []rgb{{59, 130, 246}, {139, 92, 246}, {217, 70, 239}, {236, 72, 153}}
	seg := x * float64(len(stops)-1)
	i := int(seg)
	if i >= len(stops)-1 {
		i = len(stops) - 2
	}
	t := seg - float64(i)
	a, c := stops[i], stops[i+1]
	return fmt.Sprintf("#%02X%02X%02X",
		int(a.r+t*(c.r-a.r)), int(a.g+t*(c.g-a.g)), int(a.b+t*(c.b-a.b)))
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Run starts the interactive program on the alternate screen.
func Run(cfg config.Config, provider ephem.Provider, log *logging.Logger) error {
	p := tea.NewProgram(New(cfg, provider, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
