// Package report renders reductions, almanac pages and fixes as text.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/litescript/ls-sextant/internal/navmath"
)

// Styles colors the text output. The zero-styled set renders plain text.
type Styles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Dim    lipgloss.Style
	Accent lipgloss.Style
	Warn   lipgloss.Style
}

// PlainStyles renders without escape sequences.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Title: s, Label: s, Value: s, Dim: s, Accent: s, Warn: s}
}

// TerminalStyles uses the application palette.
func TerminalStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Value:  lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0")),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Accent: lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF")),
		Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")),
	}
}

// Writer renders reports to an io.Writer.
type Writer struct {
	w  io.Writer
	st Styles
}

// New creates a writer. styled selects TerminalStyles.
func New(w io.Writer, styled bool) *Writer {
	st := PlainStyles()
	if styled {
		st = TerminalStyles()
	}
	return &Writer{w: w, st: st}
}

func (r *Writer) title(s string) {
	fmt.Fprintln(r.w, r.st.Title.Render(s))
	fmt.Fprintln(r.w, r.st.Dim.Render(strings.Repeat("─", 60)))
}

func (r *Writer) field(label, value string) {
	fmt.Fprintf(r.w, "%s %s\n", r.st.Label.Render(fmt.Sprintf("%-14s", label)), r.st.Value.Render(value))
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Latitude formats a signed latitude as "40° 30.00′ N".
func Latitude(deg float64) string {
	return navmath.FormatDM(deg) + " " + hemisphere(deg, "N", "S")
}

// Longitude formats an east-positive longitude as "70° 15.00′ W".
func Longitude(deg float64) string {
	return navmath.FormatDM(deg) + " " + hemisphere(deg, "E", "W")
}

func hemisphere(deg float64, pos, neg string) string {
	if deg < 0 {
		return neg
	}
	return pos
}

// Angle formats degrees with the degree-minute form alongside, for hour
// angles and altitudes.
func Angle(deg float64) string {
	return fmt.Sprintf("%9.4f°  (%s)", deg, DMString(deg))
}

// DMString formats a signed angle in degree-minutes.
func DMString(deg float64) string {
	if deg < 0 {
		return "-" + navmath.FormatDM(deg)
	}
	return navmath.FormatDM(deg)
}

// DMS formats degrees as sexagesimal degrees, minutes and seconds.
func DMS(deg float64) string {
	return fmt.Sprintf("%.1s", sexa.FmtAngle(unit.AngleFromDeg(deg)))
}
