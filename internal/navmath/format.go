package navmath

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FromDM converts degrees and decimal minutes to signed decimal degrees.
// sign is +1 for north/east and -1 for south/west.
func FromDM(deg int, minutes float64, sign int) float64 {
	v := math.Abs(float64(deg)) + minutes/60
	if sign < 0 {
		return -v
	}
	return v
}

// FormatDM renders the magnitude of an angle as "D° MM.mm′".
// Hemisphere labels are left to the caller.
func FormatDM(deg float64) string {
	a := math.Abs(deg)
	d := math.Floor(a)
	m := (a - d) * 60
	// Rounding the minutes to two places can carry into the degrees.
	if math.Round(m*100) >= 6000 {
		d++
		m = 0
	}
	return fmt.Sprintf("%d° %05.2f′", int(d), m)
}

// ParseHours parses "HH:MM", "HH:MM:SS" or decimal hours into hours.
// A leading minus sign applies to the whole value.
func ParseHours(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, &ParseError{Input: text, Reason: "empty time"}
	}
	if !strings.Contains(s, ":") {
		h, err := parseFinite(s)
		if err != nil {
			return 0, &ParseError{Input: text, Reason: "not a decimal hour value"}
		}
		return h, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, &ParseError{Input: text, Reason: "time must be HH:MM, HH:MM:SS or decimal hours"}
	}

	values := make([]float64, 3)
	for i, p := range parts {
		v, err := parseFinite(strings.TrimSpace(p))
		if err != nil {
			return 0, &ParseError{Input: text, Reason: fmt.Sprintf("field %d is not numeric", i+1)}
		}
		values[i] = v
	}

	sign := 1.0
	if values[0] < 0 || strings.HasPrefix(s, "-") {
		sign = -1
	}
	return sign * (math.Abs(values[0]) + values[1]/60 + values[2]/3600), nil
}

// parseFinite is strconv.ParseFloat without NaN or infinities.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}
