// Package astro reduces a UTC instant to the almanac quantities a navigator
// needs: Greenwich hour angle of Aries, the Sun's GHA and declination, and
// star positions from the navigation star catalog.
package astro

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/litescript/ls-sextant/internal/navmath"
)

// Instant is a UTC calendar instant split into its fields.
type Instant struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second float64
}

// InstantFromTime converts a time.Time to a UTC Instant.
func InstantFromTime(t time.Time) Instant {
	t = t.UTC()
	return Instant{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: float64(t.Second()) + float64(t.Nanosecond())/1e9,
	}
}

// Time returns the instant as a time.Time in UTC.
func (in Instant) Time() time.Time {
	sec := int(in.Second)
	ns := int((in.Second - float64(sec)) * 1e9)
	return time.Date(in.Year, time.Month(in.Month), in.Day, in.Hour, in.Minute, sec, ns, time.UTC)
}

// DayOfYear returns the 1-based day of the year.
func (in Instant) DayOfYear() int {
	return time.Date(in.Year, time.Month(in.Month), in.Day, 0, 0, 0, 0, time.UTC).YearDay()
}

// Hours returns the time of day in decimal hours.
func (in Instant) Hours() float64 {
	return float64(in.Hour) + float64(in.Minute)/60 + in.Second/3600
}

// String formats the instant as YYYY-MM-DDTHH:MM:SSZ.
func (in Instant) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%06.3fZ", in.Year, in.Month, in.Day, in.Hour, in.Minute, in.Second)
}

// ParseInstant parses "YYYY-MM-DDTHH:MM[:SS][Z]". Seconds may carry a
// fraction and default to zero when absent.
func ParseInstant(s string) (Instant, error) {
	text := strings.ToUpper(strings.TrimSpace(s))
	text = strings.TrimSuffix(text, "Z")

	datePart, timePart, ok := strings.Cut(text, "T")
	if !ok {
		return Instant{}, &navmath.ParseError{Input: s, Reason: "missing T between date and time"}
	}

	dateFields := strings.Split(datePart, "-")
	if len(dateFields) != 3 || len(dateFields[0]) != 4 {
		return Instant{}, &navmath.ParseError{Input: s, Reason: "date must be YYYY-MM-DD"}
	}
	timeFields := strings.Split(timePart, ":")
	if len(timeFields) != 2 && len(timeFields) != 3 {
		return Instant{}, &navmath.ParseError{Input: s, Reason: "time must be HH:MM or HH:MM:SS"}
	}

	var in Instant
	ints := []*int{&in.Year, &in.Month, &in.Day, &in.Hour, &in.Minute}
	fields := append(dateFields, timeFields[:2]...)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || strings.HasPrefix(f, "-") || strings.HasPrefix(f, "+") {
			return Instant{}, &navmath.ParseError{Input: s, Reason: fmt.Sprintf("field %q is not a number", f)}
		}
		*ints[i] = v
	}
	if len(timeFields) == 3 {
		sec, err := strconv.ParseFloat(timeFields[2], 64)
		if err != nil || !isDecimal(timeFields[2]) {
			return Instant{}, &navmath.ParseError{Input: s, Reason: fmt.Sprintf("seconds %q is not a number", timeFields[2])}
		}
		in.Second = sec
	}

	if err := in.validate(); err != nil {
		return Instant{}, &navmath.ParseError{Input: s, Reason: err.Error()}
	}
	return in, nil
}

// isDecimal reports whether f is digits with an optional fraction, e.g. "07" or "07.25".
func isDecimal(f string) bool {
	whole, frac, hasFrac := strings.Cut(f, ".")
	if whole == "" || (hasFrac && frac == "") {
		return false
	}
	for _, r := range whole + frac {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (in Instant) validate() error {
	switch {
	case in.Month < 1 || in.Month > 12:
		return fmt.Errorf("month %d out of range", in.Month)
	case in.Day < 1 || in.Day > daysIn(in.Year, in.Month):
		return fmt.Errorf("day %d out of range", in.Day)
	case in.Hour > 23:
		return fmt.Errorf("hour %d out of range", in.Hour)
	case in.Minute > 59:
		return fmt.Errorf("minute %d out of range", in.Minute)
	case in.Second < 0 || in.Second >= 60:
		return fmt.Errorf("second %v out of range", in.Second)
	}
	return nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
