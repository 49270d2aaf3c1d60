package astro

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-sextant/internal/navmath"
)

func TestParseInstant(t *testing.T) {
	tests := []struct {
		in   string
		want Instant
	}{
		{"2024-06-21T12:00", Instant{2024, 6, 21, 12, 0, 0}},
		{"2024-06-21T12:00Z", Instant{2024, 6, 21, 12, 0, 0}},
		{"2024-06-21T12:34:56", Instant{2024, 6, 21, 12, 34, 56}},
		{"2024-06-21t12:34:56.5z", Instant{2024, 6, 21, 12, 34, 56.5}},
		{" 2024-02-29T00:00 ", Instant{2024, 2, 29, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInstant(tt.in)
			if err != nil {
				t.Fatalf("ParseInstant(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseInstant(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseInstant_Invalid(t *testing.T) {
	bad := []string{
		"",
		"garbage",
		"2024-06-21 12:00",
		"2024-13-01T00:00",
		"2023-02-29T00:00",
		"2024-06-21T24:00",
		"2024-06-21T12:60",
		"2024-06-21T12:00:60",
		"24-06-21T12:00",
		"2024-06-21T12",
		"2024-06-+1T12:00",
		"2025-01-01T00:00:NaN",
		"2025-01-01T00:00:Inf",
		"2025-01-01T00:00:1e1",
		"2025-01-01T00:00:-0",
		"2025-01-01T00:00:.5",
	}

	for _, s := range bad {
		_, err := ParseInstant(s)
		if err == nil {
			t.Errorf("ParseInstant(%q) succeeded, want error", s)
			continue
		}
		if !errors.Is(err, navmath.ErrParse) {
			t.Errorf("ParseInstant(%q) error = %v, want ErrParse", s, err)
		}
		var pe *navmath.ParseError
		if !errors.As(err, &pe) || pe.Input != s {
			t.Errorf("ParseInstant(%q) error does not carry the input", s)
		}
	}
}

func TestInstantTimeRoundTrip(t *testing.T) {
	ref := time.Date(2025, 3, 20, 9, 1, 30, 500_000_000, time.UTC)
	in := InstantFromTime(ref)
	if in.Second != 30.5 {
		t.Errorf("Second = %v, want 30.5", in.Second)
	}
	if !in.Time().Equal(ref) {
		t.Errorf("Time() = %v, want %v", in.Time(), ref)
	}

	local := time.Date(2025, 3, 20, 11, 1, 30, 0, time.FixedZone("CEST", 2*3600))
	if got := InstantFromTime(local); got.Hour != 9 {
		t.Errorf("InstantFromTime did not convert to UTC: %+v", got)
	}
}

func TestDayOfYear(t *testing.T) {
	tests := []struct {
		in   Instant
		want int
	}{
		{Instant{Year: 2025, Month: 1, Day: 1}, 1},
		{Instant{Year: 2024, Month: 3, Day: 1}, 61},
		{Instant{Year: 2025, Month: 3, Day: 1}, 60},
		{Instant{Year: 2024, Month: 12, Day: 31}, 366},
	}
	for _, tt := range tests {
		if got := tt.in.DayOfYear(); got != tt.want {
			t.Errorf("DayOfYear(%+v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHours(t *testing.T) {
	in := Instant{Hour: 13, Minute: 30, Second: 36}
	if got := in.Hours(); math.Abs(got-13.51) > 1e-12 {
		t.Errorf("Hours() = %v, want 13.51", got)
	}
}
