package navmath

import (
	"errors"
	"math"
	"testing"
)

func TestFormatDM(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0° 00.00′"},
		{5.058333333, "5° 03.50′"},
		{-23.5, "23° 30.00′"},
		{359.9999999, "360° 00.00′"},
		{49.902908, "49° 54.17′"},
	}

	for _, tt := range tests {
		if got := FormatDM(tt.in); got != tt.want {
			t.Errorf("FormatDM(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFromDM(t *testing.T) {
	if got := FromDM(23, 30, -1); got != -23.5 {
		t.Errorf("FromDM(23, 30, -1) = %v, want -23.5", got)
	}
	if got := FromDM(-40, 15, 1); got != 40.25 {
		t.Errorf("FromDM(-40, 15, 1) = %v, want 40.25", got)
	}
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"12", 12, false},
		{"12.5", 12.5, false},
		{"12:30", 12.5, false},
		{" 06:15:36 ", 6.26, false},
		{"-01:30", -1.5, false},
		{"-00:30", -0.5, false},
		{"", 0, true},
		{"noon", 0, true},
		{"12:xx", 0, true},
		{"1:2:3:4", 0, true},
		{"NaN", 0, true},
		{"+Inf", 0, true},
		{"12:NaN", 0, true},
		{"inf:00", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHours(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrParse) {
					t.Fatalf("ParseHours(%q) error = %v, want ErrParse", tt.in, err)
				}
				var pe *ParseError
				if !errors.As(err, &pe) || pe.Input != tt.in {
					t.Errorf("ParseHours(%q) error should carry the input, got %v", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHours(%q) unexpected error: %v", tt.in, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseHours(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
