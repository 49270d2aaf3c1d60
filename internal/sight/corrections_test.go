package sight

import (
	"math"
	"testing"
)

func TestDipMinutes(t *testing.T) {
	tests := []struct {
		height float64
		want   float64
	}{
		{-1, 0},
		{0, 0},
		{1, -1.76},
		{9, -5.28},
		{16, -7.04},
	}

	for _, tt := range tests {
		got := DipMinutes(tt.height)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("DipMinutes(%v) = %v, want %v", tt.height, got, tt.want)
		}
	}
}

func TestRefractionMinutes(t *testing.T) {
	tests := []struct {
		name string
		alt  float64
		want float64
	}{
		{"45 degrees", 45, -3.4357979682656286},
		{"10 degrees", 10, -18.34655692947808},
		{"floor at 0.1", 0.1, -95.4215280594973},
		{"below horizon uses floor", -3, -95.4215280594973},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RefractionMinutes(tt.alt, DefaultPressureHPa, DefaultTemperatureC)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RefractionMinutes(%v) = %v, want %v", tt.alt, got, tt.want)
			}
		})
	}
}

func TestRefractionMinutes_DecreasesWithAltitude(t *testing.T) {
	prev := math.Inf(-1)
	for alt := 0.5; alt <= 89.5; alt += 1 {
		r := RefractionMinutes(alt, DefaultPressureHPa, DefaultTemperatureC)
		if r > 0 {
			t.Fatalf("refraction at %v° is positive: %v", alt, r)
		}
		if r < prev {
			t.Fatalf("refraction grew in magnitude from %v to %v at %v°", prev, r, alt)
		}
		prev = r
	}
}

func TestParallaxInAltitudeMinutes(t *testing.T) {
	got := ParallaxInAltitudeMinutes(45, 57)
	if math.Abs(got-40.305086527633215) > 1e-9 {
		t.Errorf("ParallaxInAltitudeMinutes(45, 57) = %v", got)
	}
	if got := ParallaxInAltitudeMinutes(0, 57); math.Abs(got-57) > 1e-12 {
		t.Errorf("parallax at the horizon should equal HP, got %v", got)
	}
}

func TestObservedAltitude_AllZeroIsIdentity(t *testing.T) {
	for _, hs := range []float64{0, 0.05, 12.345678, 45, 89.99} {
		if got := ObservedAltitude(hs, Corrections{}); got != hs {
			t.Errorf("ObservedAltitude(%v, zero) = %v, want exactly %v", hs, got, hs)
		}
	}
}

func TestObservedAltitude(t *testing.T) {
	base := Corrections{
		IndexErrorMin:   2,
		HeightOfEyeM:    9,
		SemiDiameterMin: 16,
		ParallaxMin:     0.1,
	}

	lower := base
	lower.Limb = LowerLimb
	if got, want := ObservedAltitude(30, lower), 30+(-2-5.28+16-0.1)/60; math.Abs(got-want) > 1e-12 {
		t.Errorf("lower limb Ho = %v, want %v", got, want)
	}

	upper := base
	upper.Limb = UpperLimb
	if got, want := ObservedAltitude(30, upper), 30+(-2-5.28-16-0.1)/60; math.Abs(got-want) > 1e-12 {
		t.Errorf("upper limb Ho = %v, want %v", got, want)
	}

	withAir := lower
	withAir.PressureHPa = DefaultPressureHPa
	withAir.TemperatureC = DefaultTemperatureC
	if got := ObservedAltitude(30, withAir); math.Abs(got-30.044462678523297) > 1e-9 {
		t.Errorf("Ho with refraction = %v, want 30.044462678523297", got)
	}
}

func TestObservedAltitude_ParallaxLowersHo(t *testing.T) {
	// Vacuum, no instrument error: only parallax acts.
	c := Corrections{ParallaxMin: 6}
	if got := ObservedAltitude(30, c); math.Abs(got-29.9) > 1e-12 {
		t.Errorf("ObservedAltitude(30, P=6') = %v, want 29.9", got)
	}
}

func TestObservedAltitude_LimbIgnoredWithoutSemiDiameter(t *testing.T) {
	c := DefaultCorrections()
	c.HeightOfEyeM = 3
	lower := ObservedAltitude(25, c)
	c.Limb = UpperLimb
	upper := ObservedAltitude(25, c)
	if lower != upper {
		t.Errorf("limb should not matter with zero semi-diameter: LL=%v UL=%v", lower, upper)
	}
}

func TestParseLimb(t *testing.T) {
	tests := []struct {
		in   string
		want Limb
	}{
		{"LL", LowerLimb},
		{"ul", UpperLimb},
		{" UL ", UpperLimb},
		{"", LowerLimb},
		{"upper", UpperLimb},
	}
	for _, tt := range tests {
		if got := ParseLimb(tt.in); got != tt.want {
			t.Errorf("ParseLimb(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
