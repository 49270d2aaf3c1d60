package astro

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-sextant/internal/navmath"
	"github.com/litescript/ls-sextant/internal/sight"
)

func TestGetElevationTier(t *testing.T) {
	tests := []struct {
		alt  float64
		want ElevationTier
	}{
		{-5, ElevationNone},
		{0, ElevationNone},
		{10, ElevationLow},
		{30, ElevationMedium},
		{60, ElevationHigh},
	}
	for _, tt := range tests {
		if got := GetElevationTier(tt.alt); got != tt.want {
			t.Errorf("GetElevationTier(%v) = %v, want %v", tt.alt, got, tt.want)
		}
	}
}

func TestVisibleStars(t *testing.T) {
	aries := AriesGHA(Instant{2024, 9, 15, 22, 0, 0})
	vis := VisibleStars(40, -70, aries, MinShootAltitude, MaxShootAltitude)
	if len(vis) == 0 {
		t.Fatal("no stars visible on a mid-latitude evening")
	}
	for i, v := range vis {
		if v.Hc < MinShootAltitude || v.Hc > MaxShootAltitude {
			t.Errorf("%s: Hc %v outside band", v.Star.Name, v.Hc)
		}
		if i > 0 && vis[i-1].Zn > v.Zn {
			t.Errorf("results not sorted by azimuth at %s", v.Star.Name)
		}
	}

	// Polaris sits within a degree of the observer's latitude.
	all := VisibleStars(40, -70, aries, -90, 90)
	for _, v := range all {
		if v.Star.Name == "Polaris" && math.Abs(v.Hc-40) > 1.5 {
			t.Errorf("Polaris Hc = %v, want about 40", v.Hc)
		}
	}
}

func TestSelectForFix(t *testing.T) {
	mk := func(name string, zn, mag float64) VisibleStar {
		return VisibleStar{Star: NavStar{Name: name, Mag: mag}, Zn: zn}
	}
	candidates := []VisibleStar{
		mk("A", 0, 1),
		mk("B", 10, 0.5),
		mk("C", 120, 2),
		mk("D", 250, 2),
	}

	got, err := SelectForFix(candidates, 3)
	if err != nil {
		t.Fatalf("SelectForFix() error: %v", err)
	}
	want := []string{"B", "C", "D"}
	if len(got) != len(want) {
		t.Fatalf("SelectForFix() picked %d stars, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Star.Name != name {
			t.Errorf("pick %d = %s, want %s", i, got[i].Star.Name, name)
		}
	}

	if all, _ := SelectForFix(candidates, 0); len(all) != 4 {
		t.Errorf("n=0 picked %d, want all 4", len(all))
	}
	if _, err := SelectForFix(nil, 3); !errors.Is(err, ErrNoStarsVisible) {
		t.Errorf("SelectForFix(nil) error = %v, want ErrNoStarsVisible", err)
	}
}

func TestLocalApparentNoon(t *testing.T) {
	tests := []struct {
		name string
		date Instant
		lon  float64
	}{
		{"Greenwich solstice", Instant{Year: 2024, Month: 6, Day: 21}, 0},
		{"Gulf of Maine", Instant{Year: 2024, Month: 11, Day: 3}, -70},
		{"Coral Sea", Instant{Year: 2025, Month: 2, Day: 11}, 155.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lan, dec := LocalApparentNoon(tt.date, tt.lon)
			s := Sun(lan)
			if off := angleDiff(s.GHA, -tt.lon); off > 1e-4 {
				t.Errorf("Sun GHA at LAN = %v, want %v", s.GHA, navmath.Normalize360(-tt.lon))
			}
			// The noon-sight longitude formula recovers the meridian.
			utc := lan.Time()
			hours := float64(utc.Hour()) + float64(utc.Minute())/60 + float64(utc.Second())/3600
			if lon := navmath.Normalize180(sight.LongitudeFromNoonEoT(hours, lan.DayOfYear())); math.Abs(navmath.Normalize180(lon-tt.lon)) > 0.5 {
				t.Errorf("longitude from LAN = %v, want %v", lon, tt.lon)
			}
			if math.Abs(dec-s.Dec) > 1e-4 {
				t.Errorf("declination %v, Sun at LAN %v", dec, s.Dec)
			}
			// Mean noon shifted by longitude, give or take the equation of time.
			mean := 12 - tt.lon/15
			got := lan.Time().Sub(tt.date.Time()).Hours()
			if math.Abs(got-mean) > 17.0/60 {
				t.Errorf("LAN at %.3fh after midnight, mean noon %.3fh", got, mean)
			}
		})
	}

	june, _ := LocalApparentNoon(Instant{Year: 2024, Month: 6, Day: 21}, 0)
	want := time.Date(2024, 6, 21, 12, 1, 55, 0, time.UTC)
	if d := june.Time().Sub(want); d < -30*time.Second || d > 30*time.Second {
		t.Errorf("Greenwich LAN on the solstice = %v, want about %v", june.Time(), want)
	}
}
