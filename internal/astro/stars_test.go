package astro

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/litescript/ls-sextant/internal/navmath"
)

func TestCatalog(t *testing.T) {
	stars := Stars()
	if len(stars) != 58 {
		t.Fatalf("catalog has %d stars, want 58", len(stars))
	}
	if !sort.SliceIsSorted(stars, func(i, j int) bool { return stars[i].Name < stars[j].Name }) {
		t.Error("Stars() not sorted by name")
	}
	for _, s := range stars {
		if s.SHA < 0 || s.SHA >= 360 {
			t.Errorf("%s: SHA %v out of range", s.Name, s.SHA)
		}
		if math.Abs(s.Dec) > 90 {
			t.Errorf("%s: Dec %v out of range", s.Name, s.Dec)
		}
	}
}

func TestLookupStar(t *testing.T) {
	for _, name := range []string{"Sirius", "sirius", "SIRIUS", " Sirius "} {
		s, ok := LookupStar(name)
		if !ok {
			t.Errorf("LookupStar(%q) not found", name)
			continue
		}
		if s.Name != "Sirius" || math.Abs(s.Dec+16.72) > 0.01 {
			t.Errorf("LookupStar(%q) = %+v", name, s)
		}
	}
	if _, ok := LookupStar("Sirus"); ok {
		t.Error("LookupStar matched a misspelled name")
	}
}

func TestStarPosition(t *testing.T) {
	in := Instant{2024, 6, 21, 12, 0, 0}
	gha, dec, err := StarPosition("Vega", in)
	if err != nil {
		t.Fatalf("StarPosition(Vega) error: %v", err)
	}
	vega, _ := LookupStar("Vega")
	if want := StarGHA(AriesGHA(in), vega.SHA); gha != want {
		t.Errorf("GHA = %v, want %v", gha, want)
	}
	if dec != vega.Dec {
		t.Errorf("Dec = %v, want %v", dec, vega.Dec)
	}

	_, _, err = StarPosition("Nemesis", in)
	if !errors.Is(err, ErrStarNotFound) || !errors.Is(err, navmath.ErrLookup) {
		t.Errorf("StarPosition(Nemesis) error = %v, want ErrStarNotFound", err)
	}
}
