package astro

import (
	"fmt"
	"sort"
	"strings"

	"github.com/litescript/ls-sextant/internal/navmath"
)

// ErrStarNotFound is returned when a star name is not in the catalog.
var ErrStarNotFound = fmt.Errorf("star not in catalog: %w", navmath.ErrLookup)

// NavStar is a navigation star. SHA is measured westward from Aries, so
// GHA_star = GHA_Aries + SHA.
type NavStar struct {
	Name string
	SHA  float64 // sidereal hour angle, degrees (J2000)
	Dec  float64 // declination, degrees, north positive (J2000)
	Mag  float64 // apparent visual magnitude
}

// catalog is built once at package initialization and never modified.
var catalog = buildCatalog(navStars)

type starIndex map[string]NavStar

func buildCatalog(stars []NavStar) starIndex {
	idx := make(starIndex, len(stars))
	for _, s := range stars {
		idx[strings.ToLower(s.Name)] = s
	}
	return idx
}

// LookupStar finds a star by case-insensitive exact name.
func LookupStar(name string) (NavStar, bool) {
	s, ok := catalog[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Stars returns the catalog sorted by name.
func Stars() []NavStar {
	out := make([]NavStar, 0, len(catalog))
	for _, s := range catalog {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// StarPosition returns a star's GHA and declination at an instant using the
// analytic Aries GHA.
func StarPosition(name string, in Instant) (gha, dec float64, err error) {
	s, ok := LookupStar(name)
	if !ok {
		return 0, 0, fmt.Errorf("%q: %w", name, ErrStarNotFound)
	}
	return StarGHA(AriesGHA(in), s.SHA), s.Dec, nil
}

// navStars holds the 57 selected navigation stars and Polaris.
// Mean J2000 positions; precession since then is under a degree and is not applied.
var navStars = []NavStar{
	{"Alpheratz", 357.90, 29.09, 2.06},
	{"Ankaa", 353.43, -42.31, 2.38},
	{"Schedar", 349.87, 56.54, 2.23},
	{"Diphda", 349.10, -17.99, 2.04},
	{"Achernar", 335.57, -57.24, 0.46},
	{"Hamal", 328.21, 23.46, 2.00},
	{"Polaris", 322.05, 89.26, 2.02},
	{"Acamar", 315.43, -40.30, 3.20},
	{"Menkar", 314.43, 4.09, 2.53},
	{"Mirfak", 308.92, 49.86, 1.79},
	{"Aldebaran", 291.02, 16.51, 0.85},
	{"Rigel", 281.37, -8.20, 0.13},
	{"Capella", 280.83, 46.00, 0.08},
	{"Bellatrix", 278.72, 6.35, 1.64},
	{"Elnath", 278.43, 28.61, 1.65},
	{"Alnilam", 275.95, -1.20, 1.69},
	{"Betelgeuse", 271.21, 7.41, 0.50},
	{"Canopus", 264.01, -52.70, -0.74},
	{"Sirius", 258.71, -16.72, -1.46},
	{"Adhara", 255.34, -28.97, 1.50},
	{"Procyon", 245.17, 5.22, 0.34},
	{"Pollux", 243.67, 28.03, 1.14},
	{"Avior", 234.37, -59.51, 1.86},
	{"Suhail", 223.00, -43.43, 2.21},
	{"Miaplacidus", 221.70, -69.72, 1.68},
	{"Alphard", 218.10, -8.66, 2.00},
	{"Regulus", 207.91, 11.97, 1.35},
	{"Dubhe", 194.07, 61.75, 1.79},
	{"Denebola", 182.74, 14.57, 2.13},
	{"Gienah", 176.05, -17.54, 2.59},
	{"Acrux", 173.35, -63.10, 0.76},
	{"Gacrux", 172.21, -57.11, 1.63},
	{"Alioth", 166.49, 55.96, 1.77},
	{"Spica", 158.70, -11.16, 0.97},
	{"Alkaid", 153.11, 49.31, 1.86},
	{"Hadar", 149.04, -60.37, 0.61},
	{"Menkent", 148.33, -36.37, 2.06},
	{"Arcturus", 146.08, 19.18, -0.05},
	{"Rigil Kentaurus", 140.10, -60.83, -0.27},
	{"Kochab", 137.32, 74.16, 2.08},
	{"Zubenelgenubi", 137.28, -16.04, 2.75},
	{"Alphecca", 126.33, 26.71, 2.23},
	{"Antares", 112.65, -26.43, 0.96},
	{"Atria", 107.83, -69.03, 1.92},
	{"Sabik", 102.41, -15.72, 2.43},
	{"Shaula", 96.60, -37.10, 1.63},
	{"Rasalhague", 96.27, 12.56, 2.08},
	{"Eltanin", 90.85, 51.49, 2.23},
	{"Kaus Australis", 83.96, -34.38, 1.85},
	{"Vega", 80.77, 38.78, 0.03},
	{"Nunki", 76.18, -26.30, 2.02},
	{"Altair", 62.30, 8.87, 0.76},
	{"Peacock", 53.59, -56.74, 1.94},
	{"Deneb", 49.64, 45.28, 1.25},
	{"Enif", 33.95, 9.88, 2.39},
	{"Al Na'ir", 27.94, -46.96, 1.74},
	{"Fomalhaut", 15.59, -29.62, 1.16},
	{"Markab", 13.81, 15.21, 2.49},
}
