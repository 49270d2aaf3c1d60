package report

import (
	"fmt"

	"github.com/litescript/ls-sextant/internal/astro"
	"github.com/litescript/ls-sextant/internal/sight"
)

// SightInput is the almanac side of a reduced sight.
type SightInput struct {
	Body    string
	Instant astro.Instant
	GHA     float64
	Dec     float64
	Lat     float64
	Lon     float64
	Hs      float64
}

// WriteSight renders one reduced sight.
func (r *Writer) WriteSight(in SightInput, rep sight.Report) {
	if in.Instant == (astro.Instant{}) {
		r.title(in.Body)
	} else {
		r.title(fmt.Sprintf("%s @ %s", in.Body, in.Instant))
	}
	r.field("Assumed", Latitude(in.Lat)+"  "+Longitude(in.Lon))
	r.field("GHA", Angle(in.GHA))
	r.field("Dec", Angle(in.Dec))
	r.field("LHA", Angle(rep.LHA))
	r.field("Hs", Angle(in.Hs))
	r.field("Ho", Angle(rep.Ho))
	r.field("Hc", Angle(rep.Hc))
	r.field("Zn", fmt.Sprintf("%9.1f°", rep.Zn))
	r.field("Intercept", r.st.Accent.Render(fmt.Sprintf("%.1f′ %s", rep.Intercept.Minutes, rep.Intercept.Direction)))
}

// WriteCorrections itemizes the altitude corrections, arc-minutes.
func (r *Writer) WriteCorrections(hs float64, c sight.Corrections) {
	ic := -c.IndexErrorMin
	dip := sight.DipMinutes(c.HeightOfEyeM)
	ref := sight.RefractionMinutes(sight.ApparentAltitude(hs, c), c.PressureHPa, c.TemperatureC)
	sd := c.SemiDiameterMin
	if c.Limb == sight.UpperLimb {
		sd = -sd
	}
	r.field("Index corr", fmt.Sprintf("%+7.2f′", ic))
	r.field("Dip", fmt.Sprintf("%+7.2f′", dip))
	r.field("Refraction", fmt.Sprintf("%+7.2f′", ref))
	if c.SemiDiameterMin != 0 {
		r.field("SD ("+c.Limb.String()+")", fmt.Sprintf("%+7.2f′", sd))
	}
	if c.ParallaxMin != 0 {
		r.field("Parallax", fmt.Sprintf("%+7.2f′", -c.ParallaxMin))
	}
}

// WriteTable renders a sight-reduction table.
func (r *Writer) WriteTable(lat, dec float64, rows []sight.TableRow) {
	r.title(fmt.Sprintf("Sight reduction  Lat %s  Dec %s", Latitude(lat), Latitude(dec)))
	fmt.Fprintf(r.w, "%s\n", r.st.Label.Render(fmt.Sprintf("%8s %10s %14s %8s", "LHA", "Hc", "", "Zn")))
	for _, row := range rows {
		fmt.Fprintf(r.w, "%8.1f %10.4f %14s %8.1f\n", row.LHA, row.Hc, "("+DMString(row.Hc)+")", row.Zn)
	}
}

// WriteNoon renders a meridian-passage result. lat is 90° − Ho ± Dec;
// signedLat is the same line of position north-positive.
func (r *Writer) WriteNoon(ho, dec float64, b sight.Bearing, lat, signedLat float64, lon *float64) {
	r.title("Noon sight")
	r.field("Ho", Angle(ho))
	r.field("Dec", Angle(dec))
	r.field("Sun bears", b.String())
	r.field("90-Ho±Dec", Angle(lat))
	r.field("Latitude", Latitude(signedLat))
	if lon != nil {
		r.field("Longitude", Longitude(*lon))
	}
}
