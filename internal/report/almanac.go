package report

import (
	"fmt"

	"github.com/litescript/ls-sextant/internal/astro"
	"github.com/litescript/ls-sextant/internal/ephem"
)

// WriteBody renders a body's GHA and declination at an instant.
func (r *Writer) WriteBody(name, source string, in astro.Instant, gha, dec float64) {
	r.title(fmt.Sprintf("%s @ %s", name, in))
	r.field("Source", r.st.Dim.Render(source))
	r.field("GHA", Angle(gha))
	r.field("Dec", Angle(dec)+"  "+DMS(dec))
}

// WriteAries renders the GHA of the first point of Aries.
func (r *Writer) WriteAries(source string, in astro.Instant, gha float64) {
	r.title(fmt.Sprintf("Aries @ %s", in))
	r.field("Source", r.st.Dim.Render(source))
	r.field("GHA", Angle(gha))
}

// WriteMoon adds the Moon's parallax and semi-diameter to WriteBody.
func (r *Writer) WriteMoon(in astro.Instant, m ephem.MoonSample) {
	r.WriteBody("Moon", "meeus", in, m.GHA, m.Dec)
	r.field("HP", fmt.Sprintf("%.1f′", m.HPMin))
	r.field("SD", fmt.Sprintf("%.1f′", m.SDMin))
}

// AlmanacRow is one hour of a daily almanac page.
type AlmanacRow struct {
	Hour     int
	SunGHA   float64
	SunDec   float64
	AriesGHA float64
}

// WriteSunPage renders a day of Sun GHA/Dec.
func (r *Writer) WriteSunPage(date astro.Instant, source string, rows []AlmanacRow) {
	r.title(fmt.Sprintf("Sun  %04d-%02d-%02d  (%s)", date.Year, date.Month, date.Day, source))
	fmt.Fprintln(r.w, r.st.Label.Render(fmt.Sprintf("%4s %10s %14s %10s %14s", "UT", "GHA", "", "Dec", "")))
	for _, row := range rows {
		fmt.Fprintf(r.w, "%02dh  %9.4f %14s %10.4f %14s\n",
			row.Hour, row.SunGHA, "("+DMString(row.SunGHA)+")", row.SunDec, "("+DMString(row.SunDec)+")")
	}
}

// WriteAriesPage renders a day of Aries GHA.
func (r *Writer) WriteAriesPage(date astro.Instant, source string, rows []AlmanacRow) {
	r.title(fmt.Sprintf("Aries  %04d-%02d-%02d  (%s)", date.Year, date.Month, date.Day, source))
	fmt.Fprintln(r.w, r.st.Label.Render(fmt.Sprintf("%4s %10s %14s", "UT", "GHA", "")))
	for _, row := range rows {
		fmt.Fprintf(r.w, "%02dh  %9.4f %14s\n", row.Hour, row.AriesGHA, "("+DMString(row.AriesGHA)+")")
	}
}

// WriteStars renders a star-finder list.
func (r *Writer) WriteStars(stars []astro.VisibleStar) {
	r.title("Stars to shoot")
	if len(stars) == 0 {
		fmt.Fprintln(r.w, r.st.Warn.Render("No catalog stars in the altitude band"))
		return
	}
	fmt.Fprintln(r.w, r.st.Label.Render(fmt.Sprintf("%-16s %5s %8s %7s %7s", "Star", "Mag", "Hc", "Zn", "Tier")))
	for _, s := range stars {
		fmt.Fprintf(r.w, "%-16s %5.2f %8.2f %7.1f %7s\n", s.Star.Name, s.Star.Mag, s.Hc, s.Zn, s.Tier)
	}
}
