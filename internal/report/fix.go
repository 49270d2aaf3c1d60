package report

import (
	"fmt"

	"github.com/litescript/ls-sextant/internal/fix"
	"github.com/litescript/ls-sextant/internal/plan"
)

// WriteFix renders each sight's intercept and the solved position.
func (r *Writer) WriteFix(res fix.Result, reduced []plan.Reduced) {
	r.title(fmt.Sprintf("Fix from %d sights", res.Count))
	if len(reduced) > 0 {
		fmt.Fprintln(r.w, r.st.Label.Render(fmt.Sprintf("%-12s %9s %9s %7s %12s", "Body", "Ho", "Hc", "Zn", "Intercept")))
		for _, s := range reduced {
			rep := s.Report
			fmt.Fprintf(r.w, "%-12s %9.4f %9.4f %7.1f %6.1f′ %-6s\n",
				s.Entry.Body, rep.Ho, rep.Hc, rep.Zn, rep.Intercept.Minutes, rep.Intercept.Direction)
		}
		fmt.Fprintln(r.w)
	}

	r.field("Latitude", r.st.Accent.Render(Latitude(res.Lat)))
	r.field("Longitude", r.st.Accent.Render(Longitude(res.Lon)))
	r.field("RMS", fmt.Sprintf("%.2f′", res.RMSMinutes))
	r.field("Iterations", fmt.Sprintf("%d", res.Iterations))
	if res.Degenerate {
		fmt.Fprintln(r.w, r.st.Warn.Render("Lines of position are nearly parallel; fix is the last stable estimate"))
		return
	}

	d := res.Diagnostics
	if d == (fix.Diagnostics{}) {
		return
	}
	r.field("Condition", fmt.Sprintf("%.1f", d.Condition))
	r.field("σ lat/lon", fmt.Sprintf("%.2f / %.2f NM", d.SigmaLatNM, d.SigmaLonNM))
	r.field("Ellipse", fmt.Sprintf("%.2f × %.2f NM, major axis %03.0f°", d.SemiMajorNM, d.SemiMinorNM, d.OrientationDeg))
}
