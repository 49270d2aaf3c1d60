package ephem

import (
	"fmt"
	"time"

	"github.com/litescript/ls-sextant/internal/astro"
	"github.com/litescript/ls-sextant/internal/navmath"
)

// siderealNamer is implemented by providers that report which sidereal time
// they use for Aries.
type siderealNamer interface {
	SiderealTime() string
}

// GenerateTable tabulates p at every whole UTC hour of year.
func GenerateTable(p Provider, year int) (*Table, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	sidereal := "GMST @ Greenwich (hours -> deg)"
	if sn, ok := p.(siderealNamer); ok {
		sidereal = sn.SiderealTime()
	}

	t := &Table{
		Header: TableHeader{
			Year:          year,
			StartDate:     start.Format(time.DateOnly),
			EndDate:       end.AddDate(0, 0, -1).Format(time.DateOnly),
			Step:          "1h UTC (whole hour)",
			Ephemeris:     p.Name(),
			SiderealTime:  sidereal,
			Units:         "degrees",
			RecordsPerDay: RecordsPerDay,
			RecordFields:  append([]string(nil), recordFields...),
		},
	}

	for ts := start; ts.Before(end); ts = ts.Add(time.Hour) {
		in := astro.InstantFromTime(ts)
		sun, err := p.Sun(in)
		if err != nil {
			return nil, fmt.Errorf("sun at %s: %w", in, err)
		}
		aries, err := p.AriesGHA(in)
		if err != nil {
			return nil, fmt.Errorf("aries at %s: %w", in, err)
		}
		t.Records = append(t.Records, []float64{roundGHA(sun.GHA), round6(sun.Dec), roundGHA(aries)})
	}
	return t, nil
}

// roundGHA rounds an hour angle and keeps it in [0, 360).
func roundGHA(x float64) float64 {
	return navmath.Normalize360(round6(x))
}
