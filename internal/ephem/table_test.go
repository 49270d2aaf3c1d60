package ephem

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/litescript/ls-sextant/internal/astro"
	"github.com/litescript/ls-sextant/internal/navmath"
)

// twoDayTable builds a 2025 table covering Jan 1–2 with GHA advancing 15°/h
// from 350° and declination rising 0.01°/h.
func twoDayTable() *Table {
	t := &Table{Header: TableHeader{Year: 2025, Ephemeris: "test", RecordsPerDay: RecordsPerDay}}
	for i := 0; i < 2*RecordsPerDay; i++ {
		gha := navmath.Normalize360(350 + 15*float64(i))
		aries := navmath.Normalize360(100 + 15.041*float64(i))
		t.Records = append(t.Records, []float64{gha, -23 + 0.01*float64(i), aries})
	}
	return t
}

func TestTableLookup(t *testing.T) {
	tbl := twoDayTable()

	rec, err := tbl.Lookup(1, 2)
	if err != nil {
		t.Fatalf("Lookup(1, 2) error: %v", err)
	}
	// index 26
	if want := navmath.Normalize360(350 + 15*26); rec.SunGHA != want {
		t.Errorf("SunGHA = %v, want %v", rec.SunGHA, want)
	}

	bad := []struct{ day, hour int }{
		{2, 0},
		{-1, 0},
		{0, 24},
		{0, -1},
	}
	for _, b := range bad {
		if _, err := tbl.Lookup(b.day, b.hour); !errors.Is(err, navmath.ErrLookup) {
			t.Errorf("Lookup(%d, %d) error = %v, want ErrLookup", b.day, b.hour, err)
		}
	}

	tbl.Records[5] = []float64{1, 2}
	if _, err := tbl.Lookup(0, 5); !errors.Is(err, navmath.ErrLookup) {
		t.Errorf("short record error = %v, want ErrLookup", err)
	}
}

func TestTableDay(t *testing.T) {
	rows, err := twoDayTable().Day(1)
	if err != nil {
		t.Fatalf("Day(1) error: %v", err)
	}
	if len(rows) != RecordsPerDay {
		t.Fatalf("Day(1) returned %d rows", len(rows))
	}
	if _, err := twoDayTable().Day(5); !errors.Is(err, navmath.ErrLookup) {
		t.Errorf("Day(5) error = %v, want ErrLookup", err)
	}
}

func TestTableProvider_Interpolates(t *testing.T) {
	p := NewTableProvider(twoDayTable())

	tests := []struct {
		name    string
		in      astro.Instant
		wantGHA float64
		wantDec float64
	}{
		{"on the hour", astro.Instant{Year: 2025, Month: 1, Day: 1, Hour: 0}, 350, -23},
		{"across 360", astro.Instant{Year: 2025, Month: 1, Day: 1, Hour: 0, Minute: 40}, 0, -23 + 0.01*40/60},
		{"half hour", astro.Instant{Year: 2025, Month: 1, Day: 1, Hour: 3, Minute: 30}, navmath.Normalize360(350 + 15*3.5), -23 + 0.035},
		{"across midnight", astro.Instant{Year: 2025, Month: 1, Day: 1, Hour: 23, Minute: 30}, navmath.Normalize360(350 + 15*23.5), -23 + 0.235},
		{"last hour holds", astro.Instant{Year: 2025, Month: 1, Day: 2, Hour: 23, Minute: 30}, navmath.Normalize360(350 + 15*47), -23 + 0.47},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := p.Sun(tt.in)
			if err != nil {
				t.Fatalf("Sun() error: %v", err)
			}
			if angleDiff(s.GHA, tt.wantGHA) > 1e-9 {
				t.Errorf("GHA = %v, want %v", s.GHA, tt.wantGHA)
			}
			if math.Abs(s.Dec-tt.wantDec) > 1e-9 {
				t.Errorf("Dec = %v, want %v", s.Dec, tt.wantDec)
			}
			if s.GHA < 0 || s.GHA >= 360 {
				t.Errorf("GHA %v out of range", s.GHA)
			}
		})
	}
}

func TestTableProvider_OutOfRange(t *testing.T) {
	p := NewTableProvider(twoDayTable())

	if _, err := p.Sun(astro.Instant{Year: 2024, Month: 1, Day: 1}); !errors.Is(err, navmath.ErrLookup) {
		t.Errorf("wrong year error = %v, want ErrLookup", err)
	}
	if _, err := p.AriesGHA(astro.Instant{Year: 2025, Month: 2, Day: 1}); !errors.Is(err, navmath.ErrLookup) {
		t.Errorf("beyond table error = %v, want ErrLookup", err)
	}
}

func TestAutoProvider_FallsBack(t *testing.T) {
	p, err := NewProvider(ModeAuto, twoDayTable())
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	if !strings.HasPrefix(p.Name(), "auto(") {
		t.Errorf("Name() = %q", p.Name())
	}

	inside := astro.Instant{Year: 2025, Month: 1, Day: 1, Hour: 0}
	if s, _ := p.Sun(inside); s.GHA != 350 {
		t.Errorf("inside table GHA = %v, want table value 350", s.GHA)
	}

	outside := astro.Instant{Year: 2025, Month: 7, Day: 1, Hour: 12}
	s, err := p.Sun(outside)
	if err != nil {
		t.Fatalf("fallback Sun() error: %v", err)
	}
	if want := astro.Sun(outside); s != want {
		t.Errorf("fallback Sun = %+v, want analytic %+v", s, want)
	}
	if g, err := p.AriesGHA(outside); err != nil || g != astro.AriesGHA(outside) {
		t.Errorf("fallback AriesGHA = %v, %v", g, err)
	}
}

func TestTableEncodeDecode(t *testing.T) {
	tbl := twoDayTable()
	dir := t.TempDir()

	for _, name := range []string{"almanac.json", "almanac.msgpack"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := tbl.Save(path); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			got, err := LoadTable(path)
			if err != nil {
				t.Fatalf("LoadTable() error: %v", err)
			}
			if got.Header.Year != 2025 || len(got.Records) != len(tbl.Records) {
				t.Fatalf("loaded header %+v with %d records", got.Header, len(got.Records))
			}
			if got.Records[30][2] != tbl.Records[30][2] {
				t.Errorf("record 30 = %v, want %v", got.Records[30], tbl.Records[30])
			}
		})
	}
}

func TestDecodeTable_PayloadShape(t *testing.T) {
	payload := `{"header":{"year":2025,"start_date":"2025-01-01","end_date":"2025-12-31",
		"step":"1h UTC (whole hour)","ephemeris":"JPL DE421 via Skyfield",
		"sidereal_time":"GAST @ Greenwich (hours -> deg)","units":"degrees",
		"records_per_day":24,"record_fields":["ghaSunDeg","decSunDeg","ghaAriesDeg"]},
		"records":[[179.17,-23.01,100.2]]}`

	tbl, err := DecodeTable(strings.NewReader(payload), FormatJSON)
	if err != nil {
		t.Fatalf("DecodeTable() error: %v", err)
	}
	if tbl.Header.Ephemeris != "JPL DE421 via Skyfield" || len(tbl.Header.RecordFields) != 3 {
		t.Errorf("header = %+v", tbl.Header)
	}
	rec, err := tbl.Lookup(0, 0)
	if err != nil || rec.SunGHA != 179.17 || rec.SunDec != -23.01 || rec.AriesGHA != 100.2 {
		t.Errorf("Lookup(0, 0) = %+v, %v", rec, err)
	}

	if _, err := DecodeTable(strings.NewReader(`{"header":{"records_per_day":12}}`), FormatJSON); !errors.Is(err, navmath.ErrPrecondition) {
		t.Errorf("records_per_day 12 error = %v, want ErrPrecondition", err)
	}
	if _, err := DecodeTable(strings.NewReader("{"), FormatJSON); err == nil {
		t.Error("truncated JSON accepted")
	}
	if _, err := DecodeTable(&bytes.Buffer{}, Format("yaml")); !errors.Is(err, navmath.ErrPrecondition) {
		t.Errorf("unknown format error = %v", err)
	}
}

func TestLoadTable_Missing(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadTable(missing) error = %v, want ErrNotExist", err)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"a.json":       FormatJSON,
		"a.JSON":       FormatJSON,
		"a.msgpack":    FormatMsgpack,
		"dir/a.mp":     FormatMsgpack,
		"no-extension": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestGenerateTable(t *testing.T) {
	tbl, err := GenerateTable(AnalyticProvider{}, 2024)
	if err != nil {
		t.Fatalf("GenerateTable() error: %v", err)
	}
	if len(tbl.Records) != 366*RecordsPerDay {
		t.Fatalf("leap year table has %d records", len(tbl.Records))
	}
	h := tbl.Header
	if h.StartDate != "2024-01-01" || h.EndDate != "2024-12-31" || h.Ephemeris != "analytic" {
		t.Errorf("header = %+v", h)
	}
	if !strings.HasPrefix(h.SiderealTime, "GMST") {
		t.Errorf("analytic sidereal time = %q", h.SiderealTime)
	}

	// Day 172 (0-based) hour 12 is 2024-06-21T12:00.
	rec, err := tbl.Lookup(172, 12)
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	want := astro.SampleAt(astro.Instant{Year: 2024, Month: 6, Day: 21, Hour: 12})
	if angleDiff(rec.SunGHA, want.SunGHA) > 1e-6 || math.Abs(rec.SunDec-want.SunDec) > 1e-6 || angleDiff(rec.AriesGHA, want.AriesGHA) > 1e-6 {
		t.Errorf("record = %+v, want %+v", rec, want)
	}

	// A generated table served back through TableProvider reproduces the source between hours.
	p := NewTableProvider(tbl)
	in := astro.Instant{Year: 2024, Month: 9, Day: 3, Hour: 7, Minute: 20}
	got, err := p.Sun(in)
	if err != nil {
		t.Fatalf("Sun() error: %v", err)
	}
	src := astro.Sun(in)
	if angleDiff(got.GHA, src.GHA) > 1e-4 || math.Abs(got.Dec-src.Dec) > 1e-4 {
		t.Errorf("interpolated %+v, source %+v", got, src)
	}
}

func TestGenerateTable_MeeusHeader(t *testing.T) {
	tbl, err := GenerateTable(MeeusProvider{}, 2025)
	if err != nil {
		t.Fatalf("GenerateTable() error: %v", err)
	}
	if len(tbl.Records) != 365*RecordsPerDay {
		t.Errorf("table has %d records", len(tbl.Records))
	}
	if !strings.HasPrefix(tbl.Header.SiderealTime, "GAST") {
		t.Errorf("sidereal time = %q", tbl.Header.SiderealTime)
	}
}
