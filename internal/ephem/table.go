package ephem

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/litescript/ls-sextant/internal/astro"
	"github.com/litescript/ls-sextant/internal/navmath"
)

// RecordsPerDay is the number of hourly records per table day.
const RecordsPerDay = 24

// recordFields names the columns of every record, in order.
var recordFields = []string{"ghaSunDeg", "decSunDeg", "ghaAriesDeg"}

// Format selects the on-disk encoding of a table.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// FormatForPath picks the format from a file extension. Anything other than
// .msgpack or .mp is JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mp":
		return FormatMsgpack
	default:
		return FormatJSON
	}
}

// TableHeader describes a precomputed almanac.
type TableHeader struct {
	Year          int      `json:"year" msgpack:"year"`
	StartDate     string   `json:"start_date" msgpack:"start_date"`
	EndDate       string   `json:"end_date" msgpack:"end_date"`
	Step          string   `json:"step" msgpack:"step"`
	Ephemeris     string   `json:"ephemeris" msgpack:"ephemeris"`
	SiderealTime  string   `json:"sidereal_time" msgpack:"sidereal_time"`
	Units         string   `json:"units" msgpack:"units"`
	RecordsPerDay int      `json:"records_per_day" msgpack:"records_per_day"`
	RecordFields  []string `json:"record_fields" msgpack:"record_fields"`
}

// Table is an hourly almanac for one year. Record i holds
// [GHA Sun, Dec Sun, GHA Aries] for day-of-year (0-based) i/24, hour i%24.
type Table struct {
	Header  TableHeader `json:"header" msgpack:"header"`
	Records [][]float64 `json:"records" msgpack:"records"`
}

// Record is one decoded table row.
type Record struct {
	SunGHA   float64
	SunDec   float64
	AriesGHA float64
}

// LoadTable reads a table from disk, choosing the format by extension.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open almanac table: %w", err)
	}
	defer f.Close()

	t, err := DecodeTable(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// DecodeTable reads a table in the given format.
func DecodeTable(r io.Reader, format Format) (*Table, error) {
	var t Table
	var err error
	switch format {
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&t)
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&t)
	default:
		return nil, fmt.Errorf("unknown table format %q: %w", format, navmath.ErrPrecondition)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s almanac table: %w", format, err)
	}
	if t.Header.RecordsPerDay != 0 && t.Header.RecordsPerDay != RecordsPerDay {
		return nil, fmt.Errorf("table has %d records per day, want %d: %w",
			t.Header.RecordsPerDay, RecordsPerDay, navmath.ErrPrecondition)
	}
	return &t, nil
}

// Encode writes the table in the given format.
func (t *Table) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(t)
	case FormatJSON:
		return json.NewEncoder(w).Encode(t)
	default:
		return fmt.Errorf("unknown table format %q: %w", format, navmath.ErrPrecondition)
	}
}

// Save writes the table to path, choosing the format by extension.
func (t *Table) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create almanac table: %w", err)
	}
	if err := t.Encode(f, FormatForPath(path)); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// Lookup returns the record for a 0-based day of year and a UTC hour.
func (t *Table) Lookup(dayOfYear0, hour int) (Record, error) {
	if hour < 0 || hour >= RecordsPerDay || dayOfYear0 < 0 {
		return Record{}, fmt.Errorf("day %d hour %d: %w", dayOfYear0, hour, navmath.ErrLookup)
	}
	idx := dayOfYear0*RecordsPerDay + hour
	if idx >= len(t.Records) {
		return Record{}, fmt.Errorf("record %d beyond table of %d: %w", idx, len(t.Records), navmath.ErrLookup)
	}
	rec := t.Records[idx]
	if len(rec) != len(recordFields) {
		return Record{}, fmt.Errorf("record %d has %d fields, want %d: %w", idx, len(rec), len(recordFields), navmath.ErrLookup)
	}
	return Record{SunGHA: rec[0], SunDec: rec[1], AriesGHA: rec[2]}, nil
}

// Day returns the 24 hourly records of a 0-based day of year.
func (t *Table) Day(dayOfYear0 int) ([]Record, error) {
	out := make([]Record, 0, RecordsPerDay)
	for h := 0; h < RecordsPerDay; h++ {
		rec, err := t.Lookup(dayOfYear0, h)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// TableProvider answers from a precomputed table, interpolating linearly
// within the hour.
type TableProvider struct {
	table *Table
}

// NewTableProvider wraps a loaded table.
func NewTableProvider(t *Table) *TableProvider {
	return &TableProvider{table: t}
}

// Name implements Provider.
func (p *TableProvider) Name() string {
	return fmt.Sprintf("table %d (%s)", p.table.Header.Year, p.table.Header.Ephemeris)
}

// Sun implements Provider.
func (p *TableProvider) Sun(in astro.Instant) (astro.SunSample, error) {
	r, err := p.at(in)
	if err != nil {
		return astro.SunSample{}, err
	}
	return astro.SunSample{GHA: r.SunGHA, Dec: r.SunDec}, nil
}

// AriesGHA implements Provider.
func (p *TableProvider) AriesGHA(in astro.Instant) (float64, error) {
	r, err := p.at(in)
	if err != nil {
		return 0, err
	}
	return r.AriesGHA, nil
}

func (p *TableProvider) at(in astro.Instant) (Record, error) {
	if in.Year != p.table.Header.Year {
		return Record{}, fmt.Errorf("year %d outside table for %d: %w", in.Year, p.table.Header.Year, navmath.ErrLookup)
	}
	day := in.DayOfYear() - 1
	r0, err := p.table.Lookup(day, in.Hour)
	if err != nil {
		return Record{}, err
	}

	frac := (float64(in.Minute)*60 + in.Second) / 3600
	if frac <= 1e-12 {
		return r0, nil
	}

	nextDay, nextHour := day, in.Hour+1
	if nextHour == RecordsPerDay {
		nextDay, nextHour = day+1, 0
	}
	r1, err := p.table.Lookup(nextDay, nextHour)
	if err != nil {
		// Last hour of the table: no successor to interpolate toward.
		return r0, nil
	}

	return Record{
		SunGHA:   lerpAngle(r0.SunGHA, r1.SunGHA, frac),
		SunDec:   r0.SunDec + (r1.SunDec-r0.SunDec)*frac,
		AriesGHA: lerpAngle(r0.AriesGHA, r1.AriesGHA, frac),
	}, nil
}

// lerpAngle interpolates along the shorter arc, so 350° -> 5° passes 0°.
func lerpAngle(a, b, frac float64) float64 {
	return navmath.Normalize360(a + navmath.Normalize180(b-a)*frac)
}

// round6 keeps six decimals, about 4 mm of arc on the Earth.
func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
