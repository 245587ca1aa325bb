package prayer

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestFormatHour(t *testing.T) {
	tests := []struct {
		h     float64
		style TimeStyle
		want  string
	}{
		{0, Style24h, "00:00"},
		{5.5, Style24h, "05:30"},
		{13.25, Style24h, "13:15"},
		{25.999999, Style24h, "01:59"},
		{-0.5, Style24h, "23:30"},
		{23.9999999, Style24h, "23:59"},
		{48.75, Style24h, "00:45"},
		{0.5, Style12h, "12:30 AM"},
		{12, Style12h, "12:00 PM"},
		{13.25, Style12h, "01:15 PM"},
		{11.75, Style12h, "11:45 AM"},
		{23.5, Style12h, "11:30 PM"},
	}
	for _, tt := range tests {
		if got := FormatHour(tt.h, tt.style); got != tt.want {
			t.Errorf("FormatHour(%v, %s) = %q, want %q", tt.h, tt.style, got, tt.want)
		}
	}
}

func TestFormatHour_TruncatesNeverRounds(t *testing.T) {
	// 05:17:59 must not become 05:18.
	h := 5 + 17.0/60 + 59.0/3600
	if got := FormatHour(h, Style24h); got != "05:17" {
		t.Errorf("FormatHour(%v) = %q, want 05:17", h, got)
	}
}

func TestFixHour_Idempotent(t *testing.T) {
	for _, h := range []float64{-49.2, -24, -1e-15, 0, 3.7, 23.99, 24, 24.01, 100.25} {
		once := FixHour(h)
		if once < 0 || once >= 24 {
			t.Errorf("FixHour(%v) = %v, outside [0, 24)", h, once)
		}
		if twice := FixHour(once); twice != once {
			t.Errorf("FixHour not idempotent for %v: %v then %v", h, once, twice)
		}
	}
}

func TestAdjust(t *testing.T) {
	var raw RawSchedule
	for i := range raw {
		raw[i] = 12
	}

	tests := []struct {
		name string
		loc  Location
		want float64
	}{
		{"offset matches meridian", NewLocation(0, 45, 3), 12},
		{"east of meridian", NewLocation(0, 39.8262, 3), 12 + 3 - 39.8262/15},
		{"west negative offset", NewLocation(0, -74, -5), 12 - 5 + 74.0/15},
		{"fractional offset", NewLocation(0, 0, 5.5), 17.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Adjust(raw, tt.loc)
			for i, h := range got {
				if diff := h - tt.want; diff > 1e-9 || diff < -1e-9 {
					t.Errorf("event %v = %v, want %v", Event(i), h, tt.want)
				}
			}
		})
	}
	if raw[Dhuhr] != 12 {
		t.Errorf("Adjust modified its input: %v", raw[Dhuhr])
	}
}

func TestAdjust_DoesNotWrap(t *testing.T) {
	var raw RawSchedule
	raw[Isha] = 22
	got := Adjust(raw, NewLocation(0, 0, 4))
	if got[Isha] != 26 {
		t.Errorf("Isha = %v, want 26 before wrapping", got[Isha])
	}
}

func TestParseTimeStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeStyle
		wantErr bool
	}{
		{"24h", Style24h, false},
		{"", Style24h, false},
		{"12H", Style12h, false},
		{" 12h ", Style12h, false},
		{"am/pm", Style24h, true},
	}
	for _, tt := range tests {
		got, err := ParseTimeStyle(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeStyle(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseTimeStyle(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Schedule
// ---------------------------------------------------------------------------

func sampleFormatted() Schedule {
	return FormatSchedule(sampleSchedule(), Style24h)
}

func TestSchedule_Get(t *testing.T) {
	s := sampleFormatted()
	if s.Get(Fajr) != "05:17" || s.Get(Isha) != "19:10" {
		t.Errorf("Get: fajr=%q isha=%q", s.Get(Fajr), s.Get(Isha))
	}
	m := s.Map()
	if len(m) != NumEvents || m["asr"] != "15:02" {
		t.Errorf("Map() = %v", m)
	}
}

func TestSchedule_MarshalJSONOrdered(t *testing.T) {
	data, err := json.Marshal(sampleFormatted())
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	want := `{"imsak":"05:07","fajr":"05:17","sunrise":"06:48","dhuhr":"12:13",` +
		`"asr":"15:02","sunset":"17:39","maghrib":"17:39","isha":"19:10"}`
	if string(data) != want {
		t.Errorf("JSON =\n%s\nwant\n%s", data, want)
	}

	var back map[string]string
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}

func TestSchedule_MarshalJSONNested(t *testing.T) {
	data, err := json.Marshal(struct {
		Date  string   `json:"date"`
		Times Schedule `json:"times"`
	}{"2026-02-28", sampleFormatted()})
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"times":{"imsak":"05:07",`) {
		t.Errorf("nested JSON = %s", data)
	}
}

func TestSchedule_MarshalYAMLOrdered(t *testing.T) {
	data, err := yaml.Marshal(sampleFormatted())
	if err != nil {
		t.Fatalf("yaml.Marshal: %v", err)
	}
	out := string(data)
	last := -1
	for _, e := range Events {
		idx := strings.Index(out, e.Key()+":")
		if idx < 0 {
			t.Fatalf("YAML missing key %q:\n%s", e.Key(), out)
		}
		if idx <= last {
			t.Errorf("key %q out of order:\n%s", e.Key(), out)
		}
		last = idx
	}
	if !strings.Contains(out, `fajr: "05:17"`) {
		t.Errorf("YAML values should be quoted:\n%s", out)
	}

	var back map[string]string
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if back["isha"] != "19:10" {
		t.Errorf("isha round trip = %q", back["isha"])
	}
}

// ---------------------------------------------------------------------------
// Date / Location
// ---------------------------------------------------------------------------

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != NewDate(2024, time.February, 29) {
		t.Errorf("ParseDate = %v", d)
	}
	if d.String() != "2024-02-29" {
		t.Errorf("String() = %q", d.String())
	}

	for _, bad := range []string{"2023-02-29", "2024-13-01", "29/02/2024", ""} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestDate_Validate(t *testing.T) {
	tests := []struct {
		d     Date
		valid bool
	}{
		{NewDate(2024, time.February, 29), true},
		{NewDate(2023, time.February, 29), false},
		{NewDate(2024, time.April, 31), false},
		{NewDate(2024, 0, 1), false},
		{NewDate(2024, 13, 1), false},
		{NewDate(2024, time.January, 0), false},
		{Date{}, false},
	}
	for _, tt := range tests {
		err := tt.d.Validate()
		if tt.valid && err != nil {
			t.Errorf("%v: unexpected error %v", tt.d, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidDate) {
			t.Errorf("%v: error = %v, want ErrInvalidDate", tt.d, err)
		}
	}
}

func TestDate_AddDays(t *testing.T) {
	tests := []struct {
		d    Date
		n    int
		want Date
	}{
		{NewDate(2024, time.February, 28), 1, NewDate(2024, time.February, 29)},
		{NewDate(2024, time.December, 31), 1, NewDate(2025, time.January, 1)},
		{NewDate(2024, time.March, 1), -1, NewDate(2024, time.February, 29)},
		{NewDate(2024, time.January, 1), 0, NewDate(2024, time.January, 1)},
	}
	for _, tt := range tests {
		if got := tt.d.AddDays(tt.n); got != tt.want {
			t.Errorf("%v.AddDays(%d) = %v, want %v", tt.d, tt.n, got, tt.want)
		}
	}
}

func TestDateOf_UsesLocalCivilDate(t *testing.T) {
	zone := time.FixedZone("UTC+03:00", 3*3600)
	local := time.Date(2024, time.March, 10, 0, 15, 0, 0, zone)
	if got := DateOf(local); got != NewDate(2024, time.March, 10) {
		t.Errorf("DateOf(local) = %v, want 2024-03-10", got)
	}
	if got := DateOf(local.UTC()); got != NewDate(2024, time.March, 9) {
		t.Errorf("DateOf(utc) = %v, want 2024-03-09", got)
	}
}

func TestLocation_Zone(t *testing.T) {
	tests := []struct {
		offset   float64
		wantName string
		wantSecs int
	}{
		{3, "UTC+03:00", 3 * 3600},
		{5.5, "UTC+05:30", 5*3600 + 1800},
		{-3.5, "UTC-03:30", -(3*3600 + 1800)},
		{0, "UTC+00:00", 0},
	}
	for _, tt := range tests {
		zone := NewLocation(0, 0, tt.offset).Zone()
		name, secs := time.Date(2024, 1, 1, 0, 0, 0, 0, zone).Zone()
		if name != tt.wantName || secs != tt.wantSecs {
			t.Errorf("offset %v: zone %s/%d, want %s/%d", tt.offset, name, secs, tt.wantName, tt.wantSecs)
		}
	}
}
