package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smokyabdulrahman/prayer-calc/internal/api"
	"github.com/smokyabdulrahman/prayer-calc/internal/geo"
	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
)

func sampleQuery() api.Query {
	return api.Query{
		Date:      prayer.NewDate(2026, time.February, 28),
		Latitude:  51.5074,
		Longitude: -0.1278,
		Method:    "ISNA",
		Asr:       prayer.Standard,
	}
}

func sampleAPIResponse() *api.Response {
	return &api.Response{
		Code:   200,
		Status: "OK",
		Data: api.Data{
			Timings: api.Timings{
				Imsak:   "05:07",
				Fajr:    "05:17",
				Sunrise: "06:48",
				Dhuhr:   "12:13",
				Asr:     "15:02",
				Sunset:  "17:39",
				Maghrib: "17:39",
				Isha:    "19:10",
			},
			Meta: api.Meta{
				Latitude:  51.5074,
				Longitude: -0.1278,
				Timezone:  "Europe/London",
				Method:    api.MethodInfo{ID: 2, Name: "ISNA"},
			},
		},
	}
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// ---------------------------------------------------------------------------
// New
// ---------------------------------------------------------------------------

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "subdir", "cache")
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New(%q) error: %v", dir, err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("directory %q was not created", dir)
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
}

func TestNew_DefaultDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := New("")
	if err != nil {
		t.Fatalf("New(\"\") error: %v", err)
	}
	want, _ := DefaultDir()
	if c.Dir() != want || filepath.Base(want) != "prayer-calc" {
		t.Errorf("Dir() = %q, want %q", c.Dir(), want)
	}
}

// ---------------------------------------------------------------------------
// Reference timings
// ---------------------------------------------------------------------------

func TestReference_RoundTrip(t *testing.T) {
	c := newTestCache(t)
	q := sampleQuery()

	if err := c.SaveReference(q, sampleAPIResponse()); err != nil {
		t.Fatalf("SaveReference error: %v", err)
	}

	got := c.LoadReference(q)
	if got == nil {
		t.Fatal("LoadReference returned nil after save")
	}
	if got.Data.Timings.Fajr != "05:17" || got.Data.Timings.Isha != "19:10" {
		t.Errorf("timings = %+v", got.Data.Timings)
	}
	if got.Data.Meta.Timezone != "Europe/London" {
		t.Errorf("Timezone = %q", got.Data.Meta.Timezone)
	}
}

func TestReference_CacheMiss(t *testing.T) {
	c := newTestCache(t)
	if got := c.LoadReference(sampleQuery()); got != nil {
		t.Error("expected nil for empty cache")
	}
}

func TestReference_DifferentParams(t *testing.T) {
	c := newTestCache(t)
	q := sampleQuery()
	c.SaveReference(q, sampleAPIResponse())

	variants := map[string]func(*api.Query){
		"date":     func(q *api.Query) { q.Date = q.Date.AddDays(1) },
		"method":   func(q *api.Query) { q.Method = "MWL" },
		"school":   func(q *api.Query) { q.Asr = prayer.Hanafi },
		"latitude": func(q *api.Query) { q.Latitude = 40 },
		"timezone": func(q *api.Query) { q.Timezone = "UTC" },
	}
	for name, mutate := range variants {
		t.Run(name, func(t *testing.T) {
			other := q
			mutate(&other)
			if got := c.LoadReference(other); got != nil {
				t.Errorf("expected cache miss when %s differs", name)
			}
		})
	}
}

func TestReference_CorruptedFile(t *testing.T) {
	c := newTestCache(t)
	q := sampleQuery()
	if err := os.WriteFile(c.referencePath(q), []byte("{corrupt"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := c.LoadReference(q); got != nil {
		t.Error("expected nil for corrupted cache file")
	}
}

func TestReferenceKey(t *testing.T) {
	q := sampleQuery()
	k1, k2 := referenceKey(q), referenceKey(q)
	if k1 != k2 {
		t.Errorf("referenceKey not deterministic: %q vs %q", k1, k2)
	}
	if len(k1) != 16 {
		t.Errorf("referenceKey length = %d, want 16", len(k1))
	}
	q.Method = "Egypt"
	if referenceKey(q) == k1 {
		t.Error("different method should produce a different key")
	}
}

// ---------------------------------------------------------------------------
// Geolocation
// ---------------------------------------------------------------------------

func sampleGeo() *geo.Location {
	return &geo.Location{
		Latitude:  51.5074,
		Longitude: -0.1278,
		City:      "London",
		Country:   "United Kingdom",
		Timezone:  "Europe/London",
	}
}

func TestGeo_RoundTrip(t *testing.T) {
	c := newTestCache(t)

	if err := c.SaveGeo(sampleGeo()); err != nil {
		t.Fatalf("SaveGeo error: %v", err)
	}

	got := c.LoadGeo()
	if got == nil {
		t.Fatal("LoadGeo returned nil after save")
	}
	if *got != *sampleGeo() {
		t.Errorf("LoadGeo() = %+v, want %+v", got, sampleGeo())
	}
}

func TestGeo_CacheMiss(t *testing.T) {
	c := newTestCache(t)
	if got := c.LoadGeo(); got != nil {
		t.Error("expected nil for empty geo cache")
	}
}

func TestGeo_ExpiredTTL(t *testing.T) {
	c := newTestCache(t)
	saved := time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return saved }
	if err := c.SaveGeo(sampleGeo()); err != nil {
		t.Fatal(err)
	}

	c.now = func() time.Time { return saved.Add(23 * time.Hour) }
	if c.LoadGeo() == nil {
		t.Error("entry younger than 24h should load")
	}

	c.now = func() time.Time { return saved.Add(25 * time.Hour) }
	if c.LoadGeo() != nil {
		t.Error("expected nil for expired geo cache")
	}
}

func TestGeo_CorruptedFile(t *testing.T) {
	c := newTestCache(t)
	path := filepath.Join(c.Dir(), "geolocation.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := c.LoadGeo(); got != nil {
		t.Error("expected nil for corrupted geo cache")
	}
}

func TestGeo_FileFormat(t *testing.T) {
	c := newTestCache(t)
	c.SaveGeo(sampleGeo())

	data, err := os.ReadFile(filepath.Join(c.Dir(), "geolocation.json"))
	if err != nil {
		t.Fatal(err)
	}
	var entry GeoCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("geo cache is not JSON: %v", err)
	}
	if entry.Location.City != "London" || entry.CachedAt.IsZero() {
		t.Errorf("entry = %+v", entry)
	}
}
