// Package cache keeps network results on disk: the last IP geolocation and
// Al Adhan reference timings used by `compare`. Computed schedules are never
// cached; they are cheap to recompute.
package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smokyabdulrahman/prayer-calc/internal/api"
	"github.com/smokyabdulrahman/prayer-calc/internal/geo"
)

const (
	referenceFile = "reference_%s.json" // keyed by hash
	geoCacheFile  = "geolocation.json"
	geoTTL        = 24 * time.Hour
)

// Cache provides file-based caching rooted at one directory.
type Cache struct {
	dir string
	now func() time.Time
}

// ReferenceEntry stores one day of reference timings with the query that
// produced them.
type ReferenceEntry struct {
	Date     string       `json:"date"` // YYYY-MM-DD
	Method   string       `json:"method"`
	School   int          `json:"school"`
	Response api.Response `json:"response"`
}

// GeoCacheEntry stores a cached geolocation result with a timestamp.
type GeoCacheEntry struct {
	Location geo.Location `json:"location"`
	CachedAt time.Time    `json:"cached_at"`
}

// DefaultDir returns ~/.cache/prayer-calc.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".cache", "prayer-calc"), nil
}

// New creates a Cache rooted at dir, or at DefaultDir when dir is empty.
func New(dir string) (*Cache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &Cache{dir: dir, now: time.Now}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// referenceKey hashes every query field that changes the reference timings.
func referenceKey(q api.Query) string {
	raw := fmt.Sprintf("%s|%.6f|%.6f|%s|%d|%s", q.Date, q.Latitude, q.Longitude, q.Method, q.School(), q.Timezone)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h[:8])
}

func (c *Cache) referencePath(q api.Query) string {
	return filepath.Join(c.dir, fmt.Sprintf(referenceFile, referenceKey(q)))
}

// LoadReference returns cached reference timings for q, or nil on a miss.
// Reference timings for a given day never change, so entries do not expire.
func (c *Cache) LoadReference(q api.Query) *api.Response {
	data, err := os.ReadFile(c.referencePath(q))
	if err != nil {
		return nil
	}

	var entry ReferenceEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}
	if entry.Date != q.Date.String() || entry.Method != q.Method || entry.School != q.School() {
		return nil
	}

	return &entry.Response
}

// SaveReference writes reference timings for q.
func (c *Cache) SaveReference(q api.Query, resp *api.Response) error {
	entry := ReferenceEntry{
		Date:     q.Date.String(),
		Method:   q.Method,
		School:   q.School(),
		Response: *resp,
	}
	return writeJSON(c.referencePath(q), entry)
}

// LoadGeo returns the cached geolocation, or nil if it is missing or older
// than 24 hours.
func (c *Cache) LoadGeo() *geo.Location {
	data, err := os.ReadFile(filepath.Join(c.dir, geoCacheFile))
	if err != nil {
		return nil
	}

	var entry GeoCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}

	if c.now().Sub(entry.CachedAt) > geoTTL {
		return nil
	}

	return &entry.Location
}

// SaveGeo writes a geolocation result to the cache.
func (c *Cache) SaveGeo(loc *geo.Location) error {
	return writeJSON(filepath.Join(c.dir, geoCacheFile), GeoCacheEntry{
		Location: *loc,
		CachedAt: c.now(),
	})
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}
