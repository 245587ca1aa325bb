package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/smokyabdulrahman/prayer-calc/internal/cache"
	"github.com/smokyabdulrahman/prayer-calc/internal/config"
	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
	"github.com/smokyabdulrahman/prayer-calc/internal/watch"
)

// session is the resolved input for computing schedules in one command run.
type session struct {
	cfg   *config.Config
	opts  prayer.Options
	style prayer.TimeStyle
	zone  *time.Location
	names []string
	now   time.Time // in zone
}

// newSession resolves the merged settings. It fails early when the location
// is incomplete so that no command prints a partial result.
func newSession() (*session, error) {
	cfg := currentSettings()

	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	style, err := cfg.Style()
	if err != nil {
		return nil, err
	}
	zone, err := cfg.Zone()
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:   cfg,
		opts:  opts,
		style: style,
		zone:  zone,
		names: cfg.PrayerNames(),
		now:   clock().In(zone),
	}
	if _, err := cfg.Location(s.today()); err != nil {
		return nil, err
	}
	return s, nil
}

// currentSettings returns the merged settings, or the defaults when
// LoadSettings has not run.
func currentSettings() *config.Config {
	if settings == nil {
		d := config.Defaults()
		return &d
	}
	return settings
}

// today is the local civil date in the configured zone.
func (s *session) today() prayer.Date {
	return prayer.DateOf(s.now)
}

// date returns --date, or today.
func (s *session) date() (prayer.Date, error) {
	if FlagDate == "" {
		return s.today(), nil
	}
	return prayer.ParseDate(FlagDate)
}

// adjusted computes the raw and timezone-adjusted schedule for date.
func (s *session) adjusted(date prayer.Date) (raw, adjusted prayer.RawSchedule, loc prayer.Location, err error) {
	loc, err = s.cfg.Location(date)
	if err != nil {
		return raw, adjusted, loc, err
	}
	log.Debug().Str("date", date.String()).Float64("lat", loc.Latitude).Float64("lon", loc.Longitude).
		Float64("utc_offset", loc.UTCOffset).Str("method", s.opts.Method.Name).Msg("computing schedule")

	raw, err = prayer.ComputeRaw(date, loc, s.opts)
	if err != nil {
		return raw, adjusted, loc, err
	}
	return raw, prayer.Adjust(raw, loc), loc, nil
}

// plan computes one day. It satisfies watch.PlanFunc.
func (s *session) plan(date prayer.Date) (watch.Day, error) {
	_, adjusted, _, err := s.adjusted(date)
	if err != nil {
		return watch.Day{}, err
	}
	prayers, err := prayer.Timeline(adjusted, date, s.zone, s.names)
	if err != nil {
		return watch.Day{}, err
	}
	return watch.Day{
		Date:     date,
		Schedule: prayer.FormatSchedule(adjusted, s.style),
		Prayers:  prayers,
	}, nil
}

// next returns the upcoming prayer after now, rolling over into tomorrow
// after the last event. Yesterday is checked first since its Isha can fall
// after midnight. today is returned too when it could be computed.
func (s *session) next() (next *prayer.Prayer, today []prayer.Prayer, err error) {
	day, err := s.plan(s.today())
	if err != nil {
		return nil, nil, err
	}
	if yesterday, err := s.plan(s.today().AddDays(-1)); err == nil {
		if p := prayer.NextPrayer(yesterday.Prayers, s.now); p != nil {
			return p, day.Prayers, nil
		}
	}
	if p := prayer.NextPrayer(day.Prayers, s.now); p != nil {
		return p, day.Prayers, nil
	}

	tomorrow, err := s.plan(s.today().AddDays(1))
	if err != nil {
		return nil, day.Prayers, err
	}
	if len(tomorrow.Prayers) == 0 {
		return nil, day.Prayers, fmt.Errorf("could not determine next prayer")
	}
	return &tomorrow.Prayers[0], day.Prayers, nil
}

// label describes the configured location for headers.
func (s *session) label() string {
	if s.cfg.Label != "" {
		return s.cfg.Label
	}
	return formatCoords(s.cfg)
}

// openCache returns the cache in dir, or nil with a warning when it is
// unusable. Callers treat a nil cache as always missing.
func openCache(dir string) *cache.Cache {
	c, err := cache.New(dir)
	if err != nil {
		log.Warn().Err(err).Msg("cache disabled")
		return nil
	}
	return c
}

// locationJSON describes the location in structured output.
type locationJSON struct {
	Label     string  `json:"label,omitempty" yaml:"label,omitempty"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	UTCOffset float64 `json:"utc_offset" yaml:"utc_offset"`
	Timezone  string  `json:"timezone" yaml:"timezone"`
}

func (s *session) locationInfo(date prayer.Date) locationJSON {
	loc, _ := s.cfg.Location(date)
	return locationJSON{
		Label:     s.cfg.Label,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		UTCOffset: loc.UTCOffset,
		Timezone:  s.zone.String(),
	}
}

// structured reports whether --json or --yaml was given.
func structured() bool {
	return FlagJSON || FlagYAML
}

// writeStructured renders v as YAML with --yaml, otherwise as indented JSON.
func writeStructured(w io.Writer, v any) error {
	if FlagYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
