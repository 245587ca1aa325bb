package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // timezone names resolve without a system database

	"github.com/smokyabdulrahman/prayer-calc/internal/method"
	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
)

func loadZone(name string) (*time.Location, error) {
	return time.LoadLocation(name)
}

// Location builds the engine location for date. An explicit utc_offset wins;
// otherwise the offset of timezone at local noon on date is used, so
// daylight saving is honoured. Missing values yield
// prayer.ErrLocationNotConfigured.
func (c *Config) Location(date prayer.Date) (prayer.Location, error) {
	if c.Latitude == nil || c.Longitude == nil {
		return prayer.Location{}, fmt.Errorf("%w: latitude and longitude are required", prayer.ErrLocationNotConfigured)
	}

	var offset float64
	switch {
	case c.UTCOffset != nil:
		offset = *c.UTCOffset
	case c.Timezone != "":
		tz, err := loadZone(c.Timezone)
		if err != nil {
			return prayer.Location{}, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
		_, secs := time.Date(date.Year, date.Month, date.Day, 12, 0, 0, 0, tz).Zone()
		offset = float64(secs) / 3600
	default:
		return prayer.Location{}, fmt.Errorf("%w: utc_offset or timezone is required", prayer.ErrLocationNotConfigured)
	}

	return prayer.NewLocation(*c.Latitude, *c.Longitude, offset), nil
}

// Zone returns the zone that schedule times are shown in: a fixed zone for
// utc_offset, else the named timezone.
func (c *Config) Zone() (*time.Location, error) {
	switch {
	case c.UTCOffset != nil:
		return prayer.FixedZone(*c.UTCOffset), nil
	case c.Timezone != "":
		tz, err := loadZone(c.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
		return tz, nil
	default:
		return nil, fmt.Errorf("%w: utc_offset or timezone is required", prayer.ErrLocationNotConfigured)
	}
}

// Options resolves method, asr and high_lats into engine options.
func (c *Config) Options() (prayer.Options, error) {
	name := c.Method
	if name == "" {
		name = method.Default
	}
	m, err := method.Lookup(name)
	if err != nil {
		return prayer.Options{}, err
	}
	asr, err := prayer.ParseJuristic(c.Asr)
	if err != nil {
		return prayer.Options{}, err
	}
	rule, err := prayer.ParseHighLatRule(c.HighLats)
	if err != nil {
		return prayer.Options{}, err
	}
	return prayer.Options{Method: m, Asr: asr, HighLats: rule}, nil
}

// Style returns the configured clock style.
func (c *Config) Style() (prayer.TimeStyle, error) {
	return prayer.ParseTimeStyle(c.TimeFormat)
}

// PrayerNames returns the configured prayer list, or the default six.
func (c *Config) PrayerNames() []string {
	if strings.TrimSpace(c.Prayers) == "" {
		return prayer.DefaultPrayerNames
	}
	var names []string
	for _, n := range strings.Split(c.Prayers, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
