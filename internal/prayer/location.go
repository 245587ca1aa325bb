package prayer

import (
	"fmt"
	"math"
	"time"
)

// Location is where and in which civil zone times are computed.
// The zero value is unconfigured; build one with NewLocation.
type Location struct {
	Latitude  float64 // degrees, north positive
	Longitude float64 // degrees, east positive
	UTCOffset float64 // hours, may be fractional

	configured bool
}

// NewLocation returns a configured Location. Ranges are checked when the
// location is used.
func NewLocation(latitude, longitude, utcOffset float64) Location {
	return Location{
		Latitude:   latitude,
		Longitude:  longitude,
		UTCOffset:  utcOffset,
		configured: true,
	}
}

// Configured reports whether l was built with NewLocation.
func (l Location) Configured() bool {
	return l.configured
}

// Zone returns a fixed time zone matching l's UTC offset.
func (l Location) Zone() *time.Location {
	return FixedZone(l.UTCOffset)
}

// FixedZone returns a zone offset hours from UTC, named like "UTC+05:30".
func FixedZone(hours float64) *time.Location {
	secs := int(math.Round(hours * 3600))
	sign := "+"
	abs := secs
	if secs < 0 {
		sign = "-"
		abs = -secs
	}
	name := fmt.Sprintf("UTC%s%02d:%02d", sign, abs/3600, (abs%3600)/60)
	return time.FixedZone(name, secs)
}

func (l Location) validate() error {
	if !l.configured {
		return ErrLocationNotConfigured
	}
	check := func(name string, v, lo, hi float64) error {
		if math.IsNaN(v) || v < lo || v > hi {
			return fmt.Errorf("%w: %s %v outside [%g, %g]", ErrLocationNotConfigured, name, v, lo, hi)
		}
		return nil
	}
	if err := check("latitude", l.Latitude, -90, 90); err != nil {
		return err
	}
	if err := check("longitude", l.Longitude, -180, 180); err != nil {
		return err
	}
	return check("utc offset", l.UTCOffset, -12, 14)
}
