package prayer

import (
	"fmt"
	"math"
	"strings"

	"github.com/smokyabdulrahman/prayer-calc/internal/astro"
	"github.com/smokyabdulrahman/prayer-calc/internal/method"
)

// HighLatRule decides what happens to twilight events at latitudes where
// the sun does not get deep enough below the horizon.
type HighLatRule int

const (
	// HighLatNone reports ErrSunAngleUnreachable.
	HighLatNone HighLatRule = iota
	// HighLatNightMiddle caps twilight at half the night.
	HighLatNightMiddle
	// HighLatOneSeventh caps twilight at a seventh of the night.
	HighLatOneSeventh
	// HighLatAngleBased caps twilight at angle/60 of the night.
	HighLatAngleBased
)

var highLatNames = []string{"None", "NightMiddle", "OneSeventh", "AngleBased"}

func (r HighLatRule) String() string {
	if r < 0 || int(r) >= len(highLatNames) {
		return fmt.Sprintf("HighLatRule(%d)", int(r))
	}
	return highLatNames[r]
}

// HighLatNames lists the accepted rule names.
func HighLatNames() []string {
	return append([]string(nil), highLatNames...)
}

// ParseHighLatRule parses a rule name, ignoring case. "MidNight" is accepted
// as an alias for NightMiddle.
func ParseHighLatRule(s string) (HighLatRule, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return HighLatNone, nil
	}
	if strings.EqualFold(v, "MidNight") {
		return HighLatNightMiddle, nil
	}
	for i, n := range highLatNames {
		if strings.EqualFold(n, v) {
			return HighLatRule(i), nil
		}
	}
	return HighLatNone, fmt.Errorf("invalid high latitude rule %q: must be one of %s", s, strings.Join(highLatNames, ", "))
}

// portion is the fraction of the night allowed between a twilight event
// and the sunrise or sunset it hangs off.
func (r HighLatRule) portion(angle float64) float64 {
	switch r {
	case HighLatNightMiddle:
		return 1.0 / 2
	case HighLatOneSeventh:
		return 1.0 / 7
	case HighLatAngleBased:
		return angle / 60
	default:
		return math.Inf(1)
	}
}

// adjust rewrites unreachable or overlong twilight times in raw. Minute-based
// Maghrib and Isha are left alone.
func (r HighLatRule) adjust(raw *RawSchedule, m method.Method) {
	if r == HighLatNone {
		return
	}
	night := astro.FixHour(raw[Sunrise] - raw[Sunset])
	dawnGap := twilightGap(raw[Fajr] - raw[Imsak])
	duskGap := twilightGap(raw[Isha] - raw[Maghrib])

	raw[Imsak] = r.clamp(raw[Imsak], raw[Sunrise], m.Fajr+imsakDelta, night, true)
	raw[Fajr] = r.clamp(raw[Fajr], raw[Sunrise], m.Fajr, night, true)
	// NightMiddle and OneSeventh ignore the angle, so two clamped events
	// meet. Keep the deeper one apart.
	if !(raw[Imsak] < raw[Fajr]) {
		raw[Imsak] = raw[Fajr] - dawnGap
	}

	if !m.Maghrib.IsMinutes() {
		raw[Maghrib] = r.clamp(raw[Maghrib], raw[Sunset], m.Maghrib.Value(), night, false)
	}
	if !m.Isha.IsMinutes() {
		raw[Isha] = r.clamp(raw[Isha], raw[Sunset], m.Isha.Value(), night, false)
		if !m.Maghrib.IsMinutes() && !(raw[Isha] > raw[Maghrib]) {
			raw[Isha] = raw[Maghrib] + duskGap
		}
	}
}

// fallbackGap separates two clamped twilight events whose own gap is
// unknown because one of them was unreachable.
const fallbackGap = 10.0 / 60

func twilightGap(d float64) float64 {
	if math.IsNaN(d) || d <= 0 {
		return fallbackGap
	}
	return d
}

func (r HighLatRule) clamp(t, base, angle, night float64, before bool) float64 {
	limit := r.portion(angle) * night
	diff := t - base
	if before {
		diff = base - t
	}
	if math.IsNaN(t) || diff > limit {
		if before {
			return base - limit
		}
		return base + limit
	}
	return t
}
