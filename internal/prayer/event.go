package prayer

import (
	"fmt"
	"strings"
)

// Event identifies one of the eight daily markers the engine produces.
// Events are ordered chronologically for a normal day.
type Event int

const (
	Imsak Event = iota
	Fajr
	Sunrise
	Dhuhr
	Asr
	Sunset
	Maghrib
	Isha
)

// NumEvents is the number of entries in every schedule.
const NumEvents = int(Isha) + 1

var eventNames = [NumEvents]string{
	"Imsak", "Fajr", "Sunrise", "Dhuhr", "Asr", "Sunset", "Maghrib", "Isha",
}

// Events lists every event in chronological order.
var Events = []Event{Imsak, Fajr, Sunrise, Dhuhr, Asr, Sunset, Maghrib, Isha}

// AllPrayerNames lists every event name the engine computes, in chronological order.
var AllPrayerNames = eventNames[:]

// DefaultPrayerNames are the events tracked by default.
var DefaultPrayerNames = []string{
	"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha",
}

// ShortNames maps full event names to short abbreviations.
var ShortNames = map[string]string{
	"Imsak":   "Im",
	"Fajr":    "F",
	"Sunrise": "S",
	"Dhuhr":   "D",
	"Asr":     "A",
	"Sunset":  "St",
	"Maghrib": "M",
	"Isha":    "I",
}

// String returns the display name, e.g. "Maghrib".
func (e Event) String() string {
	if e < 0 || int(e) >= NumEvents {
		return fmt.Sprintf("Event(%d)", int(e))
	}
	return eventNames[e]
}

// Key returns the lowercase name used in machine-readable output, e.g. "maghrib".
func (e Event) Key() string {
	return strings.ToLower(e.String())
}

// ParseEvent resolves an event name case-insensitively.
func ParseEvent(name string) (Event, error) {
	for i, n := range eventNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Event(i), nil
		}
	}
	return 0, fmt.Errorf("unknown prayer %q; valid names: %s", name, strings.Join(AllPrayerNames, ", "))
}
