package prayer

import (
	"fmt"
	"strings"

	"github.com/smokyabdulrahman/prayer-calc/internal/astro"
)

// TimeStyle selects 24-hour or 12-hour rendering.
type TimeStyle int

const (
	Style24h TimeStyle = iota // "HH:MM"
	Style12h                  // "hh:MM AM"
)

func (s TimeStyle) String() string {
	if s == Style12h {
		return "12h"
	}
	return "24h"
}

// ParseTimeStyle parses "24h" or "12h".
func ParseTimeStyle(s string) (TimeStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "24h", "":
		return Style24h, nil
	case "12h":
		return Style12h, nil
	default:
		return Style24h, fmt.Errorf("invalid time format %q: must be \"12h\" or \"24h\"", s)
	}
}

// Adjust converts raw solar-time hours to civil hours for loc's UTC offset.
// The result is not wrapped.
func Adjust(raw RawSchedule, loc Location) RawSchedule {
	shift := loc.UTCOffset - loc.Longitude/15
	for i := range raw {
		raw[i] += shift
	}
	return raw
}

// FixHour wraps an hour value into [0, 24).
func FixHour(h float64) float64 {
	return astro.FixHour(h)
}

// FormatHour renders h as a wall-clock time. h is wrapped into [0, 24) and
// truncated, never rounded, to the minute: 25.999999 becomes "01:59".
func FormatHour(h float64, style TimeStyle) string {
	hour, minute := splitHour(h)
	return formatClock(hour, minute, style)
}

func formatClock(hour, minute int, style TimeStyle) string {
	if style != Style12h {
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h12, minute, suffix)
}

// FormatSchedule renders every event of an adjusted schedule.
func FormatSchedule(adjusted RawSchedule, style TimeStyle) Schedule {
	var s Schedule
	for i, h := range adjusted {
		s[i] = FormatHour(h, style)
	}
	return s
}
