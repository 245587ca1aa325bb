package prayer

import (
	"fmt"
	"math"
	"time"
)

// Prayer is one event placed on the wall clock.
type Prayer struct {
	Event Event
	Name  string
	Time  time.Time
}

// Timeline places the selected events of an adjusted schedule on date in tz.
// Times are truncated to the minute so they agree with the formatted schedule.
// Dhuhr is always on date; an event more than a day's worth of hours away
// from midnight, such as Isha after 24:00, lands on the neighbouring day.
// An unknown name in selected is an error.
func Timeline(adjusted RawSchedule, date Date, tz *time.Location, selected []string) ([]Prayer, error) {
	prayers := make([]Prayer, 0, len(selected))
	for _, name := range selected {
		ev, err := ParseEvent(name)
		if err != nil {
			return nil, err
		}
		prayers = append(prayers, Prayer{
			Event: ev,
			Name:  ev.String(),
			Time:  date.AddDays(dayOffset(adjusted, ev)).At(adjusted[ev], tz),
		})
	}
	return prayers, nil
}

// dayOffset is the number of days between date and the civil day ev falls
// on. Adjusted hours share one 24h shift, so they are measured from Dhuhr.
func dayOffset(adjusted RawSchedule, ev Event) int {
	noon := adjusted[Dhuhr]
	return int(math.Floor((FixHour(noon) + adjusted[ev] - noon) / 24))
}

// NextPrayer finds the next upcoming prayer from the given slice, relative to now.
// If all prayers have passed, it returns nil (caller should look at tomorrow).
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// CurrentPrayer returns the latest prayer whose time has arrived, or nil
// before the first one.
func CurrentPrayer(prayers []Prayer, now time.Time) *Prayer {
	var cur *Prayer
	for i := range prayers {
		if !prayers[i].Time.After(now) {
			cur = &prayers[i]
		}
	}
	return cur
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(p Prayer, now time.Time) time.Duration {
	return p.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatCountdown formats a duration as "HH:MM:SS", clamping negatives to zero.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// FormatClock renders t's wall-clock hour and minute in the given style.
func FormatClock(t time.Time, style TimeStyle) string {
	return formatClock(t.Hour(), t.Minute(), style)
}
