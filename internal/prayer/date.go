package prayer

import (
	"fmt"
	"math"
	"time"

	"github.com/smokyabdulrahman/prayer-calc/internal/astro"
)

const dateLayout = "2006-01-02"

// Date is a civil calendar date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the given calendar date. It does not validate.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf returns the calendar date of t in t's own location.
// A time just after local midnight belongs to the new local day even when
// UTC is still on the previous one.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// Validate reports whether d names a real calendar day.
func (d Date) Validate() error {
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return fmt.Errorf("%w: %s", ErrInvalidDate, d)
	}
	if DateOf(d.midnight(time.UTC)) != d {
		return fmt.Errorf("%w: %s", ErrInvalidDate, d)
	}
	return nil
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return DateOf(d.midnight(time.UTC).AddDate(0, 0, n))
}

// At returns the wall-clock time hour hours into d, in loc. Fractions below a
// minute are dropped so the result agrees with FormatHour.
func (d Date) At(hour float64, loc *time.Location) time.Time {
	h, m := splitHour(hour)
	return time.Date(d.Year, d.Month, d.Day, h, m, 0, 0, loc)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) julianDay() float64 {
	return astro.JulianDay(d.Year, int(d.Month), d.Day)
}

// splitHour wraps h into [0, 24) and truncates it to whole minutes.
func splitHour(h float64) (hour, minute int) {
	h = FixHour(h)
	hour = int(math.Floor(h))
	minute = int(math.Floor((h - float64(hour)) * 60))
	if minute > 59 {
		minute = 59
	}
	return hour, minute
}
