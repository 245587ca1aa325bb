package astro

import "math"

// J2000 is the Julian Day of 2000-01-01 12:00 TT.
const J2000 = 2451545.0

// JulianDay converts a proleptic Gregorian calendar date to a Julian Day number.
// The result refers to 0h of that date, so it always ends in .5.
//
// No range validation is done; callers are expected to pass a real calendar date.
func JulianDay(year, month, day int) float64 {
	if month <= 2 {
		year--
		month += 12
	}
	a := math.Floor(float64(year) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*float64(year+4716)) + math.Floor(30.6001*float64(month+1)) + float64(day) + b - 1524.5
}
