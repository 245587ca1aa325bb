// Package astro implements the solar astronomy behind prayer time calculation.
//
// Every angle crossing a function boundary in this package is expressed in
// degrees; conversion to radians happens only inside the trig helpers.
package astro

import "math"

func dtr(d float64) float64 { return d * math.Pi / 180 }
func rtd(r float64) float64 { return r * 180 / math.Pi }

// Sin returns the sine of d degrees.
func Sin(d float64) float64 { return math.Sin(dtr(d)) }

// Cos returns the cosine of d degrees.
func Cos(d float64) float64 { return math.Cos(dtr(d)) }

// Tan returns the tangent of d degrees.
func Tan(d float64) float64 { return math.Tan(dtr(d)) }

// Asin returns the arcsine of x in degrees.
func Asin(x float64) float64 { return rtd(math.Asin(x)) }

// Acos returns the arccosine of x in degrees. It returns NaN when x is outside [-1, 1].
func Acos(x float64) float64 { return rtd(math.Acos(x)) }

// Acot returns the arccotangent of x in degrees.
func Acot(x float64) float64 { return rtd(math.Atan(1 / x)) }

// Atan2 returns the arctangent of y/x in degrees, using the signs of both to pick the quadrant.
func Atan2(y, x float64) float64 { return rtd(math.Atan2(y, x)) }

// FixHour wraps an hour-of-day value into [0, 24).
//
// This is a floor-based modulo: FixHour(-1) is 23 and FixHour(49.5) is 1.5.
// It is idempotent.
func FixHour(h float64) float64 {
	h -= 24 * math.Floor(h/24)
	// Tiny negative inputs can round up to exactly 24.
	if h >= 24 {
		h = 0
	}
	return h
}

// FixAngle wraps an angle into [0, 360).
func FixAngle(a float64) float64 {
	a -= 360 * math.Floor(a/360)
	if a >= 360 {
		a = 0
	}
	return a
}
