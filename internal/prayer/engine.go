// Package prayer computes daily prayer times from solar astronomy and turns
// them into wall-clock schedules.
//
// Every computation is a pure function of its arguments: the date, the
// location, and the Options. Nothing is cached between calls, so the
// functions are safe for concurrent use.
package prayer

import (
	"fmt"
	"math"
	"strings"

	"github.com/smokyabdulrahman/prayer-calc/internal/astro"
	"github.com/smokyabdulrahman/prayer-calc/internal/method"
)

const (
	// riseSetAngle is the sun's depression at sunrise and sunset, covering
	// atmospheric refraction and the solar semi-diameter.
	riseSetAngle = 0.833

	// imsakDelta is how many degrees deeper than Fajr the Imsak angle is.
	imsakDelta = 2
)

// Juristic selects the shadow-length convention used for Asr.
type Juristic int

const (
	Standard Juristic = iota // Shafi, Maliki, Hanbali: shadow factor 1
	Hanafi                   // shadow factor 2
)

// Factor returns the shadow-length factor.
func (j Juristic) Factor() float64 {
	if j == Hanafi {
		return 2
	}
	return 1
}

func (j Juristic) String() string {
	if j == Hanafi {
		return "Hanafi"
	}
	return "Standard"
}

// ParseJuristic parses "Standard" (or "Shafi") and "Hanafi", ignoring case.
// The empty string means Standard.
func ParseJuristic(s string) (Juristic, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "shafi", "":
		return Standard, nil
	case "hanafi":
		return Hanafi, nil
	default:
		return Standard, fmt.Errorf("invalid asr juristic %q: must be Standard or Hanafi", s)
	}
}

// Options are the convention choices for a computation.
type Options struct {
	Method   method.Method
	Asr      Juristic
	HighLats HighLatRule
}

// RawSchedule holds unadjusted event times in hours, indexed by Event.
// Values are relative to local apparent solar time and may fall outside [0, 24).
type RawSchedule [NumEvents]float64

// solarDay is the sun's state for one date at one latitude.
type solarDay struct {
	decl float64
	noon float64
	lat  float64
}

// sunAngleTime returns when the sun is angle degrees below the horizon,
// before or after noon. ok is false if the sun never gets there.
func (s solarDay) sunAngleTime(angle float64, beforeNoon bool) (t float64, ok bool) {
	x := (-astro.Sin(angle) - astro.Sin(s.decl)*astro.Sin(s.lat)) / (astro.Cos(s.decl) * astro.Cos(s.lat))
	if math.IsNaN(x) || x < -1 || x > 1 {
		return math.NaN(), false
	}
	d := astro.Acos(x) / 15
	if beforeNoon {
		return s.noon - d, true
	}
	return s.noon + d, true
}

// asrAngle returns the (negative, i.e. above horizon) sun angle at which an
// object's shadow is factor times its height plus its noon shadow.
func (s solarDay) asrAngle(factor float64) float64 {
	return -astro.Acot(factor + astro.Tan(math.Abs(s.lat-s.decl)))
}

// ComputeRaw computes the unadjusted schedule for date at loc.
//
// It fails with ErrLocationNotConfigured for an unconfigured or out-of-range
// location, with method.ErrUnknownMethod when no method is set, and with an
// *UnreachableError when an event's sun angle cannot be reached and
// opts.HighLats does not resolve it.
func ComputeRaw(date Date, loc Location, opts Options) (RawSchedule, error) {
	var raw RawSchedule

	if err := loc.validate(); err != nil {
		return raw, err
	}
	m := opts.Method
	if m.IsZero() {
		return raw, fmt.Errorf("%w: none selected", method.ErrUnknownMethod)
	}

	pos := astro.SolarPosition(date.julianDay())
	day := solarDay{
		decl: pos.Declination,
		noon: 12 - pos.EquationOfTime,
		lat:  loc.Latitude,
	}

	// Twilight events can be rescued by a high-latitude rule; the others cannot.
	rescuable := opts.HighLats != HighLatNone
	at := func(ev Event, angle float64, beforeNoon, twilight bool) error {
		t, ok := day.sunAngleTime(angle, beforeNoon)
		if !ok && !(twilight && rescuable) {
			return &UnreachableError{Event: ev, Angle: angle}
		}
		raw[ev] = t
		return nil
	}

	if err := at(Imsak, m.Fajr+imsakDelta, true, true); err != nil {
		return RawSchedule{}, err
	}
	if err := at(Fajr, m.Fajr, true, true); err != nil {
		return RawSchedule{}, err
	}
	if err := at(Sunrise, riseSetAngle, true, false); err != nil {
		return RawSchedule{}, err
	}
	raw[Dhuhr] = day.noon
	if err := at(Asr, day.asrAngle(opts.Asr.Factor()), false, false); err != nil {
		return RawSchedule{}, err
	}
	if err := at(Sunset, riseSetAngle, false, false); err != nil {
		return RawSchedule{}, err
	}

	if m.Maghrib.IsMinutes() {
		raw[Maghrib] = raw[Sunset] + m.Maghrib.Value()/60
	} else if err := at(Maghrib, m.Maghrib.Value(), false, true); err != nil {
		return RawSchedule{}, err
	}
	if !m.Isha.IsMinutes() {
		if err := at(Isha, m.Isha.Value(), false, true); err != nil {
			return RawSchedule{}, err
		}
	}

	opts.HighLats.adjust(&raw, m)

	if m.Isha.IsMinutes() {
		raw[Isha] = raw[Maghrib] + m.Isha.Value()/60
	}
	return raw, nil
}

// Compute returns the formatted wall-clock schedule for date at loc.
func Compute(date Date, loc Location, opts Options, style TimeStyle) (Schedule, error) {
	raw, err := ComputeRaw(date, loc, opts)
	if err != nil {
		return Schedule{}, err
	}
	return FormatSchedule(Adjust(raw, loc), style), nil
}
