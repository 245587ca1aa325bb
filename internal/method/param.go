package method

import "fmt"

type paramKind uint8

const (
	kindAngle paramKind = iota
	kindMinutes
)

// Param is a twilight parameter: either a sun depression angle in degrees or
// a fixed offset in minutes from the preceding event.
//
// The zero value is a 0° angle.
type Param struct {
	kind  paramKind
	value float64
}

// Angle returns a Param expressing a depression angle below the horizon.
func Angle(degrees float64) Param {
	return Param{kind: kindAngle, value: degrees}
}

// Minutes returns a Param expressing an offset after the preceding event.
func Minutes(minutes float64) Param {
	return Param{kind: kindMinutes, value: minutes}
}

// IsMinutes reports whether p is a minute offset rather than an angle.
func (p Param) IsMinutes() bool {
	return p.kind == kindMinutes
}

// Value returns the degrees or minutes carried by p.
func (p Param) Value() float64 {
	return p.value
}

// String renders p as "17.5°" or "90 min".
func (p Param) String() string {
	if p.IsMinutes() {
		return fmt.Sprintf("%g min", p.value)
	}
	return fmt.Sprintf("%g°", p.value)
}
