package prayer

import (
	"errors"
	"fmt"
)

var (
	// ErrLocationNotConfigured is returned when latitude, longitude or UTC
	// offset is missing or out of range.
	ErrLocationNotConfigured = errors.New("location not configured")

	// ErrSunAngleUnreachable is returned when the sun never reaches the
	// angle an event is defined by, at this latitude and date.
	ErrSunAngleUnreachable = errors.New("sun angle unreachable")

	// ErrInvalidDate is returned by Date.Validate and ParseDate. The engine
	// itself never validates dates.
	ErrInvalidDate = errors.New("invalid date")
)

// UnreachableError reports which event could not be computed.
// It matches ErrSunAngleUnreachable under errors.Is.
type UnreachableError struct {
	Event Event
	Angle float64
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("%s: %v (angle %g°)", e.Event, ErrSunAngleUnreachable, e.Angle)
}

func (e *UnreachableError) Unwrap() error {
	return ErrSunAngleUnreachable
}
