// Package clock supplies wall-clock time in the restaurant's fixed
// locale offset. Status derivation and hourly stats must agree on the
// same offset, so everything reads time through a Clock.
package clock

import "time"

// Clock yields the current time, already shifted into the locale zone.
type Clock interface {
	Now() time.Time
}

// System is the production clock for a fixed UTC offset in hours.
type System struct {
	loc *time.Location
}

// NewSystem builds a clock for the given UTC offset (e.g. 7 for UTC+07).
func NewSystem(offsetHours int) System {
	return System{loc: time.FixedZone("", offsetHours*3600)}
}

func (s System) Now() time.Time {
	return time.Now().In(s.loc)
}

// Fixed always returns the same instant; used by tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}
