package domain

import "time"

// Clock is the source of current time for the services. Injecting it keeps
// interval durations and day boundaries testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystemClock returns a Clock backed by the wall clock.
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
