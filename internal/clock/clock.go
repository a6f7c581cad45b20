// Package clock provides the time sources the simulation runs against:
// the system clock for interactive use, a mock for tests and headless
// runs, and a pausable wrapper that freezes elapsed time.
package clock

import "time"

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Time
}

// System reads the real time with monotonic clock readings.
type System struct{}

func NewSystem() *System {
	return &System{}
}

func (s *System) Now() time.Time {
	return time.Now()
}
