package engine

import "time"

// Clock is the time source of the loop. Tests substitute a fake.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

// SystemClock returns the wall clock. time.Now carries a monotonic reading,
// so frame deltas are immune to wall clock jumps.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }
