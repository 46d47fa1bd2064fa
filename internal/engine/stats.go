package engine

import (
	"fmt"
	"time"
)

// Stats are the loop counters of a run.
type Stats struct {
	Frames        uint64        // Iterations started
	Updates       uint64        // Update calls
	Renders       uint64        // Render calls
	Events        uint64        // Events dispatched to OnEvent
	ClampedFrames uint64        // Iterations whose lag hit the catch-up limit
	DroppedLag    time.Duration // Lag discarded by the clamp
	SimulatedTime time.Duration // Sum of all update steps
	Started       time.Time
	Elapsed       time.Duration
}

// UpdatesPerSecond is the observed simulation rate.
func (s Stats) UpdatesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Updates) / s.Elapsed.Seconds()
}

// RendersPerSecond is the observed frame rate.
func (s Stats) RendersPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Renders) / s.Elapsed.Seconds()
}

func (s Stats) String() string {
	return fmt.Sprintf("frames=%d updates=%d renders=%d events=%d clamped=%d dropped=%s elapsed=%s",
		s.Frames, s.Updates, s.Renders, s.Events, s.ClampedFrames, s.DroppedLag, s.Elapsed.Round(time.Millisecond))
}
