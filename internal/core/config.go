package core

import "time"

// RuntimeConfig is handed to games when they are created.
// Games use it to size their world and seed their RNG.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in cells
	ScreenH   int   // Screen height in cells
	TargetFPS int   // Fixed simulation steps per second
	Seed      int64 // RNG seed, 0 means derive from the clock
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 60 steps per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		TargetFPS: 60,
	}
}

// Step returns the fixed simulation step implied by TargetFPS.
// Returns 0 when TargetFPS is not positive.
func (c RuntimeConfig) Step() time.Duration {
	if c.TargetFPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.TargetFPS)
}

// ResolveSeed returns Seed, or a clock-derived seed when Seed is 0.
func (c RuntimeConfig) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
