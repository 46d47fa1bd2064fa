package input

import (
	"fmt"
	"time"
)

// StrategyKind selects how long the loop waits for input each frame.
type StrategyKind int

const (
	// NonBlocking grabs whatever is queued with a very short wait,
	// leaving the rest of the frame to the pacing sleep.
	NonBlocking StrategyKind = iota
	// FrameBudgeted waits up to one frame step for the first event.
	FrameBudgeted
	// FixedTimeout waits a caller-chosen duration.
	FixedTimeout
)

// NonBlockingWait is the wait used by the NonBlocking strategy.
const NonBlockingWait = time.Millisecond

// Strategy describes the input wait policy of the event loop.
type Strategy struct {
	Kind StrategyKind
	Wait time.Duration // Only used by FixedTimeout
}

// DefaultStrategy returns the NonBlocking strategy.
func DefaultStrategy() Strategy {
	return Strategy{Kind: NonBlocking}
}

// TimeoutStrategy returns a FixedTimeout strategy waiting d.
func TimeoutStrategy(d time.Duration) Strategy {
	return Strategy{Kind: FixedTimeout, Wait: d}
}

// Timeout returns the first-poll wait for a frame of length step.
func (s Strategy) Timeout(step time.Duration) time.Duration {
	switch s.Kind {
	case FrameBudgeted:
		return step
	case FixedTimeout:
		if s.Wait < 0 {
			return 0
		}
		return s.Wait
	default:
		return NonBlockingWait
	}
}

// String returns the config name of the strategy.
func (s Strategy) String() string {
	switch s.Kind {
	case NonBlocking:
		return "non_blocking"
	case FrameBudgeted:
		return "frame_budgeted"
	case FixedTimeout:
		return fmt.Sprintf("timeout(%s)", s.Wait)
	default:
		return "unknown"
	}
}

// ParseStrategy converts a config name into a Strategy.
// wait is only used for "timeout" and must be positive there.
func ParseStrategy(name string, wait time.Duration) (Strategy, error) {
	switch name {
	case "", "non_blocking", "nonblocking":
		return Strategy{Kind: NonBlocking}, nil
	case "frame_budgeted", "frame":
		return Strategy{Kind: FrameBudgeted}, nil
	case "timeout":
		if wait <= 0 {
			return Strategy{}, fmt.Errorf("input: timeout strategy needs a positive wait, got %s", wait)
		}
		return TimeoutStrategy(wait), nil
	default:
		return Strategy{}, fmt.Errorf("input: unknown strategy %q", name)
	}
}
