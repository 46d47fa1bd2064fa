package engine

import (
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/coil/internal/core"
	"github.com/vovakirdan/coil/internal/input"
)

const (
	// MaxEventsPerFrame caps how many events one iteration dispatches,
	// so a flood of input cannot starve update and render.
	MaxEventsPerFrame = 64

	// DefaultMaxCatchUpSteps bounds catch-up to this many steps per
	// iteration. Lag beyond it is dropped.
	DefaultMaxCatchUpSteps = 5
)

var (
	ErrNilState   = errors.New("engine: nil game state")
	ErrAlreadyRan = errors.New("engine: loop already ran")
)

// State is the lifecycle phase of an EventLoop.
type State int32

const (
	StateInitializing State = iota
	StateRunning
	StateRestoring
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateRestoring:
		return "restoring"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Option configures an EventLoop.
type Option func(*EventLoop)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(l *EventLoop) { l.clock = c }
}

// WithLogger sets the loop logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(l *EventLoop) { l.logger = logger }
}

// WithDriver sets the terminal driver. Without one, Run opens a tcell
// driver on the controlling terminal.
func WithDriver(d input.Driver) Option {
	return func(l *EventLoop) { l.driver = d }
}

// WithInputStrategy sets how long the first poll of an iteration waits.
func WithInputStrategy(s input.Strategy) Option {
	return func(l *EventLoop) { l.strategy = s }
}

// WithMaxCatchUp bounds catch-up to n steps per iteration; 0 removes the
// bound.
func WithMaxCatchUp(n int) Option {
	return func(l *EventLoop) { l.maxCatchUp = max(n, 0) }
}

// WithFramePacing toggles sleeping out the rest of each frame.
func WithFramePacing(enabled bool) Option {
	return func(l *EventLoop) { l.pacing = enabled }
}

// EventLoop drives a GameState at a fixed simulation rate.
//
// An EventLoop runs once. It is not safe for concurrent use, except for
// State, which may be read from any goroutine.
type EventLoop struct {
	step       time.Duration
	lag        time.Duration
	lastTick   time.Time
	clock      Clock
	logger     *log.Logger
	driver     input.Driver
	strategy   input.Strategy
	maxCatchUp int
	pacing     bool
	state      atomic.Int32
	stats      Stats
}

// New creates a loop stepping the simulation targetFPS times per second.
func New(targetFPS int, opts ...Option) (*EventLoop, error) {
	if targetFPS <= 0 {
		return nil, core.Errorf(core.KindTimer, "new loop", "target fps must be positive, got %d", targetFPS)
	}

	l := &EventLoop{
		step:       time.Second / time.Duration(targetFPS),
		clock:      SystemClock(),
		strategy:   input.DefaultStrategy(),
		maxCatchUp: DefaultMaxCatchUpSteps,
		pacing:     true,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}

	if l.step <= 0 {
		return nil, core.Errorf(core.KindTimer, "new loop", "target fps %d exceeds clock resolution", targetFPS)
	}
	if l.clock == nil {
		return nil, core.Errorf(core.KindTimer, "new loop", "nil clock")
	}
	if l.clock.Now().IsZero() {
		return nil, core.Errorf(core.KindTimer, "new loop", "clock returned zero time")
	}
	return l, nil
}

// Step returns the fixed simulation step.
func (l *EventLoop) Step() time.Duration {
	return l.step
}

// Lag returns the accumulated time not yet consumed by an update.
func (l *EventLoop) Lag() time.Duration {
	return l.lag
}

// State returns the current lifecycle phase.
func (l *EventLoop) State() State {
	return State(l.state.Load())
}

// Stats returns the counters of the current or finished run.
func (l *EventLoop) Stats() Stats {
	return l.stats
}

func (l *EventLoop) setState(s State) {
	prev := State(l.state.Swap(int32(s)))
	l.logger.Debug("loop state", "from", prev, "to", s)
}

// acquire opens the driver in raw mode.
func (l *EventLoop) acquire() (*input.Handler, error) {
	if l.driver == nil {
		d, err := input.NewTcellDriver()
		if err != nil {
			return nil, core.TerminalSetupError("open terminal", err)
		}
		l.driver = d
	}
	return input.NewHandler(l.driver)
}

// Run drives state until its OnEvent returns true or input fails.
//
// The terminal is restored on every exit path, panics included. The first
// error wins: a restore failure after an input error is only logged, while
// a restore failure after a clean exit is returned.
func (l *EventLoop) Run(state GameState) (err error) {
	if state == nil {
		return ErrNilState
	}
	if l.State() != StateInitializing {
		return ErrAlreadyRan
	}

	handler, err := l.acquire()
	if err != nil {
		l.setState(StateTerminated)
		return err
	}

	defer func() {
		l.setState(StateRestoring)
		if closeErr := handler.Close(); closeErr != nil {
			if err == nil {
				err = closeErr
			} else {
				l.logger.Warn("terminal restore failed after earlier error", "error", closeErr)
			}
		}
		l.stats.Elapsed = l.clock.Now().Sub(l.stats.Started)
		l.setState(StateTerminated)
		l.logger.Debug("loop stopped", "stats", l.stats)
	}()

	l.lag = 0
	l.lastTick = l.clock.Now()
	l.stats = Stats{Started: l.lastTick}
	l.setState(StateRunning)
	l.logger.Debug("loop started", "step", l.step, "strategy", l.strategy, "max_catch_up", l.maxCatchUp)

	for {
		exit, err := l.iterate(handler, state)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
	}
}

// iterate runs one pass of timing, input, catch-up, render and pacing.
func (l *EventLoop) iterate(handler *input.Handler, state GameState) (bool, error) {
	start := l.clock.Now()
	frameTime := start.Sub(l.lastTick)
	if frameTime < 0 {
		frameTime = 0
	}
	l.lastTick = start
	l.lag += frameTime
	l.stats.Frames++

	exit, err := l.dispatch(handler, state)
	if err != nil || exit {
		return exit, err
	}

	l.clampLag()
	for l.lag >= l.step {
		state.Update(l.step.Seconds())
		l.lag -= l.step
		l.stats.Updates++
		l.stats.SimulatedTime += l.step
	}

	state.Render()
	l.stats.Renders++

	now := l.clock.Now()
	l.stats.Elapsed = now.Sub(l.stats.Started)
	if l.pacing {
		if remaining := start.Add(l.step).Sub(now); remaining > 0 {
			l.clock.Sleep(remaining)
		}
	}
	return false, nil
}

// dispatch polls pending events and hands them to state. Only the first
// poll waits; the rest drain what is already queued.
func (l *EventLoop) dispatch(handler *input.Handler, state GameState) (bool, error) {
	timeout := l.strategy.Timeout(l.step)
	for range MaxEventsPerFrame {
		ev, err := handler.Poll(timeout)
		if err != nil {
			return false, err
		}
		if ev == nil {
			return false, nil
		}
		timeout = 0

		l.stats.Events++
		if state.OnEvent(ev) {
			l.logger.Debug("exit requested", "event", ev)
			return true, nil
		}
	}
	return false, nil
}

// clampLag caps lag at maxCatchUp steps so a long stall cannot trigger an
// ever-growing run of updates.
func (l *EventLoop) clampLag() {
	if l.maxCatchUp == 0 {
		return
	}
	limit := time.Duration(l.maxCatchUp) * l.step
	if l.lag <= limit {
		return
	}
	dropped := l.lag - limit
	l.lag = limit
	l.stats.ClampedFrames++
	l.stats.DroppedLag += dropped
	l.logger.Warn("simulation falling behind, dropping lag", "dropped", dropped, "limit", limit)
}
