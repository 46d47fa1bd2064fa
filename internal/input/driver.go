package input

import (
	"errors"
	"os"
	"time"

	"golang.org/x/term"
)

// Driver is the terminal capability the engine depends on.
type Driver interface {
	// EnableRawMode takes over the terminal.
	EnableRawMode() error

	// DisableRawMode gives the terminal back in its original mode.
	DisableRawMode() error

	// PollEvent waits up to timeout for the next event.
	// It returns (nil, nil) when the timeout elapses.
	PollEvent(timeout time.Duration) (Event, error)
}

// pumpBuffer is the number of decoded events a driver holds before the
// reader goroutine blocks.
const pumpBuffer = 128

var (
	// ErrNotTerminal is returned when stdin is not an interactive terminal.
	ErrNotTerminal = errors.New("stdin is not a terminal")

	// ErrDriverStopped is returned by PollEvent once the driver's reader has exited.
	ErrDriverStopped = errors.New("input driver stopped")

	errPumpStopped = errors.New("pump stopped")
)

// checkTerminal fails with ErrNotTerminal when fd is not a tty.
func checkTerminal(fd int) error {
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	return nil
}

func stdinFd() int {
	return int(os.Stdin.Fd())
}

// pump moves events from a blocking reader onto a channel so they can be
// polled with a timeout. The reader keeps running until it reports
// errPumpStopped; after stop is closed events are dropped instead of sent.
type pump struct {
	events chan Event
	stop   chan struct{}
	done   chan struct{}
	err    error
}

func startPump(read func() (Event, error)) *pump {
	p := &pump{
		events: make(chan Event, pumpBuffer),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go p.run(read)
	return p
}

func (p *pump) run(read func() (Event, error)) {
	defer close(p.done)
	defer close(p.events)

	for {
		ev, err := read()
		if err != nil {
			if !errors.Is(err, errPumpStopped) {
				p.err = err
			}
			return
		}
		if ev == nil {
			continue
		}
		select {
		case p.events <- ev:
		case <-p.stop:
		}
	}
}

// next returns the next event, waiting at most timeout.
func (p *pump) next(timeout time.Duration) (Event, error) {
	if timeout <= 0 {
		select {
		case ev, ok := <-p.events:
			return p.received(ev, ok)
		default:
			return nil, nil
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev, ok := <-p.events:
		return p.received(ev, ok)
	case <-timer.C:
		return nil, nil
	}
}

func (p *pump) received(ev Event, ok bool) (Event, error) {
	if ok {
		return ev, nil
	}
	if p.err != nil {
		return nil, p.err
	}
	return nil, ErrDriverStopped
}

// halt tells the reader to drop further events. The caller must then make
// the blocking read return errPumpStopped and wait on done.
func (p *pump) halt() {
	select {
	case <-p.stop:
	default:
		close(p.stop)
	}
}
