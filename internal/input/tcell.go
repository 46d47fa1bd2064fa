package input

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TcellDriver drives the terminal through a tcell screen. The same screen
// doubles as the display sink (see render.NewTcellSurface).
type TcellDriver struct {
	screen   tcell.Screen
	checkTTY bool
	mouse    bool
	pump     *pump
}

// TcellOption configures a TcellDriver.
type TcellOption func(*TcellDriver)

// WithMouse enables mouse reporting while raw mode is on.
func WithMouse(enabled bool) TcellOption {
	return func(d *TcellDriver) { d.mouse = enabled }
}

// NewTcellDriver creates a driver for the process terminal.
// Raw mode is not entered until EnableRawMode.
func NewTcellDriver(opts ...TcellOption) (*TcellDriver, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	d := &TcellDriver{screen: screen, checkTTY: true}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// NewTcellDriverWithScreen wraps an existing screen, typically a
// tcell.SimulationScreen. No tty check is made.
func NewTcellDriverWithScreen(screen tcell.Screen, opts ...TcellOption) *TcellDriver {
	d := &TcellDriver{screen: screen}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Screen returns the underlying tcell screen.
func (d *TcellDriver) Screen() tcell.Screen {
	return d.screen
}

// EnableRawMode initializes the screen and starts reading events.
func (d *TcellDriver) EnableRawMode() error {
	if d.pump != nil {
		return nil
	}
	if d.checkTTY {
		if err := checkTerminal(stdinFd()); err != nil {
			return err
		}
	}
	if err := d.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	d.screen.HideCursor()
	if d.mouse {
		d.screen.EnableMouse()
	}

	screen := d.screen
	d.pump = startPump(func() (Event, error) {
		ev := screen.PollEvent()
		if ev == nil {
			// PollEvent returns nil once the screen is finalized.
			return nil, errPumpStopped
		}
		return ev, nil
	})
	return nil
}

// DisableRawMode finalizes the screen, which restores the terminal,
// and waits for the reader goroutine to exit.
func (d *TcellDriver) DisableRawMode() error {
	if d.pump == nil {
		return nil
	}
	d.pump.halt()
	if d.mouse {
		d.screen.DisableMouse()
	}
	d.screen.Fini()
	<-d.pump.done
	d.pump = nil
	return nil
}

// PollEvent implements Driver.
func (d *TcellDriver) PollEvent(timeout time.Duration) (Event, error) {
	if d.pump == nil {
		return nil, ErrDriverStopped
	}
	return d.pump.next(timeout)
}
