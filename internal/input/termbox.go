package input

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	termbox "github.com/nsf/termbox-go"
)

// TermboxDriver drives the terminal through termbox-go. termbox events are
// translated into the tcell event variants so games see one event model
// whatever the driver.
type TermboxDriver struct {
	checkTTY bool
	mouse    bool
	pump     *pump
}

// NewTermboxDriver creates a termbox-backed driver for the process terminal.
func NewTermboxDriver(mouse bool) *TermboxDriver {
	return &TermboxDriver{checkTTY: true, mouse: mouse}
}

// EnableRawMode initializes termbox and starts reading events.
func (d *TermboxDriver) EnableRawMode() error {
	if d.pump != nil {
		return nil
	}
	if d.checkTTY {
		if err := checkTerminal(stdinFd()); err != nil {
			return err
		}
	}
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("termbox init: %w", err)
	}
	mode := termbox.InputEsc
	if d.mouse {
		mode |= termbox.InputMouse
	}
	termbox.SetInputMode(mode)
	termbox.HideCursor()

	d.pump = startPump(readTermbox)
	return nil
}

// DisableRawMode interrupts the reader, waits for it and closes termbox.
func (d *TermboxDriver) DisableRawMode() error {
	if d.pump == nil {
		return nil
	}
	d.pump.halt()
	stopReader(d.pump.done, termbox.Interrupt)
	termbox.Close()
	d.pump = nil
	return nil
}

// stopReader wakes a reader blocked in termbox.PollEvent and waits for it to
// exit. The reader may exit on its own at any moment, and interrupt blocks
// while nobody polls, so interrupt runs on its own goroutine and is left
// behind once done closes.
func stopReader(done <-chan struct{}, interrupt func()) {
	select {
	case <-done:
		return
	default:
	}
	go interrupt()
	<-done
}

// PollEvent implements Driver.
func (d *TermboxDriver) PollEvent(timeout time.Duration) (Event, error) {
	if d.pump == nil {
		return nil, ErrDriverStopped
	}
	return d.pump.next(timeout)
}

func readTermbox() (Event, error) {
	ev := termbox.PollEvent()
	switch ev.Type {
	case termbox.EventInterrupt:
		return nil, errPumpStopped
	case termbox.EventError:
		return nil, ev.Err
	default:
		return translateTermbox(ev), nil
	}
}

var termboxKeys = map[termbox.Key]tcell.Key{
	termbox.KeyArrowUp:    tcell.KeyUp,
	termbox.KeyArrowDown:  tcell.KeyDown,
	termbox.KeyArrowLeft:  tcell.KeyLeft,
	termbox.KeyArrowRight: tcell.KeyRight,
	termbox.KeyInsert:     tcell.KeyInsert,
	termbox.KeyDelete:     tcell.KeyDelete,
	termbox.KeyHome:       tcell.KeyHome,
	termbox.KeyEnd:        tcell.KeyEnd,
	termbox.KeyPgup:       tcell.KeyPgUp,
	termbox.KeyPgdn:       tcell.KeyPgDn,
	termbox.KeyF1:         tcell.KeyF1,
	termbox.KeyF2:         tcell.KeyF2,
	termbox.KeyF3:         tcell.KeyF3,
	termbox.KeyF4:         tcell.KeyF4,
	termbox.KeyF5:         tcell.KeyF5,
	termbox.KeyF6:         tcell.KeyF6,
	termbox.KeyF7:         tcell.KeyF7,
	termbox.KeyF8:         tcell.KeyF8,
	termbox.KeyF9:         tcell.KeyF9,
	termbox.KeyF10:        tcell.KeyF10,
	termbox.KeyF11:        tcell.KeyF11,
	termbox.KeyF12:        tcell.KeyF12,
}

var termboxButtons = map[termbox.Key]tcell.ButtonMask{
	termbox.MouseLeft:      tcell.Button1,
	termbox.MouseRight:     tcell.Button2,
	termbox.MouseMiddle:    tcell.Button3,
	termbox.MouseRelease:   tcell.ButtonNone,
	termbox.MouseWheelUp:   tcell.WheelUp,
	termbox.MouseWheelDown: tcell.WheelDown,
}

// translateTermbox converts a termbox event; unsupported events map to nil.
func translateTermbox(ev termbox.Event) Event {
	mod := tcell.ModNone
	if ev.Mod&termbox.ModAlt != 0 {
		mod |= tcell.ModAlt
	}

	switch ev.Type {
	case termbox.EventKey:
		if ev.Ch != 0 {
			return tcell.NewEventKey(tcell.KeyRune, ev.Ch, mod)
		}
		if ev.Key == termbox.KeySpace {
			return tcell.NewEventKey(tcell.KeyRune, ' ', mod)
		}
		if k, ok := termboxKeys[ev.Key]; ok {
			return tcell.NewEventKey(k, 0, mod)
		}
		if ev.Key < 0x20 || ev.Key == 0x7f {
			// termbox reports control keys as their ASCII code. tcell numbers
			// them differently and normalizes a control rune itself.
			return tcell.NewEventKey(tcell.KeyRune, rune(ev.Key), mod)
		}
		return nil

	case termbox.EventMouse:
		btn, ok := termboxButtons[ev.Key]
		if !ok {
			return nil
		}
		return tcell.NewEventMouse(ev.MouseX, ev.MouseY, btn, mod)

	case termbox.EventResize:
		return tcell.NewEventResize(ev.Width, ev.Height)
	}
	return nil
}
