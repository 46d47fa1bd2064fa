package input

import (
	"errors"
	"time"

	"github.com/vovakirdan/coil/internal/core"
)

var (
	errNoDriver      = errors.New("no terminal driver")
	errHandlerClosed = errors.New("input handler closed")
)

// Handler owns a Driver with raw mode enabled. It does not buffer events;
// every Poll goes to the driver.
//
// Close restores the terminal and is safe to call more than once, so
// callers can both defer it and call it explicitly.
type Handler struct {
	driver  Driver
	enabled bool
}

// NewHandler enables raw mode on d. On failure nothing is acquired and
// there is nothing to close.
func NewHandler(d Driver) (*Handler, error) {
	if d == nil {
		return nil, core.TerminalSetupError("enable raw mode", errNoDriver)
	}
	if err := d.EnableRawMode(); err != nil {
		return nil, core.TerminalSetupError("enable raw mode", err)
	}
	return &Handler{driver: d, enabled: true}, nil
}

// Enabled reports whether the handler still holds the terminal in raw mode.
func (h *Handler) Enabled() bool {
	return h.enabled
}

// Poll waits up to timeout for one event. A nil event with a nil error
// means the timeout elapsed.
func (h *Handler) Poll(timeout time.Duration) (Event, error) {
	if !h.enabled {
		return nil, core.InputError("poll", errHandlerClosed)
	}
	ev, err := h.driver.PollEvent(timeout)
	if err != nil {
		return nil, core.InputError("poll", err)
	}
	return ev, nil
}

// Close disables raw mode. Only the first call reaches the driver.
func (h *Handler) Close() error {
	if !h.enabled {
		return nil
	}
	h.enabled = false
	if err := h.driver.DisableRawMode(); err != nil {
		return core.TerminalSetupError("disable raw mode", err)
	}
	return nil
}
