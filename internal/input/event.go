// Package input wraps terminal drivers behind a small polling contract.
//
// A Driver owns the terminal: it switches raw mode on and off and decodes
// bytes into events. A Handler holds a Driver for the lifetime of one
// engine run and guarantees raw mode is switched off exactly once.
package input

import "github.com/gdamore/tcell/v2"

// Event is a decoded terminal event: *tcell.EventKey, *tcell.EventResize,
// *tcell.EventMouse and so on. The engine forwards events unmodified.
type Event = tcell.Event
