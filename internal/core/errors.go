package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine failures.
type ErrorKind int

const (
	// KindInput is a driver failure while polling for input.
	KindInput ErrorKind = iota + 1
	// KindTimer is a clock or frame-interval setup failure.
	KindTimer
	// KindTerminalSetup is a failure to enter or leave raw mode.
	KindTerminalSetup
)

// String returns a human-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindTimer:
		return "timer"
	case KindTerminalSetup:
		return "terminal setup"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching by kind.
var (
	ErrInput         = &EngineError{Kind: KindInput}
	ErrTimer         = &EngineError{Kind: KindTimer}
	ErrTerminalSetup = &EngineError{Kind: KindTerminalSetup}
)

// EngineError is the single error type surfaced by the engine core.
// Op names the operation that failed, Err carries the underlying cause.
type EngineError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	msg := e.Kind.String() + " error"
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an EngineError of the same kind.
// This lets callers write errors.Is(err, core.ErrTerminalSetup).
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// InputError wraps a driver failure that happened during op.
func InputError(op string, err error) error {
	return &EngineError{Kind: KindInput, Op: op, Err: err}
}

// TimerError wraps a timing setup failure.
func TimerError(op string, err error) error {
	return &EngineError{Kind: KindTimer, Op: op, Err: err}
}

// TerminalSetupError wraps a raw-mode enable/disable failure.
func TerminalSetupError(op string, err error) error {
	return &EngineError{Kind: KindTerminalSetup, Op: op, Err: err}
}

// KindOf returns the kind of the first EngineError in err's chain,
// or 0 if there is none.
func KindOf(err error) ErrorKind {
	var e *EngineError
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Errorf builds an EngineError whose cause is a formatted message.
func Errorf(kind ErrorKind, op, format string, args ...any) error {
	return &EngineError{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}
