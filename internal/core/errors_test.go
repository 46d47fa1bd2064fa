package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestEngineErrorIsMatchesKind(t *testing.T) {
	cause := errors.New("no tty")
	err := TerminalSetupError("enable raw mode", cause)

	if !errors.Is(err, ErrTerminalSetup) {
		t.Error("expected errors.Is(err, ErrTerminalSetup)")
	}
	if errors.Is(err, ErrInput) {
		t.Error("terminal setup error should not match ErrInput")
	}
	if !errors.Is(err, cause) {
		t.Error("expected the cause to be reachable through Unwrap")
	}
}

func TestEngineErrorWrapped(t *testing.T) {
	err := fmt.Errorf("play: %w", InputError("poll", errors.New("read failed")))

	if !errors.Is(err, ErrInput) {
		t.Error("expected wrapped error to match ErrInput")
	}
	if KindOf(err) != KindInput {
		t.Errorf("KindOf() = %v, expected %v", KindOf(err), KindInput)
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Error("KindOf() of a plain error should be 0")
	}
}

func TestEngineErrorMessage(t *testing.T) {
	tests := []struct {
		err      error
		contains []string
	}{
		{TimerError("new", errors.New("fps must be positive")), []string{"timer error", "new", "fps must be positive"}},
		{InputError("poll", errors.New("eof")), []string{"input error", "poll", "eof"}},
		{Errorf(KindTerminalSetup, "restore", "code %d", 5), []string{"terminal setup error", "restore", "code 5"}},
	}

	for _, tc := range tests {
		msg := tc.err.Error()
		for _, want := range tc.contains {
			if !strings.Contains(msg, want) {
				t.Errorf("Error() = %q, expected it to contain %q", msg, want)
			}
		}
	}
}
