package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyMapperMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		ev       *tcell.EventKey
		expected Action
	}{
		{"ctrl+c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), ActionQuit},
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), ActionQuit},
		{"escape goes back", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionBack},
		{"enter confirms", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionConfirm},
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionUp},
		{"vim j", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), ActionDown},
		{"space pauses", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), ActionPause},
		{"r restarts", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), ActionRestart},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKey(tc.ev); got != tc.expected {
				t.Errorf("MapKey() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestKeyMapperNonKeyEvents(t *testing.T) {
	km := NewKeyMapper()
	if got := km.Map(tcell.NewEventResize(80, 24)); got != ActionNone {
		t.Errorf("Map(resize) = %v, expected None", got)
	}
	if km.IsExit(tcell.NewEventResize(80, 24)) {
		t.Error("a resize is not an exit request")
	}
	if !km.IsExit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape should be an exit request")
	}
}
