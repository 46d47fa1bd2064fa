package echo

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/coil/internal/render"
)

func newTestGame(t *testing.T) (*Game, *render.Renderer) {
	t.Helper()
	r := render.New(render.NewMemorySurface(60, 12))
	return New(r, log.New(io.Discard), t.TempDir()), r
}

func TestEchoRecordsKeys(t *testing.T) {
	g, r := newTestGame(t)

	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), "'a'"},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), "'q'"},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "Alt+'x'"},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone).Name()},
	}

	for i, tt := range tests {
		if g.OnEvent(tt.ev) {
			t.Fatalf("event %d requested exit", i)
		}
		if g.Last() != tt.want {
			t.Errorf("event %d: Last() = %q, want %q", i, g.Last(), tt.want)
		}
	}
	if g.Keys() != len(tests) {
		t.Errorf("Keys() = %d, want %d", g.Keys(), len(tests))
	}

	g.Render()
	if !strings.Contains(r.String(), "Keys pressed: 4") {
		t.Errorf("render missing key count:\n%s", r.String())
	}
}

func TestEchoExitKeys(t *testing.T) {
	for _, key := range []tcell.Key{tcell.KeyEscape, tcell.KeyCtrlC} {
		g, _ := newTestGame(t)
		if !g.OnEvent(tcell.NewEventKey(key, 0, tcell.ModNone)) {
			t.Errorf("key %v did not request exit", key)
		}
	}
}

func TestEchoScreenshot(t *testing.T) {
	g, _ := newTestGame(t)
	g.Render()

	if g.OnEvent(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModNone)) {
		t.Fatal("Ctrl+S requested exit")
	}
	entries, err := os.ReadDir(g.snapshotDir)
	if err != nil {
		t.Fatalf("read snapshot dir: %v", err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "echo_") {
		t.Errorf("snapshot dir = %v, want one echo_ file", entries)
	}
	if !strings.HasPrefix(g.status, "saved ") {
		t.Errorf("status = %q", g.status)
	}

	// Status expires.
	g.Update(statusSeconds + 0.1)
	if g.status != "" {
		t.Errorf("status still %q after expiry", g.status)
	}
}
