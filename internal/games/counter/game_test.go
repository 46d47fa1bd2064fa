package counter

import (
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/coil/internal/engine"
	"github.com/vovakirdan/coil/internal/render"
)

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestCounterCounts(t *testing.T) {
	r := render.New(render.NewMemorySurface(60, 16))
	g := New(r, log.New(io.Discard), 60, nil)

	for range 120 {
		g.Update(1.0 / 60)
	}
	if g.Updates() != 120 {
		t.Errorf("Updates() = %d, want 120", g.Updates())
	}
	if math.Abs(g.Simulated()-2.0) > 1e-9 {
		t.Errorf("Simulated() = %v, want 2", g.Simulated())
	}
}

func TestCounterPauseAndReset(t *testing.T) {
	r := render.New(render.NewMemorySurface(60, 16))
	g := New(r, log.New(io.Discard), 60, nil)

	g.Update(0.1)
	g.OnEvent(key(' '))
	if !g.Paused() {
		t.Fatal("space did not pause")
	}
	g.Update(0.1)
	if g.Updates() != 1 {
		t.Errorf("Updates() = %d while paused, want 1", g.Updates())
	}

	g.OnEvent(key('r'))
	if g.Updates() != 0 || g.Simulated() != 0 {
		t.Errorf("reset left updates=%d simulated=%v", g.Updates(), g.Simulated())
	}
}

func TestCounterQuit(t *testing.T) {
	r := render.New(render.NewMemorySurface(60, 16))
	g := New(r, log.New(io.Discard), 60, nil)

	if !g.OnEvent(key('q')) {
		t.Error("q did not request exit")
	}
	if !g.OnEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Esc did not request exit")
	}
}

func TestCounterRendersStats(t *testing.T) {
	r := render.New(render.NewMemorySurface(60, 16))
	stats := func() engine.Stats {
		return engine.Stats{Updates: 120, Renders: 60, Events: 7, Elapsed: 2 * time.Second}
	}
	g := New(r, log.New(io.Discard), 60, stats)
	g.Render()

	out := r.String()
	for _, want := range []string{"Target:    60 fps", "60.0 ups / 30.0 fps", "Events:    7"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}
