package life

import (
	"io"
	"math/rand"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/coil/internal/config"
	"github.com/vovakirdan/coil/internal/render"
)

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func special(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func newTestGame(t *testing.T, density float64) (*Game, *render.Renderer) {
	t.Helper()
	r := render.New(render.NewMemorySurface(40, 12))
	cfg := config.LifeConfig{Density: density, Wrap: true}
	return New(r, log.New(io.Discard), cfg, 42, t.TempDir()), r
}

func TestBoardPatterns(t *testing.T) {
	t.Run("blinker oscillates", func(t *testing.T) {
		b := NewBoard(5, 5, false)
		b.Set(1, 2, true)
		b.Set(2, 2, true)
		b.Set(3, 2, true)

		b.Step()
		for y := 1; y <= 3; y++ {
			if !b.Alive(2, y) {
				t.Errorf("(2,%d) should be alive after one step", y)
			}
		}
		if b.Alive(1, 2) || b.Alive(3, 2) {
			t.Error("horizontal arms should have died")
		}

		b.Step()
		if !b.Alive(1, 2) || !b.Alive(3, 2) || b.Alive(2, 1) {
			t.Error("blinker did not return to horizontal")
		}
		if b.Generation() != 2 {
			t.Errorf("Generation() = %d, want 2", b.Generation())
		}
	})

	t.Run("block is still", func(t *testing.T) {
		b := NewBoard(4, 4, false)
		for _, p := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
			b.Set(p[0], p[1], true)
		}
		for range 5 {
			b.Step()
		}
		if b.Population() != 4 {
			t.Errorf("Population() = %d, want 4", b.Population())
		}
	})

	t.Run("wrap connects edges", func(t *testing.T) {
		// A vertical blinker split across the top and bottom edge.
		wrapped := NewBoard(5, 5, true)
		flat := NewBoard(5, 5, false)
		for _, b := range []*Board{wrapped, flat} {
			b.Set(2, 4, true)
			b.Set(2, 0, true)
			b.Set(2, 1, true)
			b.Step()
		}
		if wrapped.Population() != 3 {
			t.Errorf("wrapped population = %d, want 3", wrapped.Population())
		}
		if flat.Population() != 0 {
			t.Errorf("flat population = %d, want 0", flat.Population())
		}
	})
}

func TestBoardResizeKeepsCells(t *testing.T) {
	b := NewBoard(4, 4, false)
	b.Set(1, 1, true)
	b.Set(3, 3, true)

	b.Resize(2, 6)
	if !b.Alive(1, 1) {
		t.Error("cell inside new bounds lost")
	}
	if b.Alive(3, 3) {
		t.Error("cell outside new bounds kept")
	}
	if w, h := b.Size(); w != 2 || h != 6 {
		t.Errorf("Size() = %d,%d", w, h)
	}
}

func TestBoardSeedDeterministic(t *testing.T) {
	a := NewBoard(20, 10, true)
	b := NewBoard(20, 10, true)
	a.Seed(rand.New(rand.NewSource(7)), 0.3)
	b.Seed(rand.New(rand.NewSource(7)), 0.3)

	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			if a.Alive(x, y) != b.Alive(x, y) {
				t.Fatalf("boards differ at (%d,%d)", x, y)
			}
		}
	}
	if a.Population() == 0 {
		t.Error("seeded board is empty")
	}
}

func TestGameGenerationRate(t *testing.T) {
	g, _ := newTestGame(t, 0.3)

	// One simulated second at speed 1.
	for range 60 {
		g.Update(1.0 / 60)
	}
	if gen := g.Board().Generation(); gen < 9 || gen > 10 {
		t.Errorf("Generation() = %d after 1s, want ~10", gen)
	}
}

func TestGamePauseMenu(t *testing.T) {
	g, r := newTestGame(t, 0.3)

	g.OnEvent(key(' '))
	if !g.Paused() {
		t.Fatal("space did not pause")
	}

	gen := g.Board().Generation()
	g.Update(1)
	if g.Board().Generation() != gen {
		t.Error("board advanced while paused")
	}

	g.Render()
	if !strings.Contains(r.String(), "PAUSED") {
		t.Errorf("pause menu not drawn:\n%s", r.String())
	}

	// Same key closes the menu and must not reach the board as a new pause.
	g.OnEvent(key(' '))
	if g.Paused() {
		t.Error("space did not resume")
	}
}

func TestGameMenuActions(t *testing.T) {
	t.Run("clear", func(t *testing.T) {
		g, _ := newTestGame(t, 0.5)
		g.OnEvent(special(tcell.KeyEscape))
		g.OnEvent(special(tcell.KeyDown))
		g.OnEvent(special(tcell.KeyDown))
		if g.OnEvent(special(tcell.KeyEnter)) {
			t.Fatal("Clear requested exit")
		}
		if g.Board().Population() != 0 {
			t.Errorf("Population() = %d after clear", g.Board().Population())
		}
		if g.Paused() {
			t.Error("menu still open after choosing")
		}
	})

	t.Run("quit", func(t *testing.T) {
		g, _ := newTestGame(t, 0.5)
		g.OnEvent(key('p'))
		g.OnEvent(special(tcell.KeyUp)) // wraps to Quit
		if !g.OnEvent(special(tcell.KeyEnter)) {
			t.Error("Quit item did not request exit")
		}
	})

	t.Run("q always quits", func(t *testing.T) {
		g, _ := newTestGame(t, 0.5)
		if !g.OnEvent(key('q')) {
			t.Error("q did not request exit")
		}
	})
}

func TestGameMouseToggle(t *testing.T) {
	g, _ := newTestGame(t, 0)

	press := tcell.NewEventMouse(5, 3, tcell.Button1, tcell.ModNone)
	release := tcell.NewEventMouse(5, 3, tcell.ButtonNone, tcell.ModNone)

	g.OnEvent(press)
	if !g.Board().Alive(5, 3-hudHeight) {
		t.Fatal("click did not toggle the cell under the pointer")
	}

	// A held button reports again; it must not toggle back.
	g.OnEvent(press)
	if !g.Board().Alive(5, 3-hudHeight) {
		t.Error("drag report toggled the cell")
	}

	g.OnEvent(release)
	g.OnEvent(press)
	if g.Board().Alive(5, 3-hudHeight) {
		t.Error("second click did not toggle the cell off")
	}
}

func TestGameReseedAndScreenshot(t *testing.T) {
	g, _ := newTestGame(t, 0)
	if g.Board().Population() != 0 {
		t.Fatal("zero density board not empty")
	}

	g.sim.density = 0.5
	g.OnEvent(key('r'))
	if g.Board().Population() == 0 {
		t.Error("r did not reseed")
	}

	g.Render()
	if g.OnEvent(special(tcell.KeyCtrlS)) {
		t.Fatal("Ctrl+S requested exit")
	}
	entries, err := os.ReadDir(g.snapshotDir)
	if err != nil || len(entries) != 1 {
		t.Errorf("snapshot dir entries = %v, err %v", entries, err)
	}
}

func TestGameResize(t *testing.T) {
	surf := render.NewMemorySurface(40, 12)
	r := render.New(surf)
	g := New(r, log.New(io.Discard), config.LifeConfig{Density: 0.2}, 1, t.TempDir())

	surf.Resize(30, 20)
	g.OnEvent(tcell.NewEventResize(30, 20))

	if w, h := g.Board().Size(); w != 30 || h != 20-hudHeight {
		t.Errorf("board size = %d,%d, want 30,%d", w, h, 20-hudHeight)
	}
}
