// Package life is Conway's Game of Life on the coil engine. The board and
// its pause menu are separate layers composed in an engine.Container.
package life

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/coil/internal/config"
	"github.com/vovakirdan/coil/internal/engine"
	"github.com/vovakirdan/coil/internal/input"
	"github.com/vovakirdan/coil/internal/registry"
	"github.com/vovakirdan/coil/internal/render"
)

const (
	hudHeight = 1

	// Generations per simulated second at speed 1.
	baseRate = 10.0
	minSpeed = 1
	maxSpeed = 8
)

// simulation is the state shared by the board layer and the menu.
type simulation struct {
	board   *Board
	rng     *rand.Rand
	density float64
	paused  bool
	speed   int
	acc     float64
}

func (s *simulation) reseed() {
	s.board.Seed(s.rng, s.density)
}

// boardLayer advances and draws the grid and handles edits.
type boardLayer struct {
	sim        *simulation
	r          *render.Renderer
	keys       *input.KeyMapper
	lastButton tcell.ButtonMask
}

func (l *boardLayer) Update(dt float64) {
	if l.sim.paused {
		return
	}
	l.sim.acc += dt
	interval := 1 / (baseRate * float64(l.sim.speed))
	for l.sim.acc >= interval {
		l.sim.board.Step()
		l.sim.acc -= interval
	}
}

func (l *boardLayer) OnEvent(ev input.Event) bool {
	if l.sim.paused {
		return false
	}

	switch ev := ev.(type) {
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		// Toggle on press only, not on every drag report.
		if buttons&tcell.Button1 != 0 && l.lastButton&tcell.Button1 == 0 {
			x, y := ev.Position()
			l.sim.board.Toggle(x, y-hudHeight)
		}
		l.lastButton = buttons
	case *tcell.EventKey:
		switch l.keys.MapKey(ev) {
		case input.ActionRestart:
			l.sim.reseed()
		case input.ActionUp:
			l.sim.speed = min(l.sim.speed+1, maxSpeed)
		case input.ActionDown:
			l.sim.speed = max(l.sim.speed-1, minSpeed)
		}
	}
	return false
}

func (l *boardLayer) Render() {
	b := l.sim.board
	w, h := b.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if b.Alive(x, y) {
				_ = l.r.DrawCell(x, y+hudHeight, render.Cell{Rune: '█', Fg: render.ColorGreen})
			}
		}
	}

	hud := fmt.Sprintf(" Life  gen %d  alive %d  speed %dx ", b.Generation(), b.Population(), l.sim.speed)
	_ = l.r.DrawStr(0, 0, hud, render.ColorBrightWhite, render.ColorDefault)

	help := "space pause · r reseed · ↑↓ speed · click toggle · q quit"
	if rw, _ := l.r.Size(); len([]rune(hud))+len([]rune(help))+1 < rw {
		_ = l.r.DrawStr(rw-len([]rune(help))-1, 0, help, render.ColorGray, render.ColorDefault)
	}
}

// Game wires the layers to the renderer.
type Game struct {
	*engine.Container

	sim         *simulation
	r           *render.Renderer
	logger      *log.Logger
	keys        *input.KeyMapper
	snapshotDir string
}

// New creates a seeded Game of Life filling the renderer below the HUD row.
func New(r *render.Renderer, logger *log.Logger, cfg config.LifeConfig, seed int64, snapshotDir string) *Game {
	w, h := r.Size()
	sim := &simulation{
		board:   NewBoard(w, h-hudHeight, cfg.Wrap),
		rng:     rand.New(rand.NewSource(seed)),
		density: cfg.Density,
		speed:   minSpeed,
	}
	sim.reseed()

	keys := input.NewKeyMapper()
	g := &Game{
		sim:         sim,
		r:           r,
		logger:      logger,
		keys:        keys,
		snapshotDir: snapshotDir,
	}
	g.Container = engine.NewContainer(
		&boardLayer{sim: sim, r: r, keys: keys},
		&pauseMenu{sim: sim, r: r, keys: keys},
	)
	return g
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          "life",
		Title:       "Game of Life",
		Description: "Conway's Game of Life with a pause menu",
	}, func(env registry.Env) (registry.Game, error) {
		if _, h := env.Renderer.Size(); h <= hudHeight {
			return nil, fmt.Errorf("life: terminal too small (%d rows)", h)
		}
		return New(env.Renderer, env.Logger, env.Config.Life, env.Runtime.ResolveSeed(), env.SnapshotDir), nil
	})
}

func (g *Game) ID() string    { return "life" }
func (g *Game) Title() string { return "Game of Life" }

// Board returns the grid.
func (g *Game) Board() *Board { return g.sim.board }

// Paused reports whether the pause menu is open.
func (g *Game) Paused() bool { return g.sim.paused }

// OnEvent handles resize and screenshots, then passes the event down the
// layers, menu first.
func (g *Game) OnEvent(ev input.Event) bool {
	if _, ok := ev.(*tcell.EventResize); ok {
		g.r.Sync()
		w, h := g.r.Size()
		g.sim.board.Resize(w, h-hudHeight)
		return false
	}
	if g.keys.Map(ev) == input.ActionScreenshot {
		if path, err := g.r.SaveSnapshot(g.snapshotDir, g.ID()); err != nil {
			g.logger.Error("screenshot failed", "error", err)
		} else {
			g.logger.Info("screenshot saved", "path", path)
		}
		return false
	}
	return g.Container.OnEvent(ev)
}

// Render draws every layer and flushes the frame.
func (g *Game) Render() {
	g.r.Clear()
	g.Container.Render()
	if err := g.r.Flush(); err != nil {
		g.logger.Error("flush failed", "error", err)
	}
}
