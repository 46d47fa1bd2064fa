// Package echo is the smallest coil game: it shows the last input event.
package echo

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/coil/internal/core"
	"github.com/vovakirdan/coil/internal/input"
	"github.com/vovakirdan/coil/internal/registry"
	"github.com/vovakirdan/coil/internal/render"
)

// statusSeconds is how long a status message stays on screen.
const statusSeconds = 2.0

// Game echoes every key, mouse and resize event it receives.
// Esc and Ctrl+C exit; Ctrl+S saves a screenshot.
type Game struct {
	r           *render.Renderer
	logger      *log.Logger
	snapshotDir string

	last    string
	keys    int
	mouse   string
	elapsed float64

	status    string
	statusTTL float64
}

// New creates an echo game drawing into r.
func New(r *render.Renderer, logger *log.Logger, snapshotDir string) *Game {
	return &Game{
		r:           r,
		logger:      logger,
		snapshotDir: snapshotDir,
		last:        "(none)",
		mouse:       "(none)",
	}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          "echo",
		Title:       "Echo",
		Description: "Shows the last key pressed",
	}, func(env registry.Env) (registry.Game, error) {
		return New(env.Renderer, env.Logger, env.SnapshotDir), nil
	})
}

func (g *Game) ID() string    { return "echo" }
func (g *Game) Title() string { return "Echo" }

// Last returns a description of the last key event.
func (g *Game) Last() string { return g.last }

// Keys returns how many key events were seen.
func (g *Game) Keys() int { return g.keys }

func (g *Game) Update(dt float64) {
	g.elapsed += dt
	if g.statusTTL > 0 {
		g.statusTTL -= dt
		if g.statusTTL <= 0 {
			g.status = ""
		}
	}
}

func (g *Game) OnEvent(ev input.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyCtrlS:
			g.screenshot()
			return false
		}
		g.keys++
		g.last = describeKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		g.mouse = fmt.Sprintf("(%d, %d) buttons=%d", x, y, ev.Buttons())
	case *tcell.EventResize:
		g.r.Sync()
	}
	return false
}

func (g *Game) screenshot() {
	path, err := g.r.SaveSnapshot(g.snapshotDir, g.ID())
	if err != nil {
		g.logger.Error("screenshot failed", "error", err)
		g.setStatus("screenshot failed")
		return
	}
	g.logger.Info("screenshot saved", "path", path)
	g.setStatus("saved " + path)
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTTL = statusSeconds
}

func describeKey(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return fmt.Sprintf("Alt+%q", ev.Rune())
		}
		return fmt.Sprintf("%q", ev.Rune())
	}
	return ev.Name()
}

func (g *Game) Render() {
	g.r.Clear()
	w, h := g.r.Size()

	frame := core.NewRect(0, 0, w, h)
	g.r.DrawBox(frame, render.ColorCyan, render.ColorDefault)
	g.r.DrawTextCentered(0, " Echo ", render.ColorBrightCyan, render.ColorDefault)

	_, cy := frame.Center()
	g.r.DrawTextCentered(cy-2, "Last key: "+g.last, render.ColorBrightWhite, render.ColorDefault)
	g.r.DrawTextCentered(cy-1, fmt.Sprintf("Keys pressed: %d", g.keys), render.ColorWhite, render.ColorDefault)
	g.r.DrawTextCentered(cy, "Mouse: "+g.mouse, render.ColorGray, render.ColorDefault)
	g.r.DrawTextCentered(cy+1, fmt.Sprintf("Uptime: %.1fs", g.elapsed), render.ColorGray, render.ColorDefault)

	if g.status != "" {
		g.r.DrawTextCentered(h-3, g.status, render.ColorGreen, render.ColorDefault)
	}
	g.r.DrawTextCentered(h-2, "Esc / Ctrl+C quit · Ctrl+S screenshot", render.ColorGray, render.ColorDefault)

	if err := g.r.Flush(); err != nil {
		g.logger.Error("flush failed", "error", err)
	}
}
