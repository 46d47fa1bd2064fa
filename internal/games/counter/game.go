// Package counter shows the fixed-timestep loop at work: it counts its own
// updates next to the live loop statistics.
package counter

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/coil/internal/core"
	"github.com/vovakirdan/coil/internal/engine"
	"github.com/vovakirdan/coil/internal/input"
	"github.com/vovakirdan/coil/internal/registry"
	"github.com/vovakirdan/coil/internal/render"
)

// Game counts updates and simulated seconds. Space pauses counting,
// r resets, q or Esc quits.
type Game struct {
	r      *render.Renderer
	logger *log.Logger
	stats  func() engine.Stats
	keys   *input.KeyMapper
	fps    int

	updates   uint64
	simulated float64
	paused    bool
}

// New creates a counter game. stats may be nil.
func New(r *render.Renderer, logger *log.Logger, fps int, stats func() engine.Stats) *Game {
	if stats == nil {
		stats = func() engine.Stats { return engine.Stats{} }
	}
	return &Game{r: r, logger: logger, stats: stats, keys: input.NewKeyMapper(), fps: fps}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          "counter",
		Title:       "Counter",
		Description: "Update counter with live loop statistics",
	}, func(env registry.Env) (registry.Game, error) {
		return New(env.Renderer, env.Logger, env.Runtime.TargetFPS, env.Stats), nil
	})
}

func (g *Game) ID() string    { return "counter" }
func (g *Game) Title() string { return "Counter" }

// Updates returns how many updates were counted.
func (g *Game) Updates() uint64 { return g.updates }

// Simulated returns the counted simulation time in seconds.
func (g *Game) Simulated() float64 { return g.simulated }

// Paused reports whether counting is paused.
func (g *Game) Paused() bool { return g.paused }

func (g *Game) Update(dt float64) {
	if g.paused {
		return
	}
	g.updates++
	g.simulated += dt
}

func (g *Game) OnEvent(ev input.Event) bool {
	if _, ok := ev.(*tcell.EventResize); ok {
		g.r.Sync()
		return false
	}

	switch g.keys.Map(ev) {
	case input.ActionQuit, input.ActionBack:
		return true
	case input.ActionPause:
		g.paused = !g.paused
	case input.ActionRestart:
		g.updates = 0
		g.simulated = 0
	}
	return false
}

func (g *Game) Render() {
	g.r.Clear()
	w, h := g.r.Size()
	st := g.stats()

	frame := core.NewRect(0, 0, w, h)
	g.r.DrawBox(frame, render.ColorBlue, render.ColorDefault)
	g.r.DrawTextCentered(0, " Counter ", render.ColorBrightBlue, render.ColorDefault)

	_, cy := frame.Center()
	lines := []string{
		fmt.Sprintf("Updates:   %d", g.updates),
		fmt.Sprintf("Simulated: %.2fs", g.simulated),
		"",
		fmt.Sprintf("Target:    %d fps", g.fps),
		fmt.Sprintf("Measured:  %.1f ups / %.1f fps", st.UpdatesPerSecond(), st.RendersPerSecond()),
		fmt.Sprintf("Events:    %d", st.Events),
		fmt.Sprintf("Clamped:   %d frames, %s dropped", st.ClampedFrames, st.DroppedLag),
	}
	top := cy - len(lines)/2
	for i, line := range lines {
		g.r.DrawTextCentered(top+i, fmt.Sprintf("%-40s", line), render.ColorWhite, render.ColorDefault)
	}

	if g.paused {
		g.r.DrawTextCentered(top-2, "PAUSED", render.ColorBrightYellow, render.ColorDefault)
	}
	g.r.DrawTextCentered(h-2, "space pause · r reset · q quit", render.ColorGray, render.ColorDefault)

	if err := g.r.Flush(); err != nil {
		g.logger.Error("flush failed", "error", err)
	}
}
