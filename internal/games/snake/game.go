// Package snake is the classic Snake on the coil engine. Movement is driven
// by accumulated simulation time, so the snake crawls at the same speed
// whatever the loop's target rate.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/coil/internal/core"
	"github.com/vovakirdan/coil/internal/input"
	"github.com/vovakirdan/coil/internal/registry"
	"github.com/vovakirdan/coil/internal/render"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

func (d Direction) opposite(o Direction) bool {
	return (d == DirUp && o == DirDown) ||
		(d == DirDown && o == DirUp) ||
		(d == DirLeft && o == DirRight) ||
		(d == DirRight && o == DirLeft)
}

// Point represents a cell on the field.
type Point struct {
	X, Y int
}

const (
	hudHeight    = 1
	baseSpeed    = 8.0 // Cells per second at the start
	maxSpeed     = 20.0
	foodPerSpeed = 5 // Food eaten per speed step
	startLength  = 3
)

// Game implements Snake on a walled field below a one-line HUD.
type Game struct {
	r      *render.Renderer
	logger *log.Logger
	keys   *input.KeyMapper
	rng    *rand.Rand

	// Field size, excluding the wall.
	width, height int

	snake     []Point // Head at index 0
	direction Direction
	nextDir   Direction // Buffered direction for next move
	food      Point
	score     int
	best      int
	progress  float64 // Fraction of a cell travelled since the last move

	gameOver bool
	paused   bool
	tooSmall bool
}

// New creates a snake game sized to the renderer.
func New(r *render.Renderer, logger *log.Logger, seed int64) *Game {
	g := &Game{
		r:      r,
		logger: logger,
		keys:   input.NewKeyMapper(),
		rng:    rand.New(rand.NewSource(seed)),
	}
	g.Reset()
	return g
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          "snake",
		Title:       "Snake",
		Description: "Eat, grow, speed up, don't bite yourself",
	}, func(env registry.Env) (registry.Game, error) {
		return New(env.Renderer, env.Logger, env.Runtime.ResolveSeed()), nil
	})
}

func (g *Game) ID() string    { return "snake" }
func (g *Game) Title() string { return "Snake" }

// Score returns the food eaten this round.
func (g *Game) Score() int { return g.score }

// Snake returns the body, head first.
func (g *Game) Snake() []Point { return g.snake }

// Food returns the food position.
func (g *Game) Food() Point { return g.food }

// GameOver reports whether the snake crashed.
func (g *Game) GameOver() bool { return g.gameOver }

// Speed returns the current speed in cells per second.
func (g *Game) Speed() float64 {
	return min(baseSpeed+float64(g.score/foodPerSpeed), maxSpeed)
}

// Reset starts a new round on a field fitted to the renderer.
func (g *Game) Reset() {
	w, h := g.r.Size()
	g.width, g.height = w-2, h-hudHeight-2
	g.score = 0
	g.progress = 0
	g.gameOver = false
	g.paused = false
	g.tooSmall = g.width < startLength+2 || g.height < 3
	if g.tooSmall {
		g.snake = nil
		return
	}

	y := g.height / 2
	x := g.width/4 + startLength - 1
	g.snake = g.snake[:0]
	for i := range startLength {
		g.snake = append(g.snake, Point{X: x - i, Y: y})
	}
	g.direction = DirRight
	g.nextDir = DirRight
	g.spawnFood()
}

// spawnFood places food on a random free cell.
func (g *Game) spawnFood() {
	var free []Point
	for y := range g.height {
		for x := range g.width {
			p := Point{X: x, Y: y}
			if !g.occupied(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		g.food = Point{X: -1, Y: -1}
		return
	}
	g.food = free[g.rng.Intn(len(free))]
}

func (g *Game) occupied(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

func (g *Game) Update(dt float64) {
	if g.gameOver || g.paused || g.tooSmall {
		return
	}
	g.progress += dt * g.Speed()
	for g.progress >= 1 && !g.gameOver {
		g.progress--
		g.move()
	}
}

// move advances the snake one cell.
func (g *Game) move() {
	g.direction = g.nextDir

	head := g.snake[0]
	switch g.direction {
	case DirUp:
		head.Y--
	case DirDown:
		head.Y++
	case DirLeft:
		head.X--
	case DirRight:
		head.X++
	}

	if head.X < 0 || head.X >= g.width || head.Y < 0 || head.Y >= g.height {
		g.crash()
		return
	}

	growing := head == g.food
	// The tail moves out of the way unless the snake grows this step.
	body := g.snake
	if !growing {
		body = body[:len(body)-1]
	}
	for _, seg := range body {
		if seg == head {
			g.crash()
			return
		}
	}

	g.snake = append([]Point{head}, body...)
	if growing {
		g.score++
		g.best = max(g.best, g.score)
		g.spawnFood()
	}
}

func (g *Game) crash() {
	g.gameOver = true
	g.logger.Debug("snake crashed", "score", g.score, "length", len(g.snake))
}

func (g *Game) OnEvent(ev input.Event) bool {
	if _, ok := ev.(*tcell.EventResize); ok {
		g.r.Sync()
		g.Reset()
		return false
	}

	switch g.keys.Map(ev) {
	case input.ActionQuit, input.ActionBack:
		return true
	case input.ActionPause:
		if !g.gameOver {
			g.paused = !g.paused
		}
	case input.ActionRestart:
		g.Reset()
	case input.ActionUp:
		g.steer(DirUp)
	case input.ActionDown:
		g.steer(DirDown)
	case input.ActionLeft:
		g.steer(DirLeft)
	case input.ActionRight:
		g.steer(DirRight)
	}
	return false
}

// steer buffers a turn for the next move. Reversing into the body is ignored.
func (g *Game) steer(d Direction) {
	if g.paused || g.gameOver || d.opposite(g.direction) {
		return
	}
	g.nextDir = d
}

func (g *Game) Render() {
	g.r.Clear()
	_, h := g.r.Size()

	if g.tooSmall {
		g.r.DrawTextCentered(h/2, "Terminal too small", render.ColorBrightRed, render.ColorDefault)
	} else {
		hud := fmt.Sprintf(" Score %d  Best %d  Speed %.0f ", g.score, g.best, g.Speed())
		_ = g.r.DrawStr(0, 0, hud, render.ColorBrightWhite, render.ColorDefault)

		field := core.NewRect(0, hudHeight, g.width+2, g.height+2)
		g.r.DrawBox(field, render.ColorGreen, render.ColorDefault)
		if g.food.X >= 0 {
			_ = g.r.DrawCell(g.food.X+1, g.food.Y+hudHeight+1, render.Cell{Rune: '●', Fg: render.ColorBrightRed})
		}
		for i, seg := range g.snake {
			c := render.Cell{Rune: '■', Fg: render.ColorGreen}
			if i == 0 {
				c = render.Cell{Rune: '█', Fg: render.ColorBrightGreen}
			}
			_ = g.r.DrawCell(seg.X+1, seg.Y+hudHeight+1, c)
		}

		_, cy := field.Center()
		switch {
		case g.gameOver:
			g.r.DrawTextCentered(cy, " GAME OVER - r restart, q quit ", render.ColorBrightYellow, render.ColorRed)
		case g.paused:
			g.r.DrawTextCentered(cy, " PAUSED ", render.ColorBrightYellow, render.ColorDefault)
		}
	}

	if err := g.r.Flush(); err != nil {
		g.logger.Error("flush failed", "error", err)
	}
}
