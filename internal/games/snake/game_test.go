package snake

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/coil/internal/render"
)

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func special(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

// newGame returns a game on a 30x10 terminal: a 28x7 field.
func newGame(t *testing.T) (*Game, *render.MemorySurface) {
	t.Helper()
	surf := render.NewMemorySurface(30, 10)
	return New(render.New(surf), log.New(io.Discard), 1), surf
}

// stepCells advances exactly n moves at the current speed.
func stepCells(g *Game, n int) {
	for range n {
		g.Update(1 / g.Speed())
	}
}

func TestSnakeStart(t *testing.T) {
	g, _ := newGame(t)

	if g.width != 28 || g.height != 7 {
		t.Fatalf("field = %dx%d, want 28x7", g.width, g.height)
	}
	body := g.Snake()
	if len(body) != startLength {
		t.Fatalf("len(snake) = %d, want %d", len(body), startLength)
	}
	if body[0].X != body[1].X+1 || body[0].Y != body[1].Y {
		t.Errorf("expected the head to lead to the right, got %v", body)
	}
	if g.occupied(g.Food()) {
		t.Error("food spawned on the snake")
	}
}

func TestSnakeMovesWithSimulatedTime(t *testing.T) {
	g, _ := newGame(t)
	head := g.Snake()[0]

	// Half a cell's worth of time does not move the snake.
	g.Update(0.5 / g.Speed())
	if g.Snake()[0] != head {
		t.Fatalf("snake moved early: %v", g.Snake()[0])
	}

	// Just over a second of 1/60s steps at 8 cells per second is 8 cells.
	g, _ = newGame(t)
	g.food = Point{X: -1, Y: -1}
	head = g.Snake()[0]
	for range 61 {
		g.Update(1.0 / 60)
	}
	if got := g.Snake()[0].X - head.X; got != 8 {
		t.Errorf("moved %d cells in one second, want 8", got)
	}
}

func TestSnakeSteering(t *testing.T) {
	g, _ := newGame(t)
	g.food = Point{X: -1, Y: -1}
	head := g.Snake()[0]

	// Reversal is ignored.
	g.OnEvent(special(tcell.KeyLeft))
	stepCells(g, 1)
	if g.Snake()[0] != (Point{X: head.X + 1, Y: head.Y}) {
		t.Fatalf("reverse turn was applied: %v", g.Snake()[0])
	}

	g.OnEvent(key('w'))
	stepCells(g, 1)
	if g.Snake()[0] != (Point{X: head.X + 1, Y: head.Y - 1}) {
		t.Errorf("expected a move up, head at %v", g.Snake()[0])
	}
}

func TestSnakeEatsAndGrows(t *testing.T) {
	g, _ := newGame(t)
	head := g.Snake()[0]
	g.food = Point{X: head.X + 1, Y: head.Y}

	stepCells(g, 1)
	if g.Score() != 1 {
		t.Errorf("Score() = %d, want 1", g.Score())
	}
	if len(g.Snake()) != startLength+1 {
		t.Errorf("len(snake) = %d, want %d", len(g.Snake()), startLength+1)
	}
	if g.Food() == (Point{X: head.X + 1, Y: head.Y}) {
		t.Error("food was not respawned")
	}
}

func TestSnakeSpeedsUp(t *testing.T) {
	g, _ := newGame(t)
	tests := []struct {
		score int
		speed float64
	}{
		{0, baseSpeed},
		{foodPerSpeed - 1, baseSpeed},
		{foodPerSpeed, baseSpeed + 1},
		{1000, maxSpeed},
	}
	for _, tt := range tests {
		g.score = tt.score
		if got := g.Speed(); got != tt.speed {
			t.Errorf("Speed() at score %d = %v, want %v", tt.score, got, tt.speed)
		}
	}
}

func TestSnakeHitsWall(t *testing.T) {
	g, _ := newGame(t)
	g.food = Point{X: -1, Y: -1}

	stepCells(g, g.width)
	if !g.GameOver() {
		t.Fatal("expected a crash into the right wall")
	}

	// Nothing moves after the crash.
	body := append([]Point(nil), g.Snake()...)
	stepCells(g, 3)
	if g.Snake()[0] != body[0] {
		t.Error("snake moved after game over")
	}

	g.OnEvent(key('r'))
	if g.GameOver() || g.Score() != 0 {
		t.Error("restart did not reset the round")
	}
}

func TestSnakeBitesItself(t *testing.T) {
	g, _ := newGame(t)
	g.food = Point{X: -1, Y: -1}
	g.snake = []Point{{5, 3}, {4, 3}, {4, 4}, {5, 4}, {6, 4}, {6, 3}}
	g.direction, g.nextDir = DirRight, DirRight

	g.OnEvent(key('s'))
	stepCells(g, 1)
	if !g.GameOver() {
		t.Error("expected a crash into the body")
	}
}

func TestSnakeTailIsFreeCell(t *testing.T) {
	g, _ := newGame(t)
	g.food = Point{X: -1, Y: -1}
	// A 2x2 loop: the head moves into the cell the tail leaves.
	g.snake = []Point{{5, 3}, {5, 4}, {6, 4}, {6, 3}}
	g.direction, g.nextDir = DirUp, DirUp

	g.OnEvent(key('d'))
	stepCells(g, 1)
	if g.GameOver() {
		t.Error("moving into the vacated tail cell should be legal")
	}
}

func TestSnakePauseAndQuit(t *testing.T) {
	g, _ := newGame(t)
	head := g.Snake()[0]

	g.OnEvent(key(' '))
	stepCells(g, 2)
	if g.Snake()[0] != head {
		t.Error("snake moved while paused")
	}

	if !g.OnEvent(key('q')) {
		t.Error("q should exit")
	}
	if !g.OnEvent(special(tcell.KeyEscape)) {
		t.Error("Esc should exit")
	}
}

func TestSnakeRender(t *testing.T) {
	g, surf := newGame(t)
	g.Render()

	if surf.Shows() != 1 {
		t.Errorf("Shows() = %d, want 1", surf.Shows())
	}
	if !strings.Contains(g.r.Row(0), "Score 0") {
		t.Errorf("HUD = %q, expected the score", g.r.Row(0))
	}
	head := g.Snake()[0]
	if c := surf.Cell(head.X+1, head.Y+hudHeight+1); c.Rune != '█' {
		t.Errorf("head cell = %q, want '█'", c.Rune)
	}
	if c := surf.Cell(0, hudHeight); c.Rune != '┌' {
		t.Errorf("corner = %q, want '┌'", c.Rune)
	}
}

func TestSnakeTooSmall(t *testing.T) {
	surf := render.NewMemorySurface(6, 4)
	g := New(render.New(surf), log.New(io.Discard), 1)
	if !g.tooSmall {
		t.Fatal("expected a 6x4 terminal to be too small")
	}
	g.Update(1)
	g.OnEvent(key('d'))
	g.Render()
	if len(g.Snake()) != 0 {
		t.Errorf("expected no snake, got %v", g.Snake())
	}
	if surf.Shows() != 1 {
		t.Errorf("Shows() = %d, want 1", surf.Shows())
	}
}

func TestSnakeResize(t *testing.T) {
	g, surf := newGame(t)
	surf.Resize(40, 20)
	g.OnEvent(tcell.NewEventResize(40, 20))
	if g.width != 38 || g.height != 17 {
		t.Errorf("field after resize = %dx%d, want 38x17", g.width, g.height)
	}
}
