package life

import "math/rand"

// Board is a Game of Life grid using the B3/S23 rules.
type Board struct {
	w, h  int
	wrap  bool
	cells []bool
	next  []bool
	gen   uint64
}

// NewBoard creates an empty board.
func NewBoard(w, h int, wrap bool) *Board {
	b := &Board{wrap: wrap}
	b.Resize(w, h)
	return b
}

// Size returns the board dimensions.
func (b *Board) Size() (int, int) { return b.w, b.h }

// Generation returns how many steps have been taken.
func (b *Board) Generation() uint64 { return b.gen }

// Resize changes the board dimensions, keeping cells that still fit.
func (b *Board) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	cells := make([]bool, w*h)
	for y := 0; y < min(h, b.h); y++ {
		for x := 0; x < min(w, b.w); x++ {
			cells[y*w+x] = b.cells[y*b.w+x]
		}
	}
	b.w, b.h = w, h
	b.cells = cells
	b.next = make([]bool, w*h)
}

// Alive reports whether (x, y) is alive. Out-of-range cells are dead.
func (b *Board) Alive(x, y int) bool {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return false
	}
	return b.cells[y*b.w+x]
}

// Set sets the state of (x, y). Out-of-range writes are ignored.
func (b *Board) Set(x, y int, alive bool) {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return
	}
	b.cells[y*b.w+x] = alive
}

// Toggle flips (x, y).
func (b *Board) Toggle(x, y int) {
	b.Set(x, y, !b.Alive(x, y))
}

// Population counts live cells.
func (b *Board) Population() int {
	n := 0
	for _, c := range b.cells {
		if c {
			n++
		}
	}
	return n
}

// Clear kills every cell and resets the generation counter.
func (b *Board) Clear() {
	clear(b.cells)
	b.gen = 0
}

// Seed fills the board randomly with the given density of live cells.
func (b *Board) Seed(rng *rand.Rand, density float64) {
	b.Clear()
	for i := range b.cells {
		b.cells[i] = rng.Float64() < density
	}
}

func (b *Board) neighbors(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if b.wrap {
				nx = (nx + b.w) % b.w
				ny = (ny + b.h) % b.h
			}
			if b.Alive(nx, ny) {
				n++
			}
		}
	}
	return n
}

// Step advances one generation.
func (b *Board) Step() {
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			n := b.neighbors(x, y)
			alive := b.cells[y*b.w+x]
			b.next[y*b.w+x] = n == 3 || (alive && n == 2)
		}
	}
	b.cells, b.next = b.next, b.cells
	b.gen++
}
