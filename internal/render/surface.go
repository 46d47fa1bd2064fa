package render

import (
	"github.com/gdamore/tcell/v2"
	termbox "github.com/nsf/termbox-go"
)

// Surface is the display sink a Renderer flushes into.
type Surface interface {
	// Size returns the drawable area in cells.
	Size() (width, height int)

	// SetCell stages one cell; nothing is visible until Show.
	SetCell(x, y int, c Cell)

	// Show makes staged cells visible.
	Show() error
}

// TcellSurface draws onto a tcell screen.
type TcellSurface struct {
	screen tcell.Screen
}

// NewTcellSurface wraps a tcell screen.
func NewTcellSurface(screen tcell.Screen) *TcellSurface {
	return &TcellSurface{screen: screen}
}

func (s *TcellSurface) Size() (int, int) {
	return s.screen.Size()
}

func (s *TcellSurface) SetCell(x, y int, c Cell) {
	style := tcell.StyleDefault.Foreground(c.Fg.Tcell()).Background(c.Bg.Tcell())
	s.screen.SetContent(x, y, c.Rune, nil, style)
}

func (s *TcellSurface) Show() error {
	s.screen.Show()
	return nil
}

// TermboxSurface draws through termbox's global back buffer.
type TermboxSurface struct{}

// NewTermboxSurface returns a surface for an initialized termbox.
func NewTermboxSurface() *TermboxSurface {
	return &TermboxSurface{}
}

func (TermboxSurface) Size() (int, int) {
	return termbox.Size()
}

func (TermboxSurface) SetCell(x, y int, c Cell) {
	termbox.SetCell(x, y, c.Rune, c.Fg.Termbox(), c.Bg.Termbox())
}

func (TermboxSurface) Show() error {
	return termbox.Flush()
}

// MemorySurface keeps cells in memory. Useful for tests and headless runs.
type MemorySurface struct {
	width, height int
	cells         []Cell
	writes        int
	shows         int
}

// NewMemorySurface creates a blank in-memory surface.
func NewMemorySurface(width, height int) *MemorySurface {
	s := &MemorySurface{width: width, height: height, cells: make([]Cell, width*height)}
	for i := range s.cells {
		s.cells[i] = Blank
	}
	return s
}

func (s *MemorySurface) Size() (int, int) {
	return s.width, s.height
}

func (s *MemorySurface) SetCell(x, y int, c Cell) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y*s.width+x] = c
	s.writes++
}

func (s *MemorySurface) Show() error {
	s.shows++
	return nil
}

// Cell returns the cell at (x, y), or Blank when out of bounds.
func (s *MemorySurface) Cell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Blank
	}
	return s.cells[y*s.width+x]
}

// Writes returns how many SetCell calls landed on the surface.
func (s *MemorySurface) Writes() int {
	return s.writes
}

// Shows returns how many times Show was called.
func (s *MemorySurface) Shows() int {
	return s.shows
}

// Resize changes the surface dimensions and blanks it.
func (s *MemorySurface) Resize(width, height int) {
	s.width, s.height = width, height
	s.cells = make([]Cell, width*height)
	for i := range s.cells {
		s.cells[i] = Blank
	}
}
