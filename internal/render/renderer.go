// Package render provides a double-buffered cell renderer.
//
// Games draw into the back buffer with simple cell and text operations;
// Flush diffs it against what is already on the surface and writes only
// the cells that changed.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/coil/internal/core"
)

// ErrOutOfBounds is returned when drawing outside the buffer.
var ErrOutOfBounds = errors.New("render: coordinates out of bounds")

// Renderer owns a back buffer (being drawn) and a front buffer (what the
// surface currently shows).
type Renderer struct {
	surface Surface
	logger  *log.Logger
	width   int
	height  int
	back    []Cell
	front   []Cell
	dirty   bool // Front buffer no longer matches the surface
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for clipped draws.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// WithSize sets the initial buffer size, for surfaces that cannot report
// one before the terminal is opened. Sync adopts the real size later.
func WithSize(w, h int) Option {
	return func(r *Renderer) { r.width, r.height = w, h }
}

// New creates a renderer sized to the surface, or to WithSize when the
// surface reports no area.
func New(surface Surface, opts ...Option) *Renderer {
	r := &Renderer{surface: surface}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	w, h := surface.Size()
	if w <= 0 || h <= 0 {
		w, h = r.width, r.height
	}
	r.allocate(w, h)
	return r
}

func (r *Renderer) allocate(w, h int) {
	r.width = max(w, 0)
	r.height = max(h, 0)
	r.back = make([]Cell, r.width*r.height)
	r.front = make([]Cell, r.width*r.height)
	for i := range r.back {
		r.back[i] = Blank
		r.front[i] = Blank
	}
	r.dirty = true
}

// Size returns the buffer dimensions.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Bounds returns the buffer as a rectangle.
func (r *Renderer) Bounds() core.Rect {
	return core.NewRect(0, 0, r.width, r.height)
}

// Resize changes the buffer dimensions, preserving back-buffer content
// where possible. The next Flush repaints every cell.
func (r *Renderer) Resize(w, h int) {
	if w == r.width && h == r.height {
		return
	}
	oldBack, oldW, oldH := r.back, r.width, r.height
	r.allocate(w, h)

	copyW, copyH := min(oldW, r.width), min(oldH, r.height)
	for y := 0; y < copyH; y++ {
		copy(r.back[y*r.width:y*r.width+copyW], oldBack[y*oldW:y*oldW+copyW])
	}
}

// Sync resizes the buffers to the surface's current size.
func (r *Renderer) Sync() {
	r.Resize(r.surface.Size())
	r.dirty = true
}

// Clear fills the back buffer with blank cells.
func (r *Renderer) Clear() {
	for i := range r.back {
		r.back[i] = Blank
	}
}

// index returns the buffer index of (x, y).
func (r *Renderer) index(x, y int) (int, error) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return 0, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	return y*r.width + x, nil
}

// coordinates is the inverse of index.
func (r *Renderer) coordinates(i int) (int, int) {
	return i % r.width, i / r.width
}

// DrawCell sets one cell in the back buffer.
func (r *Renderer) DrawCell(x, y int, c Cell) error {
	i, err := r.index(x, y)
	if err != nil {
		return err
	}
	r.back[i] = c
	return nil
}

// Cell returns the back-buffer cell at (x, y), or Blank when out of bounds.
func (r *Renderer) Cell(x, y int) Cell {
	i, err := r.index(x, y)
	if err != nil {
		return Blank
	}
	return r.back[i]
}

// DrawStr writes text horizontally from (x, y). Characters past the edge
// are clipped; the clip is reported as ErrOutOfBounds after the visible
// part has been drawn.
func (r *Renderer) DrawStr(x, y int, text string, fg, bg Color) error {
	clipped := 0
	col := x
	for _, ch := range text {
		if err := r.DrawCell(col, y, Cell{Rune: ch, Fg: fg, Bg: bg}); err != nil {
			clipped++
		}
		col++
	}
	if clipped > 0 {
		r.logger.Debug("text clipped", "x", x, "y", y, "clipped", clipped)
		return fmt.Errorf("%w: %d of %d cells clipped at (%d, %d)", ErrOutOfBounds, clipped, col-x, x, y)
	}
	return nil
}

// DrawText writes text in the default colors, silently clipping.
func (r *Renderer) DrawText(x, y int, text string) {
	_ = r.DrawStr(x, y, text, ColorDefault, ColorDefault)
}

// DrawTextCentered draws text centered horizontally on row y.
func (r *Renderer) DrawTextCentered(y int, text string, fg, bg Color) {
	x := (r.width - len([]rune(text))) / 2
	_ = r.DrawStr(x, y, text, fg, bg)
}

// FillRect fills the part of rect inside the buffer with c.
func (r *Renderer) FillRect(rect core.Rect, c Cell) {
	area := rect.Intersect(r.Bounds())
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			r.back[y*r.width+x] = c
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (r *Renderer) DrawBox(rect core.Rect, fg, bg Color) {
	if rect.W < 2 || rect.H < 2 {
		return
	}
	set := func(x, y int, ch rune) {
		_ = r.DrawCell(x, y, Cell{Rune: ch, Fg: fg, Bg: bg})
	}

	set(rect.X, rect.Y, '┌')
	set(rect.Right()-1, rect.Y, '┐')
	set(rect.X, rect.Bottom()-1, '└')
	set(rect.Right()-1, rect.Bottom()-1, '┘')

	for x := rect.X + 1; x < rect.Right()-1; x++ {
		set(x, rect.Y, '─')
		set(x, rect.Bottom()-1, '─')
	}
	for y := rect.Y + 1; y < rect.Bottom()-1; y++ {
		set(rect.X, y, '│')
		set(rect.Right()-1, y, '│')
	}
}

// DrawHLine draws a horizontal line of ch, clipped to the buffer.
func (r *Renderer) DrawHLine(x, y, length int, ch rune, fg Color) {
	for i := 0; i < length; i++ {
		_ = r.DrawCell(x+i, y, Cell{Rune: ch, Fg: fg})
	}
}

// DrawVLine draws a vertical line of ch, clipped to the buffer.
func (r *Renderer) DrawVLine(x, y, length int, ch rune, fg Color) {
	for i := 0; i < length; i++ {
		_ = r.DrawCell(x, y+i, Cell{Rune: ch, Fg: fg})
	}
}

// Flush writes every back-buffer cell that differs from the front buffer
// to the surface, then shows it. After a resize every cell is written.
func (r *Renderer) Flush() error {
	for i, c := range r.back {
		if !r.dirty && c == r.front[i] {
			continue
		}
		x, y := r.coordinates(i)
		r.surface.SetCell(x, y, c)
		r.front[i] = c
	}
	r.dirty = false

	if err := r.surface.Show(); err != nil {
		return fmt.Errorf("render: show: %w", err)
	}
	return nil
}

// String returns the back buffer as plain text, one line per row.
func (r *Renderer) String() string {
	var sb strings.Builder
	sb.Grow(r.width*r.height + r.height)

	for y := 0; y < r.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < r.width; x++ {
			sb.WriteRune(r.back[y*r.width+x].Rune)
		}
	}
	return sb.String()
}

// Row returns one row of the back buffer as a string.
func (r *Renderer) Row(y int) string {
	if y < 0 || y >= r.height {
		return strings.Repeat(" ", r.width)
	}
	runes := make([]rune, r.width)
	for x := range runes {
		runes[x] = r.back[y*r.width+x].Rune
	}
	return string(runes)
}
