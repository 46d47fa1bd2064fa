package life

import (
	"github.com/vovakirdan/coil/internal/core"
	"github.com/vovakirdan/coil/internal/input"
	"github.com/vovakirdan/coil/internal/render"
)

type menuItem int

const (
	itemResume menuItem = iota
	itemReseed
	itemClear
	itemQuit
)

var menuLabels = []string{"Resume", "Reseed", "Clear", "Quit"}

// pauseMenu is the top layer. It owns pausing: space/p toggle it, Esc
// opens it, and while open it takes the navigation keys.
type pauseMenu struct {
	sim      *simulation
	r        *render.Renderer
	keys     *input.KeyMapper
	selected menuItem
}

func (m *pauseMenu) Update(float64) {}

func (m *pauseMenu) OnEvent(ev input.Event) bool {
	action := m.keys.Map(ev)
	if action == input.ActionQuit {
		return true
	}

	if !m.sim.paused {
		if action == input.ActionPause || action == input.ActionBack {
			m.sim.paused = true
			m.selected = itemResume
		}
		return false
	}

	switch action {
	case input.ActionPause, input.ActionBack:
		m.sim.paused = false
	case input.ActionUp:
		m.selected = (m.selected + itemQuit) % (itemQuit + 1)
	case input.ActionDown:
		m.selected = (m.selected + 1) % (itemQuit + 1)
	case input.ActionConfirm:
		return m.choose()
	}
	return false
}

func (m *pauseMenu) choose() bool {
	switch m.selected {
	case itemReseed:
		m.sim.reseed()
	case itemClear:
		m.sim.board.Clear()
	case itemQuit:
		return true
	}
	m.sim.paused = false
	return false
}

func (m *pauseMenu) Render() {
	if !m.sim.paused {
		return
	}
	w, h := m.r.Size()
	boxW, boxH := 20, len(menuLabels)+4
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	m.r.FillRect(box, render.Cell{Rune: ' ', Bg: render.ColorDarkBlue})
	m.r.DrawBox(box, render.ColorBrightWhite, render.ColorDarkBlue)
	m.r.DrawTextCentered(box.Y, " PAUSED ", render.ColorBrightYellow, render.ColorDarkBlue)

	for i, label := range menuLabels {
		fg, bg := render.ColorWhite, render.ColorDarkBlue
		text := "  " + label
		if menuItem(i) == m.selected {
			fg, bg = render.ColorBlack, render.ColorBrightCyan
			text = "> " + label
		}
		_ = m.r.DrawStr(box.X+2, box.Y+2+i, text, fg, bg)
	}
}
