package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
	termbox "github.com/nsf/termbox-go"
)

// Color is a cell color from a small fixed palette.
// Each entry maps to an ANSI 256-color index for terminal compatibility.
type Color uint8

// Palette.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkBlue
)

// ansiIndex maps palette entries to ANSI 256-color indices.
// ColorDefault has no index.
var ansiIndex = map[Color]int{
	ColorBlack:         0,
	ColorRed:           1,
	ColorGreen:         2,
	ColorYellow:        3,
	ColorBlue:          4,
	ColorMagenta:       5,
	ColorCyan:          6,
	ColorWhite:         7,
	ColorBrightRed:     9,
	ColorBrightGreen:   10,
	ColorBrightYellow:  11,
	ColorBrightBlue:    12,
	ColorBrightMagenta: 13,
	ColorBrightCyan:    14,
	ColorBrightWhite:   15,
	ColorOrange:        208,
	ColorGray:          245,
	ColorDarkBlue:      18,
}

// ANSI returns the 256-color index and false for ColorDefault.
func (c Color) ANSI() (int, bool) {
	idx, ok := ansiIndex[c]
	return idx, ok
}

// Tcell converts the color for a tcell screen.
func (c Color) Tcell() tcell.Color {
	idx, ok := c.ANSI()
	if !ok {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(idx)
}

// Termbox converts the color for termbox's 8-color output mode.
// Bright colors become bold; the extended entries fall back to the
// nearest basic color.
func (c Color) Termbox() termbox.Attribute {
	switch c {
	case ColorDefault:
		return termbox.ColorDefault
	case ColorOrange:
		return termbox.ColorYellow
	case ColorGray:
		return termbox.ColorWhite
	case ColorDarkBlue:
		return termbox.ColorBlue
	}
	idx, _ := c.ANSI()
	if idx >= 8 {
		return termbox.Attribute(idx-8+1) | termbox.AttrBold
	}
	return termbox.Attribute(idx + 1)
}

// Lipgloss converts the color for lipgloss styles.
func (c Color) Lipgloss() lipgloss.TerminalColor {
	idx, ok := c.ANSI()
	if !ok {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(idx))
}

// Cell is a single character cell with foreground and background colors.
type Cell struct {
	Rune rune
	Fg   Color
	Bg   Color
}

// Blank is an empty cell in default colors.
var Blank = Cell{Rune: ' '}
