// Package tui provides the Bubble Tea screens around the engine: the game
// picker and the run history board. Games themselves run on the engine
// loop, not inside Bubble Tea.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionPrevPreset
	MenuActionNextPreset
	MenuActionRuns
)

// KeyMapper translates Bubble Tea key messages to menu actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionPrevPreset
	case "d", "right", "l":
		return MenuActionNextPreset
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionRuns
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
