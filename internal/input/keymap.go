package input

import "github.com/gdamore/tcell/v2"

// Action is a semantic game action, abstracted from physical key presses.
// Games work with intents rather than raw keys where they can.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, K, Up arrow
	ActionDown              // S, J, Down arrow
	ActionLeft              // A, H, Left arrow
	ActionRight             // D, L, Right arrow
	ActionConfirm           // Enter
	ActionBack              // Escape
	ActionPause             // Space, P
	ActionRestart           // R
	ActionQuit              // Q, Ctrl+C
	ActionScreenshot        // Ctrl+S
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionScreenshot:
		return "Screenshot"
	default:
		return "Unknown"
	}
}

// KeyMapper translates tcell key events to actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// Map translates any event to an action. Non-key events map to ActionNone.
func (km *KeyMapper) Map(ev Event) Action {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return ActionNone
	}
	return km.MapKey(key)
}

// MapKey translates a key event to an action.
func (km *KeyMapper) MapKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyCtrlS:
		return ActionScreenshot
	case tcell.KeyEscape:
		return ActionBack
	case tcell.KeyEnter:
		return ActionConfirm
	case tcell.KeyUp:
		return ActionUp
	case tcell.KeyDown:
		return ActionDown
	case tcell.KeyLeft:
		return ActionLeft
	case tcell.KeyRight:
		return ActionRight
	case tcell.KeyRune:
		return km.mapRune(ev.Rune())
	}
	return ActionNone
}

func (km *KeyMapper) mapRune(r rune) Action {
	switch r {
	case 'q', 'Q':
		return ActionQuit
	case 'w', 'k':
		return ActionUp
	case 's', 'j':
		return ActionDown
	case 'a', 'h':
		return ActionLeft
	case 'd', 'l':
		return ActionRight
	case ' ', 'p':
		return ActionPause
	case 'r':
		return ActionRestart
	}
	return ActionNone
}

// IsExit reports whether ev asks to leave the game: Quit or Back.
func (km *KeyMapper) IsExit(ev Event) bool {
	a := km.Map(ev)
	return a == ActionQuit || a == ActionBack
}
