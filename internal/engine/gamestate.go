// Package engine runs a GameState on a fixed timestep.
//
// The loop polls terminal input, dispatches events to the game, catches the
// simulation up on accumulated lag in constant steps, renders once per
// iteration and sleeps away whatever is left of the frame.
package engine

import "github.com/vovakirdan/coil/internal/input"

// GameState is the behavior the loop drives. The caller owns it; the loop
// only holds it for the duration of Run.
type GameState interface {
	// Update advances the simulation by dt seconds. It must not block.
	Update(dt float64)

	// OnEvent handles one input event. Returning true ends the loop
	// before the current iteration updates or renders.
	OnEvent(ev input.Event) bool

	// Render draws the current state. It must not change simulation state.
	Render()
}

// Container is a GameState made of child states. Children are updated and
// rendered in insertion order; events go to the last child first, so the
// topmost layer (an overlay, a menu) sees input before what is beneath it.
type Container struct {
	children []GameState
}

// NewContainer creates a container holding children.
func NewContainer(children ...GameState) *Container {
	return &Container{children: append([]GameState(nil), children...)}
}

// Add appends child on top of the existing children.
func (c *Container) Add(child GameState) {
	c.children = append(c.children, child)
}

// Remove detaches child. Children must be comparable (pointers usually are).
func (c *Container) Remove(child GameState) bool {
	for i, ch := range c.children {
		if ch == child {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return true
		}
	}
	return false
}

// Children returns a copy of the child list, bottom first.
func (c *Container) Children() []GameState {
	return append([]GameState(nil), c.children...)
}

// Len returns the number of children.
func (c *Container) Len() int {
	return len(c.children)
}

func (c *Container) Update(dt float64) {
	for _, ch := range c.children {
		ch.Update(dt)
	}
}

// OnEvent dispatches ev from the top child down and stops at the first
// child that asks to exit.
func (c *Container) OnEvent(ev input.Event) bool {
	for i := len(c.children) - 1; i >= 0; i-- {
		if c.children[i].OnEvent(ev) {
			return true
		}
	}
	return false
}

func (c *Container) Render() {
	for _, ch := range c.children {
		ch.Render()
	}
}
