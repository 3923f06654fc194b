// Package input turns platform key and mouse events into one per-frame
// snapshot of named actions and held movement keys.
package input

import "fmt"

// Action is a discrete command triggered by a key press.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleGUI
	ActionToggleBlinn
	ActionScreenshot
	ActionPick // select the object under the cursor
	actionCount
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionQuit:
		return "quit"
	case ActionToggleGUI:
		return "toggle-gui"
	case ActionToggleBlinn:
		return "toggle-blinn"
	case ActionScreenshot:
		return "screenshot"
	case ActionPick:
		return "pick"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Move is a held movement key.
type Move int

const (
	MoveForward Move = iota
	MoveBackward
	MoveLeft
	MoveRight
	moveCount
)

// MouseLeft is the binding name of the left mouse button.
const MouseLeft = "MouseLeft"

// Bindings maps platform-neutral key names to actions and movement.
// Names follow SDL's scancode naming ("F1", "Escape", "W"); mouse buttons
// use MouseLeft.
type Bindings struct {
	Actions map[string]Action
	Moves   map[string]Move
}

// DefaultBindings returns F1 GUI, B Blinn, F12 screenshot, Escape quit,
// left click pick and WASD.
func DefaultBindings() Bindings {
	return Bindings{
		Actions: map[string]Action{
			"Escape":  ActionQuit,
			"F1":      ActionToggleGUI,
			"B":       ActionToggleBlinn,
			"F12":     ActionScreenshot,
			MouseLeft: ActionPick,
		},
		Moves: map[string]Move{
			"W": MoveForward,
			"S": MoveBackward,
			"A": MoveLeft,
			"D": MoveRight,
		},
	}
}

// Frame is everything the frame driver needs to know about input this frame.
type Frame struct {
	actions [actionCount]bool
	held    [moveCount]bool

	MouseDX float32 // pixels, positive right
	MouseDY float32 // pixels, positive down
	Scroll  float32 // wheel notches, positive away from the user

	// Cursor position in drawable pixels, origin top-left.
	CursorX float32
	CursorY float32

	// Resize is set when the drawable size changed this frame.
	Resize       bool
	Width        int
	Height       int
	DeltaSeconds float32
}

// Reset clears the frame for reuse, keeping held keys.
func (f *Frame) Reset() {
	held := f.held
	*f = Frame{}
	f.held = held
}

// Trigger records a discrete action.
func (f *Frame) Trigger(a Action) {
	if a > ActionNone && a < actionCount {
		f.actions[a] = true
	}
}

// Has reports whether a was triggered this frame.
func (f *Frame) Has(a Action) bool {
	return a > ActionNone && a < actionCount && f.actions[a]
}

// SetHeld records the state of a movement key.
func (f *Frame) SetHeld(m Move, down bool) {
	if m >= 0 && m < moveCount {
		f.held[m] = down
	}
}

// Held reports whether a movement key is down.
func (f *Frame) Held(m Move) bool {
	return m >= 0 && m < moveCount && f.held[m]
}

// KeyDown applies a key press by name.
func (b Bindings) KeyDown(f *Frame, name string, repeat bool) {
	if a, ok := b.Actions[name]; ok && !repeat {
		f.Trigger(a)
	}
	if m, ok := b.Moves[name]; ok {
		f.SetHeld(m, true)
	}
}

// KeyUp applies a key release by name.
func (b Bindings) KeyUp(f *Frame, name string) {
	if m, ok := b.Moves[name]; ok {
		f.SetHeld(m, false)
	}
}
