package core

// Action represents a semantic simulation input, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Action uint8

const (
	ActionNone      Action = iota
	ActionMoveUp           // W, Up arrow
	ActionMoveDown         // S, Down arrow
	ActionMoveLeft         // A, Left arrow
	ActionMoveRight        // D, Right arrow
	ActionConfirm          // Enter - confirm selection in menu
	ActionBack             // B, Escape - go back to menu
	ActionRestart          // R key - restart after game over
	ActionQuit             // Q, Ctrl+C - exit
	ActionPause            // P - pause/unpause
	actionCount
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveUp:
		return "Up"
	case ActionMoveDown:
		return "Down"
	case ActionMoveLeft:
		return "Left"
	case ActionMoveRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions held during one simulation tick.
// It is a bitset so frames copy by value without allocation.
type InputFrame struct {
	bits uint16
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << a
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if a == ActionNone || a >= actionCount {
		return false
	}
	return f.bits&(1<<a) != 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Clone returns a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	return f
}

// Empty reports whether no action is held.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Direction converts the held movement actions into a unit vector
// (diagonals are normalized so they are not faster than straight moves).
func (f InputFrame) Direction() Vec {
	var d Vec
	if f.Has(ActionMoveUp) {
		d.Y--
	}
	if f.Has(ActionMoveDown) {
		d.Y++
	}
	if f.Has(ActionMoveLeft) {
		d.X--
	}
	if f.Has(ActionMoveRight) {
		d.X++
	}
	return d.Normalize()
}

// Edges is the result of sampling an input frame against the previous one.
type Edges struct {
	Held     InputFrame // Actions held this tick
	Pressed  InputFrame // Actions that went down this tick
	Released InputFrame // Actions that went up this tick
}

// EdgeSampler turns a stream of held-state frames into edge state.
// The simulation samples it exactly once per tick.
type EdgeSampler struct {
	prev InputFrame
}

// Sample computes edges for the current frame and remembers it for the next call.
func (s *EdgeSampler) Sample(cur InputFrame) Edges {
	e := Edges{
		Held:     cur,
		Pressed:  InputFrame{bits: cur.bits &^ s.prev.bits},
		Released: InputFrame{bits: s.prev.bits &^ cur.bits},
	}
	s.prev = cur
	return e
}

// Reset forgets the previous frame.
func (s *EdgeSampler) Reset() {
	s.prev = InputFrame{}
}
