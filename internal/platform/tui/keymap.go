package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/horde/internal/core"
)

// KeyMap defines the in-run key bindings.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Back       key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Pause, k.Restart, k.Back, k.Quit, k.Screenshot},
	}
}

// DefaultKeyMap returns default in-run key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up", "k"),
			key.WithHelp("w/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down", "j"),
			key.WithHelp("s/down", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left", "h"),
			key.WithHelp("a/left", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right", "l"),
			key.WithHelp("d/right", "move right"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("esc/b", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// Action translates a key message to a simulation action.
// Quit, Back and Screenshot are handled by the model and map to ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Up):
		return core.ActionMoveUp
	case key.Matches(msg, k.Down):
		return core.ActionMoveDown
	case key.Matches(msg, k.Left):
		return core.ActionMoveLeft
	case key.Matches(msg, k.Right):
		return core.ActionMoveRight
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// MenuKeyMap defines the scenario picker keys the list does not own.
type MenuKeyMap struct {
	Select key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns default menu key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "best runs"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// holdWindow is how long a movement key counts as held after its last key
// event. Terminals report presses and auto-repeats but never releases.
const holdWindow = 200 * time.Millisecond

// inputState turns a stream of key events into held-state input frames.
type inputState struct {
	seen      map[core.Action]time.Time
	momentary core.InputFrame // Pause/Restart, held until a tick consumes them
}

func newInputState() *inputState {
	return &inputState{seen: make(map[core.Action]time.Time)}
}

var opposite = map[core.Action]core.Action{
	core.ActionMoveUp:    core.ActionMoveDown,
	core.ActionMoveDown:  core.ActionMoveUp,
	core.ActionMoveLeft:  core.ActionMoveRight,
	core.ActionMoveRight: core.ActionMoveLeft,
}

// press records a key event at now.
func (s *inputState) press(a core.Action, now time.Time) {
	if o, ok := opposite[a]; ok {
		s.seen[a] = now
		delete(s.seen, o)
		return
	}
	s.momentary.Set(a)
}

// frame returns the input held at now.
func (s *inputState) frame(now time.Time) core.InputFrame {
	f := s.momentary
	for a, at := range s.seen {
		if now.Sub(at) <= holdWindow {
			f.Set(a)
		}
	}
	return f
}

// consume drops momentary actions once a tick has seen them.
func (s *inputState) consume() {
	s.momentary.Clear()
}

// reset forgets everything.
func (s *inputState) reset() {
	clear(s.seen)
	s.momentary.Clear()
}
