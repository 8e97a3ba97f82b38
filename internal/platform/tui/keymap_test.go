package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/horde/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"w", runeKey('w'), core.ActionMoveUp},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionMoveUp},
		{"s", runeKey('s'), core.ActionMoveDown},
		{"a", runeKey('a'), core.ActionMoveLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionMoveRight},
		{"p", runeKey('p'), core.ActionPause},
		{"r", runeKey('r'), core.ActionRestart},
		{"quit is not an action", runeKey('q'), core.ActionNone},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestInputStateHoldWindow(t *testing.T) {
	s := newInputState()
	t0 := time.Unix(1000, 0)

	s.press(core.ActionMoveLeft, t0)

	if f := s.frame(t0.Add(holdWindow / 2)); !f.Has(core.ActionMoveLeft) {
		t.Error("movement should be held inside the hold window")
	}
	if f := s.frame(t0.Add(holdWindow + time.Millisecond)); f.Has(core.ActionMoveLeft) {
		t.Error("movement should be released after the hold window")
	}

	// An auto-repeat extends the hold.
	s.press(core.ActionMoveLeft, t0.Add(holdWindow))
	if f := s.frame(t0.Add(holdWindow + time.Millisecond)); !f.Has(core.ActionMoveLeft) {
		t.Error("repeat should extend the hold")
	}
}

func TestInputStateOpposites(t *testing.T) {
	s := newInputState()
	now := time.Unix(1000, 0)

	s.press(core.ActionMoveUp, now)
	s.press(core.ActionMoveRight, now)
	s.press(core.ActionMoveDown, now)

	f := s.frame(now)
	if f.Has(core.ActionMoveUp) {
		t.Error("pressing down should cancel up")
	}
	if !f.Has(core.ActionMoveDown) || !f.Has(core.ActionMoveRight) {
		t.Errorf("frame should hold down and right, got %+v", f)
	}
}

func TestInputStateMomentary(t *testing.T) {
	s := newInputState()
	now := time.Unix(1000, 0)

	s.press(core.ActionPause, now)

	// Held across frames that ran no tick.
	if !s.frame(now).Has(core.ActionPause) || !s.frame(now.Add(time.Second)).Has(core.ActionPause) {
		t.Fatal("pause should stay set until consumed")
	}

	s.consume()
	if s.frame(now).Has(core.ActionPause) {
		t.Error("pause should clear once consumed")
	}

	s.press(core.ActionMoveUp, now)
	s.press(core.ActionRestart, now)
	s.reset()
	if f := s.frame(now); !f.Empty() {
		t.Errorf("reset frame = %+v, expected empty", f)
	}
}
