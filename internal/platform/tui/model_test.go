package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/horde/internal/config"
	"github.com/vovakirdan/horde/internal/core"

	_ "github.com/vovakirdan/horde/internal/scenarios"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func newTestGame(t *testing.T) GameModel {
	t.Helper()
	m, err := NewGameModel(Options{
		Scenario: "survival",
		Config:   config.Default(),
		Runtime:  testRuntime(),
	})
	if err != nil {
		t.Fatalf("NewGameModel() error = %v", err)
	}
	return m
}

// update feeds one message and returns the concrete model.
func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, expected GameModel", next)
	}
	return gm, cmd
}

func TestGameModelUnknownScenario(t *testing.T) {
	_, err := NewGameModel(Options{Scenario: "nope", Config: config.Default(), Runtime: testRuntime()})
	if err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestGameModelFramesAdvanceWorld(t *testing.T) {
	m := newTestGame(t)
	start := time.Unix(1000, 0)

	// The first frame only records the time.
	m, _ = update(t, m, TickMsg(start))
	if m.World().Tick() != 0 {
		t.Fatalf("Tick() = %d after first frame, expected 0", m.World().Tick())
	}

	m, cmd := update(t, m, TickMsg(start.Add(50*time.Millisecond)))
	if m.World().Tick() != 3 {
		t.Errorf("Tick() = %d after 50ms at 60Hz, expected 3", m.World().Tick())
	}
	if cmd == nil {
		t.Error("frame should schedule the next frame")
	}
}

func TestGameModelEscPausesThenLeaves(t *testing.T) {
	m := newTestGame(t)
	start := time.Unix(1000, 0)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("Esc during a run should pause, not leave")
	}

	m, _ = update(t, m, TickMsg(start))
	m, _ = update(t, m, TickMsg(start.Add(50*time.Millisecond)))
	if !m.World().State().Paused {
		t.Fatal("world should be paused after Esc")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("View() should show the pause banner")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("Esc while paused should return to the menu")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newTestGame(t)

	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestGameModelView(t *testing.T) {
	m := newTestGame(t)
	view := m.View()

	for _, want := range []string{"@", "HP", "Score 0", "Wave 0"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd", core.ColorGreen)
	s.DrawText(0, 1, "efgh", core.ColorDefault)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() has %d lines, expected 2", len(lines))
	}
	for _, want := range []string{"ab", "cd", "efgh"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() missing %q", want)
		}
	}
}

func TestSessionFlow(t *testing.T) {
	m := NewSessionModel(SessionOptions{Config: config.Default(), Runtime: testRuntime()})

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := m.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T, expected SessionModel", next)
		}
		m = sm
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %v after Tab, expected scores", m.screen)
	}
	step(runeKey('b'))
	if m.screen != screenMenu {
		t.Fatalf("screen = %v after back, expected menu", m.screen)
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.game == nil {
		t.Fatalf("screen = %v after Enter, expected game", m.screen)
	}

	start := time.Unix(1000, 0)
	step(tea.KeyMsg{Type: tea.KeyEsc})
	step(TickMsg(start))
	step(TickMsg(start.Add(50 * time.Millisecond)))
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || m.game != nil {
		t.Errorf("screen = %v after leaving a paused run, expected menu", m.screen)
	}
	if m.quitting {
		t.Error("leaving a run should not end the session")
	}
}
