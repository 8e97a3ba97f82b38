// Package tui provides the Bubble Tea integration for horde.
// It is the wall-clock frame driver: it maps keys to actions, feeds frame
// intervals into the fixed-step simulation and renders the result.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per display frame.
type TickMsg time.Time

// frameCmd returns a Bubble Tea command that sends a TickMsg after one
// display frame at the given rate.
func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
