package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/sim"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var (
	hudStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("236"))
	hpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Background(lipgloss.Color("236")).Bold(true)
	faultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Background(lipgloss.Color("236"))
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// hudLine formats the status bar shown under the arena.
func hudLine(w *sim.World, width int) string {
	p := w.Player()
	enemies, projectiles, _ := w.Counts()
	faults := w.Faults()

	hp := hpStyle.Render(fmt.Sprintf(" HP %3.0f/%-3.0f ", p.Health, p.MaxHealth))
	stats := hudStyle.Render(fmt.Sprintf(" Score %d  Kills %d  Wave %d  XP %.0f  Lv %.2f  Foes %d  Shots %d ",
		w.State().Score, w.Kills(), w.Wave(), w.XP(), w.Level(), enemies, projectiles))

	line := hp + stats
	if n := faults.Total(); n > 0 {
		line += faultStyle.Render(fmt.Sprintf(" faults %d ", n))
	}

	if pad := width - lipgloss.Width(line); pad > 0 {
		line += hudStyle.Render(strings.Repeat(" ", pad))
	}
	return line
}

// drawOverlay writes the pause or game-over banner into the screen.
func drawOverlay(s *core.Screen, state core.GameState) {
	mid := s.Height() / 2
	switch {
	case state.GameOver:
		s.DrawTextCentered(mid-1, " YOU DIED ", core.ColorBrightRed)
		s.DrawTextCentered(mid, fmt.Sprintf(" Score: %d ", state.Score), core.ColorBrightYellow)
		s.DrawTextCentered(mid+1, " R: restart  B: menu  Q: quit ", core.ColorWhite)
	case state.Paused:
		s.DrawTextCentered(mid, " PAUSED ", core.ColorBrightYellow)
		s.DrawTextCentered(mid+1, " P: resume  B: menu ", core.ColorWhite)
	}
}
