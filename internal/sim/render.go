package sim

import (
	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/entity"
	"github.com/vovakirdan/horde/internal/status"
)

// DefaultViewScale is the world units per screen column the renderer uses
// when none is given.
const DefaultViewScale = 8

// Render draws the world into dst around the camera. Scale is world units
// per column; non-positive means DefaultViewScale. Render never mutates the
// simulation.
func (w *World) Render(dst *core.Screen, scale float64) {
	if scale <= 0 {
		scale = DefaultViewScale
	}
	dst.Clear()
	view := core.Viewport{Center: w.camera.Pos, Scale: scale}

	bounds := w.bounds()
	for y := range dst.Height() {
		for x := range dst.Width() {
			if !bounds.Contains(dst.Unproject(view, x, y)) {
				dst.Set(x, y, ':', core.ColorGray)
			}
		}
	}

	for _, k := range w.pickups.Active() {
		if k.Removed {
			continue
		}
		if k.Kind == entity.PickupCoin {
			dst.Plot(view, k.Pos, '$', core.ColorYellow)
		} else {
			dst.Plot(view, k.Pos, '.', core.ColorBrightCyan)
		}
	}

	for _, e := range w.enemies.Active() {
		if e.Removed {
			continue
		}
		dst.Plot(view, e.Pos, w.enemyGlyph(e), w.enemyColor(e))
	}

	for _, p := range w.projectiles.Active() {
		if !p.Removed {
			dst.Plot(view, p.Pos, '*', core.ColorWhite)
		}
	}

	playerColor := core.ColorBrightGreen
	if w.player.Invuln > 0 {
		playerColor = core.ColorWhite
	}
	dst.Plot(view, w.player.Pos, '@', playerColor)
}

func (w *World) enemyGlyph(e *entity.Actor) rune {
	if e.Archetype >= 0 && e.Archetype < len(w.cfg.Enemies) {
		for _, r := range w.cfg.Enemies[e.Archetype].Name {
			return r
		}
	}
	return 'e'
}

// enemyColor shows the most visible status effect.
func (w *World) enemyColor(e *entity.Actor) core.Color {
	switch {
	case w.engine.Has(e.Handle, status.Doomed):
		return core.ColorMagenta
	case w.engine.Has(e.Handle, status.Frozen):
		return core.ColorCyan
	case w.engine.Has(e.Handle, status.Poisoned):
		return core.ColorGreen
	case w.engine.Has(e.Handle, status.Shielded):
		return core.ColorBlue
	default:
		return core.ColorRed
	}
}
