package core

import (
	"math"
	"strings"
)

// Cell is one character of the draw buffer.
type Cell struct {
	Rune  rune
	Color Color
}

// Screen is a 2D character buffer that the draw hook renders into.
// It decouples the simulation from the terminal: the core plots world
// positions, the platform layer turns cells into styled output.
type Screen struct {
	width  int
	height int
	cells  []Cell // row-major: cells[y*width+x]
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the dimensions and clears the buffer.
func (s *Screen) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	if width == s.width && height == s.height && s.cells != nil {
		return
	}
	s.width = width
	s.height = height
	s.cells = make([]Cell, width*height)
	s.Clear()
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = Cell{Rune: ' '}
	}
}

// Set places a colored rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y*s.width+x] = Cell{Rune: r, Color: c}
}

// GetCell returns the cell at the given position.
// Returns an uncolored space for out-of-bounds coordinates.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Rune: ' '}
	}
	return s.cells[y*s.width+x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.Set(x+i, y, r, c)
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawText(x, y, text, c)
}

// Viewport maps world coordinates onto the screen around a camera center.
// Terminal cells are roughly twice as tall as they are wide, so the
// vertical scale is halved to keep circles round.
type Viewport struct {
	Center Vec     // World position at the middle of the screen
	Scale  float64 // World units per character column
}

// Project converts a world position to screen coordinates.
func (s *Screen) Project(v Viewport, p Vec) (int, int) {
	scale := v.Scale
	if scale <= 0 {
		scale = 1
	}
	x := (p.X-v.Center.X)/scale + float64(s.width)/2
	y := (p.Y-v.Center.Y)/(scale*2) + float64(s.height)/2
	return int(math.Floor(x)), int(math.Floor(y))
}

// Unproject returns the world position at the center of a screen cell.
func (s *Screen) Unproject(v Viewport, x, y int) Vec {
	scale := v.Scale
	if scale <= 0 {
		scale = 1
	}
	return Vec{
		X: (float64(x)+0.5-float64(s.width)/2)*scale + v.Center.X,
		Y: (float64(y)+0.5-float64(s.height)/2)*scale*2 + v.Center.Y,
	}
}

// Plot draws a rune at a world position.
func (s *Screen) Plot(v Viewport, p Vec, r rune, c Color) {
	x, y := s.Project(v, p)
	s.Set(x, y, r, c)
}

// String converts the screen buffer to plain text without colors.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := range s.height {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := range s.width {
			sb.WriteRune(s.cells[y*s.width+x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for x := range s.width {
		sb.WriteRune(s.cells[y*s.width+x].Rune)
	}
	return sb.String()
}
