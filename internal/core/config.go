package core

import "time"

// RuntimeConfig contains configuration passed to a simulation at initialization.
// Scenarios use this to size the viewport and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Viewport width in characters
	ScreenH  int   // Viewport height in characters
	TickRate int   // Fixed simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic spawning
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FixedStep returns the duration of one simulation tick.
func (c RuntimeConfig) FixedStep() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// GameState represents the externally visible status of a run.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the player has died
	Paused   bool // Whether the simulation is paused
}
