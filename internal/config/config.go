// Package config provides YAML-based simulation configuration loading,
// content tables and difficulty management for horde.
package config

import "github.com/vovakirdan/horde/internal/status"

// Config contains everything a simulation run is built from.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Tick    TickConfig    `yaml:"tick"`
	Player  PlayerConfig  `yaml:"player"`
	Pickups PickupsConfig `yaml:"pickups"`
	Waves   WavesConfig   `yaml:"waves"`
	Status  StatusConfig  `yaml:"status"`
	Enemies []EnemyDef    `yaml:"enemies"`
	Weapons []WeaponDef   `yaml:"weapons"`
}

// WorldConfig defines the arena and the broad-phase grid.
type WorldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	CellSize      float64 `yaml:"cell_size"`
	MaxQueryCells int     `yaml:"max_query_cells"`
	CameraLerp    float64 `yaml:"camera_lerp"` // Fraction of the gap closed per tick, [0, 1]
}

// TickConfig defines the fixed timestep.
type TickConfig struct {
	Rate             int `yaml:"rate"`                // Ticks per second
	MaxTicksPerFrame int `yaml:"max_ticks_per_frame"` // Accumulator clamp
}

// PlayerConfig defines the player actor.
type PlayerConfig struct {
	Health       float64  `yaml:"health"`
	Radius       float64  `yaml:"radius"`
	Speed        float64  `yaml:"speed"`
	InvulnWindow float64  `yaml:"invuln_window"` // Seconds
	Weapons      []string `yaml:"weapons"`       // Weapon names equipped at start
}

// PickupsConfig defines drops and the magnet.
type PickupsConfig struct {
	Radius       float64 `yaml:"radius"`
	MagnetRadius float64 `yaml:"magnet_radius"`
	AttractSpeed float64 `yaml:"attract_speed"`
	CoinValue    float64 `yaml:"coin_value"`
	CoinChance   float64 `yaml:"coin_chance"` // [0, 1]
	Lifetime     float64 `yaml:"lifetime"`    // Seconds before an uncollected drop despawns
}

// WavesConfig defines the wave director.
type WavesConfig struct {
	Interval     float64          `yaml:"interval"`      // Seconds between waves at level 0
	Batch        int              `yaml:"batch"`         // Enemies per wave at level 0
	RingDistance float64          `yaml:"ring_distance"` // Spawn distance from the camera
	MaxEnemies   int              `yaml:"max_enemies"`
	Difficulty   DifficultyConfig `yaml:"difficulty"`
}

// StatusConfig holds tuning for status effect side effects.
type StatusConfig struct {
	DoomRadius float64 `yaml:"doom_radius"` // Radius of a doom burst
}

// EnemyDef is one row of the enemy content table.
type EnemyDef struct {
	Name          string   `yaml:"name"`
	Health        float64  `yaml:"health"`
	Radius        float64  `yaml:"radius"`
	Speed         float64  `yaml:"speed"`
	ContactDamage float64  `yaml:"contact_damage"`
	Value         int      `yaml:"value"`
	XP            float64  `yaml:"xp"`
	Weight        float64  `yaml:"weight"`    // Relative spawn weight
	MinLevel      float64  `yaml:"min_level"` // Difficulty level at which it starts spawning
	Shield        float64  `yaml:"shield"`    // Damage absorbed by a spawn shield (0 = none)
	Split         SplitDef `yaml:"split"`
}

// SplitDef spawns children when the enemy dies.
type SplitDef struct {
	Count int    `yaml:"count"`
	Into  string `yaml:"into"` // Enemy name
}

// WeaponDef is one row of the weapon content table.
type WeaponDef struct {
	Name     string   `yaml:"name"`
	Damage   float64  `yaml:"damage"`
	Radius   float64  `yaml:"radius"`
	Speed    float64  `yaml:"speed"`
	Cooldown float64  `yaml:"cooldown"` // Seconds between volleys
	Lifetime float64  `yaml:"lifetime"` // Seconds a projectile lives
	Pierce   int      `yaml:"pierce"`
	Count    int      `yaml:"count"`  // Projectiles per volley
	Spread   float64  `yaml:"spread"` // Radians between projectiles in a volley
	OnHit    OnHitDef `yaml:"on_hit"`
}

// OnHitDef is the payload a weapon's projectiles carry.
type OnHitDef struct {
	Status        status.Kind `yaml:"status"`
	Magnitude     float64     `yaml:"magnitude"`
	Duration      float64     `yaml:"duration"`
	ExplodeRadius float64     `yaml:"explode_radius"`
	ExplodeDamage float64     `yaml:"explode_damage"`
	ExplodeDelay  float64     `yaml:"explode_delay"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Multiplier added to enemy speed at max difficulty
	HealthMultiplier  float64 `yaml:"health_multiplier"`  // Multiplier added to enemy health at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction of the wave interval removed at max difficulty
	BatchGrowth       int     `yaml:"batch_growth"`       // Extra enemies per wave at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Waves.Difficulty.Enabled = false
	} else {
		cfg.Waves.Difficulty.Enabled = true
		cfg.Waves.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Player.Health *= 1.5
		cfg.Player.InvulnWindow *= 1.5
	case DifficultyHard:
		cfg.Player.Health *= 0.75
		cfg.Waves.Batch += 2
	}
}

// EnemyIndex returns the table index of the named enemy, or -1.
func (c *Config) EnemyIndex(name string) int {
	for i := range c.Enemies {
		if c.Enemies[i].Name == name {
			return i
		}
	}
	return -1
}

// WeaponIndex returns the table index of the named weapon, or -1.
func (c *Config) WeaponIndex(name string) int {
	for i := range c.Weapons {
		if c.Weapons[i].Name == name {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so scenario tweaks never alias the source tables.
func (c Config) Clone() Config {
	out := c
	out.Player.Weapons = append([]string(nil), c.Player.Weapons...)
	out.Enemies = append([]EnemyDef(nil), c.Enemies...)
	out.Weapons = append([]WeaponDef(nil), c.Weapons...)
	return out
}
