package config

import (
	_ "embed"

	"github.com/vovakirdan/horde/internal/status"
)

//go:embed defaults/horde.yaml
var defaultHordeYAML []byte

// Default returns the hardcoded configuration, used when no YAML can be read.
func Default() Config {
	return Config{
		World: WorldConfig{
			Width:         4000,
			Height:        4000,
			CellSize:      64,
			MaxQueryCells: 10_000,
			CameraLerp:    0.15,
		},
		Tick: TickConfig{
			Rate:             60,
			MaxTicksPerFrame: 8,
		},
		Player: PlayerConfig{
			Health:       100,
			Radius:       10,
			Speed:        180,
			InvulnWindow: 0.5,
			Weapons:      []string{"wand", "frost"},
		},
		Pickups: PickupsConfig{
			Radius:       4,
			MagnetRadius: 90,
			AttractSpeed: 320,
			CoinValue:    5,
			CoinChance:   0.1,
			Lifetime:     30,
		},
		Waves: WavesConfig{
			Interval:     3,
			Batch:        6,
			RingDistance: 420,
			MaxEnemies:   500,
			Difficulty: DifficultyConfig{
				Enabled:      true,
				InitialLevel: 0.0,
				Progression: ProgressionConfig{
					Type:  "time",
					MaxAt: 60 * 60 * 5, // Five minutes of ticks at 60 Hz
				},
				Scaling: ScalingConfig{
					SpeedMultiplier:   0.5,
					HealthMultiplier:  2.0,
					IntervalReduction: 0.6,
					BatchGrowth:       18,
				},
			},
		},
		Status: StatusConfig{
			DoomRadius: 60,
		},
		Enemies: []EnemyDef{
			{Name: "bat", Health: 10, Radius: 7, Speed: 70, ContactDamage: 5, Value: 1, XP: 1, Weight: 5},
			{Name: "zombie", Health: 30, Radius: 10, Speed: 45, ContactDamage: 10, Value: 3, XP: 2, Weight: 3, MinLevel: 0.1},
			{Name: "slime", Health: 40, Radius: 12, Speed: 35, ContactDamage: 8, Value: 4, XP: 3, Weight: 2, MinLevel: 0.25,
				Split: SplitDef{Count: 2, Into: "slimelet"}},
			{Name: "slimelet", Health: 8, Radius: 6, Speed: 60, ContactDamage: 4, Value: 1, XP: 1, Weight: 0},
			{Name: "knight", Health: 80, Radius: 14, Speed: 30, ContactDamage: 20, Value: 10, XP: 6, Weight: 1, MinLevel: 0.5,
				Shield: 40},
		},
		Weapons: []WeaponDef{
			{Name: "wand", Damage: 12, Radius: 4, Speed: 420, Cooldown: 0.6, Lifetime: 1.5, Pierce: 0, Count: 1},
			{Name: "frost", Damage: 6, Radius: 5, Speed: 300, Cooldown: 1.4, Lifetime: 1.8, Pierce: 2, Count: 3, Spread: 0.25,
				OnHit: OnHitDef{Status: status.Frozen, Magnitude: 0.6, Duration: 1.5}},
			{Name: "venom", Damage: 3, Radius: 4, Speed: 360, Cooldown: 1.1, Lifetime: 1.5, Pierce: 1, Count: 1,
				OnHit: OnHitDef{Status: status.Poisoned, Magnitude: 8, Duration: 3}},
			{Name: "hex", Damage: 1, Radius: 4, Speed: 260, Cooldown: 3, Lifetime: 2, Pierce: 0, Count: 1,
				OnHit: OnHitDef{Status: status.Doomed, Magnitude: 60, Duration: 2}},
			{Name: "bomb", Damage: 8, Radius: 6, Speed: 220, Cooldown: 2.5, Lifetime: 1.2, Pierce: 0, Count: 1,
				OnHit: OnHitDef{ExplodeRadius: 48, ExplodeDamage: 25, ExplodeDelay: 0.5}},
		},
	}
}
