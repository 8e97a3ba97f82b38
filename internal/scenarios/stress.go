package scenarios

import "github.com/vovakirdan/horde/internal/config"

const stressID = "stress"

// Stress floods the arena for benchmarking: fast dense waves, every weapon
// equipped and a player that does not die.
type Stress struct{}

func (Stress) ID() string          { return stressID }
func (Stress) Title() string       { return "Stress" }
func (Stress) Description() string { return "Dense waves and every weapon, for benchmarking" }

// Configure raises the enemy cap and fixes difficulty at maximum.
func (Stress) Configure(cfg *config.Config) {
	cfg.Player.Health = 1e9
	weapons := make([]string, 0, len(cfg.Weapons))
	for _, w := range cfg.Weapons {
		weapons = append(weapons, w.Name)
	}
	cfg.Player.Weapons = weapons

	cfg.Waves.Interval = 0.5
	cfg.Waves.Batch = 40
	cfg.Waves.MaxEnemies = 1500
	cfg.Waves.Difficulty.Enabled = false
	cfg.Waves.Difficulty.InitialLevel = 1
}
