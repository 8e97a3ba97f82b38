package scenarios

import "github.com/vovakirdan/horde/internal/config"

const arenaID = "arena"

// Arena is a small walled map where difficulty follows the score.
type Arena struct{}

func (Arena) ID() string          { return arenaID }
func (Arena) Title() string       { return "Arena" }
func (Arena) Description() string { return "A small arena; every kill makes the horde stronger" }

// Configure shrinks the world and switches to score progression.
func (Arena) Configure(cfg *config.Config) {
	cfg.World.Width = 1200
	cfg.World.Height = 800
	cfg.Waves.RingDistance = 300
	cfg.Waves.MaxEnemies = 200
	cfg.Waves.Difficulty.Enabled = true
	cfg.Waves.Difficulty.Progression = config.ProgressionConfig{Type: "score", MaxAt: 400}
}
